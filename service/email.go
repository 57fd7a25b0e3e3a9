package service

import (
	"fmt"

	"wechat-ai-bot/config"
	"wechat-ai-bot/models"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendQuotaAlert 用户免费额度用尽时通知运营者
func (s *EmailService) SendQuotaAlert(fromUser string, aiType int8, count int64) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 email.enabled=true")
	}
	if s.cfg.To == "" {
		return fmt.Errorf("未配置通知收件人 email.to")
	}

	typeName := "文本对话"
	if aiType == models.AITypeImage {
		typeName = "作画"
	}
	subject := "【微信AI助手】用户额度用尽提醒"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body>
    <p>用户 <strong>%s</strong> 的 <strong>%s</strong> 免费额度已用尽（已用 %d 条）。</p>
    <p>如需继续服务该用户，请在后台清理其历史记录或调整额度配置。</p>
    <p style="color:#6c757d;font-size:12px;">此邮件由系统自动发送，请勿回复</p>
</body>
</html>
`, fromUser, typeName, count)

	return s.sendEmail(s.cfg.To, subject, body)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}
