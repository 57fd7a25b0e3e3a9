package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"wechat-ai-bot/config"
	"wechat-ai-bot/database"
	"wechat-ai-bot/models"

	"gorm.io/gorm"
)

// 对话相关固定文案
const (
	// AIImageKey 作画触发前缀，以此开头的消息走图片生成
	AIImageKey = "作画"

	// ClearKeyText / ClearKeyImage 清空指令
	ClearKeyText  = "CLEAR_0"
	ClearKeyImage = "CLEAR_1"

	AIThinkingMessage  = "我已经在编了，请稍等几秒后复制原文再说一遍~"
	LimitCountResponse = "对不起，因为ChatGPT调用收费，您的免费使用额度已用完~"
	UnsupportedMessage = "只支持文本消息"

	ClearTextResponse  = "已清空您的文本对话记录"
	ClearImageResponse = "已清空您的作画记录"

	// ReplyPrefix AI回复的标记前缀，额度提示与“回答中”提示不带
	ReplyPrefix = "[GPT]: "
)

// AIClient 对话服务依赖的AI能力，便于测试注入
type AIClient interface {
	TextCompletion(ctx context.Context, prompt string) string
	ImageGeneration(ctx context.Context, prompt string) string
}

// ChatService 对话调度：按 (fromUser, request) 去重、额度管控、上下文拼装、AI调用与落库
type ChatService struct {
	cfg   *config.Config
	ai    AIClient
	email *EmailService

	// 额度用尽邮件通知去重，进程内每个用户只发一次
	alerted sync.Map
}

// NewChatService 创建对话调度服务
func NewChatService(cfg *config.Config, ai AIClient) *ChatService {
	return &ChatService{
		cfg:   cfg,
		ai:    ai,
		email: NewEmailService(&cfg.Email),
	}
}

// Reply 处理一条文本消息，返回应答文案
//
// 状态机（按 (fromUser, content) 键）：
//
//	无记录   -> 清空指令 / 分类 -> 额度检查 -> 建档(回答中) -> AI调用 -> 更新(已回答)
//	回答中   -> 固定“稍等”提示，不触发新的AI调用（重复投递幂等）
//	已回答   -> 直接返回存量回答（重放不二次计费）
//
// AI调用期间不持有任何锁，“回答中”的持久化记录即乐观占位；
// 并发下同键两次插入由唯一索引兜底，冲突一方按“回答中”返回。
func (s *ChatService) Reply(ctx context.Context, fromUser, content string) string {
	// 清空指令优先，不落库
	switch content {
	case ClearKeyText:
		return s.clearHistory(fromUser, models.AITypeText, ClearTextResponse)
	case ClearKeyImage:
		return s.clearHistory(fromUser, models.AITypeImage, ClearImageResponse)
	}

	// 查重：同一用户的同一句话
	var msg models.Message
	err := database.DB.
		Where("from_user = ? AND request = ?", fromUser, content).
		First(&msg).Error
	if err == nil {
		if msg.Status == models.StatusAnswered {
			return ReplyPrefix + msg.Response
		}
		return AIThinkingMessage
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("查询对话记录失败: %v", err)
		return AIThinkingMessage
	}

	// 能力分类与额度
	aiType := models.AITypeText
	limit := s.cfg.Quota.TextLimit
	if strings.HasPrefix(content, AIImageKey) {
		aiType = models.AITypeImage
		limit = s.cfg.Quota.ImageLimit
	}

	var count int64
	if err := database.DB.Model(&models.Message{}).
		Where("from_user = ? AND ai_type = ?", fromUser, aiType).
		Count(&count).Error; err != nil {
		log.Printf("统计对话记录失败: %v", err)
		return AIThinkingMessage
	}
	if count >= int64(limit) {
		s.notifyQuotaExhausted(fromUser, aiType, count)
		return LimitCountResponse
	}

	// 上下文在建档前拼装，当前问题由这里追加（见 buildContextPrompt）
	var prompt string
	if aiType == models.AITypeText {
		prompt = s.buildContextPrompt(fromUser, content)
	} else {
		prompt = strings.TrimPrefix(content, AIImageKey)
	}

	// 先建档占位再调AI：AI响应慢，记录的“回答中”状态挡住重复投递
	record := models.Message{
		FromUser: fromUser,
		Request:  content,
		AIType:   aiType,
		Status:   models.StatusThinking,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 并发的同键请求抢先建档，按“回答中”处理
			return AIThinkingMessage
		}
		log.Printf("创建对话记录失败: %v", err)
		return AIThinkingMessage
	}

	var response string
	if aiType == models.AITypeText {
		response = s.ai.TextCompletion(ctx, prompt)
	} else {
		response = s.ai.ImageGeneration(ctx, prompt)
	}

	// AI空结果已在适配器降级成占位文案，这里一律按成功收尾
	if err := database.DB.Model(&models.Message{}).
		Where("from_user = ? AND request = ?", fromUser, content).
		Updates(map[string]interface{}{
			"response": response,
			"status":   models.StatusAnswered,
		}).Error; err != nil {
		log.Printf("更新对话记录失败: %v", err)
	}

	return ReplyPrefix + response
}

// buildContextPrompt 拼装带上下文的 prompt
// 取该用户最近的文本记录（按更新时间升序），首轮直接用原文；
// 多轮时拼成 Q/A 转写并以当前问题收尾，让补全模型续写 A。
func (s *ChatService) buildContextPrompt(fromUser, content string) string {
	var history []models.Message
	if err := database.DB.
		Where("from_user = ? AND ai_type = ?", fromUser, models.AITypeText).
		Order("updated_at ASC").
		Limit(s.cfg.Quota.TextLimit).
		Find(&history).Error; err != nil {
		log.Printf("查询历史对话失败: %v", err)
		return content
	}

	if len(history) == 0 {
		return content
	}

	lines := make([]string, 0, len(history)+1)
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("Q: %s\n A: %s", m.Request, m.Response))
	}
	lines = append(lines, fmt.Sprintf("Q: %s\n A: ", content))
	return strings.Join(lines, "\n")
}

// clearHistory 删除该用户某一能力类型的全部记录
func (s *ChatService) clearHistory(fromUser string, aiType int8, reply string) string {
	if err := database.DB.
		Where("from_user = ? AND ai_type = ?", fromUser, aiType).
		Delete(&models.Message{}).Error; err != nil {
		log.Printf("清空对话记录失败: %v", err)
		return AIThinkingMessage
	}
	return reply
}

// notifyQuotaExhausted 额度用尽时通知运营者（可选，异步，失败只记日志）
func (s *ChatService) notifyQuotaExhausted(fromUser string, aiType int8, count int64) {
	if !s.cfg.Email.Enabled {
		return
	}
	key := fmt.Sprintf("%s:%d", fromUser, aiType)
	if _, loaded := s.alerted.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	go func() {
		if err := s.email.SendQuotaAlert(fromUser, aiType, count); err != nil {
			log.Printf("发送额度通知邮件失败: %v", err)
		}
	}()
}
