package api

import (
	"io"
	"log"
	"net/http"

	"wechat-ai-bot/config"
	"wechat-ai-bot/service"

	"github.com/gin-gonic/gin"
)

// WechatHandler 微信公众号回调处理器
type WechatHandler struct {
	token string
	chat  *service.ChatService
}

// NewWechatHandler 创建微信回调处理器
func NewWechatHandler(cfg *config.Config, chat *service.ChatService) *WechatHandler {
	return &WechatHandler{
		token: cfg.Wechat.Token,
		chat:  chat,
	}
}

// Verify 服务器配置校验（微信握手）
// @Summary 微信服务器签名校验
// @Description 校验 signature，成功原样返回 echostr，失败返回固定错误串
// @Tags 微信回调
// @Produce plain
// @Param signature query string true "微信签名"
// @Param timestamp query string true "时间戳"
// @Param nonce query string true "随机数"
// @Param echostr query string true "随机字符串"
// @Success 200 {string} string "echostr"
// @Router /wx [get]
func (h *WechatHandler) Verify(c *gin.Context) {
	signature := c.Query("signature")
	timestamp := c.Query("timestamp")
	nonce := c.Query("nonce")
	echostr := c.Query("echostr")

	if service.CheckSignature(h.token, signature, timestamp, nonce) {
		c.String(http.StatusOK, echostr)
		return
	}
	c.String(http.StatusOK, "Invalid signature")
}

// Receive 接收用户消息并回复
// @Summary 微信消息回调
// @Description 接收公众号推送的 XML 消息，文本消息走 AI 对话流水线，其余类型回固定提示
// @Tags 微信回调
// @Accept xml
// @Produce xml
// @Success 200 {string} string "XML回复信封"
// @Router /wx [post]
func (h *WechatHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusOK, "success")
		return
	}

	msg, err := service.DecodeMessage(body)
	if err != nil {
		// 信封整体不可解析时按微信约定回 success，不再重试投递
		log.Printf("解析消息信封失败: %v", err)
		c.String(http.StatusOK, "success")
		return
	}

	var result string
	if msg.MsgType == service.MsgTypeText {
		result = h.chat.Reply(c.Request.Context(), msg.FromUserName, msg.Content)
	} else {
		result = service.UnsupportedMessage
	}

	// 回复方向与入站相反
	reply, err := service.EncodeReply(msg.FromUserName, msg.ToUserName, result)
	if err != nil {
		log.Printf("构造回复信封失败: %v", err)
		c.String(http.StatusOK, "success")
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", reply)
}
