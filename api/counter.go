package api

import (
	"wechat-ai-bot/database"
	"wechat-ai-bot/models"

	"github.com/gin-gonic/gin"
)

// CounterHandler 计数器处理器（微信云托管模板接口）
type CounterHandler struct{}

// NewCounterHandler 创建计数器处理器
func NewCounterHandler() *CounterHandler {
	return &CounterHandler{}
}

// CounterRequest 计数器操作请求
type CounterRequest struct {
	Action string `json:"action" binding:"required,oneof=inc clear"`
}

// Get 查询计数
// @Summary 查询计数器
// @Tags 计数器
// @Produce json
// @Success 200 {object} Response "当前计数"
// @Router /api/count [get]
func (h *CounterHandler) Get(c *gin.Context) {
	var counter models.Counter
	if err := database.DB.First(&counter).Error; err != nil {
		InternalError(c, "查询计数失败")
		return
	}
	Success(c, gin.H{"count": counter.Count})
}

// Update 更新计数（inc 自增，clear 清零）
// @Summary 更新计数器
// @Tags 计数器
// @Accept json
// @Produce json
// @Param request body CounterRequest true "操作：inc 或 clear"
// @Success 200 {object} Response "更新后的计数"
// @Failure 400 {object} Response "参数错误"
// @Router /api/count [post]
func (h *CounterHandler) Update(c *gin.Context) {
	var req CounterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var counter models.Counter
	if err := database.DB.First(&counter).Error; err != nil {
		InternalError(c, "查询计数失败")
		return
	}

	if req.Action == "inc" {
		counter.Count++
	} else {
		counter.Count = 0
	}
	if err := database.DB.Model(&counter).Update("count", counter.Count).Error; err != nil {
		InternalError(c, "更新计数失败")
		return
	}
	Success(c, gin.H{"count": counter.Count})
}
