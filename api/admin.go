package api

import (
	"strconv"

	"wechat-ai-bot/config"
	"wechat-ai-bot/database"
	"wechat-ai-bot/middleware"
	"wechat-ai-bot/models"

	"github.com/gin-gonic/gin"
)

// AdminHandler 后台管理处理器
type AdminHandler struct {
	cfg *config.Config
}

// NewAdminHandler 创建后台管理处理器
func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{cfg: cfg}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
// @Summary 管理员登录
// @Description 校验账号密码，返回 JWT token
// @Tags 后台管理
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response "token"
// @Failure 401 {object} Response "账号或密码错误"
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	var admin models.AdminUser
	if err := database.DB.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		Unauthorized(c, "账号或密码错误")
		return
	}
	if !admin.CheckPassword(req.Password) {
		Unauthorized(c, "账号或密码错误")
		return
	}

	token, err := middleware.GenerateToken(admin.ID, admin.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, config.SafeErrorMessage(err, "生成登录凭证失败"))
		return
	}

	Success(c, gin.H{
		"token":    token,
		"username": admin.Username,
	})
}

// ListMessages 分页查询对话记录
// @Summary 对话记录列表
// @Description 分页返回对话记录，可按用户和类型过滤
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认1"
// @Param page_size query int false "每页条数，默认20，最大100"
// @Param from_user query string false "按用户过滤"
// @Param ai_type query int false "按类型过滤：0文本 1作画"
// @Success 200 {object} Response "分页数据"
// @Router /admin/messages [get]
func (h *AdminHandler) ListMessages(c *gin.Context) {
	page := 1
	pageSize := 20
	if p := c.Query("page"); p != "" {
		if v, e := strconv.Atoi(p); e == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, e := strconv.Atoi(ps); e == nil && v > 0 {
			pageSize = v
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}

	query := database.DB.Model(&models.Message{})
	if fromUser := c.Query("from_user"); fromUser != "" {
		query = query.Where("from_user = ?", fromUser)
	}
	if aiTypeStr := c.Query("ai_type"); aiTypeStr != "" {
		if v, e := strconv.Atoi(aiTypeStr); e == nil {
			query = query.Where("ai_type = ?", v)
		}
	}

	var total int64
	query.Count(&total)

	var list []models.Message
	offset := (page - 1) * pageSize
	if err := query.Order("updated_at DESC").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, "查询失败: "+config.SafeErrorMessage(err, "内部错误"))
		return
	}

	Success(c, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"list":      list,
	})
}

// DeleteMessage 删除对话记录
// @Summary 删除对话记录
// @Description 删除指定的对话记录（释放该问题的去重键）
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Param id path int true "记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /admin/messages/{id} [delete]
func (h *AdminHandler) DeleteMessage(c *gin.Context) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}

	var msg models.Message
	if err := database.DB.First(&msg, uint(id64)).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}

	if err := database.DB.Delete(&msg).Error; err != nil {
		InternalError(c, "删除失败: "+config.SafeErrorMessage(err, "内部错误"))
		return
	}
	Success(c, gin.H{"id": msg.ID})
}

// Statistics 统计总览
// @Summary 对话统计
// @Description 返回对话记录的总量与按类型、状态的分布
// @Tags 后台管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response "统计数据"
// @Router /admin/statistics [get]
func (h *AdminHandler) Statistics(c *gin.Context) {
	var total, textCount, imageCount, thinking int64
	database.DB.Model(&models.Message{}).Count(&total)
	database.DB.Model(&models.Message{}).Where("ai_type = ?", models.AITypeText).Count(&textCount)
	database.DB.Model(&models.Message{}).Where("ai_type = ?", models.AITypeImage).Count(&imageCount)
	database.DB.Model(&models.Message{}).Where("status = ?", models.StatusThinking).Count(&thinking)

	Success(c, gin.H{
		"total":       total,
		"text_count":  textCount,
		"image_count": imageCount,
		"thinking":    thinking,
	})
}
