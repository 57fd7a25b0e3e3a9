package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"wechat-ai-bot/database"
	"wechat-ai-bot/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

var exportHeaders = []string{"ID", "用户", "类型", "问题", "回答", "状态", "创建时间", "更新时间"}

func exportRow(m *models.Message) []string {
	typeName := "文本"
	if m.AIType == models.AITypeImage {
		typeName = "作画"
	}
	statusName := "回答中"
	if m.Status == models.StatusAnswered {
		statusName = "已回答"
	}
	return []string{
		fmt.Sprintf("%d", m.ID),
		m.FromUser,
		typeName,
		m.Request,
		m.Response,
		statusName,
		m.CreatedAt.Format("2006-01-02 15:04:05"),
		m.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func queryExportMessages(c *gin.Context) ([]models.Message, bool) {
	query := database.DB.Model(&models.Message{})
	if fromUser := c.Query("from_user"); fromUser != "" {
		query = query.Where("from_user = ?", fromUser)
	}

	var messages []models.Message
	if err := query.Order("updated_at DESC").Find(&messages).Error; err != nil {
		InternalError(c, "查询数据失败: "+err.Error())
		return nil, false
	}
	return messages, true
}

// ExportCSV 导出对话记录为 CSV
// @Summary 导出对话记录（CSV）
// @Description 导出全部对话记录为 CSV，可按用户过滤
// @Tags 后台管理
// @Produce text/csv
// @Security BearerAuth
// @Param from_user query string false "按用户过滤"
// @Success 200 {file} file "CSV 文件"
// @Router /admin/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	messages, ok := queryExportMessages(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以支持 Excel 中文显示
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeaders); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	for i := range messages {
		if err := writer.Write(exportRow(&messages[i])); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	filename := fmt.Sprintf("messages_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出对话记录为 Excel
// @Summary 导出对话记录（Excel）
// @Description 导出全部对话记录为 xlsx，可按用户过滤
// @Tags 后台管理
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param from_user query string false "按用户过滤"
// @Success 200 {file} file "Excel 文件"
// @Router /admin/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	messages, ok := queryExportMessages(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("关闭 Excel 文件失败: %v", err)
		}
	}()

	sheet := "对话记录"
	index, err := f.NewSheet(sheet)
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}
	for row := range messages {
		for col, v := range exportRow(&messages[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}

	filename := fmt.Sprintf("messages_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
