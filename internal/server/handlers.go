package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beautycrm/internal/importer"
	"beautycrm/internal/model"
	"beautycrm/internal/store"
)

// Handler API 处理器
type Handler struct {
	importer     *importer.Importer
	dataStore    *store.DataStore
	defaultMerge bool
	logger       *zap.Logger
}

// NewHandler 创建处理器
func NewHandler(imp *importer.Importer, ds *store.DataStore, defaultMerge bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		importer:     imp,
		dataStore:    ds,
		defaultMerge: defaultMerge,
		logger:       logger,
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/excel/precheck", h.PreCheck)
	g.POST("/excel/import", h.Import)
	g.POST("/data/save", h.SaveData)

	g.GET("/customers", h.ListCustomers)
	g.GET("/customers/search", h.SearchCustomers)
	g.GET("/customers/:id", h.GetCustomer)
	g.GET("/customers/:id/consumptions", h.GetCustomerConsumptions)

	g.GET("/statistics", h.GetStatistics)
	g.GET("/export", h.ExportData)
	g.DELETE("/data", h.ClearData)
}

// PreCheck 文件预检查
// POST /api/excel/precheck  (form: ext)
func (h *Handler) PreCheck(c *gin.Context) {
	ext := c.PostForm("ext")
	if ext == "" {
		ext = filepath.Ext(c.PostForm("filename"))
	}

	result, err := h.importer.PreCheck(ext)
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的文件格式，请上传xlsx、xls或csv文件"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Import 上传并导入数据文件
// POST /api/excel/import  (multipart file + merge=true/false)
func (h *Handler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传文件失败"})
		return
	}

	classified, summary, err := h.importer.Ingest(data, filepath.Ext(fileHeader.Filename))
	if err != nil {
		if errors.Is(err, importer.ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的文件格式，请上传xlsx、xls或csv文件"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	summary.Filename = fileHeader.Filename

	merge := h.defaultMerge
	if v := c.PostForm("merge"); v != "" {
		merge = v == "true"
	}

	result, err := h.dataStore.SaveData(classified, merge)
	if err != nil {
		// 分类结果没有丢失，调用方可以只重试保存而不必重新上传
		h.logger.Error("保存导入数据失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存数据失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"result":  result,
	})
}

// SaveData 保存已分类数据
// POST /api/data/save  (json: {customers, consumptions, merge})
// 解析结果保存失败时不会丢失，调用方可以只重试本接口而不必重新上传文件。
func (h *Handler) SaveData(c *gin.Context) {
	var req struct {
		Customers    []*model.Customer    `json:"customers"`
		Consumptions []*model.Consumption `json:"consumptions"`
		Merge        *bool                `json:"merge"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据"})
		return
	}

	merge := h.defaultMerge
	if req.Merge != nil {
		merge = *req.Merge
	}

	result, err := h.dataStore.SaveData(&model.ClassifiedData{
		Customers:    req.Customers,
		Consumptions: req.Consumptions,
	}, merge)
	if err != nil {
		h.logger.Error("保存数据失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存数据失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListCustomers 客户列表
// GET /api/customers
func (h *Handler) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customers": h.dataStore.AllCustomers()})
}

// SearchCustomers 按姓名或手机号搜索客户
// GET /api/customers/search?keyword=
func (h *Handler) SearchCustomers(c *gin.Context) {
	keyword := c.Query("keyword")
	c.JSON(http.StatusOK, gin.H{"customers": h.dataStore.SearchCustomers(keyword)})
}

// GetCustomer 客户详情
// GET /api/customers/:id
func (h *Handler) GetCustomer(c *gin.Context) {
	customer := h.dataStore.CustomerByID(c.Param("id"))
	if customer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "客户不存在"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetCustomerConsumptions 客户消费记录
// GET /api/customers/:id/consumptions
func (h *Handler) GetCustomerConsumptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"consumptions": h.dataStore.CustomerConsumptions(c.Param("id")),
	})
}

// GetStatistics 数据统计
// GET /api/statistics
func (h *Handler) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.dataStore.Statistics())
}

// ExportData 导出数据快照
// GET /api/export
func (h *Handler) ExportData(c *gin.Context) {
	c.JSON(http.StatusOK, h.dataStore.Export())
}

// ClearData 清空所有数据
// DELETE /api/data
func (h *Handler) ClearData(c *gin.Context) {
	if err := h.dataStore.ClearAll(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "清空数据失败: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
