package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fantaAstic/cs310-final/internal/dto"
	"github.com/fantaAstic/cs310-final/internal/service"
	"github.com/fantaAstic/cs310-final/pkg/response"
)

// ModuleHandler 模块目录 HTTP 处理器
type ModuleHandler struct {
	moduleSvc  service.ModuleService
	catalogSvc service.CatalogService
}

// NewModuleHandler 创建 ModuleHandler
func NewModuleHandler(moduleSvc service.ModuleService, catalogSvc service.CatalogService) *ModuleHandler {
	return &ModuleHandler{moduleSvc: moduleSvc, catalogSvc: catalogSvc}
}

// List 全部模块
// GET /api/v1/modules
func (h *ModuleHandler) List(c *gin.Context) {
	modules, err := h.moduleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKList(c, modules, len(modules))
}

// Titles 仅模块名称
// GET /api/v1/modules/titles
func (h *ModuleHandler) Titles(c *gin.Context) {
	names, err := h.moduleSvc.ListTitles(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKList(c, names, len(names))
}

// Get 单个模块
// GET /api/v1/modules/:name
func (h *ModuleHandler) Get(c *gin.Context) {
	module, err := h.moduleSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		handleModuleError(c, err)
		return
	}
	response.OK(c, module)
}

// ListByCategory 按学科筛选
// GET /api/v1/modules/category/:category
func (h *ModuleHandler) ListByCategory(c *gin.Context) {
	modules, err := h.moduleSvc.ListByCategory(c.Request.Context(), strings.TrimSpace(c.Param("category")))
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKList(c, modules, len(modules))
}

// Topics 模块的全部方面聚合
// GET /api/v1/modules/:name/topics
func (h *ModuleHandler) Topics(c *gin.Context) {
	topics, err := h.moduleSvc.ListTopics(c.Request.Context(), c.Param("name"))
	if err != nil {
		handleModuleError(c, err)
		return
	}
	response.OKList(c, topics, len(topics))
}

// Topic 单个方面聚合
// GET /api/v1/modules/:name/topics/:topic
func (h *ModuleHandler) Topic(c *gin.Context) {
	topic, err := h.moduleSvc.GetTopic(c.Request.Context(), c.Param("name"), c.Param("topic"))
	if err != nil {
		handleModuleError(c, err)
		return
	}
	response.OK(c, topic)
}

// Create 教师新增模块
// POST /api/v1/modules
func (h *ModuleHandler) Create(c *gin.Context) {
	var req dto.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "参数校验失败", err.Error())
		return
	}

	module, err := h.moduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleModuleError(c, err)
		return
	}
	response.Created(c, module)
}

// Import 教师上传 xlsx 导入目录
// POST /api/v1/modules/import (multipart, 字段 file)
func (h *ModuleHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "请上传 xlsx 文件（字段名 file）")
		return
	}
	defer file.Close()

	result, err := h.catalogSvc.ImportXLSX(c.Request.Context(), file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImportInvalidFile),
			errors.Is(err, service.ErrImportNoData),
			errors.Is(err, service.ErrImportBadHeader),
			errors.Is(err, service.ErrImportTooManyRows):
			response.BadRequest(c, response.CodeImportInvalid, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

func handleModuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrModuleNotFound):
		response.NotFound(c, response.CodeModuleNotFound, "模块不存在")
	case errors.Is(err, service.ErrTopicNotFound):
		response.NotFound(c, response.CodeTopicNotFound, "该模块没有此方面的分析数据")
	case errors.Is(err, service.ErrModuleExists):
		response.Conflict(c, response.CodeModuleExists, "模块名称已存在")
	default:
		response.InternalError(c)
	}
}
