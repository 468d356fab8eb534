package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fantaAstic/cs310-final/internal/dto"
	"github.com/fantaAstic/cs310-final/internal/model"
	"github.com/fantaAstic/cs310-final/internal/service"
	"github.com/fantaAstic/cs310-final/pkg/response"
)

// ModuleListHandler 模块列表 HTTP 处理器
// 路径参数 :type ∈ saved | recommended | selected | taught
type ModuleListHandler struct {
	listSvc service.ModuleListService
}

// NewModuleListHandler 创建 ModuleListHandler
func NewModuleListHandler(listSvc service.ModuleListService) *ModuleListHandler {
	return &ModuleListHandler{listSvc: listSvc}
}

// listContext 提取用户、角色与列表类型，失败时已写入响应
func listContext(c *gin.Context) (userID, role string, listType model.ListType, ok bool) {
	if userID, ok = MustGetUserID(c); !ok {
		return
	}
	if role, ok = MustGetRole(c); !ok {
		return
	}
	lt, err := model.ParseListType(c.Param("type"))
	if err != nil {
		response.BadRequest(c, response.CodeInvalidListType, "列表类型只能是 saved / recommended / selected / taught")
		return "", "", "", false
	}
	return userID, role, lt, true
}

// List GET /api/v1/lists/:type
func (h *ModuleListHandler) List(c *gin.Context) {
	userID, role, lt, ok := listContext(c)
	if !ok {
		return
	}
	resp, err := h.listSvc.List(c.Request.Context(), userID, role, lt)
	if err != nil {
		handleListError(c, err)
		return
	}
	response.OK(c, resp)
}

// Count GET /api/v1/lists/:type/count
func (h *ModuleListHandler) Count(c *gin.Context) {
	userID, role, lt, ok := listContext(c)
	if !ok {
		return
	}
	resp, err := h.listSvc.Count(c.Request.Context(), userID, role, lt)
	if err != nil {
		handleListError(c, err)
		return
	}
	response.OK(c, resp)
}

// Add POST /api/v1/lists/:type
func (h *ModuleListHandler) Add(c *gin.Context) {
	userID, role, lt, ok := listContext(c)
	if !ok {
		return
	}
	var req dto.ModuleListEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "module_name 不能为空")
		return
	}
	resp, err := h.listSvc.Add(c.Request.Context(), userID, role, lt, req.ModuleName)
	if err != nil {
		handleListError(c, err)
		return
	}
	response.OK(c, resp)
}

// Remove DELETE /api/v1/lists/:type/:module
func (h *ModuleListHandler) Remove(c *gin.Context) {
	userID, role, lt, ok := listContext(c)
	if !ok {
		return
	}
	resp, err := h.listSvc.Remove(c.Request.Context(), userID, role, lt, c.Param("module"))
	if err != nil {
		handleListError(c, err)
		return
	}
	response.OK(c, resp)
}

// Clear DELETE /api/v1/lists/:type
func (h *ModuleListHandler) Clear(c *gin.Context) {
	userID, role, lt, ok := listContext(c)
	if !ok {
		return
	}
	resp, err := h.listSvc.Clear(c.Request.Context(), userID, role, lt)
	if err != nil {
		handleListError(c, err)
		return
	}
	response.OK(c, resp)
}

func handleListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrListForbidden):
		response.Forbidden(c, response.CodeListForbidden, "仅教师可维护该列表")
	case errors.Is(err, service.ErrListReadOnly):
		response.Forbidden(c, response.CodeListReadOnly, "推荐列表只能由推荐引擎生成")
	case errors.Is(err, service.ErrModuleNotFound):
		response.NotFound(c, response.CodeModuleNotFound, "模块不存在")
	default:
		response.InternalError(c)
	}
}
