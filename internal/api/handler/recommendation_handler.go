package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fantaAstic/cs310-final/internal/dto"
	"github.com/fantaAstic/cs310-final/internal/service"
	"github.com/fantaAstic/cs310-final/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RecommendationHandler 推荐 HTTP 处理器
type RecommendationHandler struct {
	recSvc service.RecommendationService
}

// NewRecommendationHandler 创建 RecommendationHandler
func NewRecommendationHandler(recSvc service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recSvc: recSvc}
}

// Generate 生成推荐
// POST /api/v1/recommendations/generate
// 字段类型宽松，由引擎归一化；空请求体或非对象 JSON 等同全部缺省
func (h *RecommendationHandler) Generate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateRecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
		case errors.As(err, &typeErr):
			// 合法 JSON 但不是对象（数组、数字等）：按缺省偏好处理
			req = dto.GenerateRecommendationsRequest{}
		default:
			response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeInvalidParams, "请求体不是合法 JSON", err.Error())
			return
		}
	}

	result, err := h.recSvc.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		handleRecommendationError(c, err)
		return
	}
	response.OK(c, result)
}

// Get 当前推荐列表（存储顺序）
// GET /api/v1/recommendations
func (h *RecommendationHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	result, err := h.recSvc.GetRecommended(c.Request.Context(), userID)
	if err != nil {
		handleRecommendationError(c, err)
		return
	}
	response.OK(c, result)
}

// Export 导出推荐列表
// GET /api/v1/recommendations/export
func (h *RecommendationHandler) Export(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	buf, filename, err := h.recSvc.Export(c.Request.Context(), userID)
	if err != nil {
		handleRecommendationError(c, err)
		return
	}
	response.Attachment(c, filename, xlsxContentType, buf.Bytes())
}

func handleRecommendationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCatalogUnavailable):
		response.ServiceUnavailable(c, response.CodeCatalogUnavailable, "模块目录暂不可用，请稍后重试")
	case errors.Is(err, service.ErrPersistFailed):
		response.Error(c, http.StatusInternalServerError, response.CodePersistFailed, "保存推荐结果失败，原推荐保持不变")
	case errors.Is(err, service.ErrNoRecommendations):
		response.NotFound(c, response.CodeNoRecommendations, "暂无推荐结果，请先生成推荐")
	default:
		response.InternalError(c)
	}
}
