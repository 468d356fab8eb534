package dto

import (
	"time"

	"github.com/fantaAstic/cs310-final/internal/model"
)

// ToUserResponse 模型转响应（脱敏）
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Year:      u.Year,
		Version:   u.Version,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// ToModuleResponse 模块模型转响应
func ToModuleResponse(m *model.Module) ModuleResponse {
	topics := []string(m.Topics)
	if topics == nil {
		topics = []string{}
	}
	return ModuleResponse{
		Name:                          m.Name,
		Outlook:                       m.Outlook,
		Summary:                       m.Summary,
		PositiveReviews:               m.PositiveReviews,
		NegativeReviews:               m.NegativeReviews,
		PositiveEmotions:              m.PositiveEmotions,
		NegativeEmotions:              m.NegativeEmotions,
		Category:                      m.Category,
		TeacherFeedbackRecommendation: m.TeacherFeedbackRecommendation,
		TeacherFeedbackShortform:      m.TeacherFeedbackShortform,
		Topics:                        topics,
	}
}

// ToTopicDetailResponse 方面聚合模型转响应
func ToTopicDetailResponse(t *model.TopicDetail) TopicDetailResponse {
	return TopicDetailResponse{
		ModuleName:            t.ModuleName,
		Topic:                 t.Topic,
		TopicOutlook:          t.TopicOutlook,
		TopicSummary:          t.TopicSummary,
		PositiveReviewsTopic:  t.PositiveReviewsTopic,
		NegativeReviewsTopic:  t.NegativeReviewsTopic,
		PositiveEmotionsTopic: t.PositiveEmotionsTopic,
		NegativeEmotionsTopic: t.NegativeEmotionsTopic,
	}
}
