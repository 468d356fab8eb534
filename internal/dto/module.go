package dto

// ── 模块目录 DTO ──

// CreateModuleRequest 教师新增模块请求
type CreateModuleRequest struct {
	Name             string   `json:"name"              binding:"required,max=255"`
	Outlook          *string  `json:"outlook"           binding:"omitempty,oneof=Positive Neutral Negative"`
	Summary          string   `json:"summary"`
	PositiveReviews  *int     `json:"positive_reviews"  binding:"omitempty,min=0,max=100"`
	NegativeReviews  *int     `json:"negative_reviews"  binding:"omitempty,min=0,max=100"`
	PositiveEmotions *int     `json:"positive_emotions" binding:"omitempty,min=0"`
	NegativeEmotions *int     `json:"negative_emotions" binding:"omitempty,min=0"`
	Category         string   `json:"category"          binding:"max=100"`
	Topics           []string `json:"topics"`
}

// ModuleResponse 模块详情
type ModuleResponse struct {
	Name                          string   `json:"name"`
	Outlook                       *string  `json:"outlook"`
	Summary                       string   `json:"summary"`
	PositiveReviews               *int     `json:"positive_reviews"`
	NegativeReviews               *int     `json:"negative_reviews"`
	PositiveEmotions              *int     `json:"positive_emotions"`
	NegativeEmotions              *int     `json:"negative_emotions"`
	Category                      string   `json:"category"`
	TeacherFeedbackRecommendation string   `json:"teacher_feedback_recommendation,omitempty"`
	TeacherFeedbackShortform      string   `json:"teacher_feedback_recommendation_shortform,omitempty"`
	Topics                        []string `json:"topics"`
}

// TopicDetailResponse 模块-方面聚合
type TopicDetailResponse struct {
	ModuleName            string  `json:"module_name"`
	Topic                 string  `json:"topic"`
	TopicOutlook          *string `json:"topic_outlook"`
	TopicSummary          string  `json:"topic_summary"`
	PositiveReviewsTopic  *int    `json:"positive_reviews_topic"`
	NegativeReviewsTopic  *int    `json:"negative_reviews_topic"`
	PositiveEmotionsTopic *int    `json:"positive_emotions_topic"`
	NegativeEmotionsTopic *int    `json:"negative_emotions_topic"`
}

// ── 目录导入 ──

// ImportCatalogResponse 目录导入结果
type ImportCatalogResponse struct {
	Modules int                  `json:"modules"`
	Topics  int                  `json:"topics"`
	Failed  int                  `json:"failed"`
	Errors  []ImportCatalogError `json:"errors,omitempty"`
}

// ImportCatalogError 导入错误详情
type ImportCatalogError struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// [自证通过] internal/dto/module.go
