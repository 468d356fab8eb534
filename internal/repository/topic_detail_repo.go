package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fantaAstic/cs310-final/internal/model"
)

// TopicDetailRepository 模块-方面聚合数据访问接口
type TopicDetailRepository interface {
	// GetByModuleAndTopic 不存在时返回 gorm.ErrRecordNotFound
	GetByModuleAndTopic(ctx context.Context, moduleName, topic string) (*model.TopicDetail, error)
	ListByModule(ctx context.Context, moduleName string) ([]model.TopicDetail, error)
	// ListByTopics 一次读取所选方面在所有模块上的聚合
	ListByTopics(ctx context.Context, topics []string) ([]model.TopicDetail, error)
}

type topicDetailRepo struct {
	db *gorm.DB
}

// NewTopicDetailRepo 创建 TopicDetailRepository 实例
func NewTopicDetailRepo(db *gorm.DB) TopicDetailRepository {
	return &topicDetailRepo{db: db}
}

func (r *topicDetailRepo) GetByModuleAndTopic(ctx context.Context, moduleName, topic string) (*model.TopicDetail, error) {
	var detail model.TopicDetail
	err := r.db.WithContext(ctx).
		Where("module_name = ? AND topic = ?", moduleName, topic).
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *topicDetailRepo) ListByModule(ctx context.Context, moduleName string) ([]model.TopicDetail, error) {
	var details []model.TopicDetail
	err := r.db.WithContext(ctx).
		Where("module_name = ?", moduleName).
		Order("topic ASC").
		Find(&details).Error
	return details, err
}

func (r *topicDetailRepo) ListByTopics(ctx context.Context, topics []string) ([]model.TopicDetail, error) {
	if len(topics) == 0 {
		return []model.TopicDetail{}, nil
	}
	var details []model.TopicDetail
	err := r.db.WithContext(ctx).
		Where("topic IN ?", topics).
		Order("module_name ASC, topic ASC").
		Find(&details).Error
	return details, err
}
