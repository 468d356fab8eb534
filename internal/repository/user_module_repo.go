package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fantaAstic/cs310-final/internal/model"
)

// UserModuleRepository 学生模块列表数据访问接口
type UserModuleRepository interface {
	// ListNames 按 position 顺序返回列表中的模块名
	ListNames(ctx context.Context, userID string, listType model.ListType) ([]string, error)
	Count(ctx context.Context, userID string, listType model.ListType) (int64, error)
	// Add 追加到列表末尾；已存在时不做修改并返回 false
	Add(ctx context.Context, userID string, listType model.ListType, moduleName string) (bool, error)
	// Remove 不存在时返回 false
	Remove(ctx context.Context, userID string, listType model.ListType, moduleName string) (bool, error)
	Clear(ctx context.Context, userID string, listType model.ListType) (int64, error)
	// ReplaceList 在事务中全量替换列表：锁定用户行后先删除旧数据，再按顺序批量插入
	// 任一步失败整体回滚，旧列表保持不变
	ReplaceList(ctx context.Context, userID string, listType model.ListType, moduleNames []string) error
}

type userModuleRepo struct {
	db *gorm.DB
}

// NewUserModuleRepo 创建 UserModuleRepository 实例
func NewUserModuleRepo(db *gorm.DB) UserModuleRepository {
	return &userModuleRepo{db: db}
}

func (r *userModuleRepo) ListNames(ctx context.Context, userID string, listType model.ListType) ([]string, error) {
	names := []string{}
	err := r.db.WithContext(ctx).
		Model(&model.UserModule{}).
		Where("user_id = ? AND list_type = ?", userID, listType).
		Order("position ASC, created_at ASC").
		Pluck("module_name", &names).Error
	return names, err
}

func (r *userModuleRepo) Count(ctx context.Context, userID string, listType model.ListType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserModule{}).
		Where("user_id = ? AND list_type = ?", userID, listType).
		Count(&count).Error
	return count, err
}

func (r *userModuleRepo) Add(ctx context.Context, userID string, listType model.ListType, moduleName string) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&model.UserModule{}).
			Where("user_id = ? AND list_type = ?", userID, listType).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return err
		}

		entry := &model.UserModule{
			UserID:     userID,
			ListType:   listType,
			ModuleName: moduleName,
			Position:   maxPos + 1,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
		if result.Error != nil {
			return result.Error
		}
		added = result.RowsAffected > 0
		return nil
	})
	return added, err
}

func (r *userModuleRepo) Remove(ctx context.Context, userID string, listType model.ListType, moduleName string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND list_type = ? AND module_name = ?", userID, listType, moduleName).
		Delete(&model.UserModule{})
	return result.RowsAffected > 0, result.Error
}

func (r *userModuleRepo) Clear(ctx context.Context, userID string, listType model.ListType) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND list_type = ?", userID, listType).
		Delete(&model.UserModule{})
	return result.RowsAffected, result.Error
}

func (r *userModuleRepo) ReplaceList(ctx context.Context, userID string, listType model.ListType, moduleNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 同一学生的并发替换在此串行化（SQLite 忽略行锁，单写者本身已串行）
		var owner model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("user_id").
			Where("user_id = ?", userID).
			First(&owner).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? AND list_type = ?", userID, listType).
			Delete(&model.UserModule{}).Error; err != nil {
			return err
		}

		if len(moduleNames) == 0 {
			return nil
		}
		entries := make([]model.UserModule, len(moduleNames))
		for i, name := range moduleNames {
			entries[i] = model.UserModule{
				UserID:     userID,
				ListType:   listType,
				ModuleName: name,
				Position:   i + 1,
			}
		}
		return tx.CreateInBatches(&entries, 100).Error
	})
}
