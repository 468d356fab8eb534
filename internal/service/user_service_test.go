package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/fantaAstic/cs310-final/internal/dto"
	"github.com/fantaAstic/cs310-final/internal/model"
	pkgerrors "github.com/fantaAstic/cs310-final/pkg/errors"
)

type conflictUserRepo struct {
	*mockUserRepo
}

func (c conflictUserRepo) Update(_ context.Context, _ *model.User) error {
	return pkgerrors.ErrOptimisticLock
}

func TestUpdateProfile_NameAndYear(t *testing.T) {
	repos := newTestRepos()
	user := createTestUser(repos.users, "ivy@example.com", "password123", model.RoleStudent)
	svc := NewUserService(repos.repo, testLogger())

	resp, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		Name: strPtr(" Ivy Lee "),
		Year: strPtr("3"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}
	if resp.Name != "Ivy Lee" {
		t.Errorf("期望 Name=Ivy Lee，实际=%s", resp.Name)
	}
	if resp.Year == nil || *resp.Year != "3" {
		t.Errorf("期望 Year=3，实际=%v", resp.Year)
	}
	if resp.Version != 2 {
		t.Errorf("期望 Version=2，实际=%d", resp.Version)
	}

	// 空白年级清空
	resp, err = svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{Year: strPtr("  ")})
	if err != nil {
		t.Fatalf("UpdateProfile 应成功: %v", err)
	}
	if resp.Year != nil {
		t.Errorf("空白年级应清空，实际=%v", *resp.Year)
	}
}

func TestUpdateProfile_ChangePassword(t *testing.T) {
	repos := newTestRepos()
	user := createTestUser(repos.users, "jack@example.com", "password123", model.RoleStudent)
	svc := NewUserService(repos.repo, testLogger())

	_, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		OldPassword: "wrong",
		NewPassword: strPtr("newpassword456"),
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("期望 ErrWrongPassword，实际: %v", err)
	}

	_, err = svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{
		OldPassword: "password123",
		NewPassword: strPtr("newpassword456"),
	})
	if err != nil {
		t.Fatalf("修改密码应成功: %v", err)
	}
	stored := repos.users.users[user.UserID]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword456")) != nil {
		t.Error("新密码哈希不匹配")
	}
}

func TestUpdateProfile_Conflict(t *testing.T) {
	repos := newTestRepos()
	user := createTestUser(repos.users, "kim@example.com", "password123", model.RoleStudent)
	repos.repo.User = conflictUserRepo{repos.users}
	svc := NewUserService(repos.repo, testLogger())

	_, err := svc.UpdateProfile(context.Background(), user.UserID, &dto.UpdateProfileRequest{Name: strPtr("Kim")})
	if !errors.Is(err, ErrUserConflict) {
		t.Errorf("期望 ErrUserConflict，实际: %v", err)
	}
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	repos := newTestRepos()
	svc := NewUserService(repos.repo, testLogger())

	_, err := svc.UpdateProfile(context.Background(), "missing", &dto.UpdateProfileRequest{Name: strPtr("Nobody")})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
