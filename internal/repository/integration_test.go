//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkgerrors "github.com/fantaAstic/cs310-final/pkg/errors"

	"github.com/fantaAstic/cs310-final/internal/model"
	"github.com/fantaAstic/cs310-final/internal/repository"
	"github.com/fantaAstic/cs310-final/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=module_insight password=module_insight_password dbname=module_insight_test sslmode=disable TimeZone=Europe/London"
	}

	var err error
	pgDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := pgDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	// 与生产一致：用 golang-migrate 建表
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupStudent 创建测试学生并返回清理函数
func setupStudent(t *testing.T) (*model.User, func()) {
	t.Helper()

	user := &model.User{
		Name:         "测试学生",
		Email:        fmt.Sprintf("student%d@example.ac.uk", time.Now().UnixNano()),
		PasswordHash: "$2a$10$placeholder",
		Role:         model.RoleStudent,
	}
	if err := pgDB.Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	cleanup := func() {
		pgDB.Where("user_id = ?", user.UserID).Delete(&model.UserModule{})
		pgDB.Unscoped().Where("user_id = ?", user.UserID).Delete(&model.User{})
	}
	return user, cleanup
}

// ═══════════════════════════════════════════════════════════
// Test: ReplaceList 并发替换
// ═══════════════════════════════════════════════════════════

func TestReplaceList_ConcurrentSameStudent(t *testing.T) {
	user, cleanup := setupStudent(t)
	defer cleanup()

	repo := repository.NewRepository(pgDB)
	ctx := context.Background()

	lists := [][]string{
		{"A", "B", "C"},
		{"D", "E"},
		{"F"},
		{"C", "B", "A", "G"},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(lists)*5)
	for round := 0; round < 5; round++ {
		for _, names := range lists {
			wg.Add(1)
			go func(names []string) {
				defer wg.Done()
				errs <- repo.UserModule.ReplaceList(ctx, user.UserID, model.ListRecommended, names)
			}(names)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("并发 ReplaceList 不应失败: %v", err)
		}
	}

	// 最终结果必须恰好等于某一次完整写入，不能出现新旧混合
	got, err := repo.UserModule.ListNames(ctx, user.UserID, model.ListRecommended)
	if err != nil {
		t.Fatalf("ListNames 失败: %v", err)
	}
	matched := false
	for _, names := range lists {
		if fmt.Sprint(names) == fmt.Sprint(got) {
			matched = true
			break
		}
	}
	if !matched {
		t.Errorf("推荐列表出现混合状态: %v", got)
	}
}

func TestReplaceList_Idempotent(t *testing.T) {
	user, cleanup := setupStudent(t)
	defer cleanup()

	repo := repository.NewRepository(pgDB)
	ctx := context.Background()

	names := []string{"Machine-Learning", "Python-Basics"}
	for i := 0; i < 2; i++ {
		if err := repo.UserModule.ReplaceList(ctx, user.UserID, model.ListRecommended, names); err != nil {
			t.Fatalf("第 %d 次 ReplaceList 失败: %v", i+1, err)
		}
	}

	count, _ := repo.UserModule.Count(ctx, user.UserID, model.ListRecommended)
	if count != int64(len(names)) {
		t.Errorf("重复替换不应累积，期望 %d 条，实际=%d", len(names), count)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Optimistic Lock
// ═══════════════════════════════════════════════════════════

func TestOptimisticLock_User_ConflictDetected(t *testing.T) {
	user, cleanup := setupStudent(t)
	defer cleanup()

	repo := repository.NewRepository(pgDB)
	ctx := context.Background()

	a, _ := repo.User.GetByID(ctx, user.UserID)
	b, _ := repo.User.GetByID(ctx, user.UserID)

	a.Name = "A"
	if err := repo.User.Update(ctx, a); err != nil {
		t.Fatalf("第一次更新失败: %v", err)
	}

	b.Name = "B"
	err := repo.User.Update(ctx, b)
	if err == nil {
		t.Fatal("期望乐观锁冲突错误，但更新成功了")
	}
	if err != pkgerrors.ErrOptimisticLock {
		t.Errorf("期望 ErrOptimisticLock，得到: %v", err)
	}
}
