package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fantaAstic/cs310-final/internal/model"
)

func setupTestModuleListService() (ModuleListService, *testRepos) {
	repos := newTestRepos()
	repos.modules.put(
		model.Module{Name: "Algorithms"},
		model.Module{Name: "Databases"},
	)
	return NewModuleListService(repos.repo, testLogger()), repos
}

func TestModuleListService_AddIdempotent(t *testing.T) {
	svc, _ := setupTestModuleListService()
	ctx := context.Background()

	first, err := svc.Add(ctx, testStudent, model.RoleStudent, model.ListSaved, "Databases")
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	if !first.Changed {
		t.Error("首次添加 Changed 应为 true")
	}

	second, err := svc.Add(ctx, testStudent, model.RoleStudent, model.ListSaved, "Databases")
	if err != nil {
		t.Fatalf("重复添加不应报错: %v", err)
	}
	if second.Changed {
		t.Error("重复添加 Changed 应为 false")
	}

	list, _ := svc.List(ctx, testStudent, model.RoleStudent, model.ListSaved)
	if list.Count != 1 {
		t.Errorf("期望 1 个模块，实际 %d", list.Count)
	}
}

func TestModuleListService_AddUnknownModule(t *testing.T) {
	svc, _ := setupTestModuleListService()

	_, err := svc.Add(context.Background(), testStudent, model.RoleStudent, model.ListSaved, "Quantum")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("期望 ErrModuleNotFound，实际: %v", err)
	}
}

func TestModuleListService_RecommendedReadOnly(t *testing.T) {
	svc, repos := setupTestModuleListService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testStudent, model.RoleStudent, model.ListRecommended, "Databases")
	if !errors.Is(err, ErrListReadOnly) {
		t.Fatalf("期望 ErrListReadOnly，实际: %v", err)
	}

	// 推荐列表允许移除与清空
	repos.userModule.lists[listKey(testStudent, model.ListRecommended)] = []string{"Algorithms", "Databases"}
	removed, err := svc.Remove(ctx, testStudent, model.RoleStudent, model.ListRecommended, "Algorithms")
	if err != nil || !removed.Changed {
		t.Fatalf("移除推荐模块应成功: %+v, %v", removed, err)
	}
	cleared, err := svc.Clear(ctx, testStudent, model.RoleStudent, model.ListRecommended)
	if err != nil {
		t.Fatalf("Clear 应成功: %v", err)
	}
	if cleared.Count != 1 {
		t.Errorf("期望清空 1 条，实际 %d", cleared.Count)
	}
}

func TestModuleListService_TeacherOnlyLists(t *testing.T) {
	svc, _ := setupTestModuleListService()
	ctx := context.Background()

	for _, lt := range []model.ListType{model.ListTaught, model.ListSelected} {
		if _, err := svc.List(ctx, testStudent, model.RoleStudent, lt); !errors.Is(err, ErrListForbidden) {
			t.Errorf("%s: 学生访问期望 ErrListForbidden，实际: %v", lt, err)
		}
		if _, err := svc.Add(ctx, "teacher-1", model.RoleTeacher, lt, "Algorithms"); err != nil {
			t.Errorf("%s: 教师添加应成功: %v", lt, err)
		}
	}

	count, err := svc.Count(ctx, "teacher-1", model.RoleTeacher, model.ListTaught)
	if err != nil {
		t.Fatalf("Count 应成功: %v", err)
	}
	if count.Count != 1 {
		t.Errorf("期望 1，实际 %d", count.Count)
	}
}

func TestModuleListService_RemoveMissing(t *testing.T) {
	svc, _ := setupTestModuleListService()

	resp, err := svc.Remove(context.Background(), testStudent, model.RoleStudent, model.ListSaved, "Algorithms")
	if err != nil {
		t.Fatalf("移除不存在的条目不应报错: %v", err)
	}
	if resp.Changed {
		t.Error("Changed 应为 false")
	}
}
