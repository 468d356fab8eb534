package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fantaAstic/cs310-final/internal/dto"
	"github.com/fantaAstic/cs310-final/internal/model"
)

func setupTestModuleService() (ModuleService, *testRepos) {
	repos := newTestRepos()
	repos.modules.put(
		model.Module{Name: "Algorithms", Category: "Theory"},
		model.Module{Name: "Databases", Category: "Systems"},
		model.Module{Name: "Operating-Systems", Category: "Systems"},
	)
	repos.topics.details = []model.TopicDetail{
		{ModuleName: "Databases", Topic: "Teaching", TopicOutlook: strPtr(model.OutlookPositive)},
		{ModuleName: "Databases", Topic: "Workload"},
	}
	return NewModuleService(repos.repo, testLogger()), repos
}

func TestModuleList_SortedByName(t *testing.T) {
	svc, _ := setupTestModuleService()

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Algorithms" || list[2].Name != "Operating-Systems" {
		t.Errorf("模块应按名称排序: %+v", list)
	}
	for _, m := range list {
		if m.Topics == nil {
			t.Errorf("topics 应为空数组而非 null: %s", m.Name)
		}
	}

	titles, err := svc.ListTitles(context.Background())
	if err != nil {
		t.Fatalf("ListTitles 应成功: %v", err)
	}
	if len(titles) != 3 {
		t.Errorf("期望 3 个名称，实际 %v", titles)
	}
}

func TestModuleGet_NotFound(t *testing.T) {
	svc, _ := setupTestModuleService()

	if _, err := svc.Get(context.Background(), "Quantum"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("期望 ErrModuleNotFound，实际: %v", err)
	}
}

func TestModuleListByCategory(t *testing.T) {
	svc, repos := setupTestModuleService()
	repos.modules.put(model.Module{Name: "Warehousing", Category: "Data, Storage"})

	list, err := svc.ListByCategory(context.Background(), "Systems")
	if err != nil {
		t.Fatalf("ListByCategory 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("期望 2 个 Systems 模块，实际 %d", len(list))
	}

	multi, _ := svc.ListByCategory(context.Background(), "Data")
	if len(multi) != 1 || multi[0].Name != "Warehousing" {
		t.Errorf("逗号分隔的学科应命中，实际 %v", multi)
	}

	empty, _ := svc.ListByCategory(context.Background(), "Art")
	if empty == nil || len(empty) != 0 {
		t.Errorf("无匹配时应返回空数组，实际 %v", empty)
	}
}

func TestModuleTopics(t *testing.T) {
	svc, _ := setupTestModuleService()

	topics, err := svc.ListTopics(context.Background(), "Databases")
	if err != nil {
		t.Fatalf("ListTopics 应成功: %v", err)
	}
	if len(topics) != 2 {
		t.Errorf("期望 2 个方面，实际 %d", len(topics))
	}

	if _, err := svc.ListTopics(context.Background(), "Quantum"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("模块不存在时期望 ErrModuleNotFound，实际: %v", err)
	}

	got, err := svc.GetTopic(context.Background(), "Databases", "Teaching")
	if err != nil {
		t.Fatalf("GetTopic 应成功: %v", err)
	}
	if got.TopicOutlook == nil || *got.TopicOutlook != model.OutlookPositive {
		t.Errorf("topic_outlook 不符: %v", got.TopicOutlook)
	}

	if _, err := svc.GetTopic(context.Background(), "Algorithms", "Teaching"); !errors.Is(err, ErrTopicNotFound) {
		t.Errorf("期望 ErrTopicNotFound，实际: %v", err)
	}
}

func TestModuleCreate(t *testing.T) {
	svc, repos := setupTestModuleService()

	resp, err := svc.Create(context.Background(), &dto.CreateModuleRequest{
		Name:     " Compilers ",
		Category: "Systems",
		Topics:   []string{"Teaching", " ", "Teaching", "Workload"},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Name != "Compilers" {
		t.Errorf("名称应去除空白，实际 %q", resp.Name)
	}
	if len(resp.Topics) != 2 {
		t.Errorf("topics 应去重去空，实际 %v", resp.Topics)
	}
	if _, ok := repos.modules.modules["Compilers"]; !ok {
		t.Error("模块应已写入")
	}

	_, err = svc.Create(context.Background(), &dto.CreateModuleRequest{Name: "Databases"})
	if !errors.Is(err, ErrModuleExists) {
		t.Errorf("期望 ErrModuleExists，实际: %v", err)
	}
}
