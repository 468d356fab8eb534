package service

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fantaAstic/cs310-final/internal/model"
	"github.com/fantaAstic/cs310-final/internal/repository"
	pkgerrors "github.com/fantaAstic/cs310-final/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	user.Version = 1
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	stored, ok := m.users[user.UserID]
	if !ok || stored.Version != user.Version {
		return pkgerrors.ErrOptimisticLock
	}
	user.Version++
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

// ── Mock ModuleRepository ──

type mockModuleRepo struct {
	modules map[string]model.Module
	topics  *mockTopicRepo

	listErr   error
	upsertErr error
}

func newMockModuleRepo(topics *mockTopicRepo) *mockModuleRepo {
	return &mockModuleRepo{modules: make(map[string]model.Module), topics: topics}
}

func (m *mockModuleRepo) sorted() []model.Module {
	out := make([]model.Module, 0, len(m.modules))
	for _, mod := range m.modules {
		out = append(out, mod)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *mockModuleRepo) ListAll(_ context.Context) ([]model.Module, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.sorted(), nil
}

func (m *mockModuleRepo) GetByName(_ context.Context, name string) (*model.Module, error) {
	if mod, ok := m.modules[name]; ok {
		return &mod, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockModuleRepo) ListByCategory(_ context.Context, category string) ([]model.Module, error) {
	out := []model.Module{}
	for _, mod := range m.sorted() {
		if mod.HasCategory(category) {
			out = append(out, mod)
		}
	}
	return out, nil
}

func (m *mockModuleRepo) ListByNames(_ context.Context, names []string) ([]model.Module, error) {
	var out []model.Module
	for _, n := range names {
		if mod, ok := m.modules[n]; ok {
			out = append(out, mod)
		}
	}
	return out, nil
}

func (m *mockModuleRepo) ListNames(_ context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []string
	for _, mod := range m.sorted() {
		out = append(out, mod.Name)
	}
	return out, nil
}

func (m *mockModuleRepo) Create(_ context.Context, module *model.Module) error {
	if module.ModuleID == "" {
		module.ModuleID = "mod-" + module.Name
	}
	m.modules[module.Name] = *module
	return nil
}

func (m *mockModuleRepo) UpsertCatalog(_ context.Context, modules []model.Module, topics []model.TopicDetail) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for i := range modules {
		_ = m.Create(context.Background(), &modules[i])
	}
	if m.topics != nil {
		m.topics.details = append(m.topics.details, topics...)
	}
	return nil
}

func (m *mockModuleRepo) put(mods ...model.Module) {
	for _, mod := range mods {
		m.modules[mod.Name] = mod
	}
}

// ── Mock TopicDetailRepository ──

type mockTopicRepo struct {
	details []model.TopicDetail

	listErr   error
	listCalls int
}

func newMockTopicRepo() *mockTopicRepo {
	return &mockTopicRepo{}
}

func (m *mockTopicRepo) GetByModuleAndTopic(_ context.Context, moduleName, topic string) (*model.TopicDetail, error) {
	for _, d := range m.details {
		if d.ModuleName == moduleName && d.Topic == topic {
			cp := d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTopicRepo) ListByModule(_ context.Context, moduleName string) ([]model.TopicDetail, error) {
	var out []model.TopicDetail
	for _, d := range m.details {
		if d.ModuleName == moduleName {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockTopicRepo) ListByTopics(_ context.Context, topics []string) ([]model.TopicDetail, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	want := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		want[t] = struct{}{}
	}
	var out []model.TopicDetail
	for _, d := range m.details {
		if _, ok := want[d.Topic]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// ── Mock UserModuleRepository ──

type mockUserModuleRepo struct {
	lists map[string][]string // key: user_id|list_type

	listErr      error
	replaceErr   error
	replaceCalls int
}

func newMockUserModuleRepo() *mockUserModuleRepo {
	return &mockUserModuleRepo{lists: make(map[string][]string)}
}

func listKey(userID string, listType model.ListType) string {
	return userID + "|" + string(listType)
}

func (m *mockUserModuleRepo) ListNames(_ context.Context, userID string, listType model.ListType) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := append([]string{}, m.lists[listKey(userID, listType)]...)
	return out, nil
}

func (m *mockUserModuleRepo) Count(_ context.Context, userID string, listType model.ListType) (int64, error) {
	return int64(len(m.lists[listKey(userID, listType)])), nil
}

func (m *mockUserModuleRepo) Add(_ context.Context, userID string, listType model.ListType, moduleName string) (bool, error) {
	k := listKey(userID, listType)
	for _, n := range m.lists[k] {
		if n == moduleName {
			return false, nil
		}
	}
	m.lists[k] = append(m.lists[k], moduleName)
	return true, nil
}

func (m *mockUserModuleRepo) Remove(_ context.Context, userID string, listType model.ListType, moduleName string) (bool, error) {
	k := listKey(userID, listType)
	for i, n := range m.lists[k] {
		if n == moduleName {
			m.lists[k] = append(m.lists[k][:i], m.lists[k][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserModuleRepo) Clear(_ context.Context, userID string, listType model.ListType) (int64, error) {
	k := listKey(userID, listType)
	n := int64(len(m.lists[k]))
	delete(m.lists, k)
	return n, nil
}

func (m *mockUserModuleRepo) ReplaceList(_ context.Context, userID string, listType model.ListType, moduleNames []string) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		// 模拟事务回滚：原列表保持不变
		return m.replaceErr
	}
	m.lists[listKey(userID, listType)] = append([]string{}, moduleNames...)
	return nil
}

// ── 测试辅助 ──

type testRepos struct {
	repo       *repository.Repository
	users      *mockUserRepo
	modules    *mockModuleRepo
	topics     *mockTopicRepo
	userModule *mockUserModuleRepo
}

func newTestRepos() *testRepos {
	topics := newMockTopicRepo()
	r := &testRepos{
		users:      newMockUserRepo(),
		modules:    newMockModuleRepo(topics),
		topics:     topics,
		userModule: newMockUserModuleRepo(),
	}
	r.repo = &repository.Repository{
		User:        r.users,
		Module:      r.modules,
		TopicDetail: r.topics,
		UserModule:  r.userModule,
	}
	return r
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
