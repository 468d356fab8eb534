package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fantaAstic/cs310-final/internal/dto"
	"github.com/fantaAstic/cs310-final/internal/model"
	"github.com/fantaAstic/cs310-final/internal/recommend"
	"github.com/fantaAstic/cs310-final/internal/repository"
)

var (
	ErrCatalogUnavailable = errors.New("模块目录暂不可用")
	ErrPersistFailed      = errors.New("保存推荐结果失败")
	ErrNoRecommendations  = errors.New("暂无推荐结果，请先生成推荐")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

var tracer = otel.Tracer("github.com/fantaAstic/cs310-final/internal/service")

// RecommendationService 推荐业务接口
type RecommendationService interface {
	// Generate 对整个目录打分排序，并原子替换学生的推荐列表
	Generate(ctx context.Context, studentID string, req *dto.GenerateRecommendationsRequest) (*dto.GenerateRecommendationsResponse, error)
	// GetRecommended 按存储顺序返回当前推荐列表
	GetRecommended(ctx context.Context, userID string) (*dto.RecommendedModulesResponse, error)
	// Export 导出当前推荐列表为 xlsx
	Export(ctx context.Context, userID string) (*bytes.Buffer, string, error)
}

type recommendationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRecommendationService 创建 RecommendationService 实例
func NewRecommendationService(repo *repository.Repository, logger *zap.Logger) RecommendationService {
	return &recommendationService{repo: repo, logger: logger}
}

// ────────────────────── Generate ──────────────────────

func (s *recommendationService) Generate(ctx context.Context, studentID string, raw *dto.GenerateRecommendationsRequest) (*dto.GenerateRecommendationsResponse, error) {
	ctx, span := tracer.Start(ctx, "RecommendationService.Generate")
	defer span.End()

	if raw == nil {
		raw = &dto.GenerateRecommendationsRequest{}
	}
	req := recommend.Normalize(*raw)
	span.SetAttributes(
		attribute.String("student.id", studentID),
		attribute.Int("request.importance", req.SentimentImportance),
		attribute.Int("request.categories", len(req.SelectedCategories)),
		attribute.Int("request.aspects", len(req.SelectedAspects)),
	)

	// 1. 读取目录、方面聚合、已收藏模块
	catalog, err := s.repo.Module.ListAll(ctx)
	if err != nil {
		return nil, s.readFailed(span, "加载模块目录失败", err)
	}

	var topics recommend.TopicIndex
	if len(req.SelectedAspects) > 0 && len(catalog) > 0 {
		details, err := s.repo.TopicDetail.ListByTopics(ctx, req.SelectedAspects)
		if err != nil {
			return nil, s.readFailed(span, "加载方面聚合失败", err)
		}
		topics = toTopicIndex(details)
	}

	saved, err := s.repo.UserModule.ListNames(ctx, studentID, model.ListSaved)
	if err != nil {
		return nil, s.readFailed(span, "加载收藏模块失败", err)
	}

	// 2. 打分排序（纯计算）
	var lookup recommend.TopicLookup
	if topics != nil {
		lookup = topics
	}
	scored := recommend.Score(req, toEngineModules(catalog), lookup)
	ranked := recommend.Rank(scored, saved)
	names := recommend.Names(ranked)

	// 3. 原子替换推荐列表
	if err := s.repo.UserModule.ReplaceList(ctx, studentID, model.ListRecommended, names); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		s.logger.Error("保存推荐列表失败", zap.String("student_id", studentID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}

	weights := recommend.DeriveWeights(req)
	span.SetAttributes(attribute.Int("result.size", len(names)))
	s.logger.Info("推荐生成完成",
		zap.String("student_id", studentID),
		zap.Int("catalog", len(catalog)),
		zap.Int("recommended", len(names)),
		zap.Int("saved", len(saved)),
		zap.Int("w_outlook", weights.Outlook),
		zap.Int("w_category", weights.Category),
		zap.Int("w_aspect", weights.Aspect),
	)

	items := make([]dto.RecommendationItem, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, dto.RecommendationItem{
			Rank:       r.Position,
			Name:       r.Module.Name,
			Score:      r.Score,
			Components: r.Components,
			Saved:      r.Saved,
		})
	}

	return &dto.GenerateRecommendationsResponse{
		RecommendedModules: names,
		Items:              items,
		Weights:            weights,
		Request:            req,
	}, nil
}

func (s *recommendationService) readFailed(span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.logger.Error(msg, zap.Error(err))
	return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
}

// toEngineModules 模型转打分视图；category 允许逗号分隔多个学科
func toEngineModules(modules []model.Module) []recommend.Module {
	out := make([]recommend.Module, 0, len(modules))
	for _, m := range modules {
		em := recommend.Module{
			Name:        m.Name,
			PositivePct: toPercent(m.PositiveReviews),
		}
		if m.Outlook != nil {
			em.Outlook = *m.Outlook
		}
		em.Categories = m.Categories()
		out = append(out, em)
	}
	return out
}

func toTopicIndex(details []model.TopicDetail) recommend.TopicIndex {
	idx := make(recommend.TopicIndex)
	for _, d := range details {
		td := recommend.TopicDetail{PositivePct: toPercent(d.PositiveReviewsTopic)}
		if d.TopicOutlook != nil {
			td.Outlook = *d.TopicOutlook
		}
		idx.Add(d.ModuleName, d.Topic, td)
	}
	return idx
}

func toPercent(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

// ────────────────────── GetRecommended ──────────────────────

func (s *recommendationService) GetRecommended(ctx context.Context, userID string) (*dto.RecommendedModulesResponse, error) {
	names, modules, err := s.loadRecommended(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.RecommendedModulesResponse{
		RecommendedModules: names,
		Modules:            make([]dto.ModuleResponse, 0, len(modules)),
	}
	for i := range modules {
		resp.Modules = append(resp.Modules, dto.ToModuleResponse(&modules[i]))
	}
	return resp, nil
}

// loadRecommended 返回存储顺序的名称与模块详情；目录中已不存在的模块跳过详情
func (s *recommendationService) loadRecommended(ctx context.Context, userID string) ([]string, []model.Module, error) {
	names, err := s.repo.UserModule.ListNames(ctx, userID, model.ListRecommended)
	if err != nil {
		s.logger.Error("加载推荐列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, nil, err
	}
	if len(names) == 0 {
		return names, nil, nil
	}

	found, err := s.repo.Module.ListByNames(ctx, names)
	if err != nil {
		s.logger.Error("加载推荐模块详情失败", zap.Error(err))
		return nil, nil, err
	}
	byName := make(map[string]model.Module, len(found))
	for _, m := range found {
		byName[m.Name] = m
	}
	modules := make([]model.Module, 0, len(names))
	for _, n := range names {
		if m, ok := byName[n]; ok {
			modules = append(modules, m)
		}
	}
	return names, modules, nil
}

// ────────────────────── Export ──────────────────────

func (s *recommendationService) Export(ctx context.Context, userID string) (*bytes.Buffer, string, error) {
	names, modules, err := s.loadRecommended(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if len(names) == 0 {
		return nil, "", ErrNoRecommendations
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Recommendations"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "D", 14)
	f.SetColWidth(sheetName, "E", "F", 16)
	f.SetColWidth(sheetName, "G", "G", 60)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	headers := []string{"Rank", "Module", "Category", "Outlook", "Positive reviews", "Negative reviews", "Summary"}
	for i, h := range headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, c, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", last, headerStyle)

	byName := make(map[string]*model.Module, len(modules))
	for i := range modules {
		byName[modules[i].Name] = &modules[i]
	}

	for i, name := range names {
		row := i + 2
		f.SetCellValue(sheetName, cell("A", row), i+1)
		f.SetCellValue(sheetName, cell("B", row), name)
		m, ok := byName[name]
		if !ok {
			continue
		}
		f.SetCellValue(sheetName, cell("C", row), m.Category)
		f.SetCellValue(sheetName, cell("D", row), derefString(m.Outlook, "-"))
		f.SetCellValue(sheetName, cell("E", row), percentCell(m.PositiveReviews))
		f.SetCellValue(sheetName, cell("F", row), percentCell(m.NegativeReviews))
		f.SetCellValue(sheetName, cell("G", row), m.Summary)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("recommendations_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func derefString(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func percentCell(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d%%", *v)
}

// [自证通过] internal/service/recommendation_service.go
