package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fantaAstic/cs310-final/internal/dto"
	"github.com/fantaAstic/cs310-final/internal/model"
	"github.com/fantaAstic/cs310-final/internal/repository"
)

const (
	maxImportRows = 5000

	sheetModules = "modules"
	sheetTopics  = "topics"
)

var (
	ErrImportInvalidFile = errors.New("无法解析 Excel 文件")
	ErrImportNoData      = errors.New("目录无数据行（第一行为表头）")
	ErrImportTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
	ErrImportBadHeader   = errors.New("表头缺少必要列（modules 需 name；topics 需 module_name/topic）")
)

// CatalogService 模块目录导入业务接口（离线分析结果入库）
type CatalogService interface {
	// ImportXLSX 解析 modules / topics 两个工作表并导入，行级错误不中断导入
	ImportXLSX(ctx context.Context, r io.Reader) (*dto.ImportCatalogResponse, error)
	// Import 校验并按名称 upsert 模块与方面聚合
	Import(ctx context.Context, modules []model.Module, topics []model.TopicDetail) (*dto.ImportCatalogResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ────────────────────── Import ──────────────────────

func (s *catalogService) Import(ctx context.Context, modules []model.Module, topics []model.TopicDetail) (*dto.ImportCatalogResponse, error) {
	resp := &dto.ImportCatalogResponse{}
	if len(modules) == 0 && len(topics) == 0 {
		return nil, ErrImportNoData
	}
	if len(modules)+len(topics) > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	// 第一阶段：校验（同名模块后者覆盖前者）
	validModules, known := s.validateModules(modules, resp)

	existing, err := s.repo.Module.ListNames(ctx)
	if err != nil {
		s.logger.Error("加载模块名称失败", zap.Error(err))
		return nil, err
	}
	for _, name := range existing {
		known[name] = struct{}{}
	}
	validTopics := validateTopics(topics, known, resp)

	// 第二阶段：事务内 upsert
	if len(validModules) > 0 || len(validTopics) > 0 {
		if err := s.repo.Module.UpsertCatalog(ctx, validModules, validTopics); err != nil {
			s.logger.Error("导入模块目录失败", zap.Error(err))
			return nil, err
		}
	}

	resp.Modules = len(validModules)
	resp.Topics = len(validTopics)
	s.logger.Info("模块目录导入完成",
		zap.Int("modules", resp.Modules),
		zap.Int("topics", resp.Topics),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func (s *catalogService) validateModules(modules []model.Module, resp *dto.ImportCatalogResponse) ([]model.Module, map[string]struct{}) {
	known := make(map[string]struct{}, len(modules))
	index := make(map[string]int, len(modules))
	var valid []model.Module

	for i, m := range modules {
		row := i + 2
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportCatalogError{Sheet: sheetModules, Row: row, Reason: "模块名称为空"})
			continue
		}
		outlook, ok := canonicalOutlook(m.Outlook)
		if !ok {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportCatalogError{Sheet: sheetModules, Row: row, Reason: fmt.Sprintf("无效的 outlook: %s", *m.Outlook)})
			continue
		}
		m.Outlook = outlook
		if reason := checkPercent(m.PositiveReviews, m.NegativeReviews); reason != "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportCatalogError{Sheet: sheetModules, Row: row, Reason: reason})
			continue
		}
		m.Category = strings.TrimSpace(m.Category)
		m.Topics = datatypes.JSONSlice[string](cleanTopics(m.Topics))

		if at, dup := index[m.Name]; dup {
			valid[at] = m
			continue
		}
		index[m.Name] = len(valid)
		known[m.Name] = struct{}{}
		valid = append(valid, m)
	}
	return valid, known
}

func validateTopics(topics []model.TopicDetail, known map[string]struct{}, resp *dto.ImportCatalogResponse) []model.TopicDetail {
	type key struct{ module, topic string }
	index := make(map[key]int, len(topics))
	var valid []model.TopicDetail

	for i, t := range topics {
		row := i + 2
		t.ModuleName = strings.TrimSpace(t.ModuleName)
		t.Topic = strings.TrimSpace(t.Topic)
		if t.ModuleName == "" || t.Topic == "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportCatalogError{Sheet: sheetTopics, Row: row, Reason: "模块名称或方面为空"})
			continue
		}
		if _, ok := known[t.ModuleName]; !ok {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportCatalogError{Sheet: sheetTopics, Row: row, Reason: fmt.Sprintf("模块不存在: %s", t.ModuleName)})
			continue
		}
		outlook, ok := canonicalOutlook(t.TopicOutlook)
		if !ok {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportCatalogError{Sheet: sheetTopics, Row: row, Reason: fmt.Sprintf("无效的 topic_outlook: %s", *t.TopicOutlook)})
			continue
		}
		t.TopicOutlook = outlook
		if reason := checkPercent(t.PositiveReviewsTopic, t.NegativeReviewsTopic); reason != "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportCatalogError{Sheet: sheetTopics, Row: row, Reason: reason})
			continue
		}

		k := key{t.ModuleName, t.Topic}
		if at, dup := index[k]; dup {
			valid[at] = t
			continue
		}
		index[k] = len(valid)
		valid = append(valid, t)
	}
	return valid
}

// canonicalOutlook 统一大小写；空值视为缺失
func canonicalOutlook(v *string) (*string, bool) {
	if v == nil {
		return nil, true
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil, true
	}
	for _, o := range []string{model.OutlookPositive, model.OutlookNeutral, model.OutlookNegative} {
		if strings.EqualFold(s, o) {
			return &o, true
		}
	}
	return nil, false
}

func checkPercent(values ...*int) string {
	for _, v := range values {
		if v != nil && (*v < 0 || *v > 100) {
			return fmt.Sprintf("百分比超出范围 0-100: %d", *v)
		}
	}
	return ""
}

// ────────────────────── ImportXLSX ──────────────────────

func (s *catalogService) ImportXLSX(ctx context.Context, r io.Reader) (*dto.ImportCatalogResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportInvalidFile, err)
	}
	defer f.Close()

	moduleSheet := sheetModules
	if idx, _ := f.GetSheetIndex(sheetModules); idx < 0 {
		moduleSheet = f.GetSheetName(0)
	}
	moduleRows, err := f.GetRows(moduleSheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	modules, err := parseModuleRows(moduleRows)
	if err != nil {
		return nil, err
	}

	var topics []model.TopicDetail
	if idx, _ := f.GetSheetIndex(sheetTopics); idx >= 0 {
		topicRows, err := f.GetRows(sheetTopics)
		if err != nil {
			return nil, fmt.Errorf("读取工作表失败: %w", err)
		}
		if topics, err = parseTopicRows(topicRows); err != nil {
			return nil, err
		}
	}

	return s.Import(ctx, modules, topics)
}

// headerIndex 解析表头，返回列名 -> 列索引（不区分大小写，允许别名）
func headerIndex(header []string, aliases map[string]string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := aliases[key]; ok {
			key = canonical
		}
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

func cellValue(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func optionalString(row []string, idx map[string]int, col string) *string {
	v := cellValue(row, idx, col)
	if v == "" {
		return nil
	}
	return &v
}

// optionalInt 空单元格为 nil；"80%"、"80.0" 均可
func optionalInt(row []string, idx map[string]int, col string) *int {
	v := strings.TrimSuffix(cellValue(row, idx, col), "%")
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	n := int(f + 0.5)
	return &n
}

func splitTopics(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' || r == '|' })
}

var moduleHeaderAliases = map[string]string{
	"module":                     "name",
	"title":                      "name",
	"module_name":                "name",
	"teacher_feedback_shortform": "teacher_feedback_recommendation_shortform",
}

var topicHeaderAliases = map[string]string{
	"name":   "module_name",
	"module": "module_name",
}

func parseModuleRows(rows [][]string) ([]model.Module, error) {
	if len(rows) < 2 {
		return nil, ErrImportNoData
	}
	idx := headerIndex(rows[0], moduleHeaderAliases)
	if _, ok := idx["name"]; !ok {
		return nil, ErrImportBadHeader
	}
	if len(rows)-1 > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	modules := make([]model.Module, 0, len(rows)-1)
	for _, row := range rows[1:] {
		// 空行保留占位，保证错误行号与表格一致
		modules = append(modules, model.Module{
			Name:                          cellValue(row, idx, "name"),
			Outlook:                       optionalString(row, idx, "outlook"),
			Summary:                       cellValue(row, idx, "summary"),
			PositiveReviews:               optionalInt(row, idx, "positive_reviews"),
			NegativeReviews:               optionalInt(row, idx, "negative_reviews"),
			PositiveEmotions:              optionalInt(row, idx, "positive_emotions"),
			NegativeEmotions:              optionalInt(row, idx, "negative_emotions"),
			Category:                      cellValue(row, idx, "category"),
			TeacherPrompt:                 cellValue(row, idx, "teacher_prompt"),
			TeacherFeedbackRecommendation: cellValue(row, idx, "teacher_feedback_recommendation"),
			TeacherFeedbackShortform:      cellValue(row, idx, "teacher_feedback_recommendation_shortform"),
			Topics:                        datatypes.JSONSlice[string](splitTopics(cellValue(row, idx, "topics"))),
			AnalysisRefs:                  cellValue(row, idx, "analysis_refs"),
		})
	}
	return modules, nil
}

func parseTopicRows(rows [][]string) ([]model.TopicDetail, error) {
	if len(rows) < 2 {
		return nil, nil
	}
	idx := headerIndex(rows[0], topicHeaderAliases)
	if _, ok := idx["module_name"]; !ok {
		return nil, ErrImportBadHeader
	}
	if _, ok := idx["topic"]; !ok {
		return nil, ErrImportBadHeader
	}
	if len(rows)-1 > maxImportRows {
		return nil, ErrImportTooManyRows
	}

	topics := make([]model.TopicDetail, 0, len(rows)-1)
	for _, row := range rows[1:] {
		topics = append(topics, model.TopicDetail{
			ModuleName:            cellValue(row, idx, "module_name"),
			Topic:                 cellValue(row, idx, "topic"),
			TopicOutlook:          optionalString(row, idx, "topic_outlook"),
			TopicSummary:          cellValue(row, idx, "topic_summary"),
			PositiveReviewsTopic:  optionalInt(row, idx, "positive_reviews_topic"),
			NegativeReviewsTopic:  optionalInt(row, idx, "negative_reviews_topic"),
			PositiveEmotionsTopic: optionalInt(row, idx, "positive_emotions_topic"),
			NegativeEmotionsTopic: optionalInt(row, idx, "negative_emotions_topic"),
			AnalysisRefTopic:      cellValue(row, idx, "analysis_ref_topic"),
		})
	}
	return topics, nil
}

// [自证通过] internal/service/catalog_service.go
