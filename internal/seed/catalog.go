// Package seed 从 YAML 文件加载模块目录（模块 + 嵌套的方面聚合），供 cmd/seed 导入数据库
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/fantaAstic/cs310-final/internal/model"
)

// Catalog YAML 根节点
type Catalog struct {
	Modules []ModuleEntry `yaml:"modules"`
}

// ModuleEntry 单个模块
type ModuleEntry struct {
	Name                          string       `yaml:"name"`
	Outlook                       string       `yaml:"outlook"`
	Summary                       string       `yaml:"summary"`
	PositiveReviews               *int         `yaml:"positive_reviews"`
	NegativeReviews               *int         `yaml:"negative_reviews"`
	PositiveEmotions              *int         `yaml:"positive_emotions"`
	NegativeEmotions              *int         `yaml:"negative_emotions"`
	Category                      string       `yaml:"category"`
	TeacherPrompt                 string       `yaml:"teacher_prompt"`
	TeacherFeedbackRecommendation string       `yaml:"teacher_feedback_recommendation"`
	TeacherFeedbackShortform      string       `yaml:"teacher_feedback_recommendation_shortform"`
	AnalysisRefs                  string       `yaml:"analysis_refs"`
	Topics                        []TopicEntry `yaml:"topics"`
}

// TopicEntry 模块下的一个方面
type TopicEntry struct {
	Topic            string `yaml:"topic"`
	Outlook          string `yaml:"outlook"`
	Summary          string `yaml:"summary"`
	PositiveReviews  *int   `yaml:"positive_reviews"`
	NegativeReviews  *int   `yaml:"negative_reviews"`
	PositiveEmotions *int   `yaml:"positive_emotions"`
	NegativeEmotions *int   `yaml:"negative_emotions"`
	AnalysisRef      string `yaml:"analysis_ref"`
}

// ErrEmptyCatalog 文件中没有任何模块
var ErrEmptyCatalog = errors.New("目录文件不包含任何模块")

// LoadFile 读取并解析目录文件
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取目录文件失败: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse 解析 YAML，未知字段视为错误
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("解析目录 YAML 失败: %w", err)
	}
	if len(c.Modules) == 0 {
		return nil, ErrEmptyCatalog
	}
	return &c, nil
}

// Models 展开为模块与方面聚合模型，字段校验交给导入服务
func (c *Catalog) Models() ([]model.Module, []model.TopicDetail) {
	modules := make([]model.Module, 0, len(c.Modules))
	var topics []model.TopicDetail

	for _, m := range c.Modules {
		names := make([]string, 0, len(m.Topics))
		for _, t := range m.Topics {
			names = append(names, t.Topic)
			topics = append(topics, model.TopicDetail{
				ModuleName:            m.Name,
				Topic:                 t.Topic,
				TopicOutlook:          optional(t.Outlook),
				TopicSummary:          t.Summary,
				PositiveReviewsTopic:  t.PositiveReviews,
				NegativeReviewsTopic:  t.NegativeReviews,
				PositiveEmotionsTopic: t.PositiveEmotions,
				NegativeEmotionsTopic: t.NegativeEmotions,
				AnalysisRefTopic:      t.AnalysisRef,
			})
		}

		modules = append(modules, model.Module{
			Name:                          m.Name,
			Outlook:                       optional(m.Outlook),
			Summary:                       m.Summary,
			PositiveReviews:               m.PositiveReviews,
			NegativeReviews:               m.NegativeReviews,
			PositiveEmotions:              m.PositiveEmotions,
			NegativeEmotions:              m.NegativeEmotions,
			Category:                      m.Category,
			TeacherPrompt:                 m.TeacherPrompt,
			TeacherFeedbackRecommendation: m.TeacherFeedbackRecommendation,
			TeacherFeedbackShortform:      m.TeacherFeedbackShortform,
			Topics:                        datatypes.JSONSlice[string](names),
			AnalysisRefs:                  m.AnalysisRefs,
		})
	}
	return modules, topics
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
