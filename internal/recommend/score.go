package recommend

import (
	"math"
	"strings"
)

// Module 打分所需的模块视图
// Outlook 为空或 PositivePct 为 nil 表示上游数据缺失
type Module struct {
	Name        string
	Outlook     string
	PositivePct *float64
	Categories  []string
}

// TopicDetail 打分所需的模块-方面聚合视图
type TopicDetail struct {
	Outlook     string
	PositivePct *float64
}

// TopicLookup 按 (模块, 方面) 查询聚合；缺失不是错误
type TopicLookup interface {
	Lookup(moduleName, topic string) (TopicDetail, bool)
}

// TopicIndex 内存中的 TopicLookup 实现：模块名 → 方面 → 聚合
type TopicIndex map[string]map[string]TopicDetail

// Add 写入一条聚合，同一 (模块, 方面) 后写覆盖先写
func (idx TopicIndex) Add(moduleName, topic string, d TopicDetail) {
	byTopic, ok := idx[moduleName]
	if !ok {
		byTopic = make(map[string]TopicDetail)
		idx[moduleName] = byTopic
	}
	byTopic[topic] = d
}

// Lookup 实现 TopicLookup
func (idx TopicIndex) Lookup(moduleName, topic string) (TopicDetail, bool) {
	d, ok := idx[moduleName][topic]
	return d, ok
}

// Components 三个分量得分，取值 [0,1]
type Components struct {
	Outlook  float64 `json:"outlook"`
	Category float64 `json:"category"`
	Aspect   float64 `json:"aspect"`
}

// Weights 三个分量的权重（未归一化）
type Weights struct {
	Outlook  int `json:"outlook"`
	Category int `json:"category"`
	Aspect   int `json:"aspect"`
}

// Total 权重之和
func (w Weights) Total() int {
	return w.Outlook + w.Category + w.Aspect
}

func (w Weights) composite(c Components) float64 {
	total := w.Total()
	if total == 0 {
		return 0
	}
	sum := float64(w.Outlook)*c.Outlook + float64(w.Category)*c.Category + float64(w.Aspect)*c.Aspect
	return sum / float64(total)
}

// ScoredModule 模块及其综合得分
type ScoredModule struct {
	Module     Module
	Score      float64
	Components Components
	Weights    Weights
}

// 名次 → 权重
var rankWeights = [3]int{3, 2, 1}

const neutralScore = 0.5

var outlookBase = map[string]float64{
	"positive": 1.0,
	"neutral":  0.5,
	"negative": 0.0,
}

// DeriveWeights 由优先级和情感重要程度推导权重
// 情感排第一且重要程度为 1/2 时情感权重 +1；重要程度为 3/4 时情感权重 -1（下限 1），与名次无关
func DeriveWeights(req Request) Weights {
	req = req.sanitized()

	var w Weights
	for i, c := range req.PriorityOrder {
		switch c {
		case CriterionSentiment:
			w.Outlook = rankWeights[i]
		case CriterionSubject:
			w.Category = rankWeights[i]
		case CriterionAspects:
			w.Aspect = rankWeights[i]
		}
	}

	switch {
	case req.SentimentImportance >= 3:
		w.Outlook = max(1, w.Outlook-1)
	case req.PriorityOrder[0] == CriterionSentiment:
		w.Outlook++
	}
	return w
}

// OutlookScore base*0.5 + (positive/100)*0.5
// 倾向未知或缺少正面比例时返回 0.5
func OutlookScore(outlook string, positivePct *float64) float64 {
	base, ok := outlookBase[strings.ToLower(strings.TrimSpace(outlook))]
	if !ok || positivePct == nil || math.IsNaN(*positivePct) {
		return neutralScore
	}
	p := math.Min(100, math.Max(0, *positivePct))
	return base*0.5 + (p/100)*0.5
}

// Score 为目录中每个模块计算综合得分
// 输出与输入等长且顺序一致，不丢弃任何模块；topics 可为 nil
func Score(req Request, catalog []Module, topics TopicLookup) []ScoredModule {
	req = req.sanitized()
	weights := DeriveWeights(req)

	selected := make(map[string]struct{}, len(req.SelectedCategories))
	for _, c := range req.SelectedCategories {
		selected[c] = struct{}{}
	}

	out := make([]ScoredModule, 0, len(catalog))
	for _, m := range catalog {
		c := Components{
			Outlook:  OutlookScore(m.Outlook, m.PositivePct),
			Category: categoryComponent(m.Categories, selected),
			Aspect:   aspectComponent(m.Name, req.SelectedAspects, topics),
		}
		out = append(out, ScoredModule{
			Module:     m,
			Score:      weights.composite(c),
			Components: c,
			Weights:    weights,
		})
	}
	return out
}

// categoryComponent 未选择学科时不惩罚任何模块
func categoryComponent(categories []string, selected map[string]struct{}) float64 {
	if len(selected) == 0 {
		return 1.0
	}
	for _, c := range categories {
		if _, ok := selected[strings.TrimSpace(c)]; ok {
			return 1.0
		}
	}
	return 0.0
}

// aspectComponent 取已匹配方面子得分的均值；无选择或无匹配时为 1.0
func aspectComponent(moduleName string, aspects []string, topics TopicLookup) float64 {
	if len(aspects) == 0 || topics == nil {
		return 1.0
	}
	var sum float64
	matched := 0
	for _, a := range aspects {
		d, ok := topics.Lookup(moduleName, a)
		if !ok {
			continue
		}
		sum += OutlookScore(d.Outlook, d.PositivePct)
		matched++
	}
	if matched == 0 {
		return 1.0
	}
	return sum / float64(matched)
}
