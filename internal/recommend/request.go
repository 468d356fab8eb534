// Package recommend 学生模块推荐排序引擎：偏好归一化 → 打分 → 排序。
// 纯内存计算，不做 I/O，不持有共享状态；读写存储由 service 层负责。
package recommend

// Criterion 推荐准则编号（与前端表单取值一致）
type Criterion int

const (
	CriterionSentiment Criterion = 1 // 情感/口碑
	CriterionSubject   Criterion = 2 // 学科兴趣
	CriterionAspects   Criterion = 3 // 模块方面
)

// DefaultPriorityOrder 缺省优先级：情感优先
var DefaultPriorityOrder = [3]Criterion{CriterionSentiment, CriterionSubject, CriterionAspects}

const (
	// DefaultSentimentImportance 情感重要程度缺省值（1 = 非常重要）
	DefaultSentimentImportance = 1
	minSentimentImportance     = 1
	maxSentimentImportance     = 4
)

func (c Criterion) String() string {
	switch c {
	case CriterionSentiment:
		return "sentiment"
	case CriterionSubject:
		return "subject"
	case CriterionAspects:
		return "aspects"
	default:
		return "unknown"
	}
}

// RawPreferences 客户端提交的原始偏好，字段类型不受约束
type RawPreferences struct {
	PriorityOrder       any `json:"user_priority"`
	SentimentImportance any `json:"selected_importance"`
	SelectedCategories  any `json:"selected_categories"`
	SelectedAspects     any `json:"selected_aspects"`
}

// Request 归一化后的推荐请求
// PriorityOrder 从最重要到最不重要；两个集合已去重并排序
type Request struct {
	PriorityOrder       [3]Criterion `json:"priority_order"`
	SentimentImportance int          `json:"sentiment_importance"`
	SelectedCategories  []string     `json:"selected_categories"`
	SelectedAspects     []string     `json:"selected_aspects"`
}

// RankOf 返回准则的名次（1..3），不在优先级中时返回 0
func (r Request) RankOf(c Criterion) int {
	for i, pc := range r.PriorityOrder {
		if pc == c {
			return i + 1
		}
	}
	return 0
}

// sanitized 兜底：未经 Normalize 构造的 Request 也能安全打分
func (r Request) sanitized() Request {
	if !isPermutation(r.PriorityOrder[:]) {
		r.PriorityOrder = DefaultPriorityOrder
	}
	if r.SentimentImportance < minSentimentImportance || r.SentimentImportance > maxSentimentImportance {
		r.SentimentImportance = DefaultSentimentImportance
	}
	return r
}

func isPermutation(order []Criterion) bool {
	if len(order) != 3 {
		return false
	}
	var seen [4]bool
	for _, c := range order {
		if c < CriterionSentiment || c > CriterionAspects || seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}
