package recommend

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Normalize 将原始偏好归一化为合法的 Request，从不失败
// 非法或缺失的字段回落到缺省值
func Normalize(raw RawPreferences) Request {
	return Request{
		PriorityOrder:       normalizePriority(raw.PriorityOrder),
		SentimentImportance: normalizeImportance(raw.SentimentImportance),
		SelectedCategories:  normalizeSet(raw.SelectedCategories),
		SelectedAspects:     normalizeSet(raw.SelectedAspects),
	}
}

func normalizePriority(v any) [3]Criterion {
	ints, ok := toIntList(v)
	if !ok || len(ints) != 3 {
		return DefaultPriorityOrder
	}
	var order [3]Criterion
	for i, n := range ints {
		order[i] = Criterion(n)
	}
	if !isPermutation(order[:]) {
		return DefaultPriorityOrder
	}
	return order
}

func normalizeImportance(v any) int {
	n, ok := toInt(v)
	if !ok || n < minSentimentImportance || n > maxSentimentImportance {
		return DefaultSentimentImportance
	}
	return n
}

// normalizeSet 单个字符串视为单元素集合；null 为空集；非字符串元素忽略
func normalizeSet(v any) []string {
	var items []string
	switch t := v.(type) {
	case string:
		items = []string{t}
	case []string:
		items = t
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				items = append(items, s)
			}
		}
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// toIntList 接受 JSON 数组、Go 切片以及 "2,1,3" / "[2, 1, 3]" 形式的字符串
func toIntList(v any) ([]int, bool) {
	switch t := v.(type) {
	case []int:
		return t, true
	case []any:
		out := make([]int, 0, len(t))
		for _, e := range t {
			n, ok := toInt(e)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	case []float64:
		out := make([]int, 0, len(t))
		for _, f := range t {
			n, ok := toInt(f)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	case []string:
		return stringsToInts(t)
	case string:
		s := strings.TrimSpace(t)
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
		fields := strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		return stringsToInts(fields)
	default:
		return nil, false
	}
}

func stringsToInts(ss []string) ([]int, bool) {
	out := make([]int, 0, len(ss))
	for _, s := range ss {
		n, ok := toInt(s)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	default:
		return 0, false
	}
}

// floatToInt 仅接受整数值的浮点数（JSON 数字默认解码为 float64）
func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
