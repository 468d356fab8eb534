package recommend

import (
	"math"
	"sort"
)

// scoreTolerance 得分差在此范围内视为平分，吸收浮点舍入误差
const scoreTolerance = 1e-9

// RankedModule 排序后的模块
// Position 从 1 开始；Saved 标记该模块是否已在学生收藏中（收藏模块仍可被推荐）
type RankedModule struct {
	ScoredModule
	Position int
	Saved    bool
}

// Rank 按得分降序排序
// 平分（差值不超过 scoreTolerance）时依次比较：情感分量降序、模块名升序；同名模块仅保留排名最高者
// 不截断，空输入返回空切片；不修改入参
func Rank(scored []ScoredModule, saved []string) []RankedModule {
	ordered := make([]ScoredModule, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ranksBefore(ordered[i], ordered[j])
	})

	savedSet := make(map[string]struct{}, len(saved))
	for _, name := range saved {
		savedSet[name] = struct{}{}
	}

	seen := make(map[string]struct{}, len(ordered))
	out := make([]RankedModule, 0, len(ordered))
	for _, sm := range ordered {
		if _, dup := seen[sm.Module.Name]; dup {
			continue
		}
		seen[sm.Module.Name] = struct{}{}
		_, isSaved := savedSet[sm.Module.Name]
		out = append(out, RankedModule{
			ScoredModule: sm,
			Position:     len(out) + 1,
			Saved:        isSaved,
		})
	}
	return out
}

func ranksBefore(a, b ScoredModule) bool {
	if math.Abs(a.Score-b.Score) > scoreTolerance {
		return a.Score > b.Score
	}
	if a.Components.Outlook != b.Components.Outlook {
		return a.Components.Outlook > b.Components.Outlook
	}
	return a.Module.Name < b.Module.Name
}

// Names 按排名顺序返回模块名
func Names(ranked []RankedModule) []string {
	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Module.Name
	}
	return names
}
