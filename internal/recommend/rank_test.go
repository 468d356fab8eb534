package recommend

import (
	"math/rand"
	"reflect"
	"testing"
)

func rankNames(req Request, catalog []Module, topics TopicLookup) []string {
	return Names(Rank(Score(req, catalog, topics), nil))
}

func TestRank_EmptyPreferenceNeutrality(t *testing.T) {
	// 情感分量 0.9 / 0.5 / 0.1
	catalog := []Module{
		{Name: "Low", Outlook: "Negative", PositivePct: pct(20), Categories: []string{"X"}},
		{Name: "High", Outlook: "Positive", PositivePct: pct(80), Categories: []string{"Y"}},
		{Name: "Mid", Outlook: "Neutral", PositivePct: pct(50), Categories: []string{"Z"}},
	}

	got := rankNames(Normalize(RawPreferences{}), catalog, nil)
	want := []string{"High", "Mid", "Low"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际=%v", want, got)
	}
}

func TestRank_PrioritySensitivity(t *testing.T) {
	// A：情感 0.9，学科不匹配；B：情感 0.3，学科匹配
	catalog := []Module{
		{Name: "A", Outlook: "Positive", PositivePct: pct(80), Categories: []string{"History"}},
		{Name: "B", Outlook: "Negative", PositivePct: pct(60), Categories: []string{"Computing"}},
	}

	subjectFirst := Normalize(RawPreferences{
		PriorityOrder:      []int{2, 3, 1},
		SelectedCategories: "Computing",
	})
	if got := rankNames(subjectFirst, catalog, nil); got[0] != "B" {
		t.Errorf("学科优先时期望 B 在前，实际=%v", got)
	}

	sentimentFirst := Normalize(RawPreferences{
		PriorityOrder:      []int{1, 3, 2},
		SelectedCategories: "Computing",
	})
	if got := rankNames(sentimentFirst, catalog, nil); got[0] != "A" {
		t.Errorf("情感优先时期望 A 在前，实际=%v", got)
	}
}

func TestRank_MalformedPriorityMatchesDefault(t *testing.T) {
	catalog := []Module{
		{Name: "A", Outlook: "Positive", PositivePct: pct(70), Categories: []string{"Data"}},
		{Name: "B", Outlook: "Neutral", PositivePct: pct(90), Categories: []string{"Web"}},
		{Name: "C", Outlook: "Negative", PositivePct: pct(40), Categories: []string{"Data"}},
	}
	malformed := Normalize(RawPreferences{PriorityOrder: []int{1, 1, 2}, SelectedCategories: "Data"})
	def := Normalize(RawPreferences{PriorityOrder: []int{1, 2, 3}, SelectedCategories: "Data"})

	got := rankNames(malformed, catalog, nil)
	want := rankNames(def, catalog, nil)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("非法优先级应与缺省优先级结果一致：%v vs %v", got, want)
	}
}

func TestRank_EndToEndScenario(t *testing.T) {
	catalog := []Module{
		{Name: "Python-Basics", Outlook: "Neutral", PositivePct: pct(50), Categories: []string{"Python Programming"}},
		{Name: "Machine-Learning", Outlook: "Positive", PositivePct: pct(80), Categories: []string{"AI & Machine Learning"}},
	}
	req := Normalize(RawPreferences{
		PriorityOrder:       []any{float64(2), float64(1), float64(3)},
		SentimentImportance: float64(1),
		SelectedCategories:  []any{"AI & Machine Learning"},
		SelectedAspects:     []any{},
	})

	ranked := Rank(Score(req, catalog, nil), nil)
	if got := Names(ranked); !reflect.DeepEqual(got, []string{"Machine-Learning", "Python-Basics"}) {
		t.Fatalf("期望 [Machine-Learning Python-Basics]，实际=%v", got)
	}
	// 权重 情感2/学科3/方面1：(2*0.9+3*1+1*1)/6 与 (2*0.5+0+1)/6
	if !approx(ranked[0].Score, 5.8/6) {
		t.Errorf("Machine-Learning 得分期望 %.4f，实际=%.4f", 5.8/6, ranked[0].Score)
	}
	if !approx(ranked[1].Score, 2.0/6) {
		t.Errorf("Python-Basics 得分期望 %.4f，实际=%.4f", 2.0/6, ranked[1].Score)
	}
	if ranked[0].Position != 1 || ranked[1].Position != 2 {
		t.Errorf("名次应从 1 开始连续，实际=%d,%d", ranked[0].Position, ranked[1].Position)
	}
}

func TestRank_TieBreak(t *testing.T) {
	scored := []ScoredModule{
		{Module: Module{Name: "Beta"}, Score: 0.7, Components: Components{Outlook: 0.6}},
		{Module: Module{Name: "Alpha"}, Score: 0.7, Components: Components{Outlook: 0.6}},
		{Module: Module{Name: "Gamma"}, Score: 0.7, Components: Components{Outlook: 0.9}},
		{Module: Module{Name: "Delta"}, Score: 0.8, Components: Components{Outlook: 0.1}},
	}

	got := Names(Rank(scored, nil))
	want := []string{"Delta", "Gamma", "Alpha", "Beta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际=%v", want, got)
	}
}

func TestRank_TieBreakAcrossComponentMixes(t *testing.T) {
	// 缺省优先级 + 重要度 1：权重 情感4/学科2/方面1
	// X：情感 0.535，学科不匹配 → 4*0.535+0+1 = 3.14
	// Y：情感 0.035，学科匹配   → 4*0.035+2+1 = 3.14
	catalog := []Module{
		{Name: "Y-Negative", Outlook: "Negative", PositivePct: pct(7), Categories: []string{"AI"}},
		{Name: "X-Neutral", Outlook: "Neutral", PositivePct: pct(57), Categories: []string{"Web"}},
	}
	req := Normalize(RawPreferences{SelectedCategories: []any{"AI"}})

	ranked := Rank(Score(req, catalog, nil), nil)
	if !approx(ranked[0].Score, ranked[1].Score) {
		t.Fatalf("两个模块得分应相等：%v vs %v", ranked[0].Score, ranked[1].Score)
	}
	if got := Names(ranked); !reflect.DeepEqual(got, []string{"X-Neutral", "Y-Negative"}) {
		t.Errorf("平分时情感分量高者在前，期望 [X-Neutral Y-Negative]，实际=%v", got)
	}
}

func TestRank_TieBreakWithinTolerance(t *testing.T) {
	scored := []ScoredModule{
		{Module: Module{Name: "Low-Outlook"}, Score: 0.44857142857142857, Components: Components{Outlook: 0.035}},
		{Module: Module{Name: "High-Outlook"}, Score: 0.44857142857142851, Components: Components{Outlook: 0.535}},
	}
	if got := Names(Rank(scored, nil)); !reflect.DeepEqual(got, []string{"High-Outlook", "Low-Outlook"}) {
		t.Errorf("仅差舍入误差的得分应视为平分，实际=%v", got)
	}
}

func TestRank_Determinism(t *testing.T) {
	catalog := []Module{
		{Name: "A", Outlook: "Positive", PositivePct: pct(60), Categories: []string{"Data"}},
		{Name: "B", Outlook: "Positive", PositivePct: pct(60), Categories: []string{"Data"}},
		{Name: "C", Outlook: "Neutral", PositivePct: pct(100), Categories: []string{"Web"}},
		{Name: "D", Outlook: "Negative"},
		{Name: "E", Outlook: "Neutral", PositivePct: pct(30), Categories: []string{"Data"}},
		{Name: "F"},
	}
	topics := TopicIndex{}
	topics.Add("A", "Exams", TopicDetail{Outlook: "Negative", PositivePct: pct(10)})
	topics.Add("C", "Exams", TopicDetail{Outlook: "Positive", PositivePct: pct(90)})

	req := Normalize(RawPreferences{
		PriorityOrder:      "3,2,1",
		SelectedCategories: "Data",
		SelectedAspects:    "Exams",
	})
	want := rankNames(req, catalog, topics)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Module, len(catalog))
		copy(shuffled, catalog)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		if got := rankNames(req, shuffled, topics); !reflect.DeepEqual(got, want) {
			t.Fatalf("第 %d 次打乱后结果不一致：%v vs %v", i, got, want)
		}
	}
}

func TestRank_SavedModulesStayEligible(t *testing.T) {
	scored := []ScoredModule{
		{Module: Module{Name: "A"}, Score: 0.9},
		{Module: Module{Name: "B"}, Score: 0.5},
	}

	ranked := Rank(scored, []string{"A", "Unknown"})
	if len(ranked) != 2 {
		t.Fatalf("收藏模块不应被移除，期望 2 项，实际=%d", len(ranked))
	}
	if !ranked[0].Saved || ranked[1].Saved {
		t.Errorf("Saved 标记不符：%v/%v", ranked[0].Saved, ranked[1].Saved)
	}
}

func TestRank_DropsDuplicateNames(t *testing.T) {
	scored := []ScoredModule{
		{Module: Module{Name: "A"}, Score: 0.2},
		{Module: Module{Name: "A"}, Score: 0.9},
		{Module: Module{Name: "B"}, Score: 0.5},
	}

	ranked := Rank(scored, nil)
	if got := Names(ranked); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("期望 [A B]，实际=%v", got)
	}
	if ranked[0].Score != 0.9 {
		t.Errorf("应保留排名最高的重复项，实际得分=%.2f", ranked[0].Score)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	scored := []ScoredModule{
		{Module: Module{Name: "A"}, Score: 0.1},
		{Module: Module{Name: "B"}, Score: 0.9},
	}
	Rank(scored, nil)

	if scored[0].Module.Name != "A" || scored[1].Module.Name != "B" {
		t.Errorf("Rank 不应修改入参顺序，实际=%s,%s", scored[0].Module.Name, scored[1].Module.Name)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	ranked := Rank(nil, []string{"A"})
	if ranked == nil || len(ranked) != 0 {
		t.Errorf("空输入期望空切片，实际=%#v", ranked)
	}
	if names := Names(ranked); len(names) != 0 {
		t.Errorf("期望无模块名，实际=%v", names)
	}
}
