package badge

import (
	"testing"

	"ALH_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog()
	assert.NoError(t, err)
	return catalog
}

func ruleIDs(rules []Rule) []string {
	var ids []string
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestEvaluate(t *testing.T) {
	catalog := mustCatalog(t)

	tests := []struct {
		name     string
		snapshot model.ProgressSnapshot
		earned   map[string]struct{}
		wantIDs  []string
	}{
		{
			name:     "Empty project fires nothing",
			snapshot: model.ProgressSnapshot{},
			earned:   map[string]struct{}{},
			wantIDs:  nil,
		},
		{
			name:     "Big idea alone fires exactly the first step badge",
			snapshot: model.ProgressSnapshot{BigIdea: "Reduzir o desperdício de água"},
			earned:   map[string]struct{}{},
			wantIDs:  []string{"primeiro_passo"},
		},
		{
			name:     "Whitespace big idea does not count",
			snapshot: model.ProgressSnapshot{BigIdea: "   "},
			earned:   map[string]struct{}{},
			wantIDs:  nil,
		},
		{
			name:     "Three answered questions pass the three threshold but not five",
			snapshot: model.ProgressSnapshot{QuestionsAnswered: 3},
			earned:   map[string]struct{}{},
			wantIDs:  []string{"investigador_iniciante", "pesquisador"},
		},
		{
			name:     "Already earned rules are excluded even when still satisfied",
			snapshot: model.ProgressSnapshot{QuestionsAnswered: 3},
			earned: map[string]struct{}{
				"investigador_iniciante": {},
				"pesquisador":            {},
			},
			wantIDs: nil,
		},
		{
			name: "Phase completions emit in declaration order",
			snapshot: model.ProgressSnapshot{
				EngageCompleted:      true,
				InvestigateCompleted: true,
				ActCompleted:         true,
			},
			earned:  map[string]struct{}{},
			wantIDs: []string{"visionario", "implementador", "mestre_cbl"},
		},
		{
			name:     "Nudge viewed fires the inspiration badge",
			snapshot: model.ProgressSnapshot{NudgeViewed: true},
			earned:   map[string]struct{}{},
			wantIDs:  []string{"inspirado"},
		},
		{
			name:     "Nudge badge never fires twice",
			snapshot: model.ProgressSnapshot{NudgeViewed: true},
			earned:   map[string]struct{}{"inspirado": {}},
			wantIDs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fired := catalog.Evaluate(tt.snapshot, tt.earned)
			assert.Equal(t, tt.wantIDs, ruleIDs(fired))
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	catalog := mustCatalog(t)

	snapshot := model.ProgressSnapshot{
		BigIdea:            "Hortas urbanas",
		EssentialQuestion:  "Como alimentar a cidade?",
		QuestionsAnswered:  5,
		ResourcesCollected: 3,
	}
	earned := map[string]struct{}{"primeiro_passo": {}}

	first := catalog.Evaluate(snapshot, earned)
	for i := 0; i < 10; i++ {
		assert.Equal(t, ruleIDs(first), ruleIDs(catalog.Evaluate(snapshot, earned)))
	}
}

func TestEvaluate_DoesNotMutateEarnedSet(t *testing.T) {
	catalog := mustCatalog(t)

	earned := map[string]struct{}{"questionador": {}}
	catalog.Evaluate(model.ProgressSnapshot{BigIdea: "x", Challenge: "y"}, earned)

	assert.Equal(t, map[string]struct{}{"questionador": {}}, earned)
}

func TestEvaluate_PanickingPredicateIsIsolated(t *testing.T) {
	catalog, err := newCatalog([]Rule{
		{
			ID:        "before",
			Points:    10,
			Predicate: func(model.ProgressSnapshot) bool { return true },
		},
		{
			ID:     "broken",
			Points: 10,
			Predicate: func(model.ProgressSnapshot) bool {
				panic("boom")
			},
		},
		{
			ID:        "after",
			Points:    10,
			Predicate: func(s model.ProgressSnapshot) bool { return s.NudgeViewed },
		},
	})
	assert.NoError(t, err)

	fired := catalog.Evaluate(model.ProgressSnapshot{NudgeViewed: true}, map[string]struct{}{})
	assert.Equal(t, []string{"before", "after"}, ruleIDs(fired))
}

func TestEarnedSet(t *testing.T) {
	set := EarnedSet([]*model.UserBadge{
		{BadgeID: "primeiro_passo"},
		{BadgeID: "coletor"},
	})

	assert.Len(t, set, 2)
	_, ok := set["coletor"]
	assert.True(t, ok)
}
