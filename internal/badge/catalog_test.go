package badge

import (
	"testing"

	"ALH_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNewCatalog(t *testing.T) {
	catalog, err := NewCatalog()
	assert.NoError(t, err)
	assert.NotNil(t, catalog)

	assert.Equal(t, 15, len(catalog.Rules()))
	assert.Equal(t, 1000, catalog.TotalPoints())
}

func TestNewCatalog_Validation(t *testing.T) {
	always := func(model.ProgressSnapshot) bool { return true }

	tests := []struct {
		name    string
		rules   []Rule
		wantErr string
	}{
		{
			name: "Duplicate rule id",
			rules: []Rule{
				{ID: "a", Points: 10, Predicate: always},
				{ID: "a", Points: 20, Predicate: always},
			},
			wantErr: "duplicate badge rule id",
		},
		{
			name: "Empty rule id",
			rules: []Rule{
				{ID: "", Title: "Nameless", Points: 10, Predicate: always},
			},
			wantErr: "empty id",
		},
		{
			name: "Negative points",
			rules: []Rule{
				{ID: "a", Points: -5, Predicate: always},
			},
			wantErr: "negative points",
		},
		{
			name: "Missing predicate",
			rules: []Rule{
				{ID: "a", Points: 10},
			},
			wantErr: "no predicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := newCatalog(tt.rules)
			assert.Nil(t, catalog)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCatalog_Rule(t *testing.T) {
	catalog, err := NewCatalog()
	assert.NoError(t, err)

	rule, ok := catalog.Rule("primeiro_passo")
	assert.True(t, ok)
	assert.Equal(t, 40, rule.Points)

	_, ok = catalog.Rule("nope")
	assert.False(t, ok)
}

func TestCatalog_RulesReturnsCopy(t *testing.T) {
	catalog, err := NewCatalog()
	assert.NoError(t, err)

	rules := catalog.Rules()
	rules[0].ID = "tampered"

	assert.Equal(t, "primeiro_passo", catalog.Rules()[0].ID)
}
