package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParsePhase(t *testing.T) {
	phase, ok := ParsePhase("investigate")
	assert.True(t, ok)
	assert.Equal(t, PhaseInvestigate, phase)

	_, ok = ParsePhase("reflect")
	assert.False(t, ok)
}

func TestProject_PhaseUnlocked(t *testing.T) {
	p := &Project{}

	assert.True(t, p.PhaseUnlocked(PhaseEngage))
	assert.False(t, p.PhaseUnlocked(PhaseInvestigate))
	assert.False(t, p.PhaseUnlocked(PhaseAct))

	p.Engage.Completed = true
	assert.True(t, p.PhaseUnlocked(PhaseInvestigate))
	assert.False(t, p.PhaseUnlocked(PhaseAct))

	p.Investigate.Completed = true
	assert.True(t, p.PhaseUnlocked(PhaseAct))
}

func TestProject_Clone(t *testing.T) {
	p := &Project{ID: uuid.New()}
	p.Investigate.GuidingQuestions = []GuidingQuestion{{ID: uuid.New(), Question: "Por quê?"}}
	p.Act.Prototypes = []Prototype{{ID: uuid.New(), Title: "v1"}}

	clone := p.Clone()
	clone.Investigate.GuidingQuestions[0].Answer = "Porque sim"
	clone.Act.Prototypes = append(clone.Act.Prototypes, Prototype{Title: "v2"})

	assert.Empty(t, p.Investigate.GuidingQuestions[0].Answer)
	assert.Len(t, p.Act.Prototypes, 1)
}

func TestBuildSnapshot(t *testing.T) {
	p := &Project{}
	p.Engage.BigIdea = "Água limpa"
	p.Investigate.GuidingQuestions = []GuidingQuestion{
		{Question: "Por quê?", Answer: "Porque falta"},
		{Question: "Como?", Answer: "   "},
		{Question: "Quando?"},
	}
	p.Investigate.Resources = []Resource{{Title: "Artigo"}}
	p.Act.Prototypes = []Prototype{{Title: "v1"}, {Title: "v2"}}
	p.NudgeViewed = true

	s := BuildSnapshot(p)
	assert.Equal(t, "Água limpa", s.BigIdea)
	assert.Equal(t, 1, s.QuestionsAnswered)
	assert.Equal(t, 1, s.ResourcesCollected)
	assert.Equal(t, 2, s.PrototypesCreated)
	assert.True(t, s.NudgeViewed)
}

func TestUser_Level(t *testing.T) {
	tests := []struct {
		points    int
		level     int
		xpForNext int
	}{
		{0, 1, 100},
		{99, 1, 1},
		{100, 2, 100},
		{115, 2, 85},
		{1000, 11, 100},
	}

	for _, tt := range tests {
		u := User{Points: tt.points}
		assert.Equal(t, tt.level, u.Level())
		assert.Equal(t, tt.xpForNext, u.XPForNextLevel())
	}
}
