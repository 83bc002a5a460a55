package model

import (
	"time"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseEngage      Phase = "engage"
	PhaseInvestigate Phase = "investigate"
	PhaseAct         Phase = "act"
)

func ParsePhase(s string) (Phase, bool) {
	switch Phase(s) {
	case PhaseEngage, PhaseInvestigate, PhaseAct:
		return Phase(s), true
	}
	return "", false
}

type Project struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Description  string
	Engage       EngagePhase
	Investigate  InvestigatePhase
	Act          ActPhase
	NudgeViewed  bool
	CreatedAt    time.Time
	LastModified time.Time
}

type EngagePhase struct {
	BigIdea           string          `json:"big_idea"`
	EssentialQuestion string          `json:"essential_question"`
	Challenge         string          `json:"challenge"`
	Checklist         []ChecklistItem `json:"checklist"`
	Completed         bool            `json:"completed"`
}

type InvestigatePhase struct {
	GuidingQuestions []GuidingQuestion `json:"guiding_questions"`
	Resources        []Resource        `json:"resources"`
	Activities       []Activity        `json:"activities"`
	Synthesis        string            `json:"synthesis"`
	Checklist        []ChecklistItem   `json:"checklist"`
	Completed        bool              `json:"completed"`
}

type ActPhase struct {
	Solution       string          `json:"solution"`
	Prototypes     []Prototype     `json:"prototypes"`
	Implementation string          `json:"implementation"`
	Evaluation     string          `json:"evaluation"`
	Checklist      []ChecklistItem `json:"checklist"`
	Completed      bool            `json:"completed"`
}

type ChecklistItem struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
	Done bool      `json:"done"`
}

type GuidingQuestion struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
}

type Resource struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	URL   string    `json:"url"`
	Notes string    `json:"notes"`
}

type Activity struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
}

type Prototype struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clone deep-copies the project so phase slices of the copy can be mutated
// independently of the original.
func (p *Project) Clone() *Project {
	out := *p
	out.Engage.Checklist = append([]ChecklistItem(nil), p.Engage.Checklist...)
	out.Investigate.GuidingQuestions = append([]GuidingQuestion(nil), p.Investigate.GuidingQuestions...)
	out.Investigate.Resources = append([]Resource(nil), p.Investigate.Resources...)
	out.Investigate.Activities = append([]Activity(nil), p.Investigate.Activities...)
	out.Investigate.Checklist = append([]ChecklistItem(nil), p.Investigate.Checklist...)
	out.Act.Prototypes = append([]Prototype(nil), p.Act.Prototypes...)
	out.Act.Checklist = append([]ChecklistItem(nil), p.Act.Checklist...)
	return &out
}

// PhaseUnlocked reports whether a phase is editable. Investigate opens once
// Engage is completed, Act once Investigate is completed.
func (p *Project) PhaseUnlocked(phase Phase) bool {
	switch phase {
	case PhaseEngage:
		return true
	case PhaseInvestigate:
		return p.Engage.Completed
	case PhaseAct:
		return p.Investigate.Completed
	}
	return false
}
