package model

import "strings"

// ProgressSnapshot is the read-only view of a project that badge predicates
// run against. It is rebuilt from the stored project on every evaluation and
// never mutated by the evaluator.
type ProgressSnapshot struct {
	BigIdea           string
	EssentialQuestion string
	Challenge         string

	EngageCompleted      bool
	InvestigateCompleted bool
	ActCompleted         bool

	QuestionsAnswered  int
	ResourcesCollected int
	ActivitiesCreated  int
	PrototypesCreated  int

	NudgeViewed bool
}

func BuildSnapshot(p *Project) ProgressSnapshot {
	answered := 0
	for _, q := range p.Investigate.GuidingQuestions {
		if strings.TrimSpace(q.Answer) != "" {
			answered++
		}
	}

	return ProgressSnapshot{
		BigIdea:              p.Engage.BigIdea,
		EssentialQuestion:    p.Engage.EssentialQuestion,
		Challenge:            p.Engage.Challenge,
		EngageCompleted:      p.Engage.Completed,
		InvestigateCompleted: p.Investigate.Completed,
		ActCompleted:         p.Act.Completed,
		QuestionsAnswered:    answered,
		ResourcesCollected:   len(p.Investigate.Resources),
		ActivitiesCreated:    len(p.Investigate.Activities),
		PrototypesCreated:    len(p.Act.Prototypes),
		NudgeViewed:          p.NudgeViewed,
	}
}
