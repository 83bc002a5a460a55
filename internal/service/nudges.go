package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"ALH_backend/internal/model"
	"ALH_backend/internal/repository"

	"github.com/google/uuid"
)

// Nudge is a short step-by-step suggestion shown on request to unblock the
// user within the current phase.
type Nudge struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

var nudgeCategories = map[model.Phase]map[string][]Nudge{
	model.PhaseEngage: {
		"Big Idea": {
			{Title: "Comece pelo que importa", Detail: "Pense em um tema amplo que afeta sua comunidade: saúde, mobilidade, meio ambiente."},
			{Title: "Torne pessoal", Detail: "Escolha algo que você mesmo gostaria de ver resolvido no seu dia a dia."},
		},
		"Essential Question": {
			{Title: "Pergunta aberta", Detail: "Formule uma pergunta que não possa ser respondida com sim ou não."},
			{Title: "Conecte à Big Idea", Detail: "A Essential Question deve tornar a Big Idea acionável: como podemos...?"},
		},
		"Challenge": {
			{Title: "Chamada à ação", Detail: "Transforme a pergunta em um desafio iniciado por um verbo: criar, melhorar, reduzir."},
		},
	},
	model.PhaseInvestigate: {
		"Perguntas-guia": {
			{Title: "Quebre o desafio", Detail: "Liste perguntas menores cujas respostas você precisa antes de agir."},
			{Title: "Priorize", Detail: "Responda primeiro as perguntas que destravam as outras."},
		},
		"Fontes": {
			{Title: "Varie as fontes", Detail: "Busque pelo menos 3 fontes diferentes: artigos, entrevistas, dados."},
			{Title: "Registre tudo", Detail: "Adicione cada fonte como um recurso com link e uma nota do que ela responde."},
		},
		"Síntese": {
			{Title: "Resuma os achados", Detail: "Escreva uma síntese curta ligando o que você aprendeu às perguntas-guia."},
		},
	},
	model.PhaseAct: {
		"Protótipo": {
			{Title: "Comece pequeno", Detail: "Um protótipo pode ser um esboço, um roteiro ou uma página de teste."},
			{Title: "Itere", Detail: "Crie mais de uma versão e compare o que funcionou em cada uma."},
		},
		"Plano de teste": {
			{Title: "Defina métricas", Detail: "Adicione à checklist como você vai medir o sucesso da solução."},
		},
		"Próximos passos": {
			{Title: "Planeje a iteração", Detail: "Registre na checklist o que muda na próxima versão."},
		},
	},
}

type NudgeService struct {
	projects ProjectRepository
	awards   BadgeServiceI
}

func NewNudgeService(projects ProjectRepository, awards BadgeServiceI) *NudgeService {
	return &NudgeService{
		projects: projects,
		awards:   awards,
	}
}

func (s *NudgeService) Categories(phase model.Phase) []string {
	categories := nudgeCategories[phase]
	out := make([]string, 0, len(categories))
	for name := range categories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *NudgeService) Nudges(phase model.Phase, category string) ([]Nudge, error) {
	nudges, ok := nudgeCategories[phase][category]
	if !ok {
		return nil, ErrNudgeCategoryNotFound
	}
	return nudges, nil
}

// ViewNudge returns the requested nudges and marks the project as having
// received a nudge, which is what the "inspirado" badge rewards. The mark
// is persisted before evaluation so the award survives the usual
// re-evaluation cycle.
func (s *NudgeService) ViewNudge(ctx context.Context, projectID uuid.UUID, phase model.Phase, category string) ([]Nudge, error) {
	nudges, err := s.Nudges(phase, category)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if !project.NudgeViewed {
		project.NudgeViewed = true
		if err := s.projects.UpdateProject(ctx, project); err != nil {
			return nil, fmt.Errorf("failed to update project: %w", err)
		}
	}

	s.awards.CheckProgress(ctx, project)

	return nudges, nil
}
