package badge

import (
	"fmt"
	"strings"

	"ALH_backend/internal/model"
)

// Rule is a single awardable badge: stable identifier, display text, XP
// reward and the predicate that decides whether the badge condition holds
// for a given progress snapshot.
type Rule struct {
	ID          string
	Title       string
	Description string
	Points      int
	Icon        string
	Category    model.BadgeCategory
	Predicate   func(model.ProgressSnapshot) bool
}

// Catalog is the fixed, ordered badge rule table. Declaration order is the
// order rules are listed to users and the order newly earned badges are
// emitted within a single evaluation pass; it never influences whether a
// rule fires.
type Catalog struct {
	rules []Rule
	byID  map[string]Rule
}

// NewCatalog validates the default rule table and returns it. A duplicate
// rule ID or a negative reward is a programming error: the caller is
// expected to abort startup.
func NewCatalog() (*Catalog, error) {
	return newCatalog(defaultRules())
}

func newCatalog(rules []Rule) (*Catalog, error) {
	byID := make(map[string]Rule, len(rules))
	for _, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("badge rule with empty id (title %q)", r.Title)
		}
		if _, dup := byID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate badge rule id %q", r.ID)
		}
		if r.Points < 0 {
			return nil, fmt.Errorf("badge rule %q has negative points", r.ID)
		}
		if r.Predicate == nil {
			return nil, fmt.Errorf("badge rule %q has no predicate", r.ID)
		}
		byID[r.ID] = r
	}

	return &Catalog{rules: rules, byID: byID}, nil
}

// Rules returns the rule table in declaration order.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

func (c *Catalog) Rule(id string) (Rule, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// TotalPoints is the XP available across the whole table.
func (c *Catalog) TotalPoints() int {
	sum := 0
	for _, r := range c.rules {
		sum += r.Points
	}
	return sum
}

func filled(s string) bool {
	return strings.TrimSpace(s) != ""
}

func defaultRules() []Rule {
	return []Rule{
		{
			ID:          "primeiro_passo",
			Title:       "Primeiro Passo",
			Description: "Escreveu sua Big Idea",
			Points:      40,
			Icon:        "🎯",
			Category:    model.CategoryEngagement,
			Predicate: func(s model.ProgressSnapshot) bool {
				return filled(s.BigIdea)
			},
		},
		{
			ID:          "questionador",
			Title:       "Questionador",
			Description: "Criou sua Essential Question",
			Points:      35,
			Icon:        "❓",
			Category:    model.CategoryEngagement,
			Predicate: func(s model.ProgressSnapshot) bool {
				return filled(s.EssentialQuestion)
			},
		},
		{
			ID:          "desafiador",
			Title:       "Desafiador",
			Description: "Definiu seu Challenge",
			Points:      40,
			Icon:        "⚡",
			Category:    model.CategoryEngagement,
			Predicate: func(s model.ProgressSnapshot) bool {
				return filled(s.Challenge)
			},
		},
		{
			ID:          "visionario",
			Title:       "Visionário",
			Description: "Completou a fase Engage",
			Points:      100,
			Icon:        "🌟",
			Category:    model.CategoryPhases,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.EngageCompleted
			},
		},
		{
			ID:          "investigador_iniciante",
			Title:       "Investigador",
			Description: "Respondeu sua primeira pergunta-guia",
			Points:      40,
			Icon:        "🔍",
			Category:    model.CategoryInvestigation,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.QuestionsAnswered >= 1
			},
		},
		{
			ID:          "pesquisador",
			Title:       "Pesquisador",
			Description: "Respondeu 3 perguntas-guia",
			Points:      60,
			Icon:        "📚",
			Category:    model.CategoryInvestigation,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.QuestionsAnswered >= 3
			},
		},
		{
			ID:          "analista",
			Title:       "Analista",
			Description: "Respondeu 5 perguntas-guia",
			Points:      70,
			Icon:        "🧠",
			Category:    model.CategoryInvestigation,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.QuestionsAnswered >= 5
			},
		},
		{
			ID:          "coletor",
			Title:       "Coletor",
			Description: "Adicionou recursos de pesquisa",
			Points:      30,
			Icon:        "📖",
			Category:    model.CategoryInvestigation,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.ResourcesCollected >= 1
			},
		},
		{
			ID:          "bibliotecario",
			Title:       "Bibliotecário",
			Description: "Coletou 3 recursos de pesquisa",
			Points:      50,
			Icon:        "📚",
			Category:    model.CategoryInvestigation,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.ResourcesCollected >= 3
			},
		},
		{
			ID:          "planejador",
			Title:       "Planejador",
			Description: "Criou sua primeira atividade",
			Points:      45,
			Icon:        "📋",
			Category:    model.CategoryEngagement,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.ActivitiesCreated >= 1
			},
		},
		{
			ID:          "criador",
			Title:       "Criador",
			Description: "Criou seu primeiro protótipo",
			Points:      80,
			Icon:        "🛠️",
			Category:    model.CategoryCreativity,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.PrototypesCreated >= 1
			},
		},
		{
			ID:          "inovador",
			Title:       "Inovador",
			Description: "Criou 3+ protótipos",
			Points:      90,
			Icon:        "🚀",
			Category:    model.CategoryCreativity,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.PrototypesCreated >= 3
			},
		},
		{
			ID:          "implementador",
			Title:       "Implementador",
			Description: "Completou a fase Act",
			Points:      140,
			Icon:        "⚡",
			Category:    model.CategoryPhases,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.ActCompleted
			},
		},
		{
			ID:          "inspirado",
			Title:       "Inspirado",
			Description: "Obteve um nudge para inspiração",
			Points:      30,
			Icon:        "💡",
			Category:    model.CategorySpecial,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.NudgeViewed
			},
		},
		{
			ID:          "mestre_cbl",
			Title:       "Mestre CBL",
			Description: "Completou todo o ciclo CBL",
			Points:      150,
			Icon:        "🏆",
			Category:    model.CategoryMastery,
			Predicate: func(s model.ProgressSnapshot) bool {
				return s.EngageCompleted && s.InvestigateCompleted && s.ActCompleted
			},
		},
	}
}
