package model

import (
	"time"

	"github.com/google/uuid"
)

type BadgeCategory string

const (
	CategoryPhases        BadgeCategory = "Fases CBL"
	CategoryEngagement    BadgeCategory = "Engajamento"
	CategoryInvestigation BadgeCategory = "Investigação"
	CategoryCreativity    BadgeCategory = "Criatividade"
	CategoryMastery       BadgeCategory = "Maestria"
	CategorySpecial       BadgeCategory = "Especial"
)

// UserBadge is the durable record of a single earned badge. Title,
// description and points are denormalized at award time so the display of
// past awards survives later edits to the badge catalog.
type UserBadge struct {
	UserID      uuid.UUID
	BadgeID     string
	Title       string
	Description string
	Points      int
	Icon        string
	EarnedAt    time.Time
}
