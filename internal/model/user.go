package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID
	Email            string
	Username         string
	Points           int
	RegistrationDate time.Time
}

// Level is derived from accumulated XP: every 100 points is one level.
func (u *User) Level() int {
	return u.Points/100 + 1
}

func (u *User) XPForNextLevel() int {
	return u.Level()*100 - u.Points
}

type LeaderboardEntry struct {
	Username string
	Points   int
	BadgeIDs []string
}
