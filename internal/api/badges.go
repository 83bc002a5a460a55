package api

import (
	"net/http"
	"time"

	"ALH_backend/internal/middleware"
	"ALH_backend/internal/service"
	"ALH_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type badgeRoutes struct {
	bs service.BadgeServiceI
}

func NewBadgeRoutes(handler *gin.RouterGroup, bs service.BadgeServiceI, identity *middleware.Identity) {
	r := &badgeRoutes{bs: bs}
	h := handler.Group("/badges")
	h.Use(identity.RequireUser())
	{
		h.GET("/", r.GetOverview)
		h.GET("/points", r.GetTotalPoints)
		h.GET("/suggestions", r.GetSuggestions)
	}
}

type EarnedBadgeResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Points      int       `json:"points"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
}

type LockedBadgeResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
}

type BadgeOverviewResponse struct {
	Earned             []EarnedBadgeResponse `json:"earned"`
	Locked             []LockedBadgeResponse `json:"locked"`
	TotalPoints        int                   `json:"total_points"`
	Level              int                   `json:"level"`
	XPForNextLevel     int                   `json:"xp_for_next_level"`
	EarnedCount        int                   `json:"earned_count"`
	TotalCount         int                   `json:"total_count"`
	ProgressPercentage int                   `json:"progress_percentage"`
}

func (r *badgeRoutes) GetOverview(c *gin.Context) {
	log := logger.Logger()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		log.Error("user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	overview, err := r.bs.GetOverview(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to get badge overview", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get badge overview"})
		return
	}

	earned := make([]EarnedBadgeResponse, len(overview.Earned))
	for i, b := range overview.Earned {
		earned[i] = EarnedBadgeResponse{
			ID:          b.BadgeID,
			Title:       b.Title,
			Description: b.Description,
			Points:      b.Points,
			Icon:        b.Icon,
			EarnedAt:    b.EarnedAt,
		}
	}

	locked := make([]LockedBadgeResponse, len(overview.Locked))
	for i, rule := range overview.Locked {
		locked[i] = LockedBadgeResponse{
			ID:          rule.ID,
			Title:       rule.Title,
			Description: rule.Description,
			Points:      rule.Points,
			Icon:        rule.Icon,
			Category:    string(rule.Category),
		}
	}

	c.JSON(http.StatusOK, BadgeOverviewResponse{
		Earned:             earned,
		Locked:             locked,
		TotalPoints:        overview.TotalPoints,
		Level:              overview.Level,
		XPForNextLevel:     overview.XPForNextLevel,
		EarnedCount:        overview.EarnedCount,
		TotalCount:         overview.TotalCount,
		ProgressPercentage: overview.ProgressPercentage,
	})
}

func (r *badgeRoutes) GetTotalPoints(c *gin.Context) {
	log := logger.Logger()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		log.Error("user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	total, err := r.bs.GetTotalPoints(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to get total points", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get total points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_points": total,
	})
}

func (r *badgeRoutes) GetSuggestions(c *gin.Context) {
	log := logger.Logger()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		log.Error("user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	suggestions, err := r.bs.GetSuggestions(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to get badge suggestions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get badge suggestions"})
		return
	}

	var out []gin.H
	for _, s := range suggestions {
		out = append(out, gin.H{
			"badge": LockedBadgeResponse{
				ID:          s.Rule.ID,
				Title:       s.Rule.Title,
				Description: s.Rule.Description,
				Points:      s.Rule.Points,
				Icon:        s.Rule.Icon,
				Category:    string(s.Rule.Category),
			},
			"tip": s.Tip,
		})
	}

	c.JSON(http.StatusOK, out)
}
