package api

import (
	"errors"
	"net/http"

	"ALH_backend/internal/middleware"
	"ALH_backend/internal/model"
	"ALH_backend/internal/service"
	"ALH_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type nudgeRoutes struct {
	ns service.NudgeServiceI
}

func NewNudgeRoutes(handler *gin.RouterGroup, ns service.NudgeServiceI, identity *middleware.Identity) {
	r := &nudgeRoutes{ns: ns}
	h := handler.Group("/nudges")
	h.Use(identity.RequireUser())
	{
		h.GET("/:phase", r.GetCategories)
		h.GET("/:phase/:category", r.GetNudges)
		h.POST("/view", r.ViewNudge)
	}
}

func (r *nudgeRoutes) GetCategories(c *gin.Context) {
	phase, ok := model.ParsePhase(c.Param("phase"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phase"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phase":      phase,
		"categories": r.ns.Categories(phase),
	})
}

func (r *nudgeRoutes) GetNudges(c *gin.Context) {
	phase, ok := model.ParsePhase(c.Param("phase"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phase"})
		return
	}

	nudges, err := r.ns.Nudges(phase, c.Param("category"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "nudge category not found"})
		return
	}

	c.JSON(http.StatusOK, nudges)
}

type ViewNudgeRequest struct {
	ProjectID uuid.UUID `json:"project_id" binding:"required"`
	Phase     string    `json:"phase" binding:"required"`
	Category  string    `json:"category" binding:"required"`
}

// ViewNudge hands out the requested nudges and records that the user got
// one, which is what earns the single "inspirado" badge.
func (r *nudgeRoutes) ViewNudge(c *gin.Context) {
	log := logger.Logger()

	var req ViewNudgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	phase, ok := model.ParsePhase(req.Phase)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phase"})
		return
	}

	nudges, err := r.ns.ViewNudge(c.Request.Context(), req.ProjectID, phase, req.Category)
	if err != nil {
		log.Error("failed to view nudge", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		case errors.Is(err, service.ErrNudgeCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "nudge category not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to view nudge"})
		}
		return
	}

	c.JSON(http.StatusOK, nudges)
}
