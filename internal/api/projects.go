package api

import (
	"errors"
	"net/http"
	"time"

	"ALH_backend/internal/middleware"
	"ALH_backend/internal/model"
	"ALH_backend/internal/service"
	"ALH_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type projectRoutes struct {
	ps service.ProjectServiceI
}

func NewProjectRoutes(handler *gin.RouterGroup, ps service.ProjectServiceI, identity *middleware.Identity) {
	r := &projectRoutes{ps: ps}
	h := handler.Group("/projects")
	h.Use(identity.RequireUser())
	{
		h.POST("/", r.CreateProject)
		h.GET("/", r.ListProjects)
		h.GET("/:project_id", r.GetProject)
		h.PATCH("/:project_id", r.EditProject)
		h.DELETE("/:project_id", r.DeleteProject)
		h.POST("/:project_id/duplicate", r.DuplicateProject)

		h.PATCH("/:project_id/engage", r.UpdateEngage)
		h.PATCH("/:project_id/investigate", r.UpdateInvestigate)
		h.PATCH("/:project_id/act", r.UpdateAct)
		h.POST("/:project_id/phases/:phase/complete", r.CompletePhase)

		h.POST("/:project_id/questions", r.AddGuidingQuestion)
		h.PUT("/:project_id/questions/:question_id/answer", r.AnswerGuidingQuestion)
		h.POST("/:project_id/resources", r.AddResource)
		h.POST("/:project_id/activities", r.AddActivity)
		h.POST("/:project_id/prototypes", r.AddPrototype)

		h.POST("/:project_id/phases/:phase/checklist", r.AddChecklistItem)
		h.PATCH("/:project_id/phases/:phase/checklist/:item_id", r.ToggleChecklistItem)
		h.DELETE("/:project_id/phases/:phase/checklist/:item_id", r.RemoveChecklistItem)
	}
}

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectResponse struct {
	ID           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Engage       model.EngagePhase      `json:"engage"`
	Investigate  model.InvestigatePhase `json:"investigate"`
	Act          model.ActPhase         `json:"act"`
	NudgeViewed  bool                   `json:"nudge_viewed"`
	CreatedAt    time.Time              `json:"created_at"`
	LastModified time.Time              `json:"last_modified"`
}

func toProjectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Engage:       p.Engage,
		Investigate:  p.Investigate,
		Act:          p.Act,
		NudgeViewed:  p.NudgeViewed,
		CreatedAt:    p.CreatedAt,
		LastModified: p.LastModified,
	}
}

func (r *projectRoutes) CreateProject(c *gin.Context) {
	log := logger.Logger()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		log.Error("user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.CreateProject(c.Request.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		log.Error("failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (r *projectRoutes) ListProjects(c *gin.Context) {
	log := logger.Logger()

	user, ok := middleware.CurrentUser(c)
	if !ok {
		log.Error("user data not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	projects, err := r.ps.ListProjects(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	out := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}

	c.JSON(http.StatusOK, out)
}

func (r *projectRoutes) GetProject(c *gin.Context) {
	project, ok := r.loadProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toProjectResponse(project))
}

type EditProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r *projectRoutes) EditProject(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req EditProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.EditProject(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		r.writeProjectError(c, "failed to edit project", err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (r *projectRoutes) DeleteProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	if err := r.ps.DeleteProject(c.Request.Context(), id); err != nil {
		r.writeProjectError(c, "failed to delete project", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (r *projectRoutes) DuplicateProject(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	project, err := r.ps.DuplicateProject(c.Request.Context(), id)
	if err != nil {
		r.writeProjectError(c, "failed to duplicate project", err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

type UpdateEngageRequest struct {
	BigIdea           *string `json:"big_idea"`
	EssentialQuestion *string `json:"essential_question"`
	Challenge         *string `json:"challenge"`
}

func (r *projectRoutes) UpdateEngage(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req UpdateEngageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.UpdateEngage(c.Request.Context(), id, service.EngageUpdate{
		BigIdea:           req.BigIdea,
		EssentialQuestion: req.EssentialQuestion,
		Challenge:         req.Challenge,
	})
	if err != nil {
		r.writeProjectError(c, "failed to update engage phase", err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

type UpdateInvestigateRequest struct {
	Synthesis *string `json:"synthesis"`
}

func (r *projectRoutes) UpdateInvestigate(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req UpdateInvestigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.UpdateInvestigate(c.Request.Context(), id, service.InvestigateUpdate{
		Synthesis: req.Synthesis,
	})
	if err != nil {
		r.writeProjectError(c, "failed to update investigate phase", err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

type UpdateActRequest struct {
	Solution       *string `json:"solution"`
	Implementation *string `json:"implementation"`
	Evaluation     *string `json:"evaluation"`
}

func (r *projectRoutes) UpdateAct(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req UpdateActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.UpdateAct(c.Request.Context(), id, service.ActUpdate{
		Solution:       req.Solution,
		Implementation: req.Implementation,
		Evaluation:     req.Evaluation,
	})
	if err != nil {
		r.writeProjectError(c, "failed to update act phase", err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (r *projectRoutes) CompletePhase(c *gin.Context) {
	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	phase, ok := parsePhase(c)
	if !ok {
		return
	}

	project, err := r.ps.CompletePhase(c.Request.Context(), id, phase)
	if err != nil {
		r.writeProjectError(c, "failed to complete phase", err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

type AddGuidingQuestionRequest struct {
	Question string `json:"question" binding:"required"`
}

func (r *projectRoutes) AddGuidingQuestion(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req AddGuidingQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.AddGuidingQuestion(c.Request.Context(), id, req.Question)
	if err != nil {
		r.writeProjectError(c, "failed to add guiding question", err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

type AnswerQuestionRequest struct {
	Answer string `json:"answer" binding:"required"`
}

func (r *projectRoutes) AnswerGuidingQuestion(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	questionID, err := uuid.Parse(c.Param("question_id"))
	if err != nil {
		log.Error("failed to parse question_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question_id"})
		return
	}

	var req AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.AnswerGuidingQuestion(c.Request.Context(), id, questionID, req.Answer)
	if err != nil {
		r.writeProjectError(c, "failed to answer guiding question", err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

type AddResourceRequest struct {
	Title string `json:"title" binding:"required"`
	URL   string `json:"url"`
	Notes string `json:"notes"`
}

func (r *projectRoutes) AddResource(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req AddResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.AddResource(c.Request.Context(), id, req.Title, req.URL, req.Notes)
	if err != nil {
		r.writeProjectError(c, "failed to add resource", err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

type AddActivityRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (r *projectRoutes) AddActivity(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.AddActivity(c.Request.Context(), id, req.Title, req.Description)
	if err != nil {
		r.writeProjectError(c, "failed to add activity", err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

type AddPrototypeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (r *projectRoutes) AddPrototype(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req AddPrototypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.AddPrototype(c.Request.Context(), id, req.Title, req.Description)
	if err != nil {
		r.writeProjectError(c, "failed to add prototype", err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

type AddChecklistItemRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r *projectRoutes) AddChecklistItem(c *gin.Context) {
	log := logger.Logger()

	id, ok := parseProjectID(c)
	if !ok {
		return
	}

	phase, ok := parsePhase(c)
	if !ok {
		return
	}

	var req AddChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	project, err := r.ps.AddChecklistItem(c.Request.Context(), id, phase, req.Text)
	if err != nil {
		r.writeProjectError(c, "failed to add checklist item", err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

func (r *projectRoutes) ToggleChecklistItem(c *gin.Context) {
	id, phase, itemID, ok := parseChecklistParams(c)
	if !ok {
		return
	}

	project, err := r.ps.ToggleChecklistItem(c.Request.Context(), id, phase, itemID)
	if err != nil {
		r.writeProjectError(c, "failed to toggle checklist item", err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (r *projectRoutes) RemoveChecklistItem(c *gin.Context) {
	id, phase, itemID, ok := parseChecklistParams(c)
	if !ok {
		return
	}

	project, err := r.ps.RemoveChecklistItem(c.Request.Context(), id, phase, itemID)
	if err != nil {
		r.writeProjectError(c, "failed to remove checklist item", err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

func (r *projectRoutes) loadProject(c *gin.Context) (*model.Project, bool) {
	id, ok := parseProjectID(c)
	if !ok {
		return nil, false
	}

	project, err := r.ps.GetProject(c.Request.Context(), id)
	if err != nil {
		r.writeProjectError(c, "failed to get project", err)
		return nil, false
	}

	return project, true
}

func (r *projectRoutes) writeProjectError(c *gin.Context, msg string, err error) {
	log := logger.Logger()
	log.Error(msg, zap.Error(err))

	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
	case errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "guiding question not found"})
	case errors.Is(err, service.ErrChecklistItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "checklist item not found"})
	case errors.Is(err, service.ErrPhaseLocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "phase is locked: complete the previous phase first"})
	case errors.Is(err, service.ErrPhaseIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "phase requirements are not met"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func parseProjectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		logger.Logger().Error("failed to parse project_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
		return uuid.Nil, false
	}
	return id, true
}

func parsePhase(c *gin.Context) (model.Phase, bool) {
	phase, ok := model.ParsePhase(c.Param("phase"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phase"})
		return "", false
	}
	return phase, true
}

func parseChecklistParams(c *gin.Context) (uuid.UUID, model.Phase, uuid.UUID, bool) {
	id, ok := parseProjectID(c)
	if !ok {
		return uuid.Nil, "", uuid.Nil, false
	}

	phase, ok := parsePhase(c)
	if !ok {
		return uuid.Nil, "", uuid.Nil, false
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		logger.Logger().Error("failed to parse item_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item_id"})
		return uuid.Nil, "", uuid.Nil, false
	}

	return id, phase, itemID, true
}
