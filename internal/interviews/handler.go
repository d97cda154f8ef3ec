package interviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-match-backend/internal/jobs"
	"resume-match-backend/internal/resumes"
	"resume-match-backend/internal/shared/server/middleware"
	"resume-match-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the interviews service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interviews", h.create)
	rg.GET("/interviews/latest", h.latest)
	rg.GET("/interviews/:id", h.get)
}

type createRequest struct {
	ResumeID         string `json:"resumeId"`
	JobDescriptionID string `json:"jobDescriptionId"`
	AnalysisID       string `json:"analysisId"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.AnalysisID == "" && (req.ResumeID == "" || req.JobDescriptionID == "") {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resumeId and jobDescriptionId (or analysisId) are required", nil)
		return
	}

	interview, err := h.Svc.Create(c.Request.Context(), userID, req.ResumeID, req.JobDescriptionID, req.AnalysisID)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound), errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume or job description not found", nil)
		case errors.Is(err, ErrNotParsed):
			respond.Error(c, http.StatusUnprocessableEntity, "not_parsed", "resume or job description has no parsed data", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate interview questions", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, interview)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	interview, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "interview not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch interview", nil)
		}
		return
	}
	respond.OK(c, interview)
}

func (h *Handler) latest(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	interview, err := h.Svc.Latest(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no interview prep found, run an analysis first", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch latest interview", nil)
		}
		return
	}
	respond.OK(c, interview)
}
