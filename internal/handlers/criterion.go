package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/mverdier/driver-management-api/internal/errors"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/services"
)

// CriterionHandler serves rating criteria.
type CriterionHandler struct {
	criterionService *services.CriterionService
}

// NewCriterionHandler creates a new CriterionHandler.
func NewCriterionHandler(criterionService *services.CriterionService) *CriterionHandler {
	return &CriterionHandler{
		criterionService: criterionService,
	}
}

// CriterionRequest is the payload for creating or updating a criterion.
type CriterionRequest struct {
	Name        string `json:"nom" binding:"required"`
	Description string `json:"description"`
	MinValue    int    `json:"valeur_mini"`
	MaxValue    int    `json:"valeur_maxi"`
	IsActive    *bool  `json:"actif"`
}

func (r *CriterionRequest) toModel() *models.RatingCriterion {
	criterion := &models.RatingCriterion{
		Name:        r.Name,
		Description: r.Description,
		MinValue:    r.MinValue,
		MaxValue:    r.MaxValue,
		IsActive:    true,
	}
	if r.IsActive != nil {
		criterion.IsActive = *r.IsActive
	}
	return criterion
}

// CreateCriterion validates and persists a new criterion.
func (h *CriterionHandler) CreateCriterion(c *gin.Context) {
	var req CriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	criterion := req.toModel()
	if err := h.criterionService.CreateCriterion(criterion); err != nil {
		respondCriterionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, criterion)
}

// UpdateCriterion validates and persists changes to a criterion.
func (h *CriterionHandler) UpdateCriterion(c *gin.Context) {
	criterionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CriterionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	criterion := req.toModel()
	criterion.ID = criterionID

	if err := h.criterionService.UpdateCriterion(criterion); err != nil {
		respondCriterionError(c, err)
		return
	}

	c.JSON(http.StatusOK, criterion)
}

// ListCriteria returns the active criteria.
func (h *CriterionHandler) ListCriteria(c *gin.Context) {
	criteria, err := h.criterionService.ListActiveCriteria()
	if err != nil {
		apierrors.InternalError(c, "Failed to list criteria")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"criteria": criteria,
	})
}

func respondCriterionError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.ValidationFailed(c, vErr.Fields.Map())
	case errors.Is(err, services.ErrCriterionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
