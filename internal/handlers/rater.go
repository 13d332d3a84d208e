package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/mverdier/driver-management-api/internal/errors"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/services"
)

// RaterHandler serves rater records.
type RaterHandler struct {
	raterService *services.RaterService
}

// NewRaterHandler creates a new RaterHandler.
func NewRaterHandler(raterService *services.RaterService) *RaterHandler {
	return &RaterHandler{
		raterService: raterService,
	}
}

// RaterRequest is the payload for creating or updating a rater.
type RaterRequest struct {
	LastName  string `json:"nom" binding:"required"`
	FirstName string `json:"prenom" binding:"required"`
	HireDate  string `json:"date_entree"`
	LeaveDate string `json:"date_sortie"`
	ServiceID uint64 `json:"service_id" binding:"required"`
}

func (r *RaterRequest) toModel() (*models.Rater, error) {
	rater := &models.Rater{
		LastName:  r.LastName,
		FirstName: r.FirstName,
		ServiceID: r.ServiceID,
	}

	if r.HireDate != "" {
		hire, err := time.Parse(dateLayout, r.HireDate)
		if err != nil {
			return nil, err
		}
		rater.HireDate = &hire
	}
	if r.LeaveDate != "" {
		leave, err := time.Parse(dateLayout, r.LeaveDate)
		if err != nil {
			return nil, err
		}
		rater.LeaveDate = &leave
	}

	return rater, nil
}

// CreateRater validates and persists a new rater record.
func (h *RaterHandler) CreateRater(c *gin.Context) {
	var req RaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	rater, err := req.toModel()
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	if err := h.raterService.CreateRater(rater); err != nil {
		respondRaterError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rater)
}

// UpdateRater validates and persists changes to a rater record.
func (h *RaterHandler) UpdateRater(c *gin.Context) {
	raterID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	rater, err := req.toModel()
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	rater.ID = raterID

	if err := h.raterService.UpdateRater(rater); err != nil {
		respondRaterError(c, err)
		return
	}

	c.JSON(http.StatusOK, rater)
}

// ListRaters returns all raters.
func (h *RaterHandler) ListRaters(c *gin.Context) {
	raters, err := h.raterService.ListRaters()
	if err != nil {
		apierrors.InternalError(c, "Failed to list raters")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"raters": raters,
	})
}

func respondRaterError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.ValidationFailed(c, vErr.Fields.Map())
	case errors.Is(err, services.ErrRaterNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
