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

// RatingHandler serves ratings and their audit trail. History is
// read-only: no route updates or deletes an audit row.
type RatingHandler struct {
	ratingService *services.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// CreateRating records a new rating.
func (h *RatingHandler) CreateRating(c *gin.Context) {
	type CreateRatingRequest struct {
		RatedAt     string `json:"date_notation" binding:"required"`
		RaterID     uint64 `json:"rater_id" binding:"required"`
		DriverID    uint64 `json:"driver_id" binding:"required"`
		CriterionID uint64 `json:"criterion_id" binding:"required"`
		Value       *int   `json:"valeur"`
	}

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ratedAt, err := time.Parse(dateLayout, req.RatedAt)
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	rating := &models.Rating{
		RatedAt:     ratedAt,
		RaterID:     req.RaterID,
		DriverID:    req.DriverID,
		CriterionID: req.CriterionID,
		Value:       req.Value,
	}

	if err := h.ratingService.CreateRating(rating); err != nil {
		respondRatingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rating)
}

// SetValue changes a rating's value; the change is audited.
func (h *RatingHandler) SetValue(c *gin.Context) {
	ratingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type SetValueRequest struct {
		Value *int `json:"valeur" binding:"required"`
	}

	var req SetValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	rating, err := h.ratingService.SetValue(ratingID, *req.Value)
	if err != nil {
		respondRatingError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}

// GetHistory returns a rating's audit rows, oldest first.
func (h *RatingHandler) GetHistory(c *gin.Context) {
	ratingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.ratingService.GetHistory(ratingID)
	if err != nil {
		respondRatingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": entries,
	})
}

func respondRatingError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.ValidationFailed(c, vErr.Fields.Map())
	case errors.Is(err, services.ErrRatingNotFound),
		errors.Is(err, services.ErrCriterionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateRating):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
