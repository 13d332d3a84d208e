package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/mverdier/driver-management-api/internal/errors"
	"github.com/mverdier/driver-management-api/internal/models"
	"github.com/mverdier/driver-management-api/internal/repository"
	"github.com/mverdier/driver-management-api/internal/services"
	"github.com/mverdier/driver-management-api/internal/utils"
)

const dateLayout = "2006-01-02"

// DriverHandler serves driver records.
type DriverHandler struct {
	driverService *services.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *services.DriverService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
	}
}

// DriverRequest is the payload for creating or updating a driver.
// Dates use the YYYY-MM-DD layout.
type DriverRequest struct {
	ERPID     string `json:"erp_id" binding:"required"`
	LastName  string `json:"nom" binding:"required"`
	FirstName string `json:"prenom" binding:"required"`
	BirthDate string `json:"date_naissance"`
	HireDate  string `json:"date_entree" binding:"required"`
	LeaveDate string `json:"date_sortie"`
	ServiceID uint64 `json:"service_id" binding:"required"`
	SiteID    uint64 `json:"site_id" binding:"required"`
	CompanyID uint64 `json:"societe_id" binding:"required"`
	IsActive  *bool  `json:"actif_p"`
	IsTemp    bool   `json:"interim_p"`
}

func (r *DriverRequest) toModel() (*models.Driver, error) {
	hireDate, err := time.Parse(dateLayout, r.HireDate)
	if err != nil {
		return nil, err
	}

	driver := &models.Driver{
		ERPID:     r.ERPID,
		LastName:  r.LastName,
		FirstName: r.FirstName,
		HireDate:  hireDate,
		ServiceID: r.ServiceID,
		SiteID:    r.SiteID,
		CompanyID: r.CompanyID,
		IsActive:  true,
		IsTemp:    r.IsTemp,
	}
	if r.IsActive != nil {
		driver.IsActive = *r.IsActive
	}

	if r.BirthDate != "" {
		birth, err := time.Parse(dateLayout, r.BirthDate)
		if err != nil {
			return nil, err
		}
		driver.BirthDate = &birth
	}
	if r.LeaveDate != "" {
		leave, err := time.Parse(dateLayout, r.LeaveDate)
		if err != nil {
			return nil, err
		}
		driver.LeaveDate = &leave
	}

	return driver, nil
}

// CreateDriver validates and persists a new driver record.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	driver, err := req.toModel()
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	if err := h.driverService.CreateDriver(driver); err != nil {
		respondDriverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, driver)
}

// UpdateDriver validates and persists changes to a driver record.
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	driver, err := req.toModel()
	if err != nil {
		apierrors.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	driver.ID = driverID

	if err := h.driverService.UpdateDriver(driver); err != nil {
		respondDriverError(c, err)
		return
	}

	c.JSON(http.StatusOK, driver)
}

// GetDriver returns a driver with affiliations.
func (h *DriverHandler) GetDriver(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	driver, err := h.driverService.GetDriver(driverID)
	if err != nil {
		respondDriverError(c, err)
		return
	}

	c.JSON(http.StatusOK, driver)
}

// ListDrivers returns drivers, optionally restricted to currently
// employed ones with ?active=true.
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.DriverFilter{
		ActiveOnly: c.Query("active") == "true",
		Page:       params.Page,
		PageSize:   params.Limit,
	}

	drivers, total, err := h.driverService.ListDrivers(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to list drivers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drivers": drivers,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetSiteHistory returns a driver's site assignment intervals.
func (h *DriverHandler) GetSiteHistory(c *gin.Context) {
	driverID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	intervals, err := h.driverService.GetSiteHistory(driverID)
	if err != nil {
		respondDriverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"site_history": intervals,
	})
}

func respondDriverError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		apierrors.ValidationFailed(c, vErr.Fields.Map())
	case errors.Is(err, services.ErrDriverNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrERPIDTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
