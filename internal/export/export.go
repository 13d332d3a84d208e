package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/database"
	"github.com/mverdier/driver-management-api/internal/models"
)

// Options narrows the set of exported drivers. Service and Site are
// case-insensitive name substrings.
type Options struct {
	Service        string
	Site           string
	NoInterim      bool
	IncludeRelated bool
}

// Dataset is the serializable export payload. The related referentials
// are only filled when Options.IncludeRelated is set.
type Dataset struct {
	Drivers   []DriverRecord   `json:"conducteurs"`
	Services  []models.Service `json:"services,omitempty"`
	Sites     []models.Site    `json:"sites,omitempty"`
	Companies []models.Company `json:"societes,omitempty"`
}

// DriverRecord flattens a driver and its affiliations for export.
type DriverRecord struct {
	ID        uint64 `json:"id"`
	ERPID     string `json:"erp_id"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	BirthDate string `json:"date_naissance,omitempty"`
	HireDate  string `json:"date_entree"`
	LeaveDate string `json:"date_sortie,omitempty"`
	Service   string `json:"service"`
	Site      string `json:"site"`
	Company   string `json:"societe"`
	IsTemp    bool   `json:"interim_p"`
}

// Exporter queries and serializes currently employed drivers.
type Exporter struct {
	db *gorm.DB
}

// NewExporter creates a new Exporter.
func NewExporter(db *gorm.DB) *Exporter {
	return &Exporter{db: db}
}

// Drivers queries the active drivers matching opts, affiliations
// loaded, ordered by last then first name.
func (e *Exporter) Drivers(opts Options, today time.Time) ([]models.Driver, error) {
	query := e.db.Model(&models.Driver{}).
		Scopes(database.ActiveDrivers(today)).
		Joins("Service").Joins("Site").Joins("Company")

	if opts.Service != "" {
		query = query.Where("LOWER(`Service`.`nom`) LIKE ?", "%"+strings.ToLower(opts.Service)+"%")
	}
	if opts.Site != "" {
		query = query.Where("LOWER(`Site`.`nom`) LIKE ?", "%"+strings.ToLower(opts.Site)+"%")
	}
	if opts.NoInterim {
		query = query.Where("interim_p = ?", false)
	}

	var drivers []models.Driver
	if err := query.Order("drivers.nom, drivers.prenom").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("failed to query drivers: %w", err)
	}
	return drivers, nil
}

// BuildDataset flattens the drivers into the export payload.
func BuildDataset(drivers []models.Driver, includeRelated bool) *Dataset {
	ds := &Dataset{Drivers: make([]DriverRecord, 0, len(drivers))}
	for _, d := range drivers {
		ds.Drivers = append(ds.Drivers, toRecord(d))
	}
	if includeRelated {
		fillRelated(ds, drivers)
	}
	return ds
}

// WriteJSON serializes the dataset as indented JSON.
func (e *Exporter) WriteJSON(w io.Writer, ds *Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ds)
}

func fillRelated(ds *Dataset, drivers []models.Driver) {
	services := map[uint64]models.Service{}
	sites := map[uint64]models.Site{}
	companies := map[uint64]models.Company{}

	for _, d := range drivers {
		services[d.ServiceID] = d.Service
		sites[d.SiteID] = d.Site
		companies[d.CompanyID] = d.Company
	}

	for _, s := range services {
		ds.Services = append(ds.Services, s)
	}
	for _, s := range sites {
		ds.Sites = append(ds.Sites, s)
	}
	for _, c := range companies {
		ds.Companies = append(ds.Companies, c)
	}

	sort.Slice(ds.Services, func(i, j int) bool { return ds.Services[i].ID < ds.Services[j].ID })
	sort.Slice(ds.Sites, func(i, j int) bool { return ds.Sites[i].ID < ds.Sites[j].ID })
	sort.Slice(ds.Companies, func(i, j int) bool { return ds.Companies[i].ID < ds.Companies[j].ID })
}

func toRecord(d models.Driver) DriverRecord {
	rec := DriverRecord{
		ID:        d.ID,
		ERPID:     d.ERPID,
		LastName:  d.LastName,
		FirstName: d.FirstName,
		HireDate:  d.HireDate.Format(dateLayout),
		Service:   d.Service.Name,
		Site:      d.Site.Name,
		Company:   d.Company.Name,
		IsTemp:    d.IsTemp,
	}
	if d.BirthDate != nil {
		rec.BirthDate = d.BirthDate.Format(dateLayout)
	}
	if d.LeaveDate != nil {
		rec.LeaveDate = d.LeaveDate.Format(dateLayout)
	}
	return rec
}

const dateLayout = "2006-01-02"
