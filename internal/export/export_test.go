package export

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mverdier/driver-management-api/internal/models"
)

type exportTestEnv struct {
	db       *gorm.DB
	exporter *Exporter
	today    time.Time
}

func setupExportTestEnv(t *testing.T) exportTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.Service{},
		&models.Site{},
		&models.Driver{},
		&models.SiteHistory{},
	)
	require.NoError(t, err)

	company := &models.Company{Name: "Transports Durand"}
	exploitation := &models.Service{Name: "Exploitation"}
	logistique := &models.Service{Name: "Logistique"}
	lyon := &models.Site{Name: "Lyon", PostalCode: "69000"}
	marseille := &models.Site{Name: "Marseille", PostalCode: "13000"}
	require.NoError(t, db.Create(company).Error)
	require.NoError(t, db.Create(exploitation).Error)
	require.NoError(t, db.Create(logistique).Error)
	require.NoError(t, db.Create(lyon).Error)
	require.NoError(t, db.Create(marseille).Error)

	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	pastLeave := time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC)

	drivers := []models.Driver{
		{
			ERPID: "ERP-001", LastName: "DUPONT", FirstName: "Jean",
			HireDate:  time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC),
			ServiceID: exploitation.ID, SiteID: lyon.ID, CompanyID: company.ID,
			IsActive: true,
		},
		{
			ERPID: "ERP-002", LastName: "MARTIN", FirstName: "Claire",
			HireDate:  time.Date(2022, time.June, 15, 0, 0, 0, 0, time.UTC),
			ServiceID: logistique.ID, SiteID: marseille.ID, CompanyID: company.ID,
			IsActive: true, IsTemp: true,
		},
		{
			// Inactive, never exported
			ERPID: "ERP-003", LastName: "BERNARD", FirstName: "Luc",
			HireDate:  time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC),
			ServiceID: exploitation.ID, SiteID: lyon.ID, CompanyID: company.ID,
			IsActive: false, LeaveDate: &pastLeave,
		},
	}
	for i := range drivers {
		require.NoError(t, db.Create(&drivers[i]).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return exportTestEnv{db: db, exporter: NewExporter(db), today: today}
}

func TestDrivers_ActiveOnly(t *testing.T) {
	env := setupExportTestEnv(t)

	drivers, err := env.exporter.Drivers(Options{}, env.today)
	require.NoError(t, err)
	require.Len(t, drivers, 2)

	// Ordered by last name; affiliations loaded
	require.Equal(t, "DUPONT", drivers[0].LastName)
	require.Equal(t, "Exploitation", drivers[0].Service.Name)
	require.Equal(t, "Lyon", drivers[0].Site.Name)
}

func TestDrivers_Filters(t *testing.T) {
	env := setupExportTestEnv(t)

	drivers, err := env.exporter.Drivers(Options{Service: "logis"}, env.today)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "ERP-002", drivers[0].ERPID)

	drivers, err = env.exporter.Drivers(Options{Site: "LYON"}, env.today)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "ERP-001", drivers[0].ERPID)

	drivers, err = env.exporter.Drivers(Options{NoInterim: true}, env.today)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "ERP-001", drivers[0].ERPID)
}

func TestBuildDataset_Related(t *testing.T) {
	env := setupExportTestEnv(t)

	drivers, err := env.exporter.Drivers(Options{}, env.today)
	require.NoError(t, err)

	ds := BuildDataset(drivers, false)
	require.Len(t, ds.Drivers, 2)
	require.Empty(t, ds.Services)

	ds = BuildDataset(drivers, true)
	require.Len(t, ds.Services, 2)
	require.Len(t, ds.Sites, 2)
	require.Len(t, ds.Companies, 1)
}

func TestWriteJSON(t *testing.T) {
	env := setupExportTestEnv(t)

	drivers, err := env.exporter.Drivers(Options{}, env.today)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, env.exporter.WriteJSON(&buf, BuildDataset(drivers, false)))

	var decoded Dataset
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Drivers, 2)
	require.Equal(t, "ERP-001", decoded.Drivers[0].ERPID)
	require.Equal(t, "2020-03-01", decoded.Drivers[0].HireDate)
	require.Equal(t, "Transports Durand", decoded.Drivers[0].Company)
}

func TestWriteXLSX(t *testing.T) {
	env := setupExportTestEnv(t)

	drivers, err := env.exporter.Drivers(Options{}, env.today)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "conducteurs.xlsx")
	require.NoError(t, env.exporter.WriteXLSX(path, BuildDataset(drivers, true)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Contains(t, f.GetSheetList(), "Conducteurs")
	require.Contains(t, f.GetSheetList(), "Services")

	rows, err := f.GetRows("Conducteurs")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 drivers
	require.Equal(t, "ERP", rows[0][1])
	require.Equal(t, "DUPONT", rows[1][2])
}

func TestComputeStats(t *testing.T) {
	env := setupExportTestEnv(t)

	drivers, err := env.exporter.Drivers(Options{}, env.today)
	require.NoError(t, err)

	stats := ComputeStats(drivers, env.today)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.PerService["Exploitation"])
	require.Equal(t, 1, stats.PerService["Logistique"])
	require.Equal(t, 1, stats.PerSite["Lyon (69000)"])
	require.Equal(t, 1, stats.Permanent)
	require.Equal(t, 1, stats.Temp)
	require.Greater(t, stats.MeanSeniorityDays, float64(0))

	var buf bytes.Buffer
	stats.Print(&buf)
	require.Contains(t, buf.String(), "Répartition par service")
	require.Contains(t, buf.String(), "Permanents: 1")
}
