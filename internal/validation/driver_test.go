package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mverdier/driver-management-api/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func validDriver() *models.Driver {
	return &models.Driver{
		ERPID:     "ERP-001",
		LastName:  "DUPONT",
		FirstName: "Jean",
		HireDate:  date(2020, time.March, 1),
		ServiceID: 1,
		SiteID:    1,
		CompanyID: 1,
		IsActive:  true,
	}
}

func TestValidateDriver_Valid(t *testing.T) {
	today := date(2024, time.June, 15)

	errs := ValidateDriver(validDriver(), today)
	require.Empty(t, errs)
}

func TestValidateDriver_RequiredFields(t *testing.T) {
	today := date(2024, time.June, 15)

	errs := ValidateDriver(&models.Driver{IsActive: true}, today)
	require.True(t, errs.Has("erp_id"))
	require.True(t, errs.Has("nom"))
	require.True(t, errs.Has("prenom"))
	require.True(t, errs.Has("date_entree"))
}

func TestValidateDriver_BirthDateAfterHireDate(t *testing.T) {
	today := date(2024, time.June, 15)

	d := validDriver()
	d.BirthDate = datePtr(2021, time.January, 1)

	errs := ValidateDriver(d, today)
	require.True(t, errs.Has("date_naissance"))
	require.False(t, errs.Has("date_entree"))
}

func TestValidateDriver_BirthDateInFuture(t *testing.T) {
	today := date(2024, time.June, 15)

	d := validDriver()
	d.BirthDate = datePtr(2025, time.January, 1)

	errs := ValidateDriver(d, today)
	require.True(t, errs.Has("date_naissance"))
}

func TestValidateDriver_HireDateInFuture(t *testing.T) {
	today := date(2024, time.June, 15)

	d := validDriver()
	d.HireDate = date(2024, time.June, 16)

	errs := ValidateDriver(d, today)
	require.True(t, errs.Has("date_entree"))
}

func TestValidateDriver_LeaveDateBeforeHireDate(t *testing.T) {
	today := date(2024, time.June, 15)

	d := validDriver()
	d.IsActive = false
	d.LeaveDate = datePtr(2020, time.February, 1)

	errs := ValidateDriver(d, today)
	require.True(t, errs.Has("date_sortie"))
}

func TestValidateDriver_ActiveWithPastLeaveDate(t *testing.T) {
	today := date(2024, time.June, 15)

	d := validDriver()
	d.LeaveDate = datePtr(2024, time.June, 14)

	errs := ValidateDriver(d, today)
	require.True(t, errs.Has("actif_p"))
}

func TestValidateDriver_ActiveWithLeaveDateToday(t *testing.T) {
	today := date(2024, time.June, 15)

	// A leave date equal to today does not force the driver inactive.
	d := validDriver()
	d.LeaveDate = datePtr(2024, time.June, 15)

	errs := ValidateDriver(d, today)
	require.False(t, errs.Has("actif_p"))
	require.False(t, errs.Has("date_sortie"))
}

func TestValidateDriver_InactiveWithoutLeaveDate(t *testing.T) {
	today := date(2024, time.June, 15)

	d := validDriver()
	d.IsActive = false

	errs := ValidateDriver(d, today)
	require.True(t, errs.Has("date_sortie"))
}

func TestValidateDriver_AccumulatesAllViolations(t *testing.T) {
	today := date(2024, time.June, 15)

	d := &models.Driver{
		HireDate: date(2025, time.January, 1),
		IsActive: false,
	}

	errs := ValidateDriver(d, today)
	require.True(t, errs.Has("erp_id"))
	require.True(t, errs.Has("nom"))
	require.True(t, errs.Has("prenom"))
	require.True(t, errs.Has("date_entree"))
	require.True(t, errs.Has("date_sortie"))
}

func TestNormalizeDriver_CanonicalAndDisplayForms(t *testing.T) {
	d := &models.Driver{
		ERPID:     "  ERP-001 ",
		LastName:  "  dupont ",
		FirstName: " jean-pierre ",
	}

	NormalizeDriver(d)

	require.Equal(t, "ERP-001", d.ERPID)
	require.Equal(t, "DUPONT", d.LastName)
	require.Equal(t, "Jean-Pierre", d.FirstName)
	require.Equal(t, "dupont", d.DisplayLastName)
	require.Equal(t, "jean-pierre", d.DisplayFirstName)
}

func TestNormalizeDriver_DisplayFormsNeverOverwritten(t *testing.T) {
	d := &models.Driver{
		LastName:         "martin",
		FirstName:        "claire",
		DisplayLastName:  "Martin",
		DisplayFirstName: "Claire",
	}

	NormalizeDriver(d)

	require.Equal(t, "MARTIN", d.LastName)
	require.Equal(t, "Martin", d.DisplayLastName)
	require.Equal(t, "Claire", d.DisplayFirstName)
}
