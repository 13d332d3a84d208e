package validation

import (
	"strings"
	"time"

	"github.com/mverdier/driver-management-api/internal/models"
)

// NormalizeDriver trims and canonicalizes the lookup fields and fills the
// display variants from the submitted casing when they are still empty.
// Display variants are never overwritten on later edits.
func NormalizeDriver(d *models.Driver) {
	lastName := strings.TrimSpace(d.LastName)
	firstName := strings.TrimSpace(d.FirstName)

	if d.DisplayLastName == "" {
		d.DisplayLastName = lastName
	}
	if d.DisplayFirstName == "" {
		d.DisplayFirstName = firstName
	}

	d.ERPID = strings.TrimSpace(d.ERPID)
	d.LastName = CanonicalLastName(lastName)
	d.FirstName = CanonicalFirstName(firstName)
}

// ValidateDriver checks every lifecycle invariant on a driver record and
// returns all violations. The zero return means the record may be saved.
//
// A leave date equal to today still permits actif_p=true; only a leave
// date strictly in the past forces the driver inactive.
func ValidateDriver(d *models.Driver, today time.Time) Errors {
	var errs Errors
	today = DateOnly(today)

	if d.ERPID == "" {
		errs.Add("erp_id", "L'identifiant ERP est obligatoire.")
	}
	if d.LastName == "" {
		errs.Add("nom", "Le nom est obligatoire.")
	}
	if d.FirstName == "" {
		errs.Add("prenom", "Le prénom est obligatoire.")
	}

	hire := DateOnly(d.HireDate)
	if d.HireDate.IsZero() {
		errs.Add("date_entree", "La date d'entrée est obligatoire.")
	} else if hire.After(today) {
		errs.Add("date_entree", "La date d'entrée ne peut pas être dans le futur.")
	}

	if d.BirthDate != nil {
		birth := DateOnly(*d.BirthDate)
		if birth.After(today) {
			errs.Add("date_naissance", "La date de naissance ne peut pas être dans le futur.")
		}
		if !d.HireDate.IsZero() && !birth.Before(hire) {
			errs.Add("date_naissance", "La date de naissance doit précéder la date d'entrée.")
		}
	}

	if d.LeaveDate != nil {
		leave := DateOnly(*d.LeaveDate)
		if !d.HireDate.IsZero() && !leave.After(hire) {
			errs.Add("date_sortie", "La date de sortie doit être postérieure à la date d'entrée.")
		}
		if leave.After(today) {
			errs.Add("date_sortie", "La date de sortie ne peut pas être dans le futur.")
		}
		if d.IsActive && leave.Before(today) {
			errs.Add("actif_p", "Un conducteur avec une date de sortie passée ne peut pas être actif.")
		}
	} else if !d.IsActive {
		errs.Add("date_sortie", "Un conducteur inactif doit avoir une date de sortie.")
	}

	return errs
}
