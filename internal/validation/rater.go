package validation

import (
	"strings"
	"time"

	"github.com/mverdier/driver-management-api/internal/models"
)

// NormalizeRater mirrors NormalizeDriver for rater records.
func NormalizeRater(r *models.Rater) {
	lastName := strings.TrimSpace(r.LastName)
	firstName := strings.TrimSpace(r.FirstName)

	if r.DisplayLastName == "" {
		r.DisplayLastName = lastName
	}
	if r.DisplayFirstName == "" {
		r.DisplayFirstName = firstName
	}

	r.LastName = CanonicalLastName(lastName)
	r.FirstName = CanonicalFirstName(firstName)
}

// ValidateRater checks the rater invariants. Hire and leave dates are
// both optional; when both are present the leave date must follow the
// hire date, and neither may lie in the future.
func ValidateRater(r *models.Rater, today time.Time) Errors {
	var errs Errors
	today = DateOnly(today)

	if r.LastName == "" {
		errs.Add("nom", "Le nom est obligatoire.")
	}
	if r.FirstName == "" {
		errs.Add("prenom", "Le prénom est obligatoire.")
	}

	if r.HireDate != nil && DateOnly(*r.HireDate).After(today) {
		errs.Add("date_entree", "La date d'entrée ne peut pas être dans le futur.")
	}

	if r.LeaveDate != nil {
		leave := DateOnly(*r.LeaveDate)
		if r.HireDate != nil && !leave.After(DateOnly(*r.HireDate)) {
			errs.Add("date_sortie", "La date de sortie doit être postérieure à la date d'entrée.")
		}
	}

	return errs
}
