package validation

import (
	"strings"

	"github.com/mverdier/driver-management-api/internal/models"
)

// ValidateCriterion checks a rating criterion: the value range must be
// non-negative and strictly increasing.
func ValidateCriterion(c *models.RatingCriterion) Errors {
	var errs Errors

	if strings.TrimSpace(c.Name) == "" {
		errs.Add("nom", "Le nom est obligatoire.")
	}
	if c.MinValue < 0 {
		errs.Add("valeur_mini", "La valeur minimale ne peut pas être négative.")
	}
	if c.MinValue >= c.MaxValue {
		errs.Add("valeur_maxi", "La valeur maximale doit être strictement supérieure à la valeur minimale.")
	}

	return errs
}
