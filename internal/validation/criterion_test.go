package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mverdier/driver-management-api/internal/models"
)

func TestValidateCriterion(t *testing.T) {
	tests := []struct {
		name      string
		criterion models.RatingCriterion
		wantField string
	}{
		{
			name:      "valid range",
			criterion: models.RatingCriterion{Name: "Ponctualité", MinValue: 0, MaxValue: 10},
		},
		{
			name:      "min above max",
			criterion: models.RatingCriterion{Name: "Ponctualité", MinValue: 10, MaxValue: 5},
			wantField: "valeur_maxi",
		},
		{
			name:      "min equals max",
			criterion: models.RatingCriterion{Name: "Ponctualité", MinValue: 5, MaxValue: 5},
			wantField: "valeur_maxi",
		},
		{
			name:      "negative min",
			criterion: models.RatingCriterion{Name: "Ponctualité", MinValue: -1, MaxValue: 10},
			wantField: "valeur_mini",
		},
		{
			name:      "missing name",
			criterion: models.RatingCriterion{Name: "  ", MinValue: 0, MaxValue: 10},
			wantField: "nom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCriterion(&tt.criterion)
			if tt.wantField == "" {
				require.Empty(t, errs)
				return
			}
			require.True(t, errs.Has(tt.wantField))
		})
	}
}

func TestCanonicalFirstName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jean-pierre", "Jean-Pierre"},
		{"MARIE CLAIRE", "Marie Claire"},
		{"o'brien", "O'Brien"},
		{"  luc  ", "Luc"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, CanonicalFirstName(tt.in))
	}
}

func TestErrorsMap_FirstViolationWins(t *testing.T) {
	var errs Errors
	errs.Add("date_naissance", "first")
	errs.Add("date_naissance", "second")

	m := errs.Map()
	require.Equal(t, "first", m["date_naissance"])
}
