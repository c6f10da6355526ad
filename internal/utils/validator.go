// internal/utils/validator.go
package utils

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jrvaldez/product-catalog/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// ValidateProduct runs the full payload check: struct tags plus the date
// rules that tags cannot express. Returns nil when the product is valid.
func ValidateProduct(p *models.Product, now time.Time) *models.APIError {
	var violations []models.FieldViolation

	if err := validate.Struct(p); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range validationErrs {
				violations = append(violations, models.FieldViolation{
					Property:    jsonField(e.Field()),
					Constraints: map[string]string{e.Tag(): validationMessage(e)},
				})
			}
		}
	}

	if p.DateRelease != "" {
		if release, err := time.Parse(models.DateLayout, p.DateRelease); err == nil {
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			if release.Before(today) {
				violations = append(violations, models.FieldViolation{
					Property:    "date_release",
					Constraints: map[string]string{"minDate": "date_release must be on or after the current date"},
				})
			} else if p.DateRevision != "" && p.DateRevision != models.RevisionDate(p.DateRelease) {
				violations = append(violations, models.FieldViolation{
					Property:    "date_revision",
					Constraints: map[string]string{"oneYearAfter": "date_revision must be exactly one year after date_release"},
				})
			}
		}
	}

	if len(violations) == 0 {
		return nil
	}

	return &models.APIError{
		Name:    models.ErrNameValidation,
		Message: "Invalid product payload",
		Errors:  violations,
	}
}

func validationMessage(e validator.FieldError) string {
	field := jsonField(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "datetime":
		return field + " must be a valid date in YYYY-MM-DD format"
	default:
		return field + " is invalid"
	}
}

// jsonField maps a struct field name to its wire name.
func jsonField(name string) string {
	switch name {
	case "ID":
		return "id"
	case "DateRelease":
		return "date_release"
	case "DateRevision":
		return "date_revision"
	default:
		return strings.ToLower(name)
	}
}
