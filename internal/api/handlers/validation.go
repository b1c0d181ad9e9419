package handlers

import (
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"reflect"
	"strings"

	"github.com/dom/riyadah-elite/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const maxBodyBytes = 1 << 20

var (
	requestValidator = newValidator()
	textPolicy       = bluemonday.StrictPolicy()
)

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and runs its validate tags.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Validation("Invalid request body")
	}
	return validate(dst)
}

func validate(dst any) error {
	err := requestValidator.Struct(dst)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return domain.Validation("Invalid request payload")
	}

	first := validationErrors[0]
	field := first.Field()
	switch first.Tag() {
	case "email":
		return domain.Validation("Invalid email format")
	case "max":
		return domain.Validation("%s must be at most %s characters", field, first.Param())
	case "min", "gte":
		return domain.Validation("%s must be at least %s", field, first.Param())
	case "url", "http_url":
		return domain.Validation("%s must be a valid URL", field)
	default:
		return domain.Validation("Invalid %s", field)
	}
}

// sanitize strips markup from free text and trims it.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := sanitize(*s)
	return &clean
}

// parseID parses a path or body id. Ids that cannot be parsed cannot
// exist, so they surface as notFound.
func parseID(raw string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}
