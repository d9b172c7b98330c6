package request

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/cradoe/crm/internal/models"
	"github.com/google/uuid"
)

// IntID reads a numeric path parameter.
func IntID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("validation failed (numeric string is expected)")
	}
	return id, nil
}

// UUID reads a UUID path parameter and returns it in canonical form.
func UUID(r *http.Request, name string) (string, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return "", fmt.Errorf("validation failed (uuid is expected)")
	}
	return id.String(), nil
}

// Pagination reads ?page= and ?limit=. Missing values take the defaults;
// values out of range are rejected rather than clamped.
func Pagination(r *http.Request) (models.Page, []string) {
	var errs []string

	page, ok := intQuery(r, "page", models.DefaultPage)
	if !ok || page < 1 {
		errs = append(errs, "page must not be less than 1")
	}

	limit, ok := intQuery(r, "limit", models.DefaultLimit)
	if !ok || limit < 1 {
		errs = append(errs, "limit must not be less than 1")
	} else if limit > models.MaxLimit {
		errs = append(errs, fmt.Sprintf("limit must not be greater than %d", models.MaxLimit))
	}

	if len(errs) > 0 {
		return models.Page{}, errs
	}

	return models.NewPage(page, limit), nil
}

func intQuery(r *http.Request, key string, fallback int) (int, bool) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return fallback, true
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
