// internal/app/features/dashboard/query.go
package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dalemusser/leadpulse/internal/app/system/daterange"
	"github.com/go-playground/validator/v10"
)

// rangeQuery is the ?from=&to= pair. Both are optional yyyy-MM-dd days.
type rangeQuery struct {
	From string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" validate:"omitempty,datetime=2006-01-02"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errInvalidRange carries field-level problems for the 400 body.
type errInvalidRange struct {
	details []string
}

func (e *errInvalidRange) Error() string {
	return "invalid date range: " + strings.Join(e.details, "; ")
}

// parseRange reads the query into a candidate. It returns nil when neither
// bound is present.
func (h *Handler) parseRange(r *http.Request) (*daterange.Candidate, error) {
	q := rangeQuery{
		From: strings.TrimSpace(r.URL.Query().Get("from")),
		To:   strings.TrimSpace(r.URL.Query().Get("to")),
	}
	if err := h.validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s must be a date like 2006-01-02", fe.Field()))
		}
		return nil, &errInvalidRange{details: details}
	}
	if q.From == "" && q.To == "" {
		return nil, nil
	}

	from, err := daterange.ParseDay(q.From, h.Loc)
	if err != nil {
		return nil, &errInvalidRange{details: []string{"from must be a date like 2006-01-02"}}
	}
	to, err := daterange.ParseDay(q.To, h.Loc)
	if err != nil {
		return nil, &errInvalidRange{details: []string{"to must be a date like 2006-01-02"}}
	}
	return &daterange.Candidate{From: from, To: to}, nil
}
