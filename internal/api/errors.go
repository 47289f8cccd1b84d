package api

import (
	"errors"
	"strings"

	"github.com/tejusbharadwaj/mbdata/internal/models"
)

// ItemError is one entity or series the provider could not return.
type ItemError struct {
	Name    string
	Message string
}

// RetrievalError is returned when one or more items of a batch failed and
// errors are raised. Items keep the order of the request.
type RetrievalError struct {
	Items []ItemError
}

func (e *RetrievalError) Error() string {
	var b strings.Builder
	b.WriteString("failed to retrieve:")
	for _, it := range e.Items {
		b.WriteString("\n\t")
		b.WriteString(it.Name)
		b.WriteString(" error_message: ")
		b.WriteString(it.Message)
	}
	return b.String()
}

// Names lists the failed names in request order.
func (e *RetrievalError) Names() []string {
	out := make([]string, len(e.Items))
	for i, it := range e.Items {
		out[i] = it.Name
	}
	return out
}

// IsRetrievalError reports whether err carries item failures.
func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

// collect returns a RetrievalError for the error entities in entities, or
// nil when every item loaded.
func collect(entities []models.Entity) *RetrievalError {
	var items []ItemError
	for _, e := range entities {
		if e.IsError() {
			items = append(items, ItemError{Name: e.Name(), Message: e.ErrorMessage()})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &RetrievalError{Items: items}
}

func seriesEntities(series []models.Series) []models.Entity {
	out := make([]models.Entity, len(series))
	for i, s := range series {
		out[i] = s.Entity
	}
	return out
}
