package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nurpe/quotation-service/internal/model"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidOption     = errors.New("value is not one of the allowed options")
	ErrFileIndex         = errors.New("file index out of range")
)

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists the fields that blocked leaving a step.
type ValidationError struct {
	Step   model.Step   `json:"step"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return fmt.Sprintf("step %d: invalid fields: %s", e.Step, strings.Join(parts, ", "))
}
