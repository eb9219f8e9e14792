package wizard

import "github.com/nurpe/quotation-service/internal/model"

type Status string

const (
	StatusEditing    Status = "editing"
	StatusSubmitting Status = "submitting"
	StatusCompleted  Status = "completed"
)

// State is one wizard session. Values are treated as immutable: Apply
// returns a new State and leaves its input untouched.
type State struct {
	Step      model.Step      `json:"step"`
	Status    Status          `json:"status"`
	Locale    string          `json:"locale"`
	Form      model.FormState `json:"form"`
	LastError string          `json:"lastError,omitempty"`
}

func (s State) clone() State {
	out := s
	out.Form = s.Form.Clone()
	return out
}

func (s State) editing() bool {
	return s.Status == StatusEditing && s.Step >= model.StepRouting && s.Step <= model.StepReview
}
