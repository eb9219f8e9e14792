package wizard

import (
	"fmt"
	"reflect"

	"github.com/nurpe/quotation-service/internal/model"
)

type Action interface {
	apply(m *Machine, s State) (State, error)
}

// ChangeField writes a text-like input. Changing a country clears the city
// that depends on it.
type ChangeField struct {
	Name  string
	Value string
}

func (a ChangeField) apply(m *Machine, s State) (State, error) {
	if !s.editing() {
		return s, ErrInvalidTransition
	}
	field, ref, err := m.input(a.Name, reflect.String)
	if err != nil {
		return s, err
	}
	if a.Value != "" && field.options != noOptions && !hasOption(m.options(field, s.Form), a.Value) {
		return s, fmt.Errorf("%w: %s=%q", ErrInvalidOption, a.Name, a.Value)
	}

	previous := stringValue(s.Form, a.Name)
	setString(&s.Form, ref, a.Value)
	if city, ok := dependentCity[a.Name]; ok && previous != a.Value {
		cityRef, _ := lookupField(city)
		setString(&s.Form, cityRef, "")
	}
	return s, nil
}

// ToggleField writes a checkbox input.
type ToggleField struct {
	Name    string
	Checked bool
}

func (a ToggleField) apply(m *Machine, s State) (State, error) {
	if !s.editing() {
		return s, ErrInvalidTransition
	}
	_, ref, err := m.input(a.Name, reflect.Bool)
	if err != nil {
		return s, err
	}
	setBool(&s.Form, ref, a.Checked)
	return s, nil
}

func (m *Machine) input(name string, kind reflect.Kind) (FieldSpec, fieldRef, error) {
	ref, ok := lookupField(name)
	if !ok || ref.kind != kind {
		return FieldSpec{}, fieldRef{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	field, ok := m.findField(name)
	if !ok {
		return FieldSpec{}, fieldRef{}, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return field, ref, nil
}

// AddFiles appends to the attachment list.
type AddFiles struct {
	Files []model.Attachment
}

func (a AddFiles) apply(_ *Machine, s State) (State, error) {
	if !s.editing() {
		return s, ErrInvalidTransition
	}
	s.Form.Files = append(s.Form.Files, a.Files...)
	return s, nil
}

type RemoveFile struct {
	Index int
}

func (a RemoveFile) apply(_ *Machine, s State) (State, error) {
	if !s.editing() {
		return s, ErrInvalidTransition
	}
	if a.Index < 0 || a.Index >= len(s.Form.Files) {
		return s, fmt.Errorf("%w: %d", ErrFileIndex, a.Index)
	}
	files := make([]model.Attachment, 0, len(s.Form.Files)-1)
	files = append(files, s.Form.Files[:a.Index]...)
	files = append(files, s.Form.Files[a.Index+1:]...)
	s.Form.Files = files
	return s, nil
}

// Next submits one of the data-entry steps 1..4.
type Next struct{}

func (Next) apply(m *Machine, s State) (State, error) {
	if !s.editing() || s.Step >= model.StepReview {
		return s, ErrInvalidTransition
	}
	if err := m.Validate(s.Step, s.Form); err != nil {
		return s, err
	}
	s.Step = stepTable[s.Step].next
	return s, nil
}

type Back struct{}

func (Back) apply(_ *Machine, s State) (State, error) {
	if !s.editing() {
		return s, ErrInvalidTransition
	}
	if s.Step > model.StepRouting {
		s.Step--
	}
	return s, nil
}

// BeginSubmit moves the review step into the submitting state. While
// submitting every other action except the outcome is rejected.
type BeginSubmit struct{}

func (BeginSubmit) apply(m *Machine, s State) (State, error) {
	if !s.editing() || s.Step != model.StepReview {
		return s, ErrInvalidTransition
	}
	if err := m.Validate(s.Step, s.Form); err != nil {
		return s, err
	}
	s.Status = StatusSubmitting
	return s, nil
}

type SubmitSucceeded struct{}

func (SubmitSucceeded) apply(_ *Machine, s State) (State, error) {
	if s.Status != StatusSubmitting {
		return s, ErrInvalidTransition
	}
	s.Step = model.StepConfirmation
	s.Status = StatusCompleted
	return s, nil
}

// SubmitFailed returns to the review step and keeps the message for display.
type SubmitFailed struct {
	Message string
}

func (a SubmitFailed) apply(_ *Machine, s State) (State, error) {
	if s.Status != StatusSubmitting {
		return s, ErrInvalidTransition
	}
	s.Step = model.StepReview
	s.Status = StatusEditing
	s.LastError = a.Message
	return s, nil
}

// Reset restores every default and returns to step 1. It is refused only
// while a submission is in flight.
type Reset struct{}

func (Reset) apply(m *Machine, s State) (State, error) {
	if s.Status == StatusSubmitting {
		return s, ErrInvalidTransition
	}
	fresh := m.NewState()
	if s.Locale != "" {
		fresh.Locale = s.Locale
	}
	return fresh, nil
}
