package wizard

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nurpe/quotation-service/internal/model"
)

// Machine holds the immutable configuration of a wizard: the regional
// variant and the reference data its select inputs draw from.
type Machine struct {
	variant   model.Variant
	reference model.ReferenceData
	validate  *validator.Validate
}

func NewMachine(variant model.Variant, reference model.ReferenceData) *Machine {
	return &Machine{
		variant:   variant,
		reference: reference,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (m *Machine) Variant() model.Variant {
	return m.variant
}

// NewState returns a session positioned on the first step with every field
// at its default.
func (m *Machine) NewState() State {
	return State{
		Step:   model.StepRouting,
		Status: StatusEditing,
		Locale: m.variant.Locale,
		Form:   m.defaults(),
	}
}

func (m *Machine) defaults() model.FormState {
	form := model.FormState{
		PhoneCode: m.variant.DefaultPhoneCode,
		Files:     []model.Attachment{},
	}
	if len(m.reference.TransportModes) > 0 {
		form.TransportMode = m.reference.TransportModes[0]
	}
	if len(m.reference.QuotationTypes) > 0 {
		form.QuotationType = m.reference.QuotationTypes[0]
	}
	return form
}

// Apply computes the state that follows s under action a. On error the
// original state is returned unchanged.
func (m *Machine) Apply(s State, a Action) (State, error) {
	if a == nil {
		return s, fmt.Errorf("%w: nil action", ErrInvalidTransition)
	}
	next, err := a.apply(m, s.clone())
	if err != nil {
		return s, err
	}
	if _, failed := a.(SubmitFailed); !failed {
		next.LastError = ""
	}
	return next, nil
}

// Validate checks the inputs of step against their rules and option lists.
func (m *Machine) Validate(step model.Step, form model.FormState) error {
	var problems []FieldError
	for _, f := range m.fields(step) {
		switch f.Kind {
		case KindFile:
			continue
		case KindCheckbox:
			if f.Rules == "" {
				continue
			}
			if err := m.validate.Var(boolValue(form, f.Name), f.Rules); err != nil {
				problems = append(problems, FieldError{Field: f.Name, Rule: ruleOf(err)})
			}
		default:
			value := stringValue(form, f.Name)
			if f.Rules != "" {
				if err := m.validate.Var(value, f.Rules); err != nil {
					problems = append(problems, FieldError{Field: f.Name, Rule: ruleOf(err)})
					continue
				}
			}
			if value != "" && f.options != noOptions && !hasOption(m.options(f, form), value) {
				problems = append(problems, FieldError{Field: f.Name, Rule: "oneof"})
			}
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Step: step, Fields: problems}
	}
	return nil
}

func ruleOf(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return "invalid"
}
