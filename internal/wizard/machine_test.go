package wizard

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nurpe/quotation-service/internal/locale"
	"github.com/nurpe/quotation-service/internal/model"
)

func testReference() model.ReferenceData {
	return model.ReferenceData{
		TransportModes: []string{"Sea", "Air", "Road"},
		Incoterms:      []string{"EXW", "FOB", "CIF"},
		Scopes:         []string{"Door to door", "Port to port"},
		QuotationTypes: []string{"FCL", "LCL"},
		Countries: []model.Country{
			{Code: "FR", Name: "France"},
			{Code: "KE", Name: "Kenya"},
		},
		Cities: []model.City{
			{Name: "Paris", CountryCode: "FR"},
			{Name: "Marseille", CountryCode: "FR"},
			{Name: "Nairobi", CountryCode: "KE"},
			{Name: "Mombasa", CountryCode: "KE"},
		},
	}
}

func frenchMachine() *Machine {
	return NewMachine(locale.DefaultFrenchVariant(), testReference())
}

func englishMachine() *Machine {
	return NewMachine(locale.DefaultEnglishVariant(), testReference())
}

func mustApply(t *testing.T, m *Machine, s State, actions ...Action) State {
	t.Helper()
	for _, a := range actions {
		next, err := m.Apply(s, a)
		if err != nil {
			t.Fatalf("apply %T: unexpected error: %v", a, err)
		}
		s = next
	}
	return s
}

func routingActions() []Action {
	return []Action{
		ChangeField{Name: "transportMode", Value: "Sea"},
		ChangeField{Name: "incoterm", Value: "FOB"},
		ChangeField{Name: "scope", Value: "Port to port"},
		ChangeField{Name: "originCountry", Value: "FR"},
		ChangeField{Name: "originCity", Value: "Paris"},
		ChangeField{Name: "originDate", Value: "2026-11-02"},
		ChangeField{Name: "destinationCountry", Value: "KE"},
		ChangeField{Name: "destinationCity", Value: "Mombasa"},
		ChangeField{Name: "destinationDate", Value: "2026-12-01"},
	}
}

func cargoActions() []Action {
	return []Action{
		ChangeField{Name: "QuotationType", Value: "LCL"},
		ChangeField{Name: "volume", Value: "12.5"},
		ChangeField{Name: "weight", Value: "3400"},
		ToggleField{Name: "insurance", Checked: true},
	}
}

func contactActions() []Action {
	return []Action{
		ChangeField{Name: "firstName", Value: "Awa"},
		ChangeField{Name: "lastName", Value: "Diallo"},
		ChangeField{Name: "phoneNumber", Value: "612345678"},
		ChangeField{Name: "email", Value: "awa.diallo@example.com"},
		ChangeField{Name: "jobTitle", Value: "Logistics manager"},
	}
}

func companyActions() []Action {
	return []Action{
		ChangeField{Name: "companyName", Value: "Diallo Import"},
		ChangeField{Name: "companyAddress", Value: "12 rue du Port"},
		ChangeField{Name: "postalCode", Value: "13002"},
		ChangeField{Name: "companyCity", Value: "Marseille"},
		ChangeField{Name: "companyCountry", Value: "France"},
	}
}

// reviewState walks a French session to the review step.
func reviewState(t *testing.T, m *Machine) State {
	t.Helper()
	s := m.NewState()
	s = mustApply(t, m, s, routingActions()...)
	s = mustApply(t, m, s, Next{})
	s = mustApply(t, m, s, cargoActions()...)
	s = mustApply(t, m, s, Next{})
	s = mustApply(t, m, s, contactActions()...)
	s = mustApply(t, m, s, Next{})
	s = mustApply(t, m, s, companyActions()...)
	s = mustApply(t, m, s, Next{})
	if s.Step != model.StepReview {
		t.Fatalf("expected review step, got %d", s.Step)
	}
	return s
}

func TestNewStateDefaults(t *testing.T) {
	s := frenchMachine().NewState()
	if s.Step != model.StepRouting || s.Status != StatusEditing {
		t.Fatalf("unexpected start position: step=%d status=%s", s.Step, s.Status)
	}
	if s.Form.TransportMode != "Sea" {
		t.Errorf("expected first transport mode, got %q", s.Form.TransportMode)
	}
	if s.Form.QuotationType != "FCL" {
		t.Errorf("expected first quotation type, got %q", s.Form.QuotationType)
	}
	if s.Form.PhoneCode != "+33" {
		t.Errorf("expected +33, got %q", s.Form.PhoneCode)
	}
	if s.Locale != "fr" {
		t.Errorf("expected locale fr, got %q", s.Locale)
	}
	if len(s.Form.Files) != 0 {
		t.Errorf("expected no files, got %d", len(s.Form.Files))
	}

	en := englishMachine().NewState()
	if en.Form.PhoneCode != "+44" {
		t.Errorf("expected +44 for the english variant, got %q", en.Form.PhoneCode)
	}
}

func TestCountryChangeClearsCity(t *testing.T) {
	m := frenchMachine()
	s := mustApply(t, m, m.NewState(),
		ChangeField{Name: "transportMode", Value: "Sea"},
		ChangeField{Name: "incoterm", Value: "FOB"},
		ChangeField{Name: "originCountry", Value: "FR"},
		ChangeField{Name: "originCity", Value: "Paris"},
		ChangeField{Name: "destinationCountry", Value: "FR"},
		ChangeField{Name: "destinationCity", Value: "Marseille"},
		ChangeField{Name: "originCountry", Value: "KE"},
	)

	if s.Form.OriginCountry != "KE" {
		t.Errorf("expected originCountry KE, got %q", s.Form.OriginCountry)
	}
	if s.Form.OriginCity != "" {
		t.Errorf("expected originCity to be cleared, got %q", s.Form.OriginCity)
	}
	if s.Form.DestinationCity != "Marseille" {
		t.Errorf("destination city must not be touched, got %q", s.Form.DestinationCity)
	}

	s = mustApply(t, m, s, ChangeField{Name: "destinationCountry", Value: "KE"})
	if s.Form.DestinationCity != "" {
		t.Errorf("expected destinationCity to be cleared, got %q", s.Form.DestinationCity)
	}
}

func TestChangeFieldRejections(t *testing.T) {
	m := englishMachine()
	s := m.NewState()

	tests := []struct {
		name   string
		action Action
		want   error
	}{
		{"unknown field", ChangeField{Name: "nope", Value: "x"}, ErrUnknownField},
		{"file list is not a text field", ChangeField{Name: "files", Value: "x"}, ErrUnknownField},
		{"bool through change", ChangeField{Name: "insurance", Value: "true"}, ErrUnknownField},
		{"incoterm outside list", ChangeField{Name: "incoterm", Value: "XYZ"}, ErrInvalidOption},
		{"country outside list", ChangeField{Name: "originCountry", Value: "ZZ"}, ErrInvalidOption},
		{"city without country in list mode", ChangeField{Name: "originCity", Value: "Paris"}, ErrInvalidOption},
		{"consent absent in variant", ToggleField{Name: "declarationCertified", Checked: true}, ErrUnknownField},
		{"remove missing file", RemoveFile{Index: 0}, ErrFileIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := m.Apply(s, tt.action)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !reflect.DeepEqual(next, s) {
				t.Error("state must be unchanged on error")
			}
		})
	}
}

func TestListModeCityFollowsCountry(t *testing.T) {
	m := englishMachine()
	s := mustApply(t, m, m.NewState(),
		ChangeField{Name: "originCountry", Value: "KE"},
		ChangeField{Name: "originCity", Value: "Nairobi"},
	)
	if s.Form.OriginCity != "Nairobi" {
		t.Fatalf("expected Nairobi, got %q", s.Form.OriginCity)
	}
	if _, err := m.Apply(s, ChangeField{Name: "originCity", Value: "Paris"}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected Paris to be rejected for KE, got %v", err)
	}
}

func TestNextRequiresStepFields(t *testing.T) {
	m := frenchMachine()
	s := m.NewState()

	next, err := m.Apply(s, Next{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if next.Step != model.StepRouting {
		t.Errorf("step must not move, got %d", next.Step)
	}
	got := map[string]string{}
	for _, f := range verr.Fields {
		got[f.Field] = f.Rule
	}
	for _, field := range []string{"incoterm", "scope", "originCity", "originDate", "destinationCity", "destinationDate"} {
		if got[field] != "required" {
			t.Errorf("expected %s to be required, got %q", field, got[field])
		}
	}
	if _, ok := got["originCountry"]; ok {
		t.Error("originCountry is optional")
	}

	s = mustApply(t, m, s, routingActions()...)
	s = mustApply(t, m, s, ChangeField{Name: "originDate", Value: "02/11/2026"})
	_, err = m.Apply(s, Next{})
	if !errors.As(err, &verr) || verr.Fields[0].Field != "originDate" || verr.Fields[0].Rule != "datetime" {
		t.Fatalf("expected datetime failure on originDate, got %v", err)
	}
}

func TestCargoAndContactFormats(t *testing.T) {
	m := frenchMachine()
	s := mustApply(t, m, m.NewState(), routingActions()...)
	s = mustApply(t, m, s, Next{})
	s = mustApply(t, m, s, cargoActions()...)
	s = mustApply(t, m, s, ChangeField{Name: "volume", Value: "a lot"})

	_, err := m.Apply(s, Next{})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields[0].Field != "volume" || verr.Fields[0].Rule != "numeric" {
		t.Fatalf("expected numeric failure on volume, got %v", err)
	}

	s = mustApply(t, m, s, ChangeField{Name: "volume", Value: "12"}, Next{})
	s = mustApply(t, m, s, contactActions()...)
	s = mustApply(t, m, s, ChangeField{Name: "email", Value: "not-an-email"})
	_, err = m.Apply(s, Next{})
	if !errors.As(err, &verr) || verr.Fields[0].Field != "email" || verr.Fields[0].Rule != "email" {
		t.Fatalf("expected email failure, got %v", err)
	}
}

func TestStepCounterMovesByOne(t *testing.T) {
	m := frenchMachine()
	s := reviewState(t, m)

	for want := model.StepCompany; want >= model.StepRouting; want-- {
		prev := s.Step
		s = mustApply(t, m, s, Back{})
		if s.Step != want || prev-s.Step != 1 {
			t.Fatalf("back from %d: expected %d, got %d", prev, want, s.Step)
		}
	}
	s = mustApply(t, m, s, Back{})
	if s.Step != model.StepRouting {
		t.Fatalf("back must clamp at 1, got %d", s.Step)
	}

	for want := model.StepCargo; want <= model.StepReview; want++ {
		prev := s.Step
		s = mustApply(t, m, s, Next{})
		if s.Step != want || s.Step-prev != 1 {
			t.Fatalf("next from %d: expected %d, got %d", prev, want, s.Step)
		}
	}
	if _, err := m.Apply(s, Next{}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("next on review must be refused, got %v", err)
	}
}

func TestFilesAppendAndRemove(t *testing.T) {
	m := frenchMachine()
	file := func(name string) model.Attachment {
		return model.Attachment{Name: name, ContentType: "text/plain", Size: 1, Source: model.MemoryFile("x")}
	}

	s := mustApply(t, m, m.NewState(),
		AddFiles{Files: []model.Attachment{file("a.txt"), file("b.txt")}},
		AddFiles{Files: []model.Attachment{file("c.txt"), file("d.txt")}},
	)
	before := s
	s = mustApply(t, m, s, RemoveFile{Index: 1})

	var names []string
	for _, f := range s.Form.Files {
		names = append(names, f.Name)
	}
	if !reflect.DeepEqual(names, []string{"a.txt", "c.txt", "d.txt"}) {
		t.Errorf("unexpected files after removal: %v", names)
	}
	if len(before.Form.Files) != 4 || before.Form.Files[1].Name != "b.txt" {
		t.Error("previous state must not be modified by removal")
	}
}

func TestSubmitLifecycle(t *testing.T) {
	m := frenchMachine()
	s := reviewState(t, m)

	_, err := m.Apply(s, BeginSubmit{})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields[0].Field != "declarationCertified" {
		t.Fatalf("expected declaration to be required, got %v", err)
	}

	s = mustApply(t, m, s, ToggleField{Name: "declarationCertified", Checked: true}, BeginSubmit{})
	if s.Status != StatusSubmitting || s.Step != model.StepReview {
		t.Fatalf("expected submitting on step 5, got %s/%d", s.Status, s.Step)
	}

	for _, a := range []Action{BeginSubmit{}, Back{}, Reset{}, ChangeField{Name: "comment", Value: "x"}} {
		if _, err := m.Apply(s, a); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%T while submitting: expected invalid transition, got %v", a, err)
		}
	}

	failed := mustApply(t, m, s, SubmitFailed{Message: "Flow rejected"})
	if failed.Step != model.StepReview || failed.Status != StatusEditing || failed.LastError != "Flow rejected" {
		t.Errorf("unexpected state after failure: %+v", failed)
	}
	if !reflect.DeepEqual(failed.Form, s.Form) {
		t.Error("form must be unchanged after a failed submission")
	}

	done := mustApply(t, m, s, SubmitSucceeded{})
	if done.Step != model.StepConfirmation || done.Status != StatusCompleted {
		t.Fatalf("expected confirmation, got %s/%d", done.Status, done.Step)
	}
	if !reflect.DeepEqual(done.Form, s.Form) {
		t.Error("form must be kept until an explicit reset")
	}
	if _, err := m.Apply(done, Back{}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("confirmation is terminal, got %v", err)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	m := frenchMachine()
	fresh := m.NewState()

	s := reviewState(t, m)
	s = mustApply(t, m, s,
		AddFiles{Files: []model.Attachment{{Name: "a.pdf", Source: model.MemoryFile("a")}}},
		ToggleField{Name: "declarationCertified", Checked: true},
		BeginSubmit{},
		SubmitSucceeded{},
		Reset{},
	)
	if !reflect.DeepEqual(s, fresh) {
		t.Errorf("reset must restore defaults\n got: %+v\nwant: %+v", s, fresh)
	}

	mid := mustApply(t, m, m.NewState(), routingActions()...)
	mid = mustApply(t, m, mid, Next{}, Reset{})
	if !reflect.DeepEqual(mid, fresh) {
		t.Error("reset from a middle step must restore defaults")
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	m := frenchMachine()
	s := mustApply(t, m, m.NewState(), AddFiles{Files: []model.Attachment{{Name: "a"}}})
	snapshot := s.clone()

	_ = mustApply(t, m, s,
		AddFiles{Files: []model.Attachment{{Name: "b"}}},
		ChangeField{Name: "incoterm", Value: "CIF"},
	)
	if !reflect.DeepEqual(s, snapshot) {
		t.Error("input state was modified")
	}
}
