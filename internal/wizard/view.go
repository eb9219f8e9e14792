package wizard

import (
	"fmt"

	"github.com/nurpe/quotation-service/internal/locale"
	"github.com/nurpe/quotation-service/internal/model"
)

type ProgressItem struct {
	Step    model.Step `json:"step"`
	Title   string     `json:"title"`
	Checked bool       `json:"checked"`
	Active  bool       `json:"active"`
}

type FieldView struct {
	Name        string    `json:"name"`
	Kind        FieldKind `json:"kind"`
	Label       string    `json:"label"`
	Section     string    `json:"section,omitempty"`
	Required    bool      `json:"required"`
	Value       string    `json:"value,omitempty"`
	Checked     bool      `json:"checked,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []Option  `json:"options,omitempty"`
}

type FileView struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Size  int64  `json:"size"`
	Label string `json:"label"`
}

type Confirmation struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Browse  string `json:"browse"`
	Home    string `json:"home"`
	Restart string `json:"restart"`
}

// View is what a client needs to draw the current step.
type View struct {
	Title        string         `json:"title"`
	Locale       string         `json:"locale"`
	Step         model.Step     `json:"step"`
	StepTitle    string         `json:"stepTitle"`
	Status       Status         `json:"status"`
	Submitting   bool           `json:"submitting"`
	Progress     []ProgressItem `json:"progress,omitempty"`
	Fields       []FieldView    `json:"fields,omitempty"`
	Files        []FileView     `json:"files,omitempty"`
	Summary      *model.Summary `json:"summary,omitempty"`
	Confirmation *Confirmation  `json:"confirmation,omitempty"`
	CanGoBack    bool           `json:"canGoBack"`
	CanSubmit    bool           `json:"canSubmit"`
	Error        string         `json:"error,omitempty"`
}

func (m *Machine) Render(s State, labels locale.Labels) View {
	view := View{
		Title:      labels.Get("title"),
		Locale:     s.Locale,
		Step:       s.Step,
		StepTitle:  labels.Get(fmt.Sprintf("step.%d", s.Step)),
		Status:     s.Status,
		Submitting: s.Status == StatusSubmitting,
		Error:      s.LastError,
		CanGoBack:  s.Status == StatusEditing && s.Step > model.StepRouting && s.Step <= model.StepReview,
		CanSubmit:  s.Status == StatusEditing && s.Step == model.StepReview,
	}

	if s.Step == model.StepConfirmation {
		view.Confirmation = &Confirmation{
			Title:   labels.Get("confirm.title"),
			Body:    labels.Get("confirm.body"),
			Browse:  labels.Get("confirm.browse"),
			Home:    labels.Get("confirm.home"),
			Restart: labels.Get("confirm.restart"),
		}
		return view
	}

	for step := model.StepRouting; step <= model.StepReview; step++ {
		view.Progress = append(view.Progress, ProgressItem{
			Step:    step,
			Title:   labels.Get(fmt.Sprintf("step.%d", step)),
			Checked: s.Step >= step,
			Active:  s.Step == step,
		})
	}

	for _, f := range m.fields(s.Step) {
		fv := FieldView{
			Name:     f.Name,
			Kind:     f.Kind,
			Label:    labels.Get("field." + f.Name),
			Required: f.Rules != "",
		}
		if f.Section != "" {
			fv.Section = labels.Get(f.Section)
		}
		switch f.Kind {
		case KindCheckbox:
			fv.Checked = boolValue(s.Form, f.Name)
		case KindFile:
		default:
			fv.Value = stringValue(s.Form, f.Name)
		}
		if f.options != noOptions {
			fv.Options = m.options(f, s.Form)
			if f.Kind == KindSelect {
				fv.Placeholder = labels.Get("option.placeholder")
			}
		}
		view.Fields = append(view.Fields, fv)
	}

	if s.Step == model.StepCargo || s.Step == model.StepReview {
		for i, file := range s.Form.Files {
			view.Files = append(view.Files, FileView{
				Index: i,
				Name:  file.Name,
				Type:  file.ContentType,
				Size:  file.Size,
				Label: fmt.Sprintf("%s (%s)", file.Name, formatKB(file.Size, labels)),
			})
		}
	}

	if s.Step == model.StepReview {
		summary := m.Summarize(s.Form, labels)
		view.Summary = &summary
	}
	return view
}

func formatKB(size int64, labels locale.Labels) string {
	return fmt.Sprintf("%.1f %s", float64(size)/1024, labels.Get("unit.kb"))
}
