package wizard

import "github.com/nurpe/quotation-service/internal/model"

type optionSource int

const (
	noOptions optionSource = iota
	transportModeOptions
	incotermOptions
	scopeOptions
	quotationTypeOptions
	countryOptions
	originCityOptions
	destinationCityOptions
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type FieldSpec struct {
	Name    string
	Kind    FieldKind
	Section string
	Rules   string
	Consent bool
	options optionSource
}

type stepDef struct {
	step   model.Step
	fields []FieldSpec
	next   model.Step
}

// stepTable drives rendering, validation and forward navigation. Rules use
// validator tags and mirror the constraints of the original HTML inputs.
var stepTable = map[model.Step]stepDef{
	model.StepRouting: {
		step: model.StepRouting,
		next: model.StepCargo,
		fields: []FieldSpec{
			{Name: "transportMode", Kind: KindRadio, Section: "section.scope", options: transportModeOptions},
			{Name: "incoterm", Kind: KindSelect, Section: "section.scope", Rules: "required", options: incotermOptions},
			{Name: "scope", Kind: KindSelect, Section: "section.scope", Rules: "required", options: scopeOptions},
			{Name: "originCountry", Kind: KindSelect, Section: "section.origin", options: countryOptions},
			{Name: "originCity", Kind: KindText, Section: "section.origin", Rules: "required", options: originCityOptions},
			{Name: "originDate", Kind: KindDate, Section: "section.origin", Rules: "required,datetime=2006-01-02"},
			{Name: "destinationCountry", Kind: KindSelect, Section: "section.destination", options: countryOptions},
			{Name: "destinationCity", Kind: KindText, Section: "section.destination", Rules: "required", options: destinationCityOptions},
			{Name: "destinationDate", Kind: KindDate, Section: "section.destination", Rules: "required,datetime=2006-01-02"},
		},
	},
	model.StepCargo: {
		step: model.StepCargo,
		next: model.StepContact,
		fields: []FieldSpec{
			{Name: "QuotationType", Kind: KindSelect, Section: "section.cargo", Rules: "required", options: quotationTypeOptions},
			{Name: "volume", Kind: KindNumber, Section: "section.cargo", Rules: "required,numeric"},
			{Name: "weight", Kind: KindNumber, Section: "section.cargo", Rules: "required,numeric"},
			{Name: "temperatureControlled", Kind: KindCheckbox, Section: "section.cargo"},
			{Name: "dangerousGoods", Kind: KindCheckbox, Section: "section.cargo"},
			{Name: "customsFormalities", Kind: KindCheckbox, Section: "section.cargo"},
			{Name: "insurance", Kind: KindCheckbox, Section: "section.cargo"},
			{Name: "comment", Kind: KindTextarea, Section: "section.cargo"},
			{Name: "files", Kind: KindFile, Section: "section.documents"},
		},
	},
	model.StepContact: {
		step: model.StepContact,
		next: model.StepCompany,
		fields: []FieldSpec{
			{Name: "firstName", Kind: KindText, Section: "section.contact", Rules: "required"},
			{Name: "lastName", Kind: KindText, Section: "section.contact", Rules: "required"},
			{Name: "phoneCode", Kind: KindText, Section: "section.contact", Rules: "required"},
			{Name: "phoneNumber", Kind: KindText, Section: "section.contact", Rules: "required"},
			{Name: "email", Kind: KindEmail, Section: "section.contact", Rules: "required,email"},
			{Name: "jobTitle", Kind: KindText, Section: "section.contact", Rules: "required"},
		},
	},
	model.StepCompany: {
		step: model.StepCompany,
		next: model.StepReview,
		fields: []FieldSpec{
			{Name: "companyName", Kind: KindText, Section: "section.company", Rules: "required"},
			{Name: "companyAddress", Kind: KindText, Section: "section.company", Rules: "required"},
			{Name: "postalCode", Kind: KindText, Section: "section.company", Rules: "required"},
			{Name: "companyCity", Kind: KindText, Section: "section.company", Rules: "required"},
			{Name: "companyCountry", Kind: KindText, Section: "section.company", Rules: "required"},
			{Name: "website", Kind: KindText, Section: "section.company"},
		},
	},
	model.StepReview: {
		step: model.StepReview,
		next: model.StepConfirmation,
		fields: []FieldSpec{
			{Name: "declarationCertified", Kind: KindCheckbox, Rules: "required", Consent: true},
			{Name: "dataProcessingConsent", Kind: KindCheckbox, Consent: true},
			{Name: "marketingConsent", Kind: KindCheckbox, Consent: true},
		},
	},
}

// fields returns the step's inputs as the variant presents them.
func (m *Machine) fields(step model.Step) []FieldSpec {
	def, ok := stepTable[step]
	if !ok {
		return nil
	}
	out := make([]FieldSpec, 0, len(def.fields))
	for _, f := range def.fields {
		if f.Consent && !m.variant.Consent {
			continue
		}
		out = append(out, m.adapt(f))
	}
	return out
}

func (m *Machine) adapt(f FieldSpec) FieldSpec {
	if f.options == originCityOptions || f.options == destinationCityOptions {
		if m.variant.CityInput == model.CityInputList {
			f.Kind = KindSelect
		} else {
			f.options = noOptions
		}
	}
	return f
}

// findField finds the field named name anywhere in the wizard.
func (m *Machine) findField(name string) (FieldSpec, bool) {
	for step := model.StepRouting; step <= model.StepReview; step++ {
		for _, f := range m.fields(step) {
			if f.Name == name {
				return f, true
			}
		}
	}
	return FieldSpec{}, false
}

func (m *Machine) options(f FieldSpec, form model.FormState) []Option {
	switch f.options {
	case transportModeOptions:
		return plainOptions(m.reference.TransportModes)
	case incotermOptions:
		return plainOptions(m.reference.Incoterms)
	case scopeOptions:
		return plainOptions(m.reference.Scopes)
	case quotationTypeOptions:
		return plainOptions(m.reference.QuotationTypes)
	case countryOptions:
		out := make([]Option, 0, len(m.reference.Countries))
		for _, c := range m.reference.Countries {
			out = append(out, Option{Value: c.Code, Label: c.Name})
		}
		return out
	case originCityOptions:
		return cityOptions(m.reference.CitiesOf(form.OriginCountry))
	case destinationCityOptions:
		return cityOptions(m.reference.CitiesOf(form.DestinationCountry))
	default:
		return nil
	}
}

func plainOptions(values []string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Value: v, Label: v})
	}
	return out
}

func cityOptions(cities []model.City) []Option {
	out := make([]Option, 0, len(cities))
	for _, c := range cities {
		out = append(out, Option{Value: c.Name, Label: c.Name})
	}
	return out
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
