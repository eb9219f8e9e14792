package model

import (
	"bytes"
	"io"
)

type Step int

const (
	StepRouting      Step = 1
	StepCargo        Step = 2
	StepContact      Step = 3
	StepCompany      Step = 4
	StepReview       Step = 5
	StepConfirmation Step = 6
)

type FormState struct {
	TransportMode      string `json:"transportMode"`
	Incoterm           string `json:"incoterm"`
	Scope              string `json:"scope"`
	OriginCountry      string `json:"originCountry"`
	OriginCity         string `json:"originCity"`
	OriginDate         string `json:"originDate"`
	DestinationCountry string `json:"destinationCountry"`
	DestinationCity    string `json:"destinationCity"`
	DestinationDate    string `json:"destinationDate"`

	QuotationType         string       `json:"QuotationType"`
	Volume                string       `json:"volume"`
	Weight                string       `json:"weight"`
	TemperatureControlled bool         `json:"temperatureControlled"`
	DangerousGoods        bool         `json:"dangerousGoods"`
	CustomsFormalities    bool         `json:"customsFormalities"`
	Insurance             bool         `json:"insurance"`
	Comment               string       `json:"comment"`
	Files                 []Attachment `json:"files"`

	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneCode   string `json:"phoneCode"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	JobTitle    string `json:"jobTitle"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	PostalCode     string `json:"postalCode"`
	CompanyCity    string `json:"companyCity"`
	CompanyCountry string `json:"companyCountry"`
	Website        string `json:"website"`

	DeclarationCertified  bool `json:"declarationCertified"`
	DataProcessingConsent bool `json:"dataProcessingConsent"`
	MarketingConsent      bool `json:"marketingConsent"`
}

// Clone returns a copy of f whose file list does not alias f's.
func (f FormState) Clone() FormState {
	out := f
	if f.Files != nil {
		out.Files = make([]Attachment, len(f.Files))
		copy(out.Files, f.Files)
	}
	return out
}

type FileSource interface {
	Open() (io.ReadCloser, error)
}

// MemoryFile keeps an uploaded file's bytes in process memory.
type MemoryFile []byte

func (m MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m)), nil
}

type Attachment struct {
	Name        string     `json:"name"`
	ContentType string     `json:"type"`
	Size        int64      `json:"size"`
	Source      FileSource `json:"-"`
}

type EncodedFile struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	Content string `json:"content"`
}

// Payload is the webhook body: the form with files inlined as base64 records.
type Payload struct {
	TransportMode      string `json:"transportMode"`
	Incoterm           string `json:"incoterm"`
	Scope              string `json:"scope"`
	OriginCountry      string `json:"originCountry"`
	OriginCity         string `json:"originCity"`
	OriginDate         string `json:"originDate"`
	DestinationCountry string `json:"destinationCountry"`
	DestinationCity    string `json:"destinationCity"`
	DestinationDate    string `json:"destinationDate"`

	QuotationType         string        `json:"QuotationType"`
	Volume                string        `json:"volume"`
	Weight                string        `json:"weight"`
	TemperatureControlled bool          `json:"temperatureControlled"`
	DangerousGoods        bool          `json:"dangerousGoods"`
	CustomsFormalities    bool          `json:"customsFormalities"`
	Insurance             bool          `json:"insurance"`
	Comment               string        `json:"comment"`
	Files                 []EncodedFile `json:"files"`

	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneCode   string `json:"phoneCode"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	JobTitle    string `json:"jobTitle"`

	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	PostalCode     string `json:"postalCode"`
	CompanyCity    string `json:"companyCity"`
	CompanyCountry string `json:"companyCountry"`
	Website        string `json:"website"`

	DeclarationCertified  *bool `json:"declarationCertified,omitempty"`
	DataProcessingConsent *bool `json:"dataProcessingConsent,omitempty"`
	MarketingConsent      *bool `json:"marketingConsent,omitempty"`
}

// NewPayload copies form into a Payload. Consent keys are only emitted when
// withConsent is set.
func NewPayload(form FormState, files []EncodedFile, withConsent bool) Payload {
	if files == nil {
		files = []EncodedFile{}
	}
	p := Payload{
		TransportMode:         form.TransportMode,
		Incoterm:              form.Incoterm,
		Scope:                 form.Scope,
		OriginCountry:         form.OriginCountry,
		OriginCity:            form.OriginCity,
		OriginDate:            form.OriginDate,
		DestinationCountry:    form.DestinationCountry,
		DestinationCity:       form.DestinationCity,
		DestinationDate:       form.DestinationDate,
		QuotationType:         form.QuotationType,
		Volume:                form.Volume,
		Weight:                form.Weight,
		TemperatureControlled: form.TemperatureControlled,
		DangerousGoods:        form.DangerousGoods,
		CustomsFormalities:    form.CustomsFormalities,
		Insurance:             form.Insurance,
		Comment:               form.Comment,
		Files:                 files,
		FirstName:             form.FirstName,
		LastName:              form.LastName,
		PhoneCode:             form.PhoneCode,
		PhoneNumber:           form.PhoneNumber,
		Email:                 form.Email,
		JobTitle:              form.JobTitle,
		CompanyName:           form.CompanyName,
		CompanyAddress:        form.CompanyAddress,
		PostalCode:            form.PostalCode,
		CompanyCity:           form.CompanyCity,
		CompanyCountry:        form.CompanyCountry,
		Website:               form.Website,
	}
	if withConsent {
		declaration := form.DeclarationCertified
		processing := form.DataProcessingConsent
		marketing := form.MarketingConsent
		p.DeclarationCertified = &declaration
		p.DataProcessingConsent = &processing
		p.MarketingConsent = &marketing
	}
	return p
}
