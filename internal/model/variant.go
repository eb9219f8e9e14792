package model

type CityInput string

const (
	CityInputFree CityInput = "free"
	CityInputList CityInput = "list"
)

// Variant carries the regional differences between the published copies of
// the quotation form.
type Variant struct {
	Locale           string
	DefaultPhoneCode string
	Consent          bool
	CityInput        CityInput
}

type Country struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

type City struct {
	Name        string `json:"name" yaml:"name"`
	CountryCode string `json:"countryCode" yaml:"countryCode"`
}

type ReferenceData struct {
	TransportModes []string  `json:"transportModes" yaml:"transportModes"`
	Incoterms      []string  `json:"incoterms" yaml:"incoterms"`
	Scopes         []string  `json:"scopes" yaml:"scopes"`
	QuotationTypes []string  `json:"quotationTypes" yaml:"quotationTypes"`
	Countries      []Country `json:"countries" yaml:"countries"`
	Cities         []City    `json:"cities" yaml:"cities"`
}

func (r ReferenceData) CountryCodes() []string {
	codes := make([]string, 0, len(r.Countries))
	for _, c := range r.Countries {
		codes = append(codes, c.Code)
	}
	return codes
}

// CitiesOf returns the cities owned by countryCode, in dataset order.
func (r ReferenceData) CitiesOf(countryCode string) []City {
	var result []City
	for _, c := range r.Cities {
		if c.CountryCode == countryCode {
			result = append(result, c)
		}
	}
	return result
}
