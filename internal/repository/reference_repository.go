package repository

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nurpe/quotation-service/internal/model"
)

//go:embed data/reference.json
var defaultReference []byte

var ErrNotFound = errors.New("reference entry not found")

// ReferenceRepository serves the option lists behind the wizard's select
// inputs. The data is loaded once and never mutated.
type ReferenceRepository struct {
	data      model.ReferenceData
	countries map[string]model.Country
}

// NewReferenceRepository loads the embedded dataset, or the file at path
// when path is not empty.
func NewReferenceRepository(path string) (*ReferenceRepository, error) {
	raw := defaultReference
	format := ".json"
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read reference data: %w", err)
		}
		raw = content
		format = strings.ToLower(filepath.Ext(path))
	}

	data, err := decodeReference(raw, format)
	if err != nil {
		return nil, err
	}
	return newReferenceRepository(data)
}

func newReferenceRepository(data model.ReferenceData) (*ReferenceRepository, error) {
	if err := validateReference(data); err != nil {
		return nil, err
	}

	countries := make(map[string]model.Country, len(data.Countries))
	for _, c := range data.Countries {
		countries[c.Code] = c
	}
	return &ReferenceRepository{data: data, countries: countries}, nil
}

func decodeReference(raw []byte, format string) (model.ReferenceData, error) {
	var data model.ReferenceData
	switch format {
	case ".json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return data, fmt.Errorf("decode reference json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return data, fmt.Errorf("decode reference yaml: %w", err)
		}
	default:
		return data, fmt.Errorf("unsupported reference data format %q", format)
	}
	return data, nil
}

func validateReference(data model.ReferenceData) error {
	if len(data.TransportModes) == 0 {
		return errors.New("reference data: transportModes is empty")
	}
	if len(data.QuotationTypes) == 0 {
		return errors.New("reference data: quotationTypes is empty")
	}

	codes := make(map[string]struct{}, len(data.Countries))
	for _, c := range data.Countries {
		if c.Code == "" {
			return errors.New("reference data: country without code")
		}
		if _, dup := codes[c.Code]; dup {
			return fmt.Errorf("reference data: duplicate country %q", c.Code)
		}
		codes[c.Code] = struct{}{}
	}
	for _, city := range data.Cities {
		if _, ok := codes[city.CountryCode]; !ok {
			return fmt.Errorf("reference data: city %q references unknown country %q", city.Name, city.CountryCode)
		}
	}
	return nil
}

func (r *ReferenceRepository) Reference() model.ReferenceData {
	return r.data
}

func (r *ReferenceRepository) Country(code string) (model.Country, error) {
	c, ok := r.countries[code]
	if !ok {
		return model.Country{}, ErrNotFound
	}
	return c, nil
}

// CitiesByCountry returns the cities of a known country. An unknown code is
// an error, a known country without cities yields an empty slice.
func (r *ReferenceRepository) CitiesByCountry(code string) ([]model.City, error) {
	if _, ok := r.countries[code]; !ok {
		return nil, ErrNotFound
	}
	cities := r.data.CitiesOf(code)
	if cities == nil {
		cities = []model.City{}
	}
	return cities, nil
}
