// Package refdata holds the immutable lookup tables shared by the signal providers:
// city to country, country to currency and safety advisory, city to flight price index.
package refdata

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"TravelPulse/pkg/util"
)

//go:embed destinations.yaml
var embedded []byte

var (
	ErrUnknownCountry = errors.New("refdata: city references unknown country")
	ErrEmptyDataset   = errors.New("refdata: dataset has no cities")
)

// Advisory is a curated country risk rating.
type Advisory struct {
	Risk     float64 `yaml:"risk"`
	Advisory string  `yaml:"advisory"`
}

// Country is keyed by ISO 3166-1 alpha-2 code.
type Country struct {
	Code     string    `yaml:"-"`
	Currency string    `yaml:"currency"`
	Safety   *Advisory `yaml:"safety"`
}

// City is keyed by its normalized name.
type City struct {
	Name        string `yaml:"-"`
	Country     string `yaml:"country"`
	FlightIndex *int   `yaml:"flight_index"`
}

// Dataset is read-only after Load; share it by pointer.
type Dataset struct {
	countries map[string]Country
	cities    map[string]City
}

type document struct {
	Countries map[string]Country `yaml:"countries"`
	Cities    map[string]City    `yaml:"cities"`
}

// Default returns the dataset compiled into the binary.
func Default() (*Dataset, error) {
	return Parse(embedded)
}

// Load reads the dataset from path, or returns Default when path is empty.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open refdata: %w", err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read refdata: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates a YAML dataset.
func Parse(b []byte) (*Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse refdata: %w", err)
	}
	if len(doc.Cities) == 0 {
		return nil, ErrEmptyDataset
	}

	d := &Dataset{
		countries: make(map[string]Country, len(doc.Countries)),
		cities:    make(map[string]City, len(doc.Cities)),
	}
	for code, c := range doc.Countries {
		code = strings.ToUpper(strings.TrimSpace(code))
		c.Code = code
		c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
		d.countries[code] = c
	}
	for name, c := range doc.Cities {
		key := NormalizeDestination(name)
		c.Name = key
		c.Country = strings.ToUpper(strings.TrimSpace(c.Country))
		if _, ok := d.countries[c.Country]; !ok {
			return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownCountry, name, c.Country)
		}
		d.cities[key] = c
	}
	return d, nil
}

// NormalizeDestination lower-cases a free-text destination, folds whitespace and
// drops a trailing ", Country" qualifier ("Tokyo, Japan" -> "tokyo").
func NormalizeDestination(s string) string {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(util.CollapseSpaces(s))
}

// City resolves a destination to its city entry.
func (d *Dataset) City(destination string) (City, bool) {
	c, ok := d.cities[NormalizeDestination(destination)]
	return c, ok
}

// Country returns the country with the given code.
func (d *Dataset) Country(code string) (Country, bool) {
	c, ok := d.countries[strings.ToUpper(code)]
	return c, ok
}

// CountryOf resolves a destination to its country entry.
func (d *Dataset) CountryOf(destination string) (Country, bool) {
	city, ok := d.City(destination)
	if !ok {
		return Country{}, false
	}
	return d.Country(city.Country)
}

// Cities returns the number of known cities.
func (d *Dataset) Cities() int { return len(d.cities) }
