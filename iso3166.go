// Package iso3166 maps between ISO 3166-1/2 country and subdivision
// codes and their human-readable names, with fuzzy matching that
// tolerates spelling variation, diacritics, abbreviations, and
// alternate forms ("YucatAN" -> "MX-YUC").
//
// The reference dataset is embedded and loaded once; every lookup and
// resolution operation is a pure function over that immutable state and
// is safe for unsynchronized concurrent use.
package iso3166

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Config contains configuration options for DB initialization.
type Config struct {
	DatasetJSON []byte // raw dataset (default: the embedded data/iso3166.json)
}

// Option is a functional option for configuring a DB.
type Option func(*Config)

// WithDatasetJSON substitutes a custom dataset for the embedded one.
// The data must follow the same schema: a JSON object keyed by 2-letter
// country code.
func WithDatasetJSON(raw []byte) Option {
	return func(c *Config) {
		c.DatasetJSON = raw
	}
}

func defaultConfig() *Config {
	return &Config{DatasetJSON: datasetJSON}
}

// DB is the loaded reference dataset plus its derived lookup indexes.
// Read-only after New returns; safe for concurrent use.
type DB struct {
	countries     map[string]Country
	countryCodes  []string                      // sorted country codes
	nameToCountry map[string]string             // normalized name form -> country code
	subEntries    map[string][]subdivisionEntry // country code -> subdivisions sorted by code
	territories   map[string]string             // subdivision code -> its own country code
}

// New loads the dataset and builds the lookup indexes.
//
// Example:
//
//	db, err := iso3166.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	code, ok := db.ResolveSubdivision("MX", "Yucatán")
func New(opts ...Option) (*DB, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return loadDataset(cfg.DatasetJSON)
}

// Singleton for the embedded dataset.
var (
	defaultDB     *DB
	defaultDBOnce sync.Once
	defaultDBErr  error
)

// Default returns a shared DB backed by the embedded dataset,
// initializing it on first call.
func Default() (*DB, error) {
	defaultDBOnce.Do(func() {
		defaultDB, defaultDBErr = New()
	})
	return defaultDB, defaultDBErr
}

// Country returns the record for a 2-letter country code.
// The code is case-insensitive.
func (db *DB) Country(code string) (Country, bool) {
	c, ok := db.countries[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// CountryName returns the display name for a country code.
func (db *DB) CountryName(code string) (string, bool) {
	c, ok := db.Country(code)
	return c.ShortName, ok
}

// CountryFullName returns the formal long-form name for a country code.
func (db *DB) CountryFullName(code string) (string, bool) {
	c, ok := db.Country(code)
	return c.FullName, ok
}

// CountryCodes returns all country codes in ascending order.
// The returned slice must not be modified.
func (db *DB) CountryCodes() []string {
	return db.countryCodes
}

// IsCountry reports whether code is a known 2-letter country code.
func (db *DB) IsCountry(code string) bool {
	_, ok := db.Country(code)
	return ok
}

// Subdivision returns the record for a full subdivision code such as
// "MX-YUC". The code is case-insensitive.
func (db *DB) Subdivision(code string) (Subdivision, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	cc, _, found := strings.Cut(code, "-")
	if !found {
		return Subdivision{}, false
	}
	c, ok := db.countries[cc]
	if !ok {
		return Subdivision{}, false
	}
	sub, ok := c.Subdivisions[code]
	return sub, ok
}

// SubdivisionName returns the canonical name for a subdivision code.
func (db *DB) SubdivisionName(code string) (string, bool) {
	sub, ok := db.Subdivision(code)
	return sub.Name, ok
}

// SubdivisionCategory returns the administrative category ("state",
// "province", ...) for a subdivision code.
func (db *DB) SubdivisionCategory(code string) (string, bool) {
	sub, ok := db.Subdivision(code)
	return sub.Category, ok
}

// Subdivisions returns a country's subdivisions keyed by code.
// The returned map is shared dataset state and must not be modified.
func (db *DB) Subdivisions(country string) map[string]Subdivision {
	c, ok := db.Country(country)
	if !ok {
		return nil
	}
	return c.Subdivisions
}

// SubdivisionCodes returns a country's subdivision codes in ascending
// order. The returned slice must not be modified.
func (db *DB) SubdivisionCodes(country string) []string {
	entries := db.subEntries[strings.ToUpper(strings.TrimSpace(country))]
	codes := make([]string, len(entries))
	for i, e := range entries {
		codes[i] = e.code
	}
	return codes
}

// IsSubdivision reports whether code is a known subdivision code.
func (db *DB) IsSubdivision(code string) bool {
	_, ok := db.Subdivision(code)
	return ok
}

// Territory returns the independent top-level country code held by a
// subdivision, when it has one: Territory("US-PR") is ("PR", true).
func (db *DB) Territory(subCode string) (string, bool) {
	cc, ok := db.territories[strings.ToUpper(strings.TrimSpace(subCode))]
	return cc, ok
}

// IsTerritory reports whether a subdivision also holds its own
// top-level country code.
func (db *DB) IsTerritory(subCode string) bool {
	_, ok := db.Territory(subCode)
	return ok
}

// Validation thresholds for dataset integrity checks.
const (
	minCountryCount     = 240 // full ISO 3166-1 alpha-2 list has 249 entries
	minSubdivisionCount = 250
)

// knownSubdivisions are known-answer resolutions used to validate the
// dataset and resolver end to end.
var knownSubdivisions = []struct {
	country, query, want string
}{
	{"MX", "Veracruz", "MX-VER"},
	{"MX", "Yucatán", "MX-YUC"},
	{"US", "Texas", "US-TX"},
	{"IE", "Wicklow", "IE-WW"},
	{"CA", "Quebec", "CA-QC"},
	{"DE", "Bavaria", "DE-BY"},
}

// knownCountries are known-answer country resolutions.
var knownCountries = []struct {
	query, want string
}{
	{"United States of America", "US"},
	{"Great Britain", "GB"},
	{"México", "MX"},
	{"Ireland", "IE"},
	{"Côte d'Ivoire", "CI"},
}

// ValidateDataset loads the embedded dataset and performs integrity and
// functional checks. Returns an error describing the first failure.
func ValidateDataset() error {
	db, err := New()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	if got := len(db.countryCodes); got < minCountryCount {
		return fmt.Errorf("country count too low: got %d, want >= %d", got, minCountryCount)
	}

	subCount := 0
	for _, entries := range db.subEntries {
		subCount += len(entries)
	}
	if subCount < minSubdivisionCount {
		return fmt.Errorf("subdivision count too low: got %d, want >= %d", subCount, minSubdivisionCount)
	}

	for _, tc := range knownSubdivisions {
		got, ok := db.ResolveSubdivision(tc.country, tc.query)
		if !ok || got != tc.want {
			return fmt.Errorf("ResolveSubdivision(%q, %q) = %q, %v, want %q", tc.country, tc.query, got, ok, tc.want)
		}
	}
	for _, tc := range knownCountries {
		got, ok := db.ResolveCountry(tc.query)
		if !ok || got != tc.want {
			return fmt.Errorf("ResolveCountry(%q) = %q, %v, want %q", tc.query, got, ok, tc.want)
		}
	}

	// Every territory's country code must itself resolve.
	for _, subCode := range db.sortedTerritoryCodes() {
		if cc := db.territories[subCode]; !db.IsCountry(cc) {
			return fmt.Errorf("territory %s points at unknown country %s", subCode, cc)
		}
	}
	return nil
}

// sortedTerritoryCodes returns the territory subdivision codes in
// ascending order, for stable reporting.
func (db *DB) sortedTerritoryCodes() []string {
	codes := make([]string, 0, len(db.territories))
	for code := range db.territories {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
