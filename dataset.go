package iso3166

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed data/iso3166.json
var datasetJSON []byte

// Subdivision is an ISO 3166-2 administrative division record.
type Subdivision struct {
	Name      string `json:"name"`                // canonical display name
	Variation string `json:"variation,omitempty"` // alternate spelling or name
	Category  string `json:"category"`            // administrative type, e.g. "state"
}

// Country is an ISO 3166-1 record. Name carries the ISO long form,
// possibly with a parenthetical qualifier ("Gambia (the)"); ShortName
// is the usual display form; FullName is the formal long form.
type Country struct {
	Name         string                 `json:"name"`
	ShortName    string                 `json:"short_name"`
	FullName     string                 `json:"full_name"`
	Subdivisions map[string]Subdivision `json:"subdivisions,omitempty"`
}

var (
	countryCodeRe     = regexp.MustCompile(`^[A-Z]{2}$`)
	subdivisionCodeRe = regexp.MustCompile(`^[A-Z]{2}-[A-Z0-9]{1,3}$`)
)

// subdivisionEntry is the per-subdivision index derived once at load
// time: the subdivision code plus the trigram sets of its name and
// variation, both as whole phrases and word by word. The dataset never
// changes after load, so scoring against these sets is observably
// identical to recomputing them from the raw names on each query.
type subdivisionEntry struct {
	code      string
	nameSet   trigramSet
	varSet    trigramSet
	nameWords []trigramSet
	varWords  []trigramSet
}

// loadDataset decodes and validates the dataset and builds the derived
// indexes. All iteration that feeds an index runs in sorted code order
// so resolution is deterministic.
func loadDataset(raw []byte) (*DB, error) {
	countries := make(map[string]Country)
	if err := json.Unmarshal(raw, &countries); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	db := &DB{
		countries:     countries,
		countryCodes:  make([]string, 0, len(countries)),
		nameToCountry: make(map[string]string),
		subEntries:    make(map[string][]subdivisionEntry),
		territories:   make(map[string]string),
	}

	for code := range countries {
		if !countryCodeRe.MatchString(code) {
			return nil, fmt.Errorf("invalid country code %q: want 2 uppercase letters", code)
		}
		db.countryCodes = append(db.countryCodes, code)
	}
	sort.Strings(db.countryCodes)

	for _, code := range db.countryCodes {
		c := countries[code]
		if c.ShortName == "" || c.Name == "" {
			return nil, fmt.Errorf("country %s: missing name", code)
		}

		// First-registered wins on duplicate normalized names (e.g.
		// "Congo" is shared by CD and CG); sorted order keeps the
		// winner stable across runs.
		for _, name := range []string{c.ShortName, c.Name, stripParenthetical(c.Name), c.FullName} {
			n := Normalize(name)
			if n == "" {
				continue
			}
			if _, taken := db.nameToCountry[n]; !taken {
				db.nameToCountry[n] = code
			}
		}

		entries := make([]subdivisionEntry, 0, len(c.Subdivisions))
		for subCode, sub := range c.Subdivisions {
			if !subdivisionCodeRe.MatchString(subCode) {
				return nil, fmt.Errorf("country %s: invalid subdivision code %q", code, subCode)
			}
			if !strings.HasPrefix(subCode, code+"-") {
				return nil, fmt.Errorf("country %s: subdivision %q not prefixed by owning country", code, subCode)
			}
			if sub.Name == "" {
				return nil, fmt.Errorf("subdivision %s: missing name", subCode)
			}
			entries = append(entries, subdivisionEntry{
				code:      subCode,
				nameSet:   newTrigramSet(Normalize(sub.Name)),
				varSet:    newTrigramSet(Normalize(sub.Variation)),
				nameWords: wordTrigramSets(sub.Name),
				varWords:  wordTrigramSets(sub.Variation),
			})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].code < entries[j].code })
		db.subEntries[code] = entries
	}

	db.buildTerritoryIndex()
	return db, nil
}

// buildTerritoryIndex finds subdivisions that double as top-level
// countries (Puerto Rico, Guam, ...). A subdivision is a territory when
// its local code is itself a country code whose name matches the
// subdivision's name. Requiring both prevents name-only coincidences:
// US-GA "Georgia" shares a name with country GE but not its code.
func (db *DB) buildTerritoryIndex() {
	for _, code := range db.countryCodes {
		for subCode, sub := range db.countries[code].Subdivisions {
			local := strings.TrimPrefix(subCode, code+"-")
			owner, ok := db.nameToCountry[Normalize(sub.Name)]
			if ok && owner == local {
				db.territories[subCode] = local
			}
		}
	}
}
