package iso3166

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSubdivision(t *testing.T) {
	db, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name    string
		country string
		query   string
		want    string
		wantOK  bool
	}{
		{"exact name", "MX", "Veracruz", "MX-VER", true},
		{"case and accent insensitive", "MX", "YucatAN", "MX-YUC", true},
		{"abbreviation in query", "IE", "Co. Wicklow", "IE-WW", true},
		{"plain county name", "IE", "Wicklow", "IE-WW", true},
		{"local code", "MX", "YUC", "MX-YUC", true},
		{"full code as query", "MX", "MX-YUC", "MX-YUC", true},
		{"lowercase country argument", "mx", "Veracruz", "MX-VER", true},
		{"matches variation", "MX", "Michoacán", "MX-MIC", true},
		{"matches english variation", "DE", "Bavaria", "DE-BY", true},
		{"numeric local code", "AT", "9", "AT-9", true},
		{"numeric subdivision by name", "AT", "Vienna", "AT-9", true},
		{"multi-word name", "US", "New Hampshire", "US-NH", true},
		{"multi-word name of short words", "US", "New York", "US-NY", true},
		{"lowercase multi-word name", "US", "rhode island", "US-RI", true},
		{"three-word name", "AU", "New South Wales", "AU-NSW", true},
		{"single word of multi-word name", "US", "Virginia", "US-VA", true},
		{"typo within threshold", "US", "Texass", "US-TX", true},
		{"cross-country code", "CA", "US-TX", "", false},
		{"below threshold", "MX", "Not a subdivision.", "", false},
		{"unknown country", "XX", "Texas", "", false},
		{"empty query", "MX", "", "", false},
		{"whitespace query", "MX", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := db.ResolveSubdivision(tt.country, tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSubdivisionTieBreak(t *testing.T) {
	db, err := Default()
	require.NoError(t, err)

	// "Washington" scores 1.0 against both US-DC (variation
	// "Washington DC") and US-WA (name "Washington"); ties go to the
	// lowest code.
	got, ok := db.ResolveSubdivision("US", "Washington")
	require.True(t, ok)
	assert.Equal(t, "US-DC", got)
}

func TestResolveSubdivisionExactKeyShortCircuits(t *testing.T) {
	db, err := Default()
	require.NoError(t, err)

	// An existing key wins before any scoring happens, verbatim.
	got, ok := db.ResolveSubdivision("US", "US-TX")
	require.True(t, ok)
	assert.Equal(t, "US-TX", got)

	// Exact key lookup is case-sensitive as stored; a lowercase local
	// code falls through to fuzzy matching and misses.
	_, ok = db.ResolveSubdivision("MX", "yuc")
	assert.False(t, ok)
}

func TestResolveCountry(t *testing.T) {
	db, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name   string
		query  string
		want   string
		wantOK bool
	}{
		{"alpha-2 code", "MX", "MX", true},
		{"lowercase code", "de", "DE", true},
		{"short name", "Mexico", "MX", true},
		{"accented short name", "México", "MX", true},
		{"iso name with qualifier", "Netherlands (the)", "NL", true},
		{"full formal name", "the United Mexican States", "MX", true},
		{"alias prefix", "United States of America", "US", true},
		{"alias prefix with trailing qualifier", "United States of America (the)", "US", true},
		{"historical alias", "Great Britain", "GB", true},
		{"alias is case insensitive", "great britain", "GB", true},
		{"taiwan prefix", "Taiwan, Province of China", "TW", true},
		{"exact alias", "USA", "US", true},
		{"ivory coast alias", "Ivory Coast", "CI", true},
		{"renamed country alias", "Swaziland", "SZ", true},
		{"apostrophe name", "Côte d'Ivoire", "CI", true},
		{"unknown", "Atlantis", "", false},
		{"empty", "", "", false},
		{"unknown code shape", "ZZ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := db.ResolveCountry(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveCountryNeverFuzzy(t *testing.T) {
	db, err := Default()
	require.NoError(t, err)

	// Subdivisions get trigram matching; countries only get exact,
	// format-normalized comparison. Near-misses must miss.
	for _, q := range []string{"Untied States", "Mexcio", "Grmany", "Irland"} {
		if got, ok := db.ResolveCountry(q); ok {
			t.Errorf("ResolveCountry(%q) = %q, want a miss", q, got)
		}
	}

	// The same typo class resolves fine as a subdivision query.
	got, ok := db.ResolveSubdivision("US", "Texass")
	require.True(t, ok)
	assert.Equal(t, "US-TX", got)
}

func TestTerritory(t *testing.T) {
	db, err := Default()
	require.NoError(t, err)

	cc, ok := db.Territory("US-PR")
	require.True(t, ok)
	assert.Equal(t, "PR", cc)
	assert.True(t, db.IsTerritory("us-gu"))

	// Shares a name with country GE but not its code.
	assert.False(t, db.IsTerritory("US-GA"))
	assert.False(t, db.IsTerritory("US-TX"))
	assert.False(t, db.IsTerritory("CA-NL"))

	want := map[string]string{
		"US-AS": "AS", "US-GU": "GU", "US-MP": "MP",
		"US-PR": "PR", "US-UM": "UM", "US-VI": "VI",
	}
	assert.Equal(t, want, db.territories)
}

func TestResolveConcurrently(t *testing.T) {
	db, err := Default()
	require.NoError(t, err)

	queries := []struct{ country, query, want string }{
		{"MX", "Yucatán", "MX-YUC"},
		{"US", "Texas", "US-TX"},
		{"IE", "Co. Wicklow", "IE-WW"},
		{"DE", "Bavaria", "DE-BY"},
		{"CA", "Quebec", "CA-QC"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, q := range queries {
				got, ok := db.ResolveSubdivision(q.country, q.query)
				if !ok || got != q.want {
					t.Errorf("ResolveSubdivision(%q, %q) = %q, %v, want %q", q.country, q.query, got, ok, q.want)
				}
				if code, ok := db.ResolveCountry(q.country); !ok || code != q.country {
					t.Errorf("ResolveCountry(%q) = %q, %v", q.country, code, ok)
				}
			}
		}()
	}
	wg.Wait()
}

func TestTruncateQuery(t *testing.T) {
	long := strings.Repeat("é", maxQueryLen+50)
	got := truncateQuery(long)
	if n := len([]rune(got)); n != maxQueryLen {
		t.Errorf("truncateQuery kept %d runes, want %d", n, maxQueryLen)
	}
	if truncateQuery("Texas") != "Texas" {
		t.Error("truncateQuery modified a short query")
	}
}
