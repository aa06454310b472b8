package iso3166

import "strings"

// matchThreshold is the minimum word-level trigram score a subdivision
// must reach to be considered a fuzzy match.
const matchThreshold = 0.5

// maxQueryLen caps query length in runes. Bounds the work done per
// trigram comparison; no real country or subdivision name comes close.
const maxQueryLen = 256

// countryAlias maps a known historical or alternate name to a country
// code. Prefix entries match any query beginning with the text, so
// "UNITED STATES OF AMERICA THE" still resolves. Entries hold
// normalized text and are checked in order, ahead of the general
// name lookup.
type countryAlias struct {
	text   string
	prefix bool
	code   string
}

var countryAliases = []countryAlias{
	{text: "UNITED STATES", prefix: true, code: "US"},
	{text: "USA", code: "US"},
	{text: "AMERICA", code: "US"},
	{text: "UNITED KINGDOM", prefix: true, code: "GB"},
	{text: "GREAT BRITAIN", prefix: true, code: "GB"},
	{text: "UK", code: "GB"},
	{text: "TAIWAN", prefix: true, code: "TW"},
	{text: "UNITED ARAB EMIRATES", prefix: true, code: "AE"},
	{text: "UAE", code: "AE"},
	{text: "SOUTH KOREA", code: "KR"},
	{text: "NORTH KOREA", code: "KP"},
	{text: "KOREA", code: "KR"},
	{text: "CONGO", code: "CG"},
	{text: "RUSSIA", code: "RU"},
	{text: "VIETNAM", code: "VN"},
	{text: "IVORY COAST", code: "CI"},
	{text: "CZECH REPUBLIC", code: "CZ"},
	{text: "BURMA", code: "MM"},
	{text: "MACEDONIA", prefix: true, code: "MK"},
	{text: "SWAZILAND", code: "SZ"},
	{text: "CAPE VERDE", code: "CV"},
	{text: "EAST TIMOR", code: "TL"},
	{text: "HOLLAND", code: "NL"},
	{text: "THE NETHERLANDS", code: "NL"},
	{text: "THE GAMBIA", code: "GM"},
	{text: "THE BAHAMAS", code: "BS"},
	{text: "VATICAN", prefix: true, code: "VA"},
	{text: "HOLY SEE", prefix: true, code: "VA"},
	{text: "DR CONGO", code: "CD"},
	{text: "DEMOCRATIC REPUBLIC OF THE CONGO", prefix: true, code: "CD"},
	{text: "LAOS", code: "LA"},
	{text: "SYRIA", code: "SY"},
	{text: "IRAN", code: "IR"},
	{text: "BOLIVIA", code: "BO"},
	{text: "VENEZUELA", code: "VE"},
	{text: "TANZANIA", code: "TZ"},
	{text: "MOLDOVA", code: "MD"},
	{text: "BRUNEI", code: "BN"},
	{text: "PALESTINE", code: "PS"},
	{text: "CAYMANS", code: "KY"},
	{text: "FALKLANDS", code: "FK"},
}

// truncateQuery limits a query to maxQueryLen runes without splitting
// a UTF-8 sequence.
func truncateQuery(q string) string {
	if rs := []rune(q); len(rs) > maxQueryLen {
		return string(rs[:maxQueryLen])
	}
	return q
}

// ResolveSubdivision resolves free-text input to a subdivision code of
// the given country. Steps, first hit wins:
//
//  1. query prefixed with "CC-" is an existing subdivision key
//     (case-sensitive, as stored): ("MX", "YUC") -> "MX-YUC"
//  2. query itself is an existing subdivision key: ("MX", "MX-YUC")
//  3. fuzzy: the normalized query is scored against every
//     subdivision's name and variation, taking the best of the
//     word-level score and the whole-phrase Jaccard score; the best
//     candidate scoring >= 0.5 wins. Exact score ties go to the lowest
//     subdivision code. The whole-phrase comparison is what lets a
//     multi-word query like "New York" reach its own name at 1.0
//     instead of being diluted word by word.
//
// The second return is false when the country is unknown or no
// candidate clears the threshold; a miss is a normal outcome, not an
// error.
func (db *DB) ResolveSubdivision(country, query string) (string, bool) {
	cc := strings.ToUpper(strings.TrimSpace(country))
	c, ok := db.countries[cc]
	if !ok {
		return "", false
	}

	query = truncateQuery(strings.TrimSpace(query))
	if query == "" {
		return "", false
	}

	if key := cc + "-" + query; keyExists(c.Subdivisions, key) {
		return key, true
	}
	if keyExists(c.Subdivisions, query) {
		return query, true
	}

	cand := newTrigramSet(Normalize(query))
	bestScore := 0.0
	bestCode := ""
	// subEntries is sorted by code, so strictly-greater comparison
	// keeps the lowest code among exact ties.
	for _, e := range db.subEntries[cc] {
		score := scoreEntry(cand, e)
		if score >= matchThreshold && score > bestScore {
			bestScore = score
			bestCode = e.code
		}
	}
	if bestCode == "" {
		return "", false
	}
	return bestCode, true
}

// ResolveCountry resolves free-text input to a 2-letter country code.
// Steps, first hit wins: a literal alpha-2 code, the alias table, then
// exact comparison of the normalized query against each country's
// short name, ISO name (with and without its parenthetical qualifier),
// and formal full name.
//
// Countries deliberately get no trigram fallback — only exact,
// format-normalized comparison — so a near-miss like "Untied States"
// is a miss, not a guess.
func (db *DB) ResolveCountry(query string) (string, bool) {
	query = truncateQuery(query)

	if code := strings.ToUpper(strings.TrimSpace(query)); len(code) == 2 {
		if _, ok := db.countries[code]; ok {
			return code, true
		}
	}

	n := Normalize(query)
	if n == "" {
		return "", false
	}

	for _, a := range countryAliases {
		if a.prefix {
			if strings.HasPrefix(n, a.text) {
				return a.code, true
			}
		} else if n == a.text {
			return a.code, true
		}
	}

	if code, ok := db.nameToCountry[n]; ok {
		return code, true
	}
	return "", false
}

// scoreEntry scores a query's trigram set against one subdivision. The
// query is a single unsplit phrase, so word-level scoring alone would
// undervalue multi-word names: "New York" shares every word with
// "New York" yet its phrase set, space-spanning trigrams included,
// overlaps any single word only partially. Comparing against the whole
// name and variation as well makes an exact name score 1.0.
func scoreEntry(cand trigramSet, e subdivisionEntry) float64 {
	score := jaccard(cand, e.nameSet)
	if s := jaccard(cand, e.varSet); s > score {
		score = s
	}
	if s := bestWordScore(cand, e.nameWords); s > score {
		score = s
	}
	if s := bestWordScore(cand, e.varWords); s > score {
		score = s
	}
	return score
}

// keyExists reports whether key is present in subs.
func keyExists(subs map[string]Subdivision, key string) bool {
	_, ok := subs[key]
	return ok
}
