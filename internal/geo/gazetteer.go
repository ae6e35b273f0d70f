package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// GazetteerEntry is one curated place: canonical display name, coordinate,
// and optional extra aliases beyond what normalization already covers.
type GazetteerEntry struct {
	Name    string
	Coord   Coordinate
	Aliases []string
}

// Gazetteer is a static name-to-coordinate table for well-known German
// places. It is built once and never mutated afterwards, so concurrent
// lookups need no synchronization.
type Gazetteer struct {
	byKey map[string]GazetteerEntry
}

// germanTransliterations maps umlauts and eszett to their conventional
// ASCII transliterations, so "München" and "Muenchen" normalize to the
// same key. Applied after lowercasing.
var germanTransliterations = strings.NewReplacer(
	"ä", "ae",
	"ö", "oe",
	"ü", "ue",
	"ß", "ss",
)

// stripMarks removes combining diacritical marks (é -> e) for names the
// German transliteration table does not cover.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName produces the lookup key for a place name: composed form,
// trimmed, internal whitespace collapsed, lowercased, German
// transliteration, then generic diacritic stripping.
func NormalizeName(s string) string {
	s = norm.NFC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(s)
	s = germanTransliterations.Replace(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	return s
}

// NewGazetteer builds the lookup table from entries, expanding canonical
// names and aliases into normalized keys. Later entries never overwrite
// earlier keys, so the curated ordering is authoritative.
func NewGazetteer(entries []GazetteerEntry) *Gazetteer {
	byKey := make(map[string]GazetteerEntry, len(entries)*2)
	add := func(name string, e GazetteerEntry) {
		key := NormalizeName(name)
		if key == "" {
			return
		}
		if _, exists := byKey[key]; !exists {
			byKey[key] = e
		}
	}
	for _, e := range entries {
		add(e.Name, e)
		for _, alias := range e.Aliases {
			add(alias, e)
		}
	}
	return &Gazetteer{byKey: byKey}
}

// Lookup finds an entry by place name. The name is normalized before the
// exact-match lookup; there is no fuzzy matching at this tier.
func (g *Gazetteer) Lookup(name string) (GazetteerEntry, bool) {
	e, ok := g.byKey[NormalizeName(name)]
	return e, ok
}

// Len returns the number of distinct lookup keys.
func (g *Gazetteer) Len() int { return len(g.byKey) }

// GermanCities is the default gazetteer data set: the larger German cities
// plus a few weather-relevant smaller places, with colloquial and English
// aliases where they are in common use. Coordinates are city centers.
var GermanCities = []GazetteerEntry{
	{Name: "Berlin", Coord: Coordinate{Lat: 52.5200, Lon: 13.4050}},
	{Name: "Hamburg", Coord: Coordinate{Lat: 53.5511, Lon: 9.9937}},
	{Name: "München", Coord: Coordinate{Lat: 48.1351, Lon: 11.5820}, Aliases: []string{"Munich", "Minga"}},
	{Name: "Köln", Coord: Coordinate{Lat: 50.9375, Lon: 6.9603}, Aliases: []string{"Cologne"}},
	{Name: "Frankfurt am Main", Coord: Coordinate{Lat: 50.1109, Lon: 8.6821}, Aliases: []string{"Frankfurt"}},
	{Name: "Stuttgart", Coord: Coordinate{Lat: 48.7758, Lon: 9.1829}},
	{Name: "Düsseldorf", Coord: Coordinate{Lat: 51.2277, Lon: 6.7735}},
	{Name: "Leipzig", Coord: Coordinate{Lat: 51.3397, Lon: 12.3731}},
	{Name: "Dortmund", Coord: Coordinate{Lat: 51.5136, Lon: 7.4653}},
	{Name: "Essen", Coord: Coordinate{Lat: 51.4556, Lon: 7.0116}},
	{Name: "Bremen", Coord: Coordinate{Lat: 53.0793, Lon: 8.8017}},
	{Name: "Dresden", Coord: Coordinate{Lat: 51.0504, Lon: 13.7373}},
	{Name: "Hannover", Coord: Coordinate{Lat: 52.3759, Lon: 9.7320}, Aliases: []string{"Hanover"}},
	{Name: "Nürnberg", Coord: Coordinate{Lat: 49.4521, Lon: 11.0767}, Aliases: []string{"Nuremberg"}},
	{Name: "Duisburg", Coord: Coordinate{Lat: 51.4344, Lon: 6.7623}},
	{Name: "Bochum", Coord: Coordinate{Lat: 51.4818, Lon: 7.2162}},
	{Name: "Wuppertal", Coord: Coordinate{Lat: 51.2562, Lon: 7.1508}},
	{Name: "Bielefeld", Coord: Coordinate{Lat: 52.0302, Lon: 8.5325}},
	{Name: "Bonn", Coord: Coordinate{Lat: 50.7374, Lon: 7.0982}},
	{Name: "Münster", Coord: Coordinate{Lat: 51.9607, Lon: 7.6261}},
	{Name: "Karlsruhe", Coord: Coordinate{Lat: 49.0069, Lon: 8.4037}},
	{Name: "Mannheim", Coord: Coordinate{Lat: 49.4875, Lon: 8.4660}},
	{Name: "Augsburg", Coord: Coordinate{Lat: 48.3705, Lon: 10.8978}},
	{Name: "Wiesbaden", Coord: Coordinate{Lat: 50.0782, Lon: 8.2398}},
	{Name: "Mönchengladbach", Coord: Coordinate{Lat: 51.1805, Lon: 6.4428}},
	{Name: "Gelsenkirchen", Coord: Coordinate{Lat: 51.5177, Lon: 7.0857}},
	{Name: "Braunschweig", Coord: Coordinate{Lat: 52.2689, Lon: 10.5268}},
	{Name: "Kiel", Coord: Coordinate{Lat: 54.3233, Lon: 10.1228}},
	{Name: "Aachen", Coord: Coordinate{Lat: 50.7753, Lon: 6.0839}},
	{Name: "Chemnitz", Coord: Coordinate{Lat: 50.8278, Lon: 12.9214}},
	{Name: "Halle (Saale)", Coord: Coordinate{Lat: 51.4970, Lon: 11.9688}, Aliases: []string{"Halle"}},
	{Name: "Magdeburg", Coord: Coordinate{Lat: 52.1205, Lon: 11.6276}},
	{Name: "Freiburg im Breisgau", Coord: Coordinate{Lat: 47.9990, Lon: 7.8421}, Aliases: []string{"Freiburg"}},
	{Name: "Krefeld", Coord: Coordinate{Lat: 51.3388, Lon: 6.5853}},
	{Name: "Mainz", Coord: Coordinate{Lat: 49.9929, Lon: 8.2473}},
	{Name: "Lübeck", Coord: Coordinate{Lat: 53.8655, Lon: 10.6866}},
	{Name: "Erfurt", Coord: Coordinate{Lat: 50.9848, Lon: 11.0299}},
	{Name: "Oberhausen", Coord: Coordinate{Lat: 51.4963, Lon: 6.8638}},
	{Name: "Rostock", Coord: Coordinate{Lat: 54.0924, Lon: 12.0991}},
	{Name: "Kassel", Coord: Coordinate{Lat: 51.3127, Lon: 9.4797}},
	{Name: "Hagen", Coord: Coordinate{Lat: 51.3671, Lon: 7.4633}},
	{Name: "Potsdam", Coord: Coordinate{Lat: 52.3906, Lon: 13.0645}},
	{Name: "Saarbrücken", Coord: Coordinate{Lat: 49.2402, Lon: 6.9969}},
	{Name: "Hamm", Coord: Coordinate{Lat: 51.6739, Lon: 7.8160}},
	{Name: "Ludwigshafen am Rhein", Coord: Coordinate{Lat: 49.4741, Lon: 8.4353}, Aliases: []string{"Ludwigshafen"}},
	{Name: "Mülheim an der Ruhr", Coord: Coordinate{Lat: 51.4266, Lon: 6.8825}, Aliases: []string{"Mülheim"}},
	{Name: "Oldenburg", Coord: Coordinate{Lat: 53.1435, Lon: 8.2146}},
	{Name: "Osnabrück", Coord: Coordinate{Lat: 52.2799, Lon: 8.0472}},
	{Name: "Leverkusen", Coord: Coordinate{Lat: 51.0459, Lon: 6.9852}},
	{Name: "Heidelberg", Coord: Coordinate{Lat: 49.3988, Lon: 8.6724}},
	{Name: "Darmstadt", Coord: Coordinate{Lat: 49.8728, Lon: 8.6512}},
	{Name: "Solingen", Coord: Coordinate{Lat: 51.1652, Lon: 7.0671}},
	{Name: "Regensburg", Coord: Coordinate{Lat: 49.0134, Lon: 12.1016}},
	{Name: "Herne", Coord: Coordinate{Lat: 51.5369, Lon: 7.2009}},
	{Name: "Paderborn", Coord: Coordinate{Lat: 51.7189, Lon: 8.7575}},
	{Name: "Neuss", Coord: Coordinate{Lat: 51.2042, Lon: 6.6879}},
	{Name: "Ingolstadt", Coord: Coordinate{Lat: 48.7665, Lon: 11.4258}},
	{Name: "Offenbach am Main", Coord: Coordinate{Lat: 50.0956, Lon: 8.7761}, Aliases: []string{"Offenbach"}},
	{Name: "Fürth", Coord: Coordinate{Lat: 49.4771, Lon: 10.9887}},
	{Name: "Würzburg", Coord: Coordinate{Lat: 49.7913, Lon: 9.9534}},
	{Name: "Ulm", Coord: Coordinate{Lat: 48.4011, Lon: 9.9876}},
	{Name: "Heilbronn", Coord: Coordinate{Lat: 49.1427, Lon: 9.2109}},
	{Name: "Pforzheim", Coord: Coordinate{Lat: 48.8922, Lon: 8.6946}},
	{Name: "Wolfsburg", Coord: Coordinate{Lat: 52.4227, Lon: 10.7865}},
	{Name: "Göttingen", Coord: Coordinate{Lat: 51.5413, Lon: 9.9158}},
	{Name: "Bremerhaven", Coord: Coordinate{Lat: 53.5396, Lon: 8.5809}},
	{Name: "Koblenz", Coord: Coordinate{Lat: 50.3569, Lon: 7.5890}},
	{Name: "Trier", Coord: Coordinate{Lat: 49.7499, Lon: 6.6371}},
	{Name: "Jena", Coord: Coordinate{Lat: 50.9271, Lon: 11.5892}},
	{Name: "Cottbus", Coord: Coordinate{Lat: 51.7563, Lon: 14.3329}},
	{Name: "Siegen", Coord: Coordinate{Lat: 50.8748, Lon: 8.0243}},
	{Name: "Gera", Coord: Coordinate{Lat: 50.8803, Lon: 12.0826}},
	{Name: "Flensburg", Coord: Coordinate{Lat: 54.7937, Lon: 9.4469}},
	{Name: "Konstanz", Coord: Coordinate{Lat: 47.6779, Lon: 9.1732}},
	{Name: "Garmisch-Partenkirchen", Coord: Coordinate{Lat: 47.4917, Lon: 11.0955}, Aliases: []string{"Garmisch"}},
	{Name: "Sylt", Coord: Coordinate{Lat: 54.9083, Lon: 8.3174}, Aliases: []string{"Westerland"}},
	{Name: "Zugspitze", Coord: Coordinate{Lat: 47.4211, Lon: 10.9853}},
}
