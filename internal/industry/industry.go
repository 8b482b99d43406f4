// Package industry holds the keyword tables shared by extraction and image
// resolution: industry search terms, business category nouns and the
// free-text business inference table.
package industry

import (
	"strings"
	"unicode"
)

// Entry maps an industry key to its English photo search terms.
type Entry struct {
	Key   string
	Terms []string
}

// Order matters: the first matching entry wins.
var searchTerms = []Entry{
	{"restaurant", []string{"restaurant", "fine dining", "food photography", "culinary"}},
	{"zapatería", []string{"shoes", "footwear", "fashion", "boutique"}},
	{"nutrición", []string{"healthy food", "nutrition", "wellness", "fresh ingredients"}},
	{"skincare", []string{"skincare", "beauty", "cosmetics", "spa"}},
	{"fotografía", []string{"photography", "camera", "photo studio", "professional"}},
	{"consultoría", []string{"business", "consulting", "office", "corporate"}},
	{"tecnología", []string{"technology", "innovation", "digital", "startup"}},
	{"moda", []string{"fashion", "clothing", "style", "boutique"}},
	{"fitness", []string{"fitness", "gym", "workout", "healthy lifestyle"}},
	{"educación", []string{"education", "learning", "classroom", "study"}},
	{"viajes", []string{"travel", "tourism", "adventure", "destinations"}},
	{"belleza", []string{"beauty", "salon", "makeup", "hair styling"}},
	{"salud", []string{"healthcare", "medical", "wellness", "health"}},
	{"deportes", []string{"sports", "athletic", "fitness", "stadium"}},
	{"arte", []string{"art", "gallery", "creative", "studio"}},
	{"música", []string{"music", "studio", "instruments", "performance"}},
	{"libros", []string{"books", "library", "reading", "study"}},
	{"juguetes", []string{"toys", "children", "play", "educational"}},
	{"mascotas", []string{"pets", "animals", "pet care", "veterinary"}},
	{"jardinería", []string{"garden", "plants", "landscaping", "flowers"}},
	{"cocina", []string{"kitchen", "cooking", "culinary", "food"}},
	{"construcción", []string{"construction", "building", "architecture", "engineering"}},
	{"legal", []string{"law", "office", "legal", "business"}},
	{"finanzas", []string{"finance", "banking", "investment", "business"}},
	{"marketing", []string{"marketing", "digital", "social media", "advertising"}},
	{"diseño", []string{"design", "graphic", "creative", "studio"}},
	{"eventos", []string{"events", "party", "celebration", "wedding"}},
	{"automotriz", []string{"cars", "automotive", "vehicles", "dealership"}},
	{"inmobiliaria", []string{"real estate", "property", "home", "architecture"}},
	{"gastronomía", []string{"gourmet", "food", "chef", "restaurant"}},
	{"barbería", []string{"barber", "barbershop", "haircut", "grooming"}},
	{"general", []string{"business", "professional", "office", "workspace"}},
}

// General is the term set used when nothing else matches.
func General() Entry {
	return searchTerms[len(searchTerms)-1]
}

// Lookup returns the first entry whose key or any term is contained in
// query. Matching ignores case and accents.
func Lookup(query string) (Entry, bool) {
	q := Fold(query)
	if q == "" {
		return Entry{}, false
	}
	for _, e := range searchTerms {
		if strings.Contains(q, Fold(e.Key)) {
			return e, true
		}
		for _, t := range e.Terms {
			if strings.Contains(q, Fold(t)) {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// ByKey returns the entry with the given key.
func ByKey(key string) (Entry, bool) {
	k := Fold(key)
	for _, e := range searchTerms {
		if Fold(e.Key) == k {
			return e, true
		}
	}
	return Entry{}, false
}

var foldReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"à", "a", "è", "e", "ì", "i", "ò", "o", "ù", "u",
)

// Fold lowercases s, strips Spanish accents and trims it.
func Fold(s string) string {
	return strings.TrimSpace(foldReplacer.Replace(strings.ToLower(s)))
}

// Words splits folded text into letter/digit runs.
func Words(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
