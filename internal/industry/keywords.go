package industry

// Business category nouns recognised in free text, in display form.
var businessKeywords = []string{
	"restaurante", "restaurant", "panadería", "pastelería", "cafetería", "café",
	"pizzería", "heladería", "gastronomía", "cocina", "comida",
	"zapatería", "moda", "ropa", "boutique", "tienda", "joyería",
	"peluquería", "barbería", "belleza", "skincare", "spa", "estética",
	"gimnasio", "fitness", "yoga", "nutrición", "nutricionista", "salud",
	"clínica", "consultorio", "odontología", "veterinaria", "mascotas",
	"fotografía", "diseño", "arte", "música", "eventos",
	"consultoría", "consultora", "marketing", "finanzas", "legal", "abogados",
	"tecnología", "software", "programación", "cursos", "academia", "educación",
	"inmobiliaria", "alquiler", "departamentos", "hotel", "hostel", "turismo", "viajes",
	"construcción", "automotriz", "taller", "jardinería", "floristería", "librería", "juguetes",
}

var keywordIndex = func() map[string]string {
	m := make(map[string]string, len(businessKeywords))
	for _, k := range businessKeywords {
		m[Fold(k)] = k
	}
	return m
}()

// FindKeyword returns the first business noun appearing in text, scanning
// words in reading order.
func FindKeyword(text string) (string, bool) {
	for _, w := range Words(text) {
		if k, ok := keywordIndex[w]; ok {
			return k, true
		}
	}
	return "", false
}

// IsKeyword reports whether word is a known business noun.
func IsKeyword(word string) bool {
	_, ok := keywordIndex[Fold(word)]
	return ok
}
