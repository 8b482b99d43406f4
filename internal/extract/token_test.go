package extract

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		line    string
		kind    Kind
		section Section
		icon    string
	}{
		{"1️⃣ Hero Principal", TokenMarker, SectionHero, ""},
		{"3⃣", TokenMarker, SectionFeatures, ""},
		{"Sección 4: lo que viene", TokenMarker, SectionPromo, ""},
		{"### CTA Final", TokenMarker, SectionCTA, ""},
		{"Testimonios", TokenMarker, SectionTestimonials, ""},
		{"TESTIMONIOS DE CLIENTES", TokenMarker, SectionTestimonials, ""},
		{"Lo que dicen:", TokenText, SectionNone, ""},
		{"Testimonios de nuestros clientes:", TokenMarker, SectionTestimonials, ""},
		{"**Beneficios de la casa**", TokenMarker, SectionFeatures, ""},
		{"Hero de tu barrio", TokenText, SectionNone, ""},
		{"Promoción de lanzamiento", TokenText, SectionNone, ""},
		{"🔥 Promoción de lanzamiento", TokenBullet, SectionNone, "🔥"},
		{"⭐ Beneficios exclusivos", TokenBullet, SectionNone, "⭐"},
		{"Descubre los beneficios de nuestro pan integral", TokenText, SectionNone, ""},
		{"⭐ Beneficios exclusivos • Solo para socios", TokenBullet, SectionNone, "⭐"},
		{"👩‍🍳 Chef propia • Recetas de la casa", TokenBullet, SectionNone, "👩‍🍳"},
		{"2) Envíos", TokenBullet, SectionNone, ""},
		{"\"Muy bueno\"", TokenQuote, SectionNone, ""},
		{"⭐⭐⭐⭐⭐ \"Muy bueno\"", TokenQuote, SectionNone, ""},
		{"— Carla", TokenAttribution, SectionNone, ""},
		{"Directamente desde el horno", TokenText, SectionNone, ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tok := classify(0, tt.line)
			if tok.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Section != tt.section {
				t.Errorf("section = %v, want %v", tok.Section, tt.section)
			}
			if tok.Icon != tt.icon {
				t.Errorf("icon = %q, want %q", tok.Icon, tt.icon)
			}
		})
	}
}

func TestTokenizeDropsBlankLines(t *testing.T) {
	toks := Tokenize("a línea\r\n\r\n   \nOtra línea")
	if len(toks) != 2 {
		t.Fatalf("len = %d, want 2", len(toks))
	}
	if toks[1].Line != 3 {
		t.Errorf("Line = %d, want 3", toks[1].Line)
	}
}
