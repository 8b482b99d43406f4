package intake

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

// Slot is one question of the intake conversation.
type Slot struct {
	Field    models.Field
	Question string
	Clarify  string
	accept   func(value string) bool
}

const genericClarify = "¿Podrías dar más detalles, por favor?"

var (
	lettersRe  = regexp.MustCompile(`^[\p{L}\s]+$`)
	locationRe = regexp.MustCompile(`^[\p{L}\d\s,.-]+$`)
	audienceRe = regexp.MustCompile(`(?i)jóvenes|jovenes|adultos|familias|empresas|niños|ninos|mujeres|hombres|turistas|clientes|estudiantes|profesionales|mascotas|personas|público|publico`)
	goalRe     = regexp.MustCompile(`(?i)reserv|vend|venta|mostrar|contact|inform|compr|promocion|captar|atraer|consegu`)
	ctaRe      = regexp.MustCompile(`(?i)contact|compr|reserv|\bver\b|saber|conoc|llam|escrib|agend|ped|visit`)
)

func minRunes(n int) func(string) bool {
	return func(v string) bool { return utf8.RuneCountInString(strings.TrimSpace(v)) >= n }
}

func all(checks ...func(string) bool) func(string) bool {
	return func(v string) bool {
		for _, c := range checks {
			if !c(v) {
				return false
			}
		}
		return true
	}
}

func matches(re *regexp.Regexp) func(string) bool {
	return func(v string) bool { return re.MatchString(strings.TrimSpace(v)) }
}

// Slots is the question list in conversation order.
var Slots = []Slot{
	{
		Field:    models.FieldUserName,
		Question: "👋 ¡Hola! Qué bueno tenerte acá 😊 ¿Con quién tengo el gusto?",
		Clarify:  "¿Podrías decirme tu nombre para poder personalizar mejor la conversación?",
		accept:   all(minRunes(2), matches(lettersRe)),
	},
	{
		Field:    models.FieldBusinessName,
		Question: "¡Genial, gracias {{userName}}! ¿Cómo se llama tu negocio o proyecto?",
		accept:   minRunes(2),
	},
	{
		Field:    models.FieldIndustry,
		Question: "Contame un poquito, ¿a qué se dedica tu negocio? (ej: alquileres, gastronomía, diseño, etc.)",
		Clarify:  "¿Podrías ser más específico? Por ejemplo: restaurante de comida italiana, consultoría de marketing, tienda de ropa deportiva, etc.",
		accept:   all(minRunes(3), matches(lettersRe)),
	},
	{
		Field:    models.FieldTargetAudience,
		Question: "¿A quién apuntás principalmente? (por ejemplo: turistas, familias, empresas, jóvenes...)",
		Clarify:  "¿A qué público específico te diriges? Por ejemplo: jóvenes profesionales, familias con niños, empresas medianas, etc.",
		accept:   all(minRunes(3), matches(audienceRe)),
	},
	{
		Field:    models.FieldDifferentiator,
		Question: "¿Qué dirías que hace único a tu negocio frente a otros del mismo rubro?",
		accept:   minRunes(2),
	},
	{
		Field:    models.FieldLocation,
		Question: "¿Dónde están ubicados o dónde ofrecen sus servicios?",
		Clarify:  "¿Podrías indicar la ciudad y país donde operas? Por ejemplo: Buenos Aires, Argentina o Madrid, España.",
		accept:   all(minRunes(3), matches(locationRe)),
	},
	{
		Field:    models.FieldWebGoal,
		Question: "¿Qué te gustaría lograr con tu página? (más reservas, vender online, mostrar tus productos, etc.)",
		Clarify:  "¿Qué objetivo concreto tiene tu web? Por ejemplo: conseguir más reservas, vender productos online, mostrar tu portafolio, etc.",
		accept:   all(minRunes(3), matches(goalRe)),
	},
	{
		Field:    models.FieldBrandStyle,
		Question: "Si tu marca fuera una persona, ¿cómo sería? (tranquila, moderna, elegante, divertida...)",
		accept:   minRunes(2),
	},
	{
		Field:    models.FieldSocialLinks,
		Question: "¿Tenés redes o página actual que quieras que revisemos o usemos como referencia?",
		accept:   minRunes(2),
	},
	{
		Field:    models.FieldPrimaryCallToAction,
		Question: "Cuando un visitante entre al sitio, ¿qué querés que haga primero? (reservar, escribirte, ver catálogo, etc.)",
		Clarify:  "¿Qué acción específica querés que realicen los visitantes? Por ejemplo: reservar ahora, comprar online, contactarte por WhatsApp, etc.",
		accept:   all(minRunes(3), matches(ctaRe)),
	},
}

// Accept runs the local acceptability check for the slot.
func (s Slot) Accept(value string) bool {
	if s.accept == nil {
		return strings.TrimSpace(value) != ""
	}
	return s.accept(value)
}

func (s Slot) clarification() string {
	if s.Clarify != "" {
		return s.Clarify
	}
	return genericClarify
}

// Prompt renders the question with {{userName}} filled in.
func (s Slot) Prompt(p models.BusinessProfile) string {
	name := p.UserName
	if name == "" {
		return strings.ReplaceAll(s.Question, " {{userName}}", "")
	}
	return strings.ReplaceAll(s.Question, "{{userName}}", name)
}

// NextSlot returns the index of the first slot that is neither filled nor
// already asked, or false when the conversation is done.
func NextSlot(p models.BusinessProfile, asked map[models.Field]bool) (int, bool) {
	for i, s := range Slots {
		if !p.Has(s.Field) && !asked[s.Field] {
			return i, true
		}
	}
	return 0, false
}
