package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/extract"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

// Turn is what an Interpreter sees of one user reply.
type Turn struct {
	SessionID string
	Slot      Slot
	Reply     string
	Profile   models.BusinessProfile
}

// Interpretation is the reading of a reply: the value for the asked slot,
// whether to ask again, and any other fields answered ahead of time.
type Interpretation struct {
	Value    string
	Clarify  bool
	Question string
	Extra    map[models.Field]string
}

type Interpreter interface {
	Interpret(ctx context.Context, t Turn) (Interpretation, error)
}

var captures = map[models.Field]func(string) string{
	models.FieldUserName:       extract.CaptureUserName,
	models.FieldBusinessName:   extract.CaptureBusinessName,
	models.FieldIndustry:       extract.CaptureIndustry,
	models.FieldLocation:       extract.CaptureLocation,
	models.FieldTargetAudience: extract.CaptureAudience,
	models.FieldSocialLinks:    extract.CaptureSocialLinks,
}

// Slots whose value is better taken from the captured phrase than from the
// whole reply.
var preferCapture = map[models.Field]bool{
	models.FieldUserName:     true,
	models.FieldBusinessName: true,
	models.FieldIndustry:     true,
	models.FieldLocation:     true,
}

func interpretLocal(slot Slot, reply string) Interpretation {
	raw := strings.TrimRight(extract.Normalize(reply), ".!¡ ")
	value := raw
	if preferCapture[slot.Field] {
		if c := captures[slot.Field](reply); c != "" {
			value = c
		}
	}
	if !slot.Accept(value) {
		return Interpretation{Value: value, Clarify: true}
	}

	extra := map[models.Field]string{}
	for f, capture := range captures {
		if f == slot.Field {
			continue
		}
		if v := capture(reply); v != "" {
			extra[f] = v
		}
	}
	return Interpretation{Value: value, Extra: extra}
}

const interpreterSystem = `Analizás respuestas de una entrevista para crear la landing page de un negocio.
Respondé SOLO con líneas "clave: valor", sin markdown ni texto adicional.
Claves obligatorias:
value: el dato que responde la pregunta, limpio y breve
clarify: si o no (si la respuesta no sirve para la pregunta)
question: una repregunta breve, solo si clarify es si
Si la respuesta incluye otros datos, agregá una línea por cada uno usando estas claves:
userName, businessName, industry, targetAudience, differentiator, location, webGoal, brandStyle, socialLinks, primaryCallToAction`

// CompletionInterpreter asks a completion service to read each reply.
type CompletionInterpreter struct {
	client completion.Client
}

func NewCompletionInterpreter(c completion.Client) *CompletionInterpreter {
	return &CompletionInterpreter{client: c}
}

func (ci *CompletionInterpreter) Interpret(ctx context.Context, t Turn) (Interpretation, error) {
	text, err := ci.client.Complete(ctx, completion.Request{
		System:      interpreterSystem,
		Prompt:      buildTurnPrompt(t),
		SessionID:   t.SessionID,
		Temperature: 0.2,
		MaxTokens:   300,
	})
	if err != nil {
		return Interpretation{}, fmt.Errorf("failed to interpret reply: %w", err)
	}
	return parseInterpretation(text), nil
}

func buildTurnPrompt(t Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pregunta: %s\n", t.Slot.Prompt(t.Profile))
	fmt.Fprintf(&b, "Campo: %s\n", t.Slot.Field)
	fmt.Fprintf(&b, "Respuesta: %s\n", t.Reply)
	b.WriteString("Datos conocidos:\n")
	for _, f := range models.Fields {
		if v := t.Profile.Get(f); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", f, v)
		}
	}
	return b.String()
}

func parseInterpretation(text string) Interpretation {
	data := parseKeyValues(text)
	in := Interpretation{
		Value:    data["value"],
		Question: data["question"],
		Extra:    map[models.Field]string{},
	}
	switch strings.ToLower(data["clarify"]) {
	case "si", "sí", "yes", "true":
		in.Clarify = true
	}
	for k, v := range data {
		if f, ok := models.ParseField(k); ok && v != "" && !isPlaceholder(v) {
			in.Extra[f] = v
		}
	}
	return in
}

// parseKeyValues reads "key: value" pairs, one per line or comma separated
// on a single line.
func parseKeyValues(text string) map[string]string {
	text = strings.TrimSpace(text)
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		lines = strings.Split(text, ", ")
	}

	data := make(map[string]string)
	for _, line := range lines {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.Trim(strings.TrimSpace(parts[0]), "-*` ")
		value := strings.Trim(strings.TrimSpace(parts[1]), `"`)
		if key == "" {
			continue
		}
		data[key] = value
		if lower := strings.ToLower(key); lower != key {
			if _, ok := data[lower]; !ok {
				data[lower] = value
			}
		}
	}
	return data
}

func isPlaceholder(v string) bool {
	switch strings.ToLower(v) {
	case "-", "n/a", "ninguno", "ninguna", "no", "null", "none", "desconocido":
		return true
	}
	return false
}
