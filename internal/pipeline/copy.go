package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

const copySystem = `Sos un redactor publicitario experto en landing pages para pequeños negocios.
Escribís en español, con tono cercano y profesional.`

const copyTemplate = `Escribí el contenido de una landing page para este negocio:

%s
Usá exactamente estas secciones, cada una iniciada por su marcador en una línea propia:

1️⃣ Hero Principal
(título en una línea, subtítulo en la línea siguiente)

2️⃣ Introducción
(un párrafo breve)

3️⃣ Beneficios
(3 a 5 líneas, cada una con un emoji, un título, " • " y una descripción)

4️⃣ Promoción
(título de una oferta en una línea)

5️⃣ Testimonios
(2 o 3 testimonios: la cita entre comillas en una línea y "— Nombre" en la siguiente)

6️⃣ CTA Final
(frase de cierre invitando a actuar)

No agregues nada fuera de esas secciones.`

// writeCopy asks the copywriter for a sectioned transcript. Failures degrade
// to an empty transcript so the page falls back to profile data and defaults.
func (g *Generator) writeCopy(ctx context.Context, p models.BusinessProfile) string {
	text, err := g.writer.Complete(ctx, completion.Request{
		System:      copySystem,
		Prompt:      fmt.Sprintf(copyTemplate, describe(p)),
		Temperature: 0.8,
		MaxTokens:   1200,
	})
	if err != nil {
		g.log.Warn("landing copy unavailable, using defaults", "provider", g.writer.Name(), "error", err)
		return ""
	}
	return text
}

func describe(p models.BusinessProfile) string {
	labels := map[models.Field]string{
		models.FieldBusinessName:        "Nombre",
		models.FieldIndustry:            "Rubro",
		models.FieldTargetAudience:      "Público objetivo",
		models.FieldDifferentiator:      "Diferencial",
		models.FieldLocation:            "Ubicación",
		models.FieldWebGoal:             "Objetivo de la web",
		models.FieldBrandStyle:          "Estilo de marca",
		models.FieldPrimaryCallToAction: "Acción principal",
	}
	var b strings.Builder
	for _, f := range models.Fields {
		label, ok := labels[f]
		if !ok {
			continue
		}
		if v := p.Get(f); v != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label, v)
		}
	}
	if b.Len() == 0 {
		b.WriteString("- Nombre: Mi Empresa\n")
	}
	return b.String()
}
