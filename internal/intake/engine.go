// Package intake drives the slot-filling conversation that collects a
// BusinessProfile one question at a time.
package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/logger"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/metrics"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

type State string

const (
	StateCollecting            State = "collecting"
	StateAwaitingClarification State = "awaiting_clarification"
	StateComplete              State = "complete"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	clarifyPrefix = "🤔 Para entender mejor, "

	// After this many clarifications on one slot the raw reply is kept.
	maxClarifications = 2
)

type Message struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type Session struct {
	ID             string                 `json:"id"`
	State          State                  `json:"state"`
	Current        int                    `json:"current"`
	Clarifications int                    `json:"clarifications"`
	Profile        models.BusinessProfile `json:"profile"`
	Asked          []models.Field         `json:"asked"`
	Transcript     []Message              `json:"transcript"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// CurrentField is the field of the pending question, or "" once complete.
func (s *Session) CurrentField() models.Field {
	if s.State == StateComplete || s.Current >= len(Slots) {
		return ""
	}
	return Slots[s.Current].Field
}

func (s *Session) askedSet() map[models.Field]bool {
	m := make(map[models.Field]bool, len(s.Asked))
	for _, f := range s.Asked {
		m[f] = true
	}
	return m
}

// TranscriptText renders the conversation as "role: text" lines.
func (s *Session) TranscriptText() string {
	var b strings.Builder
	for _, m := range s.Transcript {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Text)
	}
	return b.String()
}

type Reply struct {
	Text     string         `json:"text"`
	State    State          `json:"state"`
	Field    models.Field   `json:"field,omitempty"`
	Captured []models.Field `json:"captured,omitempty"`
}

type Engine struct {
	interp Interpreter
	now    func() time.Time
	log    *logger.Logger
}

type Option func(*Engine)

// WithInterpreter enables completion-backed interpretation of replies.
func WithInterpreter(i Interpreter) Option {
	return func(e *Engine) {
		e.interp = i
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func NewEngine(log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{now: time.Now, log: logger.OrNop(log)}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start opens a session in collecting(0) and records the greeting.
func (e *Engine) Start(id string) (*Session, Reply) {
	now := e.now()
	s := &Session{ID: id, State: StateCollecting, CreatedAt: now, UpdatedAt: now}
	first := Slots[0]
	s.Asked = append(s.Asked, first.Field)
	text := first.Prompt(s.Profile)
	s.Transcript = append(s.Transcript, Message{Role: RoleAssistant, Text: text, At: now})
	return s, Reply{Text: text, State: s.State, Field: first.Field}
}

// Reply applies one user turn to s.
func (e *Engine) Reply(ctx context.Context, s *Session, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, fmt.Errorf("empty reply")
	}
	if s.State == StateComplete {
		return Reply{Text: summary(s.Profile), State: StateComplete}, nil
	}
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}

	now := e.now()
	s.UpdatedAt = now
	s.Transcript = append(s.Transcript, Message{Role: RoleUser, Text: text, At: now})

	slot := Slots[s.Current]
	in := e.interpret(ctx, s, slot, text)

	var out Reply
	if in.Clarify && s.Clarifications < maxClarifications {
		s.State = StateAwaitingClarification
		s.Clarifications++
		out = Reply{Text: clarifyPrefix + firstNonEmpty(in.Question, slot.clarification()), State: s.State, Field: slot.Field}
	} else {
		out = e.advance(s, slot, in)
	}

	s.Transcript = append(s.Transcript, Message{Role: RoleAssistant, Text: out.Text, At: now})
	metrics.IntakeTurns.WithLabelValues(string(out.State)).Inc()
	return out, nil
}

func (e *Engine) interpret(ctx context.Context, s *Session, slot Slot, text string) Interpretation {
	local := interpretLocal(slot, text)
	if e.interp == nil {
		return local
	}
	remote, err := e.interp.Interpret(ctx, Turn{SessionID: s.ID, Slot: slot, Reply: text, Profile: s.Profile})
	if err != nil {
		e.log.Warn("reply interpreter failed, using local rules", "session", s.ID, "field", slot.Field, "error", err)
		return local
	}
	if remote.Value == "" && !remote.Clarify {
		remote.Value = local.Value
	}
	for f, v := range local.Extra {
		if _, ok := remote.Extra[f]; !ok {
			if remote.Extra == nil {
				remote.Extra = map[models.Field]string{}
			}
			remote.Extra[f] = v
		}
	}
	return remote
}

func (e *Engine) advance(s *Session, slot Slot, in Interpretation) Reply {
	s.Clarifications = 0
	value := firstNonEmpty(in.Value, strings.TrimSpace(s.Transcript[len(s.Transcript)-1].Text))
	s.Profile.Set(slot.Field, value)

	var captured []models.Field
	for _, f := range models.Fields {
		v, ok := in.Extra[f]
		if !ok || v == "" || f == slot.Field || s.Profile.Has(f) {
			continue
		}
		s.Profile.Set(f, v)
		captured = append(captured, f)
	}

	next, ok := NextSlot(s.Profile, s.askedSet())
	if !ok {
		s.State = StateComplete
		s.Current = len(Slots)
		return Reply{Text: summary(s.Profile), State: s.State, Captured: captured}
	}

	s.State = StateCollecting
	s.Current = next
	s.Asked = append(s.Asked, Slots[next].Field)
	text := Slots[next].Prompt(s.Profile)
	if ack := acknowledge(s.Profile, captured); ack != "" {
		text = ack + "\n\n" + text
	}
	return Reply{Text: text, State: s.State, Field: Slots[next].Field, Captured: captured}
}

func acknowledge(p models.BusinessProfile, captured []models.Field) string {
	var parts []string
	for _, f := range captured {
		switch f {
		case models.FieldBusinessName:
			parts = append(parts, fmt.Sprintf("tu negocio se llama \"%s\"", p.BusinessName))
		case models.FieldIndustry:
			parts = append(parts, "se dedica a "+p.Industry)
		case models.FieldLocation:
			parts = append(parts, "están en "+p.Location)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "¡Entendido! Registré que " + strings.Join(parts, " y ") + "."
}

func summary(p models.BusinessProfile) string {
	orPending := func(v string) string { return firstNonEmpty(v, "Por definir") }
	return fmt.Sprintf(`🎉 ¡Excelente, %s! Ya tengo toda la información necesaria.

---

## 📋 **RESUMEN DE TU PROYECTO**

✅ **Negocio**: %s
✅ **Rubro**: %s
✅ **Ubicación**: %s
✅ **Público objetivo**: %s
✅ **Objetivo web**: %s
✅ **Estilo de marca**: %s

---

🚀 **¡Ahora estoy listo para generar tu landing page profesional!**`,
		firstNonEmpty(p.UserName, "amigo"),
		orPending(p.BusinessName),
		orPending(p.Industry),
		orPending(p.Location),
		orPending(p.TargetAudience),
		orPending(p.WebGoal),
		orPending(p.BrandStyle),
	)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
