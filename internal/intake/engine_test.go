package intake

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

func newEngine(opts ...Option) *Engine {
	opts = append([]Option{WithClock(func() time.Time { return time.Unix(1700000000, 0) })}, opts...)
	return NewEngine(nil, opts...)
}

func reply(t *testing.T, e *Engine, s *Session, text string) Reply {
	t.Helper()
	r, err := e.Reply(context.Background(), s, text)
	if err != nil {
		t.Fatalf("Reply(%q) error = %v", text, err)
	}
	return r
}

func TestStartGreets(t *testing.T) {
	s, r := newEngine().Start("s1")
	if s.State != StateCollecting || s.Current != 0 {
		t.Fatalf("state = %s(%d)", s.State, s.Current)
	}
	if !strings.Contains(r.Text, "¿Con quién tengo el gusto?") || r.Field != models.FieldUserName {
		t.Errorf("greeting = %+v", r)
	}
	if len(s.Transcript) != 1 || s.Transcript[0].Role != RoleAssistant {
		t.Errorf("transcript = %+v", s.Transcript)
	}
}

func TestOpportunisticCaptureSkipsQuestion(t *testing.T) {
	e := newEngine()
	s, _ := e.Start("s1")

	r := reply(t, e, s, "Me llamo Ana y mi negocio se llama Ana’s Deli")
	if s.Profile.UserName != "Ana" {
		t.Errorf("userName = %q", s.Profile.UserName)
	}
	if s.Profile.BusinessName != "Ana's Deli" {
		t.Errorf("businessName = %q", s.Profile.BusinessName)
	}
	if r.Field != models.FieldIndustry {
		t.Errorf("next field = %s, want industry", r.Field)
	}
	if !strings.Contains(r.Text, `"Ana's Deli"`) {
		t.Errorf("reply should acknowledge the captured name: %q", r.Text)
	}
	for _, f := range s.Asked {
		if f == models.FieldBusinessName {
			t.Errorf("businessName was asked")
		}
	}
}

func TestClarificationDoesNotAdvance(t *testing.T) {
	e := newEngine()
	s, _ := e.Start("s1")
	reply(t, e, s, "Lucía")
	reply(t, e, s, "Sol de Mayo")

	r := reply(t, e, s, "123")
	if r.State != StateAwaitingClarification || s.CurrentField() != models.FieldIndustry {
		t.Fatalf("after bad industry: %s on %s", r.State, s.CurrentField())
	}
	if !strings.HasPrefix(r.Text, "🤔 Para entender mejor, ") {
		t.Errorf("clarification text = %q", r.Text)
	}

	r = reply(t, e, s, "Cafetería de especialidad")
	if r.State != StateCollecting || r.Field != models.FieldTargetAudience {
		t.Errorf("after good industry: %+v", r)
	}
	if s.Profile.Industry == "" {
		t.Errorf("industry not stored")
	}
}

func TestClarificationGivesUpAfterLimit(t *testing.T) {
	e := newEngine()
	s, _ := e.Start("s1")
	reply(t, e, s, "Lucía")
	reply(t, e, s, "Sol de Mayo")
	reply(t, e, s, "Cafetería")

	for range maxClarifications {
		if r := reply(t, e, s, "no sé"); r.State != StateAwaitingClarification {
			t.Fatalf("state = %s", r.State)
		}
	}
	r := reply(t, e, s, "no sé")
	if r.State != StateCollecting || s.Profile.TargetAudience != "no sé" {
		t.Errorf("raw reply should be kept after %d clarifications: %+v %q", maxClarifications, r, s.Profile.TargetAudience)
	}
}

func TestFullConversationCompletes(t *testing.T) {
	e := newEngine()
	s, _ := e.Start("s1")
	answers := []string{
		"Soy Marta",
		"Panadería La Espiga", // also answers industry
		"Familias del barrio",
		"Masa madre y horno de leña",
		"Rosario, Argentina",
		"Quiero vender online",
		"Cálida y tradicional",
		"@laespiga",
		"Que puedan pedir por WhatsApp",
	}
	var r Reply
	for _, a := range answers {
		r = reply(t, e, s, a)
	}
	if r.State != StateComplete || s.State != StateComplete {
		t.Fatalf("final state = %s", r.State)
	}
	if s.Profile.Industry != "panadería" {
		t.Errorf("industry = %q", s.Profile.Industry)
	}
	for _, want := range []string{"¡Excelente, Marta!", "RESUMEN", "Panadería La Espiga", "Rosario, Argentina"} {
		if !strings.Contains(r.Text, want) {
			t.Errorf("summary missing %q:\n%s", want, r.Text)
		}
	}

	seen := map[models.Field]bool{}
	for _, f := range s.Asked {
		if seen[f] {
			t.Errorf("field %s asked twice", f)
		}
		seen[f] = true
	}

	again := reply(t, e, s, "hola?")
	if again.State != StateComplete {
		t.Errorf("completed session changed state: %s", again.State)
	}
	if !strings.Contains(s.TranscriptText(), "user: Soy Marta") {
		t.Errorf("transcript text = %q", s.TranscriptText())
	}
}

func TestSummaryPlaceholders(t *testing.T) {
	got := summary(models.BusinessProfile{BusinessName: "X"})
	if !strings.Contains(got, "¡Excelente, amigo!") || strings.Count(got, "Por definir") != 5 {
		t.Errorf("summary = %s", got)
	}
}

func TestNextSlot(t *testing.T) {
	p := models.BusinessProfile{UserName: "Ana", BusinessName: "Deli"}
	i, ok := NextSlot(p, map[models.Field]bool{models.FieldUserName: true})
	if !ok || Slots[i].Field != models.FieldIndustry {
		t.Errorf("NextSlot = %d, %v", i, ok)
	}
	asked := map[models.Field]bool{}
	for _, s := range Slots {
		asked[s.Field] = true
	}
	if _, ok := NextSlot(models.BusinessProfile{}, asked); ok {
		t.Errorf("all asked should finish")
	}
}

type stubInterpreter struct {
	out Interpretation
	err error
}

func (s stubInterpreter) Interpret(context.Context, Turn) (Interpretation, error) {
	return s.out, s.err
}

func TestInterpreterFallbackToLocal(t *testing.T) {
	e := newEngine(WithInterpreter(stubInterpreter{err: completion.ErrUnavailable}))
	s, _ := e.Start("s1")
	r := reply(t, e, s, "Ana")
	if s.Profile.UserName != "Ana" || r.Field != models.FieldBusinessName {
		t.Errorf("local fallback failed: %+v %+v", s.Profile, r)
	}
}

func TestInterpreterRemoteValues(t *testing.T) {
	remote := stubInterpreter{out: Interpretation{
		Value: "Carla",
		Extra: map[models.Field]string{models.FieldBusinessName: "Flores Carla", models.FieldIndustry: "florería"},
	}}
	e := newEngine(WithInterpreter(remote))
	s, _ := e.Start("s1")
	r := reply(t, e, s, "hola! soy carla, tengo una florería")
	if s.Profile.UserName != "Carla" || s.Profile.BusinessName != "Flores Carla" || s.Profile.Industry != "florería" {
		t.Errorf("profile = %+v", s.Profile)
	}
	if r.Field != models.FieldTargetAudience {
		t.Errorf("next = %s", r.Field)
	}
}

func TestEmptyReplyRejected(t *testing.T) {
	e := newEngine()
	s, _ := e.Start("s1")
	if _, err := e.Reply(context.Background(), s, "   "); err == nil {
		t.Error("expected error for empty reply")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Reply(ctx, s, "Ana"); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled ctx err = %v", err)
	}
}

func TestParseInterpretation(t *testing.T) {
	in := parseInterpretation("value: Panadería\nclarify: no\nLocation: Córdoba\nsocialLinks: -\n- businessName: \"La Espiga\"")
	if in.Value != "Panadería" || in.Clarify {
		t.Errorf("in = %+v", in)
	}
	if in.Extra[models.FieldBusinessName] != "La Espiga" {
		t.Errorf("extra = %v", in.Extra)
	}
	if _, ok := in.Extra[models.FieldSocialLinks]; ok {
		t.Errorf("placeholder kept: %v", in.Extra)
	}

	single := parseInterpretation("value: 18 a 30, clarify: si, question: ¿Qué edad?")
	if !single.Clarify || single.Question != "¿Qué edad?" {
		t.Errorf("single-line = %+v", single)
	}
}

type fakeCompletion struct {
	got  completion.Request
	text string
}

func (f *fakeCompletion) Name() string { return "fake" }

func (f *fakeCompletion) Complete(_ context.Context, req completion.Request) (string, error) {
	f.got = req
	return f.text, nil
}

func TestCompletionInterpreter(t *testing.T) {
	fc := &fakeCompletion{text: "value: Ana\nclarify: no\nbusinessName: Deli Ana"}
	ci := NewCompletionInterpreter(fc)
	in, err := ci.Interpret(context.Background(), Turn{
		SessionID: "s9",
		Slot:      Slots[0],
		Reply:     "soy ana y tengo Deli Ana",
		Profile:   models.BusinessProfile{Location: "Lima"},
	})
	if err != nil {
		t.Fatalf("Interpret() error = %v", err)
	}
	if in.Value != "Ana" || in.Extra[models.FieldBusinessName] != "Deli Ana" {
		t.Errorf("interpretation = %+v", in)
	}
	if fc.got.SessionID != "s9" || !strings.Contains(fc.got.Prompt, "location: Lima") || !strings.Contains(fc.got.Prompt, "Campo: userName") {
		t.Errorf("request = %+v", fc.got)
	}
}
