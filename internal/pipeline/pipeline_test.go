package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/images"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

type fakeResolver struct {
	mu    sync.Mutex
	calls []string
	delay time.Duration
}

func (f *fakeResolver) Resolve(ctx context.Context, keyword string, count int, _ string) images.Result {
	f.mu.Lock()
	f.calls = append(f.calls, keyword)
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
		}
	}
	var imgs []models.ImageDescriptor
	for i := range count {
		imgs = append(imgs, models.ImageDescriptor{URL: fmt.Sprintf("https://img.test/%s/%d.jpg", keyword, i)})
	}
	return images.Result{Images: imgs, Source: images.SourceUnsplash}
}

const transcript = `1️⃣ Hero Principal
Pan de masa madre todos los días
Horneado a leña en el corazón del barrio

5️⃣ Testimonios
"El mejor pan de Rosario"
— Marta`

func collect(ch chan Progress) func() []Progress {
	var got []Progress
	done := make(chan struct{})
	go func() {
		for p := range ch {
			got = append(got, p)
		}
		close(done)
	}()
	return func() []Progress {
		close(ch)
		<-done
		return got
	}
}

func TestGenerateProgressAndPage(t *testing.T) {
	res := &fakeResolver{}
	g := New(res, nil, nil)
	ch := make(chan Progress)
	wait := collect(ch)

	doc, err := g.Generate(context.Background(), Input{
		Profile:    models.BusinessProfile{BusinessName: "La Espiga", Industry: "panadería"},
		Transcript: transcript,
	}, ch)
	steps := wait()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []int{10, 30, 50, 70, 90, 100}
	if len(steps) != len(want) {
		t.Fatalf("progress = %+v", steps)
	}
	for i, p := range steps {
		if p.Percent != want[i] || p.Message == "" {
			t.Errorf("step %d = %+v", i, p)
		}
	}
	if steps[0].Step != StepAnalyzing || steps[5].Step != StepFinalizing {
		t.Errorf("step names = %s..%s", steps[0].Step, steps[5].Step)
	}

	if doc.Title != "La Espiga" || len(doc.Blocks) != len(page.TemplateOrder) {
		t.Fatalf("doc = %s with %d blocks", doc.Title, len(doc.Blocks))
	}
	hero := page.Record(doc.Blocks)[page.KindHeroSlide].(*page.HeroSlide).Slides[0]
	if hero.Title != "Pan de masa madre todos los días" {
		t.Errorf("hero title = %q", hero.Title)
	}
	if len(res.calls) != 3 {
		t.Errorf("resolver calls = %v", res.calls)
	}
}

func TestGenerateTimeout(t *testing.T) {
	res := &fakeResolver{delay: time.Second}
	g := New(res, nil, nil, WithTimeout(20*time.Millisecond))
	ch := make(chan Progress, 16)

	start := time.Now()
	doc, err := g.Generate(context.Background(), Input{}, ch)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if doc != nil {
		t.Errorf("partial document returned")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("timeout not honoured: %s", time.Since(start))
	}
	// The channel can be closed right away; late progress must not panic.
	close(ch)
	time.Sleep(30 * time.Millisecond)
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(&fakeResolver{}, nil, nil).Generate(ctx, Input{}, nil)
	if !errors.Is(err, context.Canceled) || errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v", err)
	}
}

type fakeWriter struct {
	text string
	err  error
}

func (f fakeWriter) Name() string { return "fake" }

func (f fakeWriter) Complete(context.Context, completion.Request) (string, error) {
	return f.text, f.err
}

func TestGenerateWithCopywriter(t *testing.T) {
	g := New(&fakeResolver{}, nil, nil, WithCopywriter(fakeWriter{text: transcript}))
	doc, err := g.Generate(context.Background(), Input{Profile: models.BusinessProfile{Industry: "panadería"}}, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	ts := page.Record(doc.Blocks)[page.KindTestimonials].(*page.Testimonials).Testimonials
	if len(ts) != 1 || ts[0].Name != "Marta" {
		t.Errorf("testimonials = %+v", ts)
	}
}

func TestGenerateCopywriterFailureDegrades(t *testing.T) {
	g := New(nil, nil, nil, WithCopywriter(fakeWriter{err: completion.ErrUnavailable}))
	doc, err := g.Generate(context.Background(), Input{}, nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("degraded page invalid: %v", err)
	}
}

func TestImageGroupsCoverSlots(t *testing.T) {
	for _, slots := range []int{1, 2, 3, 8, 11} {
		g := New(nil, nil, nil, WithImageSlots(slots))
		total := 0
		for _, gr := range g.imageGroups(models.BusinessProfile{}, models.ExtractedLandingData{}) {
			total += gr.count
			if gr.count <= 0 {
				t.Errorf("slots %d: empty group %+v", slots, gr)
			}
		}
		if total != slots {
			t.Errorf("slots %d: groups cover %d", slots, total)
		}
	}
}
