package synth

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%03d", n)
	}
}

func newTest() *Synthesizer {
	return New(WithIDFunc(counterIDs()), WithClock(func() time.Time { return fixedNow }))
}

func TestSynthesizeEmptyInputIsComplete(t *testing.T) {
	blocks := newTest().Synthesize(models.BusinessProfile{}, models.ExtractedLandingData{}, nil)

	if len(blocks) != len(page.TemplateOrder) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(page.TemplateOrder))
	}
	for i, b := range blocks {
		if b.Type != page.TemplateOrder[i] || b.Position != i {
			t.Errorf("block %d = %s@%d", i, b.Type, b.Position)
		}
	}
	if err := page.ValidateBlocks(blocks); err != nil {
		t.Fatalf("default page invalid: %v", err)
	}

	rec := page.Record(blocks)
	hero := rec[page.KindHeroSlide].(*page.HeroSlide)
	if hero.Slides[0].Title != defaultHeroTitle || hero.Slides[0].BackgroundImage != PlaceholderImage {
		t.Errorf("hero = %+v", hero.Slides[0])
	}
	if nav := rec[page.KindNavigation].(*page.Navigation); nav.CompanyName != "Mi Empresa" {
		t.Errorf("navigation company = %q", nav.CompanyName)
	}
	cd := rec[page.KindCountdown].(*page.Countdown)
	if !cd.TargetDate.Equal(fixedNow.Add(7 * 24 * time.Hour)) {
		t.Errorf("countdown target = %v", cd.TargetDate)
	}
	pricing := rec[page.KindPricing].(*page.Pricing)
	if len(pricing.Plans) != 3 || !pricing.Plans[1].Popular || pricing.Plans[0].Price != "$99" {
		t.Errorf("pricing plans = %+v", pricing.Plans)
	}
}

func TestSynthesizePrecedence(t *testing.T) {
	profile := models.BusinessProfile{
		BusinessName:        "Panadería Sol",
		Differentiator:      "Masa madre artesanal",
		Industry:            "panadería",
		PrimaryCallToAction: "Pedir ahora",
	}
	extracted := models.ExtractedLandingData{
		HeroTitle: "Pan recién horneado",
		Features:  []models.Feature{{Title: "Horno de leña", Description: "Cocción lenta"}},
		Testimonials: []models.Testimonial{
			{Name: "Laura", Text: "El mejor pan del barrio"},
			{Name: "Pedro", Text: "Siempre fresco", Rating: 9},
		},
		CTATitle: "Visitanos hoy",
	}
	rec := page.Record(newTest().Synthesize(profile, extracted, nil))

	hero := rec[page.KindHeroSlide].(*page.HeroSlide).Slides[0]
	if hero.Title != "Pan recién horneado" || hero.Subtitle != "Masa madre artesanal" || hero.ButtonText != "Pedir ahora" {
		t.Errorf("hero slide = %+v", hero)
	}
	f := rec[page.KindFeatures].(*page.Features).Features
	if len(f) != 1 || f[0].Icon != "⭐" {
		t.Errorf("features = %+v", f)
	}
	ts := rec[page.KindTestimonials].(*page.Testimonials).Testimonials
	if len(ts) != 2 || ts[0].Role != "Cliente" || ts[0].Rating != 5 || ts[1].Rating != 5 {
		t.Errorf("testimonials = %+v", ts)
	}
	if cta := rec[page.KindCTA].(*page.CTA); cta.Title != "Visitanos hoy" || cta.ButtonText != "Pedir ahora" {
		t.Errorf("cta = %+v", cta)
	}
	if footer := rec[page.KindFooter].(*page.Footer); footer.Company != "Panadería Sol" || footer.Description != "Masa madre artesanal" {
		t.Errorf("footer = %+v", footer)
	}
	wa := rec[page.KindWhatsAppContact].(*page.WhatsAppContact)
	if !strings.Contains(wa.DefaultMessage, "Panadería Sol") {
		t.Errorf("whatsapp message = %q", wa.DefaultMessage)
	}
}

func TestSynthesizeProfileFeatures(t *testing.T) {
	profile := models.BusinessProfile{TargetAudience: "familias", Location: "Córdoba"}
	f := page.Record(newTest().Synthesize(profile, models.ExtractedLandingData{}, nil))[page.KindFeatures].(*page.Features).Features
	if len(f) != 3 || f[1].Description != "Especializados en familias" || f[2].Description != "Córdoba" {
		t.Errorf("features = %+v", f)
	}
}

func TestSynthesizeImageDistribution(t *testing.T) {
	var imgs []models.ImageDescriptor
	for i := range 3 {
		imgs = append(imgs, models.ImageDescriptor{URL: fmt.Sprintf("https://img.test/%d.jpg", i)})
	}
	extracted := models.ExtractedLandingData{HeroImages: []string{"https://img.test/hero.jpg"}}
	blocks := newTest().Synthesize(models.BusinessProfile{}, extracted, imgs)
	rec := page.Record(blocks)

	hero := rec[page.KindHeroSlide].(*page.HeroSlide).Slides[0].BackgroundImage
	if hero != "https://img.test/hero.jpg" {
		t.Errorf("hero image = %q", hero)
	}
	if got := rec[page.KindReinforcement].(*page.Reinforcement).BackgroundImage; got != hero {
		t.Errorf("reinforcement should reuse the hero image, got %q", got)
	}
	if got := rec[page.KindHeroSplit].(*page.HeroSplit).LeftImage; got != "https://img.test/0.jpg" {
		t.Errorf("hero-split image = %q", got)
	}
	// Pool of 4 wraps: slot 4 is the hero image again.
	if got := rec[page.KindCTA].(*page.CTA).BackgroundImage; got != hero {
		t.Errorf("cta image = %q", got)
	}
	if err := page.ValidateBlocks(blocks); err != nil {
		t.Errorf("blocks invalid: %v", err)
	}
}

func TestSynthesizeDeterministicShape(t *testing.T) {
	extracted := models.ExtractedLandingData{HeroTitle: "X", PromoTitle: "Y"}
	a := New().Synthesize(models.BusinessProfile{}, extracted, nil)
	b := New().Synthesize(models.BusinessProfile{}, extracted, nil)

	ids := map[string]bool{}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Position != b[i].Position {
			t.Fatalf("block %d differs: %s@%d vs %s@%d", i, a[i].Type, a[i].Position, b[i].Type, b[i].Position)
		}
		for _, id := range []string{a[i].ID, b[i].ID} {
			if ids[id] {
				t.Errorf("duplicate id %s", id)
			}
			ids[id] = true
		}
		if !strings.HasPrefix(a[i].ID, string(a[i].Type)+"-") {
			t.Errorf("id %q lacks type prefix", a[i].ID)
		}
	}
}

func TestSynthesizeSocialLinks(t *testing.T) {
	profile := models.BusinessProfile{SocialLinks: "instagram.com/panaderiasol, @solpan, wa.me/5491122334455"}
	rec := page.Record(newTest().Synthesize(profile, models.ExtractedLandingData{}, nil))

	links := rec[page.KindSocialMedia].(*page.SocialMedia).SocialLinks
	if len(links) != 3 || links[0].Name != "Instagram" || links[2].ID != "whatsapp" || links[2].Order != 3 {
		t.Errorf("social links = %+v", links)
	}
	if wa := rec[page.KindWhatsAppContact].(*page.WhatsAppContact); wa.WhatsAppNumber != "+5491122334455" {
		t.Errorf("whatsapp number = %q", wa.WhatsAppNumber)
	}
	footer := rec[page.KindFooter].(*page.Footer).SocialLinks
	if len(footer) != 2 {
		t.Errorf("footer social = %+v", footer)
	}
}

func TestWhatsAppNumberFromPhone(t *testing.T) {
	if got := whatsAppNumber("WhatsApp +54 9 11 2233-4455", nil); got != "+5491122334455" {
		t.Errorf("whatsAppNumber() = %q", got)
	}
	if got := whatsAppNumber("solo instagram", nil); got != "" {
		t.Errorf("whatsAppNumber() = %q, want empty", got)
	}
}
