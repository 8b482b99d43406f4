// Package synth turns a business profile, extracted landing copy and
// resolved imagery into the fixed-order block list of a landing page.
package synth

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

// ImageSlots is how many distinct images a page can show before reuse.
const ImageSlots = 8

const (
	slotHero = iota
	slotSplit
	slotProductFeatures
	slotCountdown
	slotCTA
	slotProductA
	slotProductB
	slotContact
)

const maxHeroSlides = 3

type Synthesizer struct {
	newID func() string
	now   func() time.Time
}

type Option func(*Synthesizer)

// WithIDFunc replaces the uuid generator used for block ids.
func WithIDFunc(f func() string) Option {
	return func(s *Synthesizer) {
		s.newID = f
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = now
	}
}

func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{newID: uuid.NewString, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Synthesize always returns one block per page.TemplateOrder entry with
// every required field and image slot filled.
func (s *Synthesizer) Synthesize(profile models.BusinessProfile, extracted models.ExtractedLandingData, images []models.ImageDescriptor) []page.Block {
	pool := newImagePool(extracted.HeroImages, images)
	b := builder{s: s, p: profile, x: extracted, img: pool}

	blocks := make([]page.Block, 0, len(page.TemplateOrder))
	for i, kind := range page.TemplateOrder {
		id := fmt.Sprintf("%s-%s", kind, s.newID())
		blocks = append(blocks, page.NewBlock(id, b.content(kind), i))
	}
	return blocks
}

// imagePool hands out image URLs by slot, wrapping when it runs short.
type imagePool struct {
	urls []string
}

func newImagePool(hero []string, resolved []models.ImageDescriptor) imagePool {
	var urls []string
	seen := map[string]bool{}
	push := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, u := range hero {
		push(u)
	}
	for _, d := range resolved {
		push(d.URL)
	}
	if len(urls) == 0 {
		urls = []string{PlaceholderImage}
	}
	return imagePool{urls: urls}
}

func (p imagePool) at(slot int) string {
	return p.urls[slot%len(p.urls)]
}

type builder struct {
	s   *Synthesizer
	p   models.BusinessProfile
	x   models.ExtractedLandingData
	img imagePool
}

func (b builder) company() string {
	return firstNonEmpty(b.p.BusinessName, defaultCompany)
}

func (b builder) contactText() string {
	return firstNonEmpty(b.p.PrimaryCallToAction, defaultContact)
}

func (b builder) content(kind page.Kind) page.Content {
	switch kind {
	case page.KindNavigation:
		return b.navigation()
	case page.KindHeroSlide:
		return b.hero()
	case page.KindReinforcement:
		return b.reinforcement()
	case page.KindFeatures:
		return b.features()
	case page.KindHeroSplit:
		return b.heroSplit()
	case page.KindProductFeatures:
		return b.productFeatures()
	case page.KindCountdown:
		return b.countdown()
	case page.KindSocialMedia:
		return b.socialMedia()
	case page.KindYouTube:
		return b.youtube()
	case page.KindProductCart:
		return b.productCart()
	case page.KindTestimonials:
		return b.testimonials()
	case page.KindCTA:
		return b.cta()
	case page.KindPricing:
		return b.pricing()
	case page.KindWhatsAppContact:
		return b.whatsApp()
	case page.KindFooter:
		return b.footer()
	}
	panic(fmt.Sprintf("synth: no builder for block type %q", kind))
}

func (b builder) navigation() *page.Navigation {
	return &page.Navigation{
		CompanyName:  b.company(),
		LogoPosition: "left",
		MenuPosition: "right",
		Buttons:      slices.Clone(navButtons),
		Sticky:       true,
		Styles:       styles("py-4", "px-6"),
	}
}

func (b builder) hero() *page.HeroSlide {
	title := firstNonEmpty(b.x.HeroTitle, b.p.BusinessName, defaultHeroTitle)
	subtitle := firstNonEmpty(b.x.HeroSubtitle, b.p.Differentiator, defaultHeroSubtitle)
	button := firstNonEmpty(b.p.PrimaryCallToAction, defaultHeroButton)

	n := min(max(len(b.x.HeroImages), 1), maxHeroSlides)
	slides := make([]page.Slide, 0, n)
	for i := range n {
		slides = append(slides, page.Slide{
			ID:              fmt.Sprintf("slide-%d", i+1),
			BackgroundImage: b.img.at(slotHero + i),
			Title:           title,
			Subtitle:        subtitle,
			ButtonText:      button,
			ButtonTarget:    "#",
			TextColor:       "light",
		})
	}
	return &page.HeroSlide{
		Slides:           slides,
		AutoPlay:         true,
		AutoPlayInterval: 5000,
		Height:           "viewport",
		Styles:           styles("py-0", "px-0"),
	}
}

func (b builder) reinforcement() *page.Reinforcement {
	return &page.Reinforcement{
		Title:           "Introducción",
		Description:     firstNonEmpty(b.x.Introduction, b.p.Differentiator, defaultIntro),
		Features:        []string{firstNonEmpty(b.x.HeroSubtitle, "Calidad garantizada")},
		BackgroundImage: b.img.at(slotHero),
		Styles:          styles("py-16", "px-6"),
	}
}

func (b builder) features() *page.Features {
	return &page.Features{
		Title:    "Características Principales",
		Subtitle: "Lo que nos hace únicos",
		Features: b.featureList(),
		Styles:   styles("py-16", "px-6"),
	}
}

func (b builder) featureList() []models.Feature {
	var out []models.Feature
	for _, f := range b.x.Features {
		if f.Title == "" {
			continue
		}
		f.Icon = firstNonEmpty(f.Icon, "⭐")
		f.Description = firstNonEmpty(f.Description, f.Title)
		out = append(out, f)
	}
	if len(out) > 0 {
		return out
	}
	if b.p.Differentiator == "" && b.p.TargetAudience == "" && b.p.Location == "" {
		return slices.Clone(defaultFeatures)
	}
	return []models.Feature{
		{Icon: "⭐", Title: "Calidad", Description: firstNonEmpty(b.p.Differentiator, "Servicios de alta calidad")},
		{Icon: "🎯", Title: "Enfoque", Description: "Especializados en " + firstNonEmpty(b.p.TargetAudience, "nuestros clientes")},
		{Icon: "📍", Title: "Ubicación", Description: firstNonEmpty(b.p.Location, "Ubicación estratégica")},
	}
}

func (b builder) heroSplit() *page.HeroSplit {
	return &page.HeroSplit{
		Title:               "Servicios Adicionales",
		Subtitle:            "Todo lo que ofrecemos para vos",
		Description:         "Conocé más sobre nuestros servicios y cómo podemos ayudarte.",
		LeftImage:           b.img.at(slotSplit),
		LeftImageAlt:        "Servicios adicionales",
		PrimaryButtonText:   b.contactText(),
		PrimaryButtonURL:    "#",
		SecondaryButtonText: "Más Información",
		SecondaryButtonURL:  "#",
		Styles:              styles("py-20", "px-6"),
	}
}

func (b builder) productFeatures() *page.ProductFeatures {
	return &page.ProductFeatures{
		Title:    firstNonEmpty(b.x.PromoTitle, defaultPromoTitle),
		Subtitle: "Aprovechá nuestras ofertas",
		Features: slices.Clone(promoFeatures),
		Image:    b.img.at(slotProductFeatures),
		Styles:   styles("py-16", "px-6"),
	}
}

func (b builder) countdown() *page.Countdown {
	return &page.Countdown{
		Title:           "¡Oferta Especial!",
		Description:     "No te pierdas esta oportunidad única",
		TargetDate:      b.s.now().Add(7 * 24 * time.Hour).UTC(),
		ButtonText:      "Aprovechar Oferta",
		ButtonLink:      "#",
		BackgroundImage: b.img.at(slotCountdown),
		Styles:          styles("py-16", "px-6"),
	}
}

func (b builder) socialLinks() []page.SocialLink {
	if links := parseSocial(b.p.SocialLinks); len(links) > 0 {
		return links
	}
	return slices.Clone(defaultSocial)
}

func (b builder) socialMedia() *page.SocialMedia {
	return &page.SocialMedia{
		ButtonPosition: "right",
		ButtonColor:    "#25D366",
		SocialLinks:    b.socialLinks(),
		Styles:         styles("py-4", "px-4"),
	}
}

func (b builder) youtube() *page.YouTube {
	return &page.YouTube{
		Title:       "Conocé Nuestro Trabajo",
		Description: "Mirá este video para conocer más sobre nuestros servicios y cómo podemos ayudarte.",
		VideoURL:    "https://www.youtube.com/watch?v=" + defaultVideoID,
		VideoID:     defaultVideoID,
		Styles:      styles("py-16", "px-6"),
	}
}

func (b builder) productCart() *page.ProductCart {
	return &page.ProductCart{
		Title:    "Nuestros Productos",
		Subtitle: "Los mejores para vos",
		Products: []page.Product{
			{
				ID: "product-1", Name: "Producto Básico", Price: 99, Currency: "USD",
				Description: "Perfecto para comenzar", Image: b.img.at(slotProductA),
				Category: "Básico", InStock: true,
				Features: []string{"Funcionalidad esencial", "Soporte básico"},
			},
			{
				ID: "product-2", Name: "Producto Profesional", Price: 199, Currency: "USD",
				Description: "Para usuarios avanzados", Image: b.img.at(slotProductB),
				Category: "Profesional", InStock: true,
				Features: []string{"Todas las funciones", "Soporte prioritario"},
			},
		},
		Styles: styles("py-16", "px-6"),
	}
}

func (b builder) testimonials() *page.Testimonials {
	var src []models.Testimonial
	for _, t := range b.x.Testimonials {
		if t.Text != "" {
			src = append(src, t)
		}
	}
	if len(src) == 0 {
		src = defaultTestimonials
	}
	list := make([]page.Testimonial, 0, len(src))
	for i, t := range src {
		list = append(list, page.Testimonial{
			Name:   firstNonEmpty(t.Name, "Cliente"),
			Role:   firstNonEmpty(t.Role, "Cliente"),
			Text:   t.Text,
			Avatar: b.img.at(slotSplit + i),
			Rating: clampRating(t.Rating),
		})
	}
	return &page.Testimonials{
		Title:        "Lo que dicen nuestros clientes",
		Subtitle:     "Experiencias reales de quienes confían en nosotros",
		Testimonials: list,
		Styles:       styles("py-16", "px-6"),
	}
}

func clampRating(r int) int {
	switch {
	case r <= 0 || r > 5:
		return 5
	default:
		return r
	}
}

func (b builder) cta() *page.CTA {
	return &page.CTA{
		Title:           firstNonEmpty(b.x.CTATitle, defaultCTATitle),
		Description:     "No esperes más, contactanos y comenzá a disfrutar de nuestros servicios.",
		ButtonText:      b.contactText(),
		ButtonLink:      "#",
		BackgroundImage: b.img.at(slotCTA),
		Styles:          styles("py-16", "px-6"),
	}
}

func (b builder) pricing() *page.Pricing {
	out := make([]page.Plan, len(plans))
	for i, p := range plans {
		p.Features = slices.Clone(p.Features)
		out[i] = p
	}
	return &page.Pricing{
		Title:    "Nuestros Planes",
		Subtitle: "Elegí la opción que mejor se adapte a tus necesidades",
		Plans:    out,
		Styles:   styles("py-16", "px-6"),
	}
}

func (b builder) whatsApp() *page.WhatsAppContact {
	number := whatsAppNumber(b.p.SocialLinks, parseSocial(b.p.SocialLinks))
	return &page.WhatsAppContact{
		Title:          "Contacto vía WhatsApp",
		Description:    "Habla con nosotros directamente por WhatsApp",
		WhatsAppNumber: firstNonEmpty(number, defaultWhatsApp),
		DefaultMessage: fmt.Sprintf("Hola, estoy interesado en %s.", firstNonEmpty(b.p.BusinessName, "sus servicios")),
		ButtonText:     "Contactar por WhatsApp",
		LeftImage:      b.img.at(slotContact),
		LeftImageAlt:   "Imagen de contacto",
		Styles:         styles("py-16", "px-6"),
	}
}

func (b builder) footer() *page.Footer {
	var social []page.FooterSocial
	for _, l := range parseSocial(b.p.SocialLinks) {
		if l.ID != "whatsapp" {
			social = append(social, page.FooterSocial{Platform: l.Name, URL: l.URL})
		}
	}
	if len(social) == 0 {
		social = slices.Clone(defaultFooterSocial)
	}
	links := make([]page.FooterLinkGroup, len(footerLinks))
	for i, g := range footerLinks {
		g.Items = slices.Clone(g.Items)
		links[i] = g
	}
	return &page.Footer{
		Company:     b.company(),
		Description: firstNonEmpty(b.p.Differentiator, "Líderes en "+firstNonEmpty(b.p.Industry, "nuestro sector")),
		Links:       links,
		SocialLinks: social,
		Copyright:   fmt.Sprintf("© %d %s. Todos los derechos reservados.", b.s.now().Year(), b.company()),
		Styles:      styles("py-8", "px-6"),
	}
}
