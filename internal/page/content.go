package page

import (
	"fmt"
	"time"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

// Kind is the closed set of block types, in template order.
type Kind string

const (
	KindNavigation      Kind = "navigation"
	KindHeroSlide       Kind = "hero-slide"
	KindReinforcement   Kind = "reinforcement"
	KindFeatures        Kind = "features"
	KindHeroSplit       Kind = "hero-split"
	KindProductFeatures Kind = "product-features"
	KindCountdown       Kind = "countdown"
	KindSocialMedia     Kind = "social-media"
	KindYouTube         Kind = "youtube"
	KindProductCart     Kind = "product-cart"
	KindTestimonials    Kind = "testimonials"
	KindCTA             Kind = "cta"
	KindPricing         Kind = "pricing"
	KindWhatsAppContact Kind = "whatsapp-contact"
	KindFooter          Kind = "footer"
)

// TemplateOrder is the fixed order every generated page follows.
var TemplateOrder = []Kind{
	KindNavigation,
	KindHeroSlide,
	KindReinforcement,
	KindFeatures,
	KindHeroSplit,
	KindProductFeatures,
	KindCountdown,
	KindSocialMedia,
	KindYouTube,
	KindProductCart,
	KindTestimonials,
	KindCTA,
	KindPricing,
	KindWhatsAppContact,
	KindFooter,
}

// Content is implemented only by the block content types of this package.
type Content interface {
	Kind() Kind
	Validate() error
	isContent()
}

// newContent returns an empty content value for k, or nil for unknown kinds.
func newContent(k Kind) Content {
	switch k {
	case KindNavigation:
		return &Navigation{}
	case KindHeroSlide:
		return &HeroSlide{}
	case KindReinforcement:
		return &Reinforcement{}
	case KindFeatures:
		return &Features{}
	case KindHeroSplit:
		return &HeroSplit{}
	case KindProductFeatures:
		return &ProductFeatures{}
	case KindCountdown:
		return &Countdown{}
	case KindSocialMedia:
		return &SocialMedia{}
	case KindYouTube:
		return &YouTube{}
	case KindProductCart:
		return &ProductCart{}
	case KindTestimonials:
		return &Testimonials{}
	case KindCTA:
		return &CTA{}
	case KindPricing:
		return &Pricing{}
	case KindWhatsAppContact:
		return &WhatsAppContact{}
	case KindFooter:
		return &Footer{}
	}
	return nil
}

type Styles struct {
	BackgroundColor string `json:"backgroundColor"`
	PaddingY        string `json:"paddingY"`
	PaddingX        string `json:"paddingX"`
}

type NavButton struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Navigation struct {
	CompanyName  string      `json:"companyName"`
	LogoPosition string      `json:"logoPosition"`
	MenuPosition string      `json:"menuPosition"`
	Buttons      []NavButton `json:"buttons"`
	Sticky       bool        `json:"sticky"`
	Styles       Styles      `json:"styles"`
}

type Slide struct {
	ID              string `json:"id"`
	BackgroundImage string `json:"backgroundImage"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ButtonText      string `json:"buttonText"`
	ButtonTarget    string `json:"buttonTarget"`
	TextColor       string `json:"textColor"`
}

type HeroSlide struct {
	Slides           []Slide `json:"slides"`
	AutoPlay         bool    `json:"autoPlay"`
	AutoPlayInterval int     `json:"autoPlayInterval"`
	Height           string  `json:"height"`
	Styles           Styles  `json:"styles"`
}

type Reinforcement struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Features        []string `json:"features"`
	BackgroundImage string   `json:"backgroundImage"`
	Styles          Styles   `json:"styles"`
}

type Features struct {
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Features []models.Feature `json:"features"`
	Styles   Styles           `json:"styles"`
}

type HeroSplit struct {
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle"`
	Description         string `json:"description"`
	LeftImage           string `json:"leftImage"`
	LeftImageAlt        string `json:"leftImageAlt"`
	PrimaryButtonText   string `json:"primaryButtonText"`
	PrimaryButtonURL    string `json:"primaryButtonUrl"`
	SecondaryButtonText string `json:"secondaryButtonText"`
	SecondaryButtonURL  string `json:"secondaryButtonUrl"`
	Styles              Styles `json:"styles"`
}

type ProductFeatures struct {
	Title    string           `json:"title"`
	Subtitle string           `json:"subtitle"`
	Features []models.Feature `json:"features"`
	Image    string           `json:"image"`
	Styles   Styles           `json:"styles"`
}

type Countdown struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	TargetDate      time.Time `json:"targetDate"`
	ButtonText      string    `json:"buttonText"`
	ButtonLink      string    `json:"buttonLink"`
	BackgroundImage string    `json:"backgroundImage"`
	Styles          Styles    `json:"styles"`
}

type SocialLink struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Order int    `json:"order"`
}

type SocialMedia struct {
	ButtonPosition string       `json:"buttonPosition"`
	ButtonColor    string       `json:"buttonColor"`
	SocialLinks    []SocialLink `json:"socialLinks"`
	Styles         Styles       `json:"styles"`
}

type YouTube struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	VideoID     string `json:"videoId"`
	Styles      Styles `json:"styles"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	InStock     bool     `json:"inStock"`
	Features    []string `json:"features"`
}

type ProductCart struct {
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Products []Product `json:"products"`
	Styles   Styles    `json:"styles"`
}

type Testimonial struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Text   string `json:"text"`
	Avatar string `json:"avatar"`
	Rating int    `json:"rating"`
}

type Testimonials struct {
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	Testimonials []Testimonial `json:"testimonials"`
	Styles       Styles        `json:"styles"`
}

type CTA struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ButtonText      string `json:"buttonText"`
	ButtonLink      string `json:"buttonLink"`
	BackgroundImage string `json:"backgroundImage"`
	Styles          Styles `json:"styles"`
}

type Plan struct {
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	ButtonText  string   `json:"buttonText"`
	ButtonLink  string   `json:"buttonLink"`
	Popular     bool     `json:"popular"`
}

type Pricing struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Plans    []Plan `json:"plans"`
	Styles   Styles `json:"styles"`
}

type WhatsAppContact struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	WhatsAppNumber string `json:"whatsappNumber"`
	DefaultMessage string `json:"defaultMessage"`
	ButtonText     string `json:"buttonText"`
	LeftImage      string `json:"leftImage"`
	LeftImageAlt   string `json:"leftImageAlt"`
	Styles         Styles `json:"styles"`
}

type FooterLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type FooterLinkGroup struct {
	Title string       `json:"title"`
	Items []FooterLink `json:"items"`
}

type FooterSocial struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Footer struct {
	Logo        string            `json:"logo"`
	Company     string            `json:"company"`
	Description string            `json:"description"`
	Links       []FooterLinkGroup `json:"links"`
	SocialLinks []FooterSocial    `json:"socialLinks"`
	Copyright   string            `json:"copyright"`
	Styles      Styles            `json:"styles"`
}

func (*Navigation) Kind() Kind      { return KindNavigation }
func (*HeroSlide) Kind() Kind       { return KindHeroSlide }
func (*Reinforcement) Kind() Kind   { return KindReinforcement }
func (*Features) Kind() Kind        { return KindFeatures }
func (*HeroSplit) Kind() Kind       { return KindHeroSplit }
func (*ProductFeatures) Kind() Kind { return KindProductFeatures }
func (*Countdown) Kind() Kind       { return KindCountdown }
func (*SocialMedia) Kind() Kind     { return KindSocialMedia }
func (*YouTube) Kind() Kind         { return KindYouTube }
func (*ProductCart) Kind() Kind     { return KindProductCart }
func (*Testimonials) Kind() Kind    { return KindTestimonials }
func (*CTA) Kind() Kind             { return KindCTA }
func (*Pricing) Kind() Kind         { return KindPricing }
func (*WhatsAppContact) Kind() Kind { return KindWhatsAppContact }
func (*Footer) Kind() Kind          { return KindFooter }

func (*Navigation) isContent()      {}
func (*HeroSlide) isContent()       {}
func (*Reinforcement) isContent()   {}
func (*Features) isContent()        {}
func (*HeroSplit) isContent()       {}
func (*ProductFeatures) isContent() {}
func (*Countdown) isContent()       {}
func (*SocialMedia) isContent()     {}
func (*YouTube) isContent()         {}
func (*ProductCart) isContent()     {}
func (*Testimonials) isContent()    {}
func (*CTA) isContent()             {}
func (*Pricing) isContent()         {}
func (*WhatsAppContact) isContent() {}
func (*Footer) isContent()          {}

// required reports the first empty field name among pairs of name, value.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidBlock, pairs[i])
		}
	}
	return nil
}

func (c *Navigation) Validate() error {
	if len(c.Buttons) == 0 {
		return fmt.Errorf("%w: navigation needs buttons", ErrInvalidBlock)
	}
	return required("companyName", c.CompanyName)
}

func (c *HeroSlide) Validate() error {
	if len(c.Slides) == 0 {
		return fmt.Errorf("%w: hero needs at least one slide", ErrInvalidBlock)
	}
	for _, s := range c.Slides {
		if err := required("slide.title", s.Title, "slide.backgroundImage", s.BackgroundImage, "slide.buttonText", s.ButtonText); err != nil {
			return err
		}
	}
	return nil
}

func (c *Reinforcement) Validate() error {
	return required("title", c.Title, "description", c.Description, "backgroundImage", c.BackgroundImage)
}

func (c *Features) Validate() error {
	if len(c.Features) == 0 {
		return fmt.Errorf("%w: features list is empty", ErrInvalidBlock)
	}
	for _, f := range c.Features {
		if err := required("feature.title", f.Title, "feature.description", f.Description, "feature.icon", f.Icon); err != nil {
			return err
		}
	}
	return required("title", c.Title)
}

func (c *HeroSplit) Validate() error {
	return required("title", c.Title, "leftImage", c.LeftImage, "primaryButtonText", c.PrimaryButtonText)
}

func (c *ProductFeatures) Validate() error {
	if len(c.Features) == 0 {
		return fmt.Errorf("%w: product features list is empty", ErrInvalidBlock)
	}
	return required("title", c.Title, "image", c.Image)
}

func (c *Countdown) Validate() error {
	if c.TargetDate.IsZero() {
		return fmt.Errorf("%w: countdown needs a target date", ErrInvalidBlock)
	}
	return required("title", c.Title, "buttonText", c.ButtonText, "backgroundImage", c.BackgroundImage)
}

func (c *SocialMedia) Validate() error {
	if len(c.SocialLinks) == 0 {
		return fmt.Errorf("%w: social links are empty", ErrInvalidBlock)
	}
	for _, l := range c.SocialLinks {
		if err := required("link.name", l.Name, "link.url", l.URL); err != nil {
			return err
		}
	}
	return nil
}

func (c *YouTube) Validate() error {
	return required("title", c.Title, "videoId", c.VideoID)
}

func (c *ProductCart) Validate() error {
	if len(c.Products) == 0 {
		return fmt.Errorf("%w: product list is empty", ErrInvalidBlock)
	}
	for _, p := range c.Products {
		if err := required("product.name", p.Name, "product.image", p.Image); err != nil {
			return err
		}
	}
	return required("title", c.Title)
}

func (c *Testimonials) Validate() error {
	if len(c.Testimonials) == 0 {
		return fmt.Errorf("%w: testimonials are empty", ErrInvalidBlock)
	}
	for _, t := range c.Testimonials {
		if t.Rating < 1 || t.Rating > 5 {
			return fmt.Errorf("%w: rating %d out of range", ErrInvalidBlock, t.Rating)
		}
		if err := required("testimonial.name", t.Name, "testimonial.text", t.Text, "testimonial.avatar", t.Avatar); err != nil {
			return err
		}
	}
	return required("title", c.Title)
}

func (c *CTA) Validate() error {
	return required("title", c.Title, "buttonText", c.ButtonText, "backgroundImage", c.BackgroundImage)
}

func (c *Pricing) Validate() error {
	if len(c.Plans) == 0 {
		return fmt.Errorf("%w: pricing has no plans", ErrInvalidBlock)
	}
	return required("title", c.Title)
}

func (c *WhatsAppContact) Validate() error {
	return required("title", c.Title, "whatsappNumber", c.WhatsAppNumber, "buttonText", c.ButtonText, "leftImage", c.LeftImage)
}

func (c *Footer) Validate() error {
	return required("company", c.Company, "description", c.Description)
}
