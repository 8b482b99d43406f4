package models

type Feature struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Testimonial.Rating is 0 when absent; renderers treat that as 5.
type Testimonial struct {
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Text   string `json:"text"`
	Rating int    `json:"rating,omitempty"`
}

// ExtractedLandingData is recovered from assistant-authored landing copy.
type ExtractedLandingData struct {
	HeroTitle    string        `json:"heroTitle,omitempty"`
	HeroSubtitle string        `json:"heroSubtitle,omitempty"`
	HeroImages   []string      `json:"heroImages,omitempty"`
	Introduction string        `json:"introduction,omitempty"`
	Features     []Feature     `json:"features,omitempty"`
	PromoTitle   string        `json:"promoTitle,omitempty"`
	Testimonials []Testimonial `json:"testimonials,omitempty"`
	CTATitle     string        `json:"ctaTitle,omitempty"`
	ImageKeyword string        `json:"imageKeyword,omitempty"`
}

type ImageDescriptor struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Category    string `json:"category,omitempty"`
}
