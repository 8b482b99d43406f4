package models

// Field names one slot of a BusinessProfile.
type Field string

const (
	FieldUserName            Field = "userName"
	FieldBusinessName        Field = "businessName"
	FieldIndustry            Field = "industry"
	FieldTargetAudience      Field = "targetAudience"
	FieldDifferentiator      Field = "differentiator"
	FieldLocation            Field = "location"
	FieldWebGoal             Field = "webGoal"
	FieldBrandStyle          Field = "brandStyle"
	FieldSocialLinks         Field = "socialLinks"
	FieldPrimaryCallToAction Field = "primaryCallToAction"
)

// Fields lists every profile field in conversation order.
var Fields = []Field{
	FieldUserName,
	FieldBusinessName,
	FieldIndustry,
	FieldTargetAudience,
	FieldDifferentiator,
	FieldLocation,
	FieldWebGoal,
	FieldBrandStyle,
	FieldSocialLinks,
	FieldPrimaryCallToAction,
}

// ParseField accepts both the camelCase json names and snake_case keys.
func ParseField(s string) (Field, bool) {
	switch s {
	case "userName", "user_name", "nombre_usuario":
		return FieldUserName, true
	case "businessName", "business_name", "nombre_negocio":
		return FieldBusinessName, true
	case "industry", "rubro":
		return FieldIndustry, true
	case "targetAudience", "target_audience", "publico_objetivo":
		return FieldTargetAudience, true
	case "differentiator", "diferencial":
		return FieldDifferentiator, true
	case "location", "ubicacion":
		return FieldLocation, true
	case "webGoal", "web_goal", "objetivo_web":
		return FieldWebGoal, true
	case "brandStyle", "brand_style", "estilo_marca":
		return FieldBrandStyle, true
	case "socialLinks", "social_links", "redes":
		return FieldSocialLinks, true
	case "primaryCallToAction", "primary_call_to_action", "cta_principal":
		return FieldPrimaryCallToAction, true
	}
	return "", false
}

type BusinessProfile struct {
	UserName            string `json:"userName,omitempty"`
	BusinessName        string `json:"businessName,omitempty"`
	Industry            string `json:"industry,omitempty"`
	TargetAudience      string `json:"targetAudience,omitempty"`
	Differentiator      string `json:"differentiator,omitempty"`
	Location            string `json:"location,omitempty"`
	WebGoal             string `json:"webGoal,omitempty"`
	BrandStyle          string `json:"brandStyle,omitempty"`
	SocialLinks         string `json:"socialLinks,omitempty"`
	PrimaryCallToAction string `json:"primaryCallToAction,omitempty"`
}

func (p *BusinessProfile) ptr(f Field) *string {
	switch f {
	case FieldUserName:
		return &p.UserName
	case FieldBusinessName:
		return &p.BusinessName
	case FieldIndustry:
		return &p.Industry
	case FieldTargetAudience:
		return &p.TargetAudience
	case FieldDifferentiator:
		return &p.Differentiator
	case FieldLocation:
		return &p.Location
	case FieldWebGoal:
		return &p.WebGoal
	case FieldBrandStyle:
		return &p.BrandStyle
	case FieldSocialLinks:
		return &p.SocialLinks
	case FieldPrimaryCallToAction:
		return &p.PrimaryCallToAction
	}
	return nil
}

// Get returns the value of f, or "" for unknown fields.
func (p BusinessProfile) Get(f Field) string {
	if v := p.ptr(f); v != nil {
		return *v
	}
	return ""
}

// Set assigns v to f. Unknown fields are ignored.
func (p *BusinessProfile) Set(f Field, v string) {
	if ptr := p.ptr(f); ptr != nil {
		*ptr = v
	}
}

// Has reports whether f holds a non-empty value.
func (p BusinessProfile) Has(f Field) bool {
	return p.Get(f) != ""
}

// Merge fills the empty fields of p from other.
func (p *BusinessProfile) Merge(other BusinessProfile) {
	for _, f := range Fields {
		if !p.Has(f) && other.Has(f) {
			p.Set(f, other.Get(f))
		}
	}
}
