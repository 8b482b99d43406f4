package synth

import (
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

const (
	defaultCompany      = "Mi Empresa"
	defaultHeroTitle    = "Bienvenido a Mi Empresa"
	defaultHeroSubtitle = "Líder en el sector"
	defaultHeroButton   = "Conocer Más"
	defaultContact      = "Contactar"
	defaultIntro        = "Conoce más sobre nuestro negocio"
	defaultPromoTitle   = "Promoción Especial"
	defaultCTATitle     = "Contacto"
	defaultWhatsApp     = "+1234567890"
	defaultVideoID      = "S9w88y5Od9w"

	// PlaceholderImage fills every image slot when nothing was resolved.
	PlaceholderImage = "https://picsum.photos/seed/landing/1200/800"
)

var (
	defaultFeatures = []models.Feature{
		{Icon: "⭐", Title: "Característica 1", Description: "Descripción de la característica"},
		{Icon: "🎯", Title: "Característica 2", Description: "Descripción de la característica"},
		{Icon: "📍", Title: "Característica 3", Description: "Descripción de la característica"},
	}

	promoFeatures = []models.Feature{
		{Icon: "🎉", Title: "Oferta Especial", Description: "Promoción disponible por tiempo limitado"},
		{Icon: "✨", Title: "Calidad Garantizada", Description: "Los mejores productos y servicios"},
		{Icon: "🎯", Title: "Atención Personalizada", Description: "Servicio dedicado a cada cliente"},
	}

	defaultTestimonials = []models.Testimonial{
		{Name: "Cliente Satisfecho", Role: "Cliente", Text: "Excelente servicio, superaron todas mis expectativas.", Rating: 5},
		{Name: "Cliente Frecuente", Role: "Cliente", Text: "Profesionales dedicados y resultados garantizados.", Rating: 5},
	}

	defaultSocial = []page.SocialLink{
		{ID: "whatsapp", Name: "WhatsApp", URL: "https://wa.me/" + defaultWhatsApp},
		{ID: "facebook", Name: "Facebook", URL: "https://facebook.com/"},
		{ID: "instagram", Name: "Instagram", URL: "https://instagram.com/"},
	}

	defaultFooterSocial = []page.FooterSocial{
		{Platform: "Facebook", URL: "https://facebook.com/"},
		{Platform: "Twitter", URL: "https://twitter.com/"},
		{Platform: "Instagram", URL: "https://instagram.com/"},
	}

	plans = []page.Plan{
		{
			Name: "Básico", Price: "$99", Period: "/mes", Description: "Perfecto para comenzar",
			Features:   []string{"Hasta 5 proyectos", "Soporte por email", "1 GB de almacenamiento", "Reportes básicos"},
			ButtonText: "Comenzar", ButtonLink: "#",
		},
		{
			Name: "Profesional", Price: "$199", Period: "/mes", Description: "Lo más popular",
			Features:   []string{"Proyectos ilimitados", "Soporte prioritario", "10 GB de almacenamiento", "Reportes avanzados", "Integraciones"},
			ButtonText: "Elegir Plan", ButtonLink: "#", Popular: true,
		},
		{
			Name: "Empresarial", Price: "$399", Period: "/mes", Description: "Para grandes empresas",
			Features:   []string{"Todo lo del Profesional", "Almacenamiento ilimitado", "API personalizada", "Cuenta manager dedicado", "SLA garantizado"},
			ButtonText: defaultContact, ButtonLink: "#",
		},
	}

	footerLinks = []page.FooterLinkGroup{{
		Title: "Enlaces Rápidos",
		Items: []page.FooterLink{
			{Text: "Inicio", URL: "#"},
			{Text: "Servicios", URL: "#"},
			{Text: "Sobre Nosotros", URL: "#"},
			{Text: "Contacto", URL: "#"},
		},
	}}

	navButtons = []page.NavButton{
		{ID: "inicio", Label: "Inicio", URL: "#"},
		{ID: "servicios", Label: "Servicios", URL: "#servicios"},
		{ID: "contacto", Label: "Contacto", URL: "#contacto"},
	}
)

func styles(paddingY, paddingX string) page.Styles {
	return page.Styles{BackgroundColor: "bg-background", PaddingY: paddingY, PaddingX: paddingX}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
