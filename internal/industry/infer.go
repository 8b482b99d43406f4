package industry

import "strings"

// Profile is the business shape inferred from a free-text description.
type Profile struct {
	Industry       string
	BusinessType   string
	MainGoal       string
	TargetAudience string
	KeyFeatures    []string
	Personality    string
	USP            string
	CallToAction   string
}

type inferRule struct {
	keyword      string
	industry     string
	businessType string
	mainGoal     string
	audience     string
}

var inferRules = []inferRule{
	{"restaurante", "restaurant", "Restaurante", "mostrar menú y tomar reservas", "clientes locales"},
	{"panadería", "food", "Panadería", "vender productos alimenticios", "familias y vecinos"},
	{"comida", "food", "Negocio de Comida", "vender productos alimenticios", "amantes de la buena comida"},
	{"nutricionista", "health", "Consultorio de Nutrición", "mostrar servicios y citas", "personas saludables"},
	{"gimnasio", "health", "Gimnasio", "captar nuevos socios", "jóvenes y adultos activos"},
	{"cursos", "education", "Academia Online", "vender cursos online", "estudiantes"},
	{"programación", "technology", "Academia de Programación", "enseñar habilidades técnicas", "desarrolladores"},
	{"diseño", "design", "Estudio de Diseño", "mostrar portafolio", "empresas y clientes"},
	{"tienda", "retail", "Tienda Online", "vender productos", "compradores online"},
	{"servicios", "services", "Empresa de Servicios", "ofrecer servicios profesionales", "empresas"},
	{"consultoría", "consulting", "Consultora", "asesorar a clientes", "empresas"},
	{"fotografía", "photography", "Estudio de Fotografía", "mostrar trabajo fotográfico", "clientes"},
	{"skincare", "beauty", "Marca de Skincare", "vender productos de belleza", "mujeres"},
	{"zapatería", "fashion", "Zapatería", "vender calzado", "clientes de moda"},
	{"alquiler", "hospitality", "Alquileres Temporarios", "alquilar propiedades vacacionales", "turistas y familias"},
	{"temporario", "hospitality", "Alquileres Temporarios", "alquilar propiedades vacacionales", "turistas y familias"},
	{"departamento", "hospitality", "Alquiler de Departamentos", "alquilar propiedades equipadas", "turistas y familias"},
	{"complejo", "hospitality", "Complejos Turísticos", "ofrecer alojamiento con amenities", "familias y parejas"},
	{"playa", "hospitality", "Alojamiento en la Playa", "ofrecer alojamiento cerca del mar", "veraneantes"},
	{"vacacional", "hospitality", "Alquileres Vacacionales", "alquilar para temporadas", "turistas"},
}

var featureMap = map[string][]string{
	"restaurant":  {"comida deliciosa", "servicio rápido", "ambiente acogedor", "precios competitivos"},
	"food":        {"productos frescos", "calidad garantizada", "entrega a domicilio", "variedad de opciones"},
	"health":      {"asesoramiento personalizado", "planes nutricionales", "seguimiento continuo", "resultados comprobados"},
	"education":   {"contenido de calidad", "expertos en la materia", "certificación", "soporte 24/7"},
	"technology":  {"tecnología actualizada", "proyectos prácticos", "mentoría", "comunidad activa"},
	"design":      {"creatividad", "diseños únicos", "atención al detalle", "entrega puntual"},
	"retail":      {"productos de calidad", "precios accesibles", "envío rápido", "devoluciones fáciles"},
	"services":    {"profesionalismo", "experiencia", "resultados garantizados", "atención personalizada"},
	"consulting":  {"expertos en la industria", "soluciones a medida", "mejora de procesos", "ROI medible"},
	"photography": {"equipo profesional", "edición de calidad", "creatividad", "rapidez de entrega"},
	"beauty":      {"productos naturales", "resultados visibles", "dermatológicamente testado", "envío gratuito"},
	"fashion":     {"tendencias actuales", "calidad premium", "comodidad", "estilo único"},
	"hospitality": {"propiedades equipadas", "ubicación privilegiada", "servicio de limpieza", "amenidades exclusivas"},
}

var personalityMap = map[string]string{
	"restaurant": "acogedora", "food": "tradicional", "health": "profesional",
	"education": "innovadora", "technology": "moderna", "design": "creativa",
	"retail": "amigable", "services": "profesional", "consulting": "experta",
	"photography": "artística", "beauty": "elegante", "fashion": "moderna",
	"hospitality": "acogedora",
}

var uspMap = map[string]string{
	"restaurant":  "experiencia culinaria única",
	"food":        "sabor casero con ingredientes frescos",
	"health":      "enfoque holístico para la salud",
	"education":   "aprendizaje práctico y aplicable",
	"technology":  "tecnología de vanguardia",
	"design":      "diseños que cuentan historias",
	"retail":      "la mejor relación calidad-precio",
	"services":    "soluciones que transforman negocios",
	"consulting":  "estrategias que generan resultados",
	"photography": "momentos capturados con arte",
	"beauty":      "belleza natural y sostenible",
	"fashion":     "estilo que define personalidad",
	"hospitality": "experiencia vacacional inolvidable con atención personalizada",
}

var ctaMap = map[string]string{
	"restaurant": "reservar mesa", "food": "hacer pedido", "health": "agendar consulta",
	"education": "inscribirse", "technology": "comenzar a aprender", "design": "ver portafolio",
	"retail": "comprar ahora", "services": "contratar servicio", "consulting": "solicitar asesoría",
	"photography": "contratar sesión", "beauty": "comprar productos", "fashion": "ver colección",
	"hospitality": "reservar ahora",
}

// Infer maps a free-text business description onto the first matching
// rule. ok is false when no rule matched; the generic profile is still
// returned.
func Infer(text string) (p Profile, ok bool) {
	folded := Fold(text)
	p = Profile{
		Industry:       "general",
		BusinessType:   "Mi Negocio",
		MainGoal:       "vender online",
		TargetAudience: "general",
	}
	for _, r := range inferRules {
		if strings.Contains(folded, Fold(r.keyword)) {
			p.Industry = r.industry
			p.BusinessType = r.businessType
			p.MainGoal = r.mainGoal
			p.TargetAudience = r.audience
			ok = true
			break
		}
	}
	p.KeyFeatures = featureMap[p.Industry]
	if p.KeyFeatures == nil {
		p.KeyFeatures = []string{"calidad", "servicio", "profesionalismo", "innovación"}
	}
	p.Personality = personalityMap[p.Industry]
	if p.Personality == "" {
		p.Personality = "profesional"
	}
	p.USP = uspMap[p.Industry]
	if p.USP == "" {
		p.USP = "calidad y servicio excepcional"
	}
	p.CallToAction = ctaMap[p.Industry]
	if p.CallToAction == "" {
		p.CallToAction = "contactar"
	}
	return p, ok
}
