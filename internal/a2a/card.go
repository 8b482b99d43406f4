package a2a

type AgentCard struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	URL                string       `json:"url"`
	Version            string       `json:"version"`
	ProtocolVersion    string       `json:"protocolVersion"`
	DefaultInputModes  []string     `json:"defaultInputModes"`
	DefaultOutputModes []string     `json:"defaultOutputModes"`
	Capabilities       Capabilities `json:"capabilities"`
	Skills             []Skill      `json:"skills"`
}

type Capabilities struct {
	Streaming              bool `json:"streaming"`
	PushNotifications      bool `json:"pushNotifications"`
	StateTransitionHistory bool `json:"stateTransitionHistory"`
}

type Skill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Examples    []string `json:"examples"`
}

// Endpoint is the path the JSON-RPC handler is mounted on.
const Endpoint = "/a2a/landing"

func newAgentCard(baseURL string) AgentCard {
	return AgentCard{
		Name:               "Landing Assistant Agent",
		Description:        "Conversa con vos sobre tu negocio y arma una landing page completa lista para editar.",
		URL:                baseURL + Endpoint,
		Version:            "1.0.0",
		ProtocolVersion:    "0.3.0",
		DefaultInputModes:  []string{"text/plain"},
		DefaultOutputModes: []string{"text/plain", "application/json"},
		Capabilities:       Capabilities{StateTransitionHistory: true},
		Skills: []Skill{{
			ID:          "landing-intake",
			Name:        "Landing page intake",
			Description: "Recopila los datos del negocio pregunta por pregunta y devuelve los bloques de la página.",
			Tags:        []string{"landing", "marketing", "website"},
			Examples:    []string{"Hola, quiero una página para mi panadería", "Me llamo Ana y mi negocio se llama Ana's Deli"},
		}},
	}
}
