package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

var intakeAnswers = []string{
	"Me llamo Ana y mi negocio se llama Ana's Deli",
	"restaurante",
	"familias y turistas",
	"comida casera hecha cada mañana",
	"Mendoza, Argentina",
	"quiero vender por delivery",
	"moderno y cálido",
	"https://instagram.com/anasdeli",
	"pedir ahora",
}

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 150 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, images, landing, intake, a2a, custom")
	prompt := flag.String("prompt", "", "Business description for the custom landing test")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Landing Assistant Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, client.baseURL, colorReset)

	tests := map[string]func() bool{
		"health":     client.testHealthCheck,
		"agent-card": client.testAgentCard,
		"images":     client.testImageSearch,
		"landing":    client.testLanding,
		"intake":     client.testIntake,
		"a2a":        client.testA2AConversation,
	}

	switch *testType {
	case "all":
		client.runAllTests()
	case "custom":
		if *prompt == "" {
			printError("A prompt is required for the custom test. Use -prompt flag")
			os.Exit(1)
		}
		if !client.testCustomLanding(*prompt) {
			os.Exit(1)
		}
	default:
		fn, ok := tests[*testType]
		if !ok {
			printError(fmt.Sprintf("Unknown test type: %s", *testType))
			fmt.Println("\nAvailable tests: all, health, agent-card, images, landing, intake, a2a, custom")
			os.Exit(1)
		}
		if !fn() {
			os.Exit(1)
		}
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Image Search", tc.testImageSearch},
		{"Landing Generation", tc.testLanding},
		{"Intake Session", tc.testIntake},
		{"A2A Conversation", tc.testA2AConversation},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := tc.baseURL + "/health"
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		printError(fmt.Sprintf("Expected 200 'OK', got %d '%s'", resp.StatusCode, string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	var card map[string]any
	if !tc.call(http.MethodGet, "/.well-known/agent.json", nil, http.StatusOK, &card) {
		return false
	}
	for _, field := range []string{"name", "description", "url", "version", "capabilities", "skills"} {
		if _, ok := card[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	return true
}

func (tc *TestClient) testImageSearch() bool {
	printTestHeader("Testing Image Search")

	var out struct {
		Success bool             `json:"success"`
		Images  []map[string]any `json:"images"`
		Source  string           `json:"source"`
	}
	req := map[string]any{"query": "panadería", "industry": "panadería", "count": 4}
	if !tc.call(http.MethodPost, "/api/images/search", req, http.StatusOK, &out) {
		return false
	}
	if !out.Success || len(out.Images) != 4 {
		printError(fmt.Sprintf("Expected 4 images, got %d", len(out.Images)))
		return false
	}
	for _, img := range out.Images {
		if u, _ := img["url"].(string); u == "" {
			printError("Image with empty url")
			return false
		}
	}

	if !tc.call(http.MethodPost, "/api/images/search", map[string]any{"industry": "x"}, http.StatusBadRequest, nil) {
		return false
	}

	printSuccess(fmt.Sprintf("Image search returned %d images from %s", len(out.Images), out.Source))
	return true
}

func (tc *TestClient) testLanding() bool {
	return tc.testCustomLanding("Tengo una panadería artesanal llamada La Espiga en Rosario, para familias del barrio")
}

func (tc *TestClient) testCustomLanding(prompt string) bool {
	printTestHeader("Testing Landing Generation")
	fmt.Printf("%sPrompt:%s %s\n\n", colorCyan, colorReset, prompt)

	var out struct {
		Success bool           `json:"success"`
		Blocks  map[string]any `json:"blocks"`
		Page    struct {
			Title  string `json:"title"`
			Blocks []any  `json:"blocks"`
		} `json:"page"`
	}
	if !tc.call(http.MethodPost, "/api/landing/generate", map[string]any{"text": prompt}, http.StatusOK, &out) {
		return false
	}
	if !out.Success || len(out.Page.Blocks) == 0 {
		printError("Empty page returned")
		return false
	}
	if !tc.call(http.MethodPost, "/api/landing/generate", map[string]any{"text": ""}, http.StatusBadRequest, nil) {
		return false
	}

	printSuccess(fmt.Sprintf("Generated %q with %d blocks", out.Page.Title, len(out.Page.Blocks)))
	return true
}

func (tc *TestClient) testIntake() bool {
	printTestHeader("Testing Intake Session")

	type sessionReply struct {
		Session struct {
			ID      string         `json:"id"`
			State   string         `json:"state"`
			Profile map[string]any `json:"profile"`
		} `json:"session"`
		Reply struct {
			Text  string `json:"text"`
			State string `json:"state"`
		} `json:"reply"`
	}

	var start sessionReply
	if !tc.call(http.MethodPost, "/api/intake/sessions", nil, http.StatusCreated, &start) {
		return false
	}
	id := start.Session.ID
	fmt.Printf("%sAgente:%s %s\n", colorYellow, colorReset, start.Reply.Text)

	var turn sessionReply
	for _, answer := range intakeAnswers {
		fmt.Printf("%sUsuario:%s %s\n", colorCyan, colorReset, answer)
		if !tc.call(http.MethodPost, "/api/intake/sessions/"+id+"/messages", map[string]any{"text": answer}, http.StatusOK, &turn) {
			return false
		}
		fmt.Printf("%sAgente:%s %s\n", colorYellow, colorReset, turn.Reply.Text)
		if turn.Reply.State == "complete" {
			break
		}
	}
	if turn.Reply.State != "complete" {
		printError(fmt.Sprintf("Conversation ended in state %q", turn.Reply.State))
		return false
	}

	var page map[string]any
	if !tc.call(http.MethodPost, "/api/intake/sessions/"+id+"/generate", nil, http.StatusOK, &page) {
		return false
	}

	printSuccess("Intake session completed and page generated")
	return true
}

func (tc *TestClient) testA2AConversation() bool {
	printTestHeader("Testing A2A Conversation")

	contextID := fmt.Sprintf("smoke-%d", time.Now().UnixNano())
	messages := append([]string{"Hola"}, intakeAnswers...)

	var state string
	for i, text := range messages {
		request := map[string]any{
			"jsonrpc": "2.0",
			"id":      fmt.Sprintf("test-%d", i),
			"method":  "message/send",
			"params": map[string]any{
				"message": map[string]any{
					"kind":      "message",
					"role":      "user",
					"contextId": contextID,
					"parts":     []map[string]any{{"kind": "text", "text": text}},
				},
				"configuration": map[string]any{"blocking": true, "historyLength": 2},
			},
		}

		var response struct {
			Result struct {
				Status struct {
					State   string `json:"state"`
					Message struct {
						Parts []struct {
							Text string `json:"text"`
						} `json:"parts"`
					} `json:"message"`
				} `json:"status"`
				Artifacts []map[string]any `json:"artifacts"`
			} `json:"result"`
			Error map[string]any `json:"error"`
		}
		if !tc.call(http.MethodPost, "/a2a/landing", request, http.StatusOK, &response) {
			return false
		}
		if response.Error != nil {
			printError(fmt.Sprintf("RPC error: %v", response.Error))
			return false
		}
		state = response.Result.Status.State
		if parts := response.Result.Status.Message.Parts; len(parts) > 0 {
			fmt.Printf("%s[%s]%s %s\n", colorYellow, state, colorReset, parts[0].Text)
		}
		if state == "completed" {
			if len(response.Result.Artifacts) == 0 {
				printError("Completed task without artifacts")
				return false
			}
			break
		}
	}
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		return false
	}

	printSuccess("A2A conversation produced a landing page")
	return true
}

// call sends body as JSON (when non-nil), checks the status and decodes
// the response into out (when non-nil).
func (tc *TestClient) call(method, path string, body any, wantStatus int, out any) bool {
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	var rd io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		printError(fmt.Sprintf("Invalid request: %v", err))
		return false
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		printError(fmt.Sprintf("Expected status %d, got %d", wantStatus, resp.StatusCode))
		fmt.Printf("Response: %s\n", string(data))
		return false
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			printError(fmt.Sprintf("Invalid JSON response: %v", err))
			return false
		}
	}
	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}
