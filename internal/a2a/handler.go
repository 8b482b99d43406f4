package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/intake"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/logger"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/pipeline"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/session"
)

const defaultHistoryLength = 20

type Generator interface {
	Generate(ctx context.Context, in pipeline.Input, progress chan<- pipeline.Progress) (*page.Document, error)
}

// A2AHandler maps A2A conversations onto intake sessions: the contextId
// selects the session, intermediate turns come back as input-required and
// the final turn carries the generated page as a data artifact.
type A2AHandler struct {
	sessions  *session.Manager
	generator Generator
	card      AgentCard
	now       func() time.Time
	log       *logger.Logger
}

func NewA2AHandler(sessions *session.Manager, generator Generator, baseURL string, log *logger.Logger) *A2AHandler {
	return &A2AHandler{
		sessions:  sessions,
		generator: generator,
		card:      newAgentCard(strings.TrimRight(baseURL, "/")),
		now:       time.Now,
		log:       logger.OrNop(log).With("component", "a2a"),
	}
}

func (h *A2AHandler) Register(r gin.IRouter) {
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	r.POST(Endpoint, h.HandleLanding)
}

func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, h.card)
}

// HandleLanding processes A2A messages
func (h *A2AHandler) HandleLanding(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.sendErrorResponse(c, "", "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil {
		h.log.Warn("invalid JSON-RPC body", "error", err)
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}
	if rpcReq.Method == "" {
		// some clients post the message params without the JSON-RPC envelope
		h.handleDirectMessage(c, body)
		return
	}
	if rpcReq.JSONRPC != "2.0" {
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		var params MessageParams
		if err := json.Unmarshal(rpcReq.Params, &params); err != nil {
			h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
			return
		}
		h.handleTask(c, rpcReq.ID, params)
	default:
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleDirectMessage(c *gin.Context, body []byte) {
	var params MessageParams
	if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}
	h.handleTask(c, "direct-message", params)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcID string, params MessageParams) {
	ctx := c.Request.Context()
	msg := params.Message

	contextID := firstNonEmpty(msg.ContextID, msg.TaskID, uuid.NewString())
	taskID := firstNonEmpty(msg.TaskID, contextID)
	text := userText(msg)

	s, greeting, created, err := h.sessions.Resume(ctx, contextID)
	if err != nil {
		h.log.Error("failed to open session", "context_id", contextID, "error", err)
		h.sendErrorResponse(c, rpcID, "Failed to open conversation", CodeInternal)
		return
	}
	log := h.log.With("context_id", contextID, "task_id", taskID)

	if text == "" || (created && isGreeting(text)) {
		prompt := greeting.Text
		if !created {
			prompt = lastAgentText(s)
		}
		h.sendSuccessResponse(c, rpcID, h.taskResult(taskID, contextID, StateInputRequired, s, params.Configuration, prompt))
		return
	}

	s, reply, err := h.sessions.Send(ctx, contextID, text)
	if err != nil {
		log.Error("intake turn failed", "error", err)
		h.sendErrorResponse(c, rpcID, "Failed to process message", CodeInternal)
		return
	}
	if reply.State != intake.StateComplete {
		log.Debug("intake turn", "state", reply.State, "field", reply.Field)
		h.sendSuccessResponse(c, rpcID, h.taskResult(taskID, contextID, StateInputRequired, s, params.Configuration, reply.Text))
		return
	}

	log.Info("intake complete, generating page")
	doc, err := h.generator.Generate(ctx, pipeline.Input{Profile: s.Profile}, nil)
	if err != nil {
		log.Warn("page generation failed", "error", err)
		result := h.taskResult(taskID, contextID, StateFailed, s, params.Configuration,
			"No pude generar tu página en este momento. Enviá cualquier mensaje para intentarlo de nuevo.")
		h.sendSuccessResponse(c, rpcID, result)
		return
	}

	result := h.taskResult(taskID, contextID, StateCompleted, s, params.Configuration, reply.Text)
	result.Artifacts = []Artifact{
		{
			ArtifactID: uuid.NewString(),
			Name:       "Landing Page",
			Parts: []MessagePart{
				DataPart(map[string]any{"page": doc, "blocks": page.Record(doc.Blocks)}),
			},
		},
		{
			ArtifactID: uuid.NewString(),
			Name:       "Resumen",
			Parts:      []MessagePart{TextPart(reply.Text)},
		},
	}
	h.sendSuccessResponse(c, rpcID, result)
}

func (h *A2AHandler) taskResult(taskID, contextID, state string, s *intake.Session, cfg MessageConfiguration, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(h.now()),
			Message:   AgentMessage(taskID, contextID, TextPart(text)),
		},
		History: history(s, taskID, contextID, cfg.HistoryLength),
	}
}

// history converts the session transcript, keeping the last n messages.
func history(s *intake.Session, taskID, contextID string, n int) []A2AMessage {
	if n <= 0 {
		n = defaultHistoryLength
	}
	msgs := s.Transcript
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	out := make([]A2AMessage, 0, len(msgs))
	for _, m := range msgs {
		role := RoleAgent
		if m.Role == intake.RoleUser {
			role = RoleUser
		}
		out = append(out, A2AMessage{
			Kind:      "message",
			Role:      role,
			Parts:     []MessagePart{TextPart(m.Text)},
			TaskID:    taskID,
			ContextID: contextID,
		})
	}
	return out
}

func lastAgentText(s *intake.Session) string {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Role == intake.RoleAssistant {
			return s.Transcript[i].Text
		}
	}
	return ""
}

var greetings = map[string]bool{
	"hola": true, "buenas": true, "buen dia": true, "buen día": true, "buenos dias": true,
	"buenos días": true, "buenas tardes": true, "buenas noches": true, "hi": true, "hello": true, "hey": true,
}

func isGreeting(text string) bool {
	t := strings.ToLower(strings.Trim(text, " \t\n!¡.,?¿"))
	return greetings[t]
}

// userText joins the text parts of msg. Data parts carrying a history
// array contribute their most recent non-placeholder text.
func userText(msg A2AMessage) string {
	var texts []string
	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if t := cleanText(part.Text); t != "" {
				texts = append(texts, t)
			}
		case "data":
			if t := lastDataText(part.Data); t != "" {
				texts = append(texts, t)
			}
		}
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

func lastDataText(data any) string {
	raw, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	var items []MessagePart
	if err := json.Unmarshal(raw, &items); err != nil {
		return ""
	}
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Kind != "text" {
			continue
		}
		t := cleanText(items[i].Text)
		if t == "" || strings.Trim(t, ".") == "" {
			continue
		}
		return t
	}
	return ""
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "<p>", "")
	s = strings.ReplaceAll(s, "</p>", "")
	return strings.TrimSpace(s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result any) {
	c.JSON(http.StatusOK, JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

// JSON-RPC errors are sent with 200 OK
func (h *A2AHandler) sendErrorResponse(c *gin.Context, id, message string, code int) {
	h.log.Warn("rpc error", "id", id, "code", code, "message", message)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
