// Package mcp exposes the travel guide as bearer-token-gated MCP tools over
// stateless HTTP: one JSON-RPC request per POST, one response per body.
package mcp

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

const serverName = "Travel Guide MCP Server"
const serverVersion = "1.0.0"

// ReportBuilder is the aggregation pipeline the location_info tool calls.
type ReportBuilder interface {
	Build(ctx context.Context, query string, detail domain.DetailLevel) (domain.Report, error)
}

// Handler serves the MCP endpoint. Every request must carry a bearer token
// matching the configured secret; auth is checked before any dispatch.
type Handler struct {
	authToken   string
	ownerNumber string
	builder     ReportBuilder
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewHandler creates the MCP tool gate.
func NewHandler(authToken, ownerNumber string, builder ReportBuilder, logger *slog.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		authToken:   authToken,
		ownerNumber: ownerNumber,
		builder:     builder,
		logger:      logger,
		metrics:     metrics,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		h.metrics.AuthFailures.Inc()
		w.Header().Set("WWW-Authenticate", "Bearer")
		http.Error(w, "invalid or missing bearer token", http.StatusUnauthorized)
		return
	}

	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			Error:   &rpcError{Code: codeParseError, Message: "parse error"},
		})
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		writeResponse(w, rpcResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &rpcError{Code: codeInvalidRequest, Message: "invalid request"},
		})
		return
	}

	resp := h.dispatch(r.Context(), req)
	if resp == nil {
		// Notification: acknowledged without a body.
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeResponse(w, *resp)
}

func (h *Handler) authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.authToken)) == 1
}

func (h *Handler) dispatch(ctx context.Context, req rpcRequest) *rpcResponse {
	if strings.HasPrefix(req.Method, "notifications/") {
		return nil
	}

	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case "initialize":
		resp.Result = initializeResult{
			ProtocolVersion: protocolVersion,
			ServerInfo:      serverInfo{Name: serverName, Version: serverVersion},
			Capabilities:    map[string]any{"tools": map[string]any{}},
		}
	case "ping":
		resp.Result = map[string]any{}
	case "tools/list":
		resp.Result = toolsListResult{Tools: toolDescriptors()}
	case "tools/call":
		var params toolCallParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			resp.Error = &rpcError{Code: codeInvalidParams, Message: "invalid tool call params"}
			break
		}
		result, rpcErr := h.callTool(ctx, params)
		if rpcErr != nil {
			resp.Error = rpcErr
			break
		}
		resp.Result = result
	default:
		resp.Error = &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}
	return &resp
}

func (h *Handler) callTool(ctx context.Context, params toolCallParams) (*ToolResponse, *rpcError) {
	switch params.Name {
	case toolValidate:
		h.metrics.ToolCalls.WithLabelValues(toolValidate, "success").Inc()
		return textResponse(h.ownerNumber), nil
	case toolLocationInfo:
		return h.callLocationInfo(ctx, params.Arguments), nil
	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: "unknown tool: " + params.Name}
	}
}

func writeResponse(w http.ResponseWriter, resp rpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp) //nolint:errcheck // client gone, nothing to do
}
