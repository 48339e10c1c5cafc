package mcp

import "encoding/json"

// JSON-RPC 2.0 framing for the stateless MCP endpoint. The gate supports
// exactly the request/response subset the protocol needs for tool calls;
// there are no server-initiated messages.

const protocolVersion = "2024-11-05"

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// initializeResult advertises the server identity and its tool capability.
type initializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	ServerInfo      serverInfo     `json:"serverInfo"`
	Capabilities    map[string]any `json:"capabilities"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// toolDescriptor is one entry in the tools/list result.
type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type toolsListResult struct {
	Tools []toolDescriptor `json:"tools"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResponse is the envelope every tool call returns. Fatal pipeline
// failures are reported inside it with IsError set, not as JSON-RPC errors.
type ToolResponse struct {
	Content           []Content `json:"content"`
	StructuredContent any       `json:"structuredContent,omitempty"`
	IsError           bool      `json:"isError"`
}

// Content is a single content block of a tool response.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func textResponse(text string) *ToolResponse {
	return &ToolResponse{Content: []Content{{Type: "text", Text: text}}}
}

func errorResponse(text string) *ToolResponse {
	return &ToolResponse{Content: []Content{{Type: "text", Text: text}}, IsError: true}
}
