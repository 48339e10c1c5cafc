package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pranali0315/NomadHelp/internal/domain"
	"github.com/Pranali0315/NomadHelp/internal/observability"
)

const (
	testToken  = "secret-token"
	testNumber = "919876543210"
)

type stubBuilder struct {
	calls  atomic.Int32
	report domain.Report
	err    error
}

func (s *stubBuilder) Build(_ context.Context, _ string, _ domain.DetailLevel) (domain.Report, error) {
	s.calls.Add(1)
	return s.report, s.err
}

func parisReport() domain.Report {
	return domain.Report{
		Identity: domain.Identity{
			RawQuery: "Paris", Name: "Paris", Country: "France",
			Kind: domain.KindCity, Lat: 48.8566, Lon: 2.3522,
		},
		Detail:  domain.DetailFull,
		Summary: domain.Present(domain.Summary{Text: "Paris is the capital of France."}),
		Weather: domain.Present(domain.Weather{TemperatureC: 20.0, Condition: "clear sky"}),
		Events:  domain.Present([]domain.Event{{Title: "Jazz Festival", Date: "2025-08-15"}}),
		Cuisine: domain.Present([]string{"Croissant", "Ratatouille", "Crème brûlée"}),
	}
}

func testHandler(builder ReportBuilder) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(testToken, testNumber, builder, logger, observability.NewMetricsForTesting())
}

// post sends an authenticated JSON-RPC request and decodes the response.
func post(t *testing.T, h *Handler, token, body string) (*httptest.ResponseRecorder, rpcResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp rpcResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func toolResult(t *testing.T, resp rpcResponse) ToolResponse {
	t.Helper()
	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var tr ToolResponse
	require.NoError(t, json.Unmarshal(raw, &tr))
	return tr
}

func callBody(tool, arguments string) string {
	return `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"` + tool + `","arguments":` + arguments + `}}`
}

func TestServeHTTP_MissingToken(t *testing.T) {
	builder := &stubBuilder{report: parisReport()}
	h := testHandler(builder)

	rec, _ := post(t, h, "", callBody("location_info", `{"location":"Paris"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, builder.calls.Load(), "auth is checked before any dispatch")
}

func TestServeHTTP_WrongToken(t *testing.T) {
	builder := &stubBuilder{report: parisReport()}
	h := testHandler(builder)

	rec, _ := post(t, h, "wrong-token", callBody("location_info", `{"location":"Paris"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, builder.calls.Load())
}

func TestServeHTTP_Initialize(t *testing.T) {
	h := testHandler(&stubBuilder{})

	rec, resp := post(t, h, testToken, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result initializeResult
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, protocolVersion, result.ProtocolVersion)
	assert.Equal(t, serverName, result.ServerInfo.Name)
	assert.Contains(t, result.Capabilities, "tools")
}

func TestServeHTTP_ToolsList(t *testing.T) {
	h := testHandler(&stubBuilder{})

	_, resp := post(t, h, testToken, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result toolsListResult
	require.NoError(t, json.Unmarshal(raw, &result))

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"validate", "location_info"}, names)
}

func TestServeHTTP_ValidateReturnsOwnerNumber(t *testing.T) {
	h := testHandler(&stubBuilder{})

	_, resp := post(t, h, testToken, callBody("validate", `{}`))
	require.Nil(t, resp.Error)

	tr := toolResult(t, resp)
	require.Len(t, tr.Content, 1)
	assert.Equal(t, "text", tr.Content[0].Type)
	assert.Equal(t, testNumber, tr.Content[0].Text)
	assert.False(t, tr.IsError)
}

func TestServeHTTP_LocationInfoSuccess(t *testing.T) {
	h := testHandler(&stubBuilder{report: parisReport()})

	_, resp := post(t, h, testToken, callBody("location_info", `{"location":"Paris","detail_level":"full"}`))
	require.Nil(t, resp.Error)

	tr := toolResult(t, resp)
	require.Len(t, tr.Content, 1)
	assert.False(t, tr.IsError)
	assert.Contains(t, tr.Content[0].Text, "🌍 *Paris* (France)")
	assert.Contains(t, tr.Content[0].Text, "☀️ Weather: 20°C, clear sky")

	raw, err := json.Marshal(tr.StructuredContent)
	require.NoError(t, err)
	var sc structuredView
	require.NoError(t, json.Unmarshal(raw, &sc))
	assert.Equal(t, "Paris", sc.Name)
	assert.Equal(t, "city", sc.Type)
	assert.Equal(t, "France", sc.Country)
	assert.Equal(t, [2]float64{48.8566, 2.3522}, sc.Coordinates)
	assert.Equal(t, "Paris is the capital of France.", sc.Description)
	require.NotNil(t, sc.Weather)
	assert.Equal(t, 20.0, sc.Weather.Temp)
	assert.Equal(t, []string{"Croissant", "Ratatouille", "Crème brûlée"}, sc.Dishes)
	assert.Empty(t, sc.Unavailable)
}

func TestServeHTTP_LocationInfoUnavailableSectionCarriesReason(t *testing.T) {
	report := parisReport()
	report.Weather = domain.Unavailable[domain.Weather](domain.ReasonNotConfigured)
	h := testHandler(&stubBuilder{report: report})

	_, resp := post(t, h, testToken, callBody("location_info", `{"location":"Paris"}`))
	tr := toolResult(t, resp)

	assert.NotContains(t, tr.Content[0].Text, "☀️")

	raw, err := json.Marshal(tr.StructuredContent)
	require.NoError(t, err)
	var sc structuredView
	require.NoError(t, json.Unmarshal(raw, &sc))
	assert.Nil(t, sc.Weather)
	assert.Equal(t, "not-configured", sc.Unavailable["weather"])
}

func TestServeHTTP_LocationInfoFatalFailure(t *testing.T) {
	h := testHandler(&stubBuilder{err: &domain.PipelineError{
		Stage:   domain.StageGeocode,
		Query:   "Nowhere",
		Message: `could not resolve location "Nowhere"`,
	}})

	_, resp := post(t, h, testToken, callBody("location_info", `{"location":"Nowhere"}`))
	require.Nil(t, resp.Error, "fatal pipeline failures surface inside the tool envelope")

	tr := toolResult(t, resp)
	assert.True(t, tr.IsError)
	assert.Equal(t, `Error: could not resolve location "Nowhere"`, tr.Content[0].Text)
	assert.Nil(t, tr.StructuredContent)
}

func TestServeHTTP_UnknownTool(t *testing.T) {
	h := testHandler(&stubBuilder{})

	_, resp := post(t, h, testToken, callBody("weather_forecast", `{}`))
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeMethodNotFound, resp.Error.Code)
}

func TestServeHTTP_UnknownMethod(t *testing.T) {
	h := testHandler(&stubBuilder{})

	_, resp := post(t, h, testToken, `{"jsonrpc":"2.0","id":3,"method":"resources/list"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeMethodNotFound, resp.Error.Code)
}

func TestServeHTTP_ParseError(t *testing.T) {
	h := testHandler(&stubBuilder{})

	_, resp := post(t, h, testToken, `{not json`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeParseError, resp.Error.Code)
}

func TestServeHTTP_InvalidRequest(t *testing.T) {
	h := testHandler(&stubBuilder{})

	_, resp := post(t, h, testToken, `{"jsonrpc":"1.0","id":1,"method":"ping"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, codeInvalidRequest, resp.Error.Code)
}

func TestServeHTTP_NotificationIsAccepted(t *testing.T) {
	h := testHandler(&stubBuilder{})

	rec, _ := post(t, h, testToken, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}
