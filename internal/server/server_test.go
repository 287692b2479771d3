package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvandessel/toonify/internal/config"
)

func newTestServer() *Server {
	return New(config.ServerConfig{Port: "0", CorsOrigins: []string{"*"}})
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestEncode(t *testing.T) {
	body := `{"input": "{\"users\":[{\"id\":1,\"name\":\"Alice\",\"role\":\"admin\"},{\"id\":2,\"name\":\"Bob\",\"role\":\"user\"}]}"}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/encode", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp encodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "users[2]{id,name,role}:\n1,Alice,admin\n2,Bob,user", resp.Output)
	assert.Positive(t, resp.Tokens.Input)
	assert.Less(t, resp.Tokens.Output, resp.Tokens.Input)
}

func TestEncodeCompact(t *testing.T) {
	body := `{"input": "{\"t\":[{\"a\":1},{\"a\":2}]}", "compact": true}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/encode", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp encodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "t[2]{a}:12", resp.Output)
}

func TestDecodeKeepsKeyOrder(t *testing.T) {
	body := `{"input": "users[1]{role,id,name}:\nadmin,1,Alice"}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/decode", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t,
		`{"output":{"users":[{"role":"admin","id":"1","name":"Alice"}]}}`,
		strings.TrimSpace(rec.Body.String()),
	)
}

func TestValidate(t *testing.T) {
	body := `{"input": "users[2]{id,name}:\n1,Alice\n2"}`
	rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/validate", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":false,"errors":["row 2: expected 2 columns, found 1"]}`, rec.Body.String())

	rec = doRequest(t, newTestServer(), http.MethodPost, "/v1/validate", `{"input": "users[1]{id}:\n1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true,"errors":[]}`, rec.Body.String())
}

func TestTokens(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodPost, "/v1/tokens", `{"input": "abcde"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tokens":2}`, rec.Body.String())
}

func TestBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		wantErr string
	}{
		{"shape error", "/v1/encode", `{"input": "{\"a\":[1],\"b\":[2]}"}`, "input must have exactly one root key"},
		{"invalid json input", "/v1/encode", `{"input": "{"}`, "invalid JSON input"},
		{"empty toon", "/v1/decode", `{"input": ""}`, "TOON data cannot be empty"},
		{"bad header", "/v1/decode", `{"input": "users:\n1"}`, "invalid TOON header format"},
		{"malformed body", "/v1/tokens", `{"input":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newTestServer(), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
			if tt.wantErr != "" {
				assert.Contains(t, resp["error"], tt.wantErr)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := doRequest(t, newTestServer(), http.MethodGet, "/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	s := New(config.ServerConfig{Port: "0", CorsOrigins: []string{"https://app.example"}})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStartStopsOnContextCancel(t *testing.T) {
	s := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(GracefulShutdownTimeout + time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
