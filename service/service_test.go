package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziahq/specstudio/document"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := DefaultConfig()
	// Wide enough that back-to-back test writes land inside one window.
	cfg.DebounceWindow = 100 * time.Millisecond
	svc, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestValidateEndpoint(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	resp := postJSON(t, ts, "/api/validate", map[string]string{
		"content": "openapi: 3.0.0\ninfo:\n  title: T\n  version: \"1.0\"\npaths: {}",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Result struct {
			IsValid  bool             `json:"isValid"`
			Severity string           `json:"severity"`
			Infos    []map[string]any `json:"infos"`
		} `json:"result"`
		Markers []map[string]any `json:"markers"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Result.IsValid)
	assert.Equal(t, "info", body.Result.Severity)
	assert.Len(t, body.Markers, 1, "one marker per diagnostic")
}

func TestValidateEndpointEmptyContent(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	resp := postJSON(t, ts, "/api/validate", map[string]string{"content": ""})

	var body struct {
		Result struct {
			IsValid bool `json:"isValid"`
			Errors  []struct {
				Kind    string `json:"kind"`
				Message string `json:"message"`
			} `json:"errors"`
		} `json:"result"`
	}
	decodeBody(t, resp, &body)
	assert.False(t, body.Result.IsValid)
	require.Len(t, body.Result.Errors, 1)
	assert.Equal(t, "syntax", body.Result.Errors[0].Kind)
	assert.Contains(t, body.Result.Errors[0].Message, "empty")
}

func TestImportThenRender(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	resp := postJSON(t, ts, "/api/import", map[string]string{
		"content": "info:\n  title: Orders API\npaths:\n  /orders: {}\n",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var imported struct {
		FullyParsed bool `json:"fullyParsed"`
		Document    struct {
			Info struct {
				Title string `json:"title"`
			} `json:"apiInfo"`
		} `json:"document"`
	}
	decodeBody(t, resp, &imported)
	assert.True(t, imported.FullyParsed)
	assert.Equal(t, "Orders API", imported.Document.Info.Title)

	resp = postJSON(t, ts, "/api/render", map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rendered struct {
		Content  string `json:"content"`
		FileName string `json:"fileName"`
		MIMEType string `json:"mimeType"`
	}
	decodeBody(t, resp, &rendered)
	assert.Contains(t, rendered.Content, "title: Orders API")
	assert.Contains(t, rendered.Content, "/orders: {}")
	assert.Equal(t, "orders-api.yaml", rendered.FileName)
	assert.Equal(t, "text/yaml", rendered.MIMEType)
}

func TestImportUnparseableKeepsDocument(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	postJSON(t, ts, "/api/import", map[string]string{"content": "info:\n  title: Keep\npaths: {}\n"}).Body.Close()

	resp := postJSON(t, ts, "/api/import", map[string]string{"content": "info: [broken"})
	var body struct {
		FullyParsed bool   `json:"fullyParsed"`
		ParseError  string `json:"parseError"`
	}
	decodeBody(t, resp, &body)
	assert.False(t, body.FullyParsed)
	assert.NotEmpty(t, body.ParseError)

	resp = postJSON(t, ts, "/api/render", map[string]string{})
	var rendered struct {
		Content string `json:"content"`
	}
	decodeBody(t, resp, &rendered)
	assert.Contains(t, rendered.Content, "title: Keep")
}

func TestRenderJSONFormat(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	resp := postJSON(t, ts, "/api/render", map[string]string{"format": "json"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rendered struct {
		Content string `json:"content"`
	}
	decodeBody(t, resp, &rendered)
	assert.True(t, strings.HasPrefix(rendered.Content, "{"))
	assert.Contains(t, rendered.Content, `"openapi": "3.0.0"`)
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	resp := postJSON(t, ts, "/api/render", map[string]string{"format": "toml"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDocumentPutGet(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	doc := document.New()
	doc.Info.Title = "Put Me"
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/document", bytes.NewReader(data))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/api/document")
	require.NoError(t, err)
	var got document.Document
	decodeBody(t, resp, &got)
	assert.Equal(t, "Put Me", got.Info.Title)
}

func TestBufferRoundTrip(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	data, _ := json.Marshal(map[string]string{"content": "openapi: 3.0.0\n"})
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/buffer", bytes.NewReader(data))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/api/buffer")
	require.NoError(t, err)
	var body struct {
		Content string `json:"content"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "openapi: 3.0.0\n", body.Content)
}

func TestMetricsExposed(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	postJSON(t, ts, "/api/validate", map[string]string{"content": "paths: {}"}).Body.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	scrape := buf.String()
	assert.Contains(t, scrape, "specstudio_validations_total")
	assert.Contains(t, scrape, "specstudio_validation_duration_seconds_count 1")
	assert.Contains(t, scrape, "specstudio_ws_sessions_active 0")
}

func TestLiveSessionGaugeTracksConnections(t *testing.T) {
	svc := newTestService(t)
	ts := httptest.NewServer(svc.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/validate"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}

	assert.Eventually(t, func() bool {
		return scrapeContains(t, ts, "specstudio_ws_sessions_active 1")
	}, 2*time.Second, 10*time.Millisecond, "gauge rises while the session is open")

	conn.Close()
	assert.Eventually(t, func() bool {
		return scrapeContains(t, ts, "specstudio_ws_sessions_active 0")
	}, 2*time.Second, 10*time.Millisecond, "gauge falls after disconnect")
}

func scrapeContains(t *testing.T, ts *httptest.Server, want string) bool {
	t.Helper()
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return strings.Contains(buf.String(), want)
}

func TestLiveValidationOverWebSocket(t *testing.T) {
	ts := httptest.NewServer(newTestService(t).Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/validate"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// A burst of edits coalesces into one validation of the last payload.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("in: [")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("openapi: 3.0.0\ninfo:\n  title: T\n  version: \"1.0\"\npaths: {}")))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg struct {
		Result struct {
			IsValid bool `json:"isValid"`
		} `json:"result"`
		Markers []map[string]any `json:"markers"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.True(t, msg.Result.IsValid, "only the last edit in the burst is validated")
	assert.Len(t, msg.Markers, 1)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 400*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("SPECSTUDIO_ADDR", ":9999")
	t.Setenv("SPECSTUDIO_LOG_LEVEL", "debug")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestPersistenceAcrossServices(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.StoreDir = dir

	first, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	ts := httptest.NewServer(first.Handler())
	postJSON(t, ts, "/api/import", map[string]string{"content": "info:\n  title: Durable\npaths: {}\n"}).Body.Close()
	ts.Close()

	second, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	ts = httptest.NewServer(second.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/document")
	require.NoError(t, err)
	var got document.Document
	decodeBody(t, resp, &got)
	assert.Equal(t, "Durable", got.Info.Title)
}
