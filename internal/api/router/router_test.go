package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poshanai/khana-ai-platform/internal/extraction"
	"github.com/poshanai/khana-ai-platform/internal/hinglish"
	"github.com/poshanai/khana-ai-platform/internal/meal"
	"github.com/poshanai/khana-ai-platform/internal/nutrition"
	"github.com/poshanai/khana-ai-platform/internal/pipeline"
	"github.com/poshanai/khana-ai-platform/internal/session"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	translator := hinglish.NewTranslator()
	mgr := session.NewManager(session.ManagerConfig{Store: session.NewMemoryStore()})
	svc := pipeline.NewService(pipeline.ServiceConfig{
		Translator: translator,
		Extractor:  extraction.NewExtractor(translator, nil),
		Resolver:   extraction.NewResolver(translator),
		Assembler: meal.NewAssembler(meal.AssemblerConfig{
			Lookup: nutrition.NewStaticLookup(),
		}),
		Sessions: mgr,
	})
	reg := prometheus.NewRegistry()
	return New(&Config{
		UtteranceHandler: pipeline.NewHandler(svc, nil),
		SessionHandler:   session.NewHandler(mgr, nil),
		MetricsHandler:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUtteranceRouteWired(t *testing.T) {
	r := newTestRouter(t)
	body := `{"user_id": "u1", "utterance": "maine 2 roti khayi"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/utterances", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp pipeline.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, pipeline.OutcomeMealLogged, resp.Outcome)
}

func TestSessionRoutesWired(t *testing.T) {
	r := newTestRouter(t)

	body := `{"user_id": "u1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/sessions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	sessionID := created["session_id"]
	require.NotEmpty(t, sessionID)

	req = httptest.NewRequest(http.MethodGet, "/v1/sessions/"+sessionID, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/sessions/"+sessionID+"/end", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/nope", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
