package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-slides-api/internal/application/slides"
	slidesmodel "lesson-slides-api/internal/application/slides/model"
	"lesson-slides-api/internal/config"
	"lesson-slides-api/internal/interfaces/http/handler"
	wfmodel "lesson-slides-api/internal/workflow/model"
)

type staticGenerator struct{}

func (staticGenerator) Generate(ctx context.Context, in *wfmodel.DeckGenerateInput) (*slides.DeckGenerateOutput, error) {
	return &slides.DeckGenerateOutput{
		Plan: &slidesmodel.SlidePlan{Slides: []slidesmodel.Slide{{Title: in.Topic}}},
	}, nil
}

type staticRenderer struct{}

func (staticRenderer) Render(ctx context.Context, plan *slidesmodel.SlidePlan) ([]byte, error) {
	return []byte{0x50, 0x4B, 0x03, 0x04}, nil
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Name = "lesson-slides-api"
	cfg.LLM.DefaultProvider = "gemini"
	cfg.LLM.Providers = map[string]config.ProviderConfig{"gemini": {Model: "gemini-2.0-flash"}}
	cfg.Slides.MaxSlides = 20

	svc := slides.NewDeckService(staticGenerator{}, staticRenderer{}, nil, nil, slides.Options{
		Provider:  cfg.LLM.DefaultProvider,
		MaxSlides: cfg.Slides.MaxSlides,
	})

	return New(cfg, Handlers{
		Slides: handler.NewSlidesHandler(cfg, svc),
		Health: handler.NewHealthHandler(cfg, nil, nil),
	}, nil)
}

func serve(r *Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func TestRouterServesIndexPage(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, "/api/generate-slides")
	assert.Contains(t, body, "lesson_presentation.pptx")
	assert.Contains(t, body, "Please enter a lesson topic.")
}

func TestRouterHealthRoute(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/health")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"llm_api_key_configured":false`)
}

func TestRouterJobRoutesDisabled(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/api/jobs")
	assert.Equal(t, http.StatusNotFound, w.Code, "job routes absent without job recording")
}

func TestRouterRequestIDHeader(t *testing.T) {
	r := newTestRouter(t)

	w := serve(r, http.MethodGet, "/live")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
