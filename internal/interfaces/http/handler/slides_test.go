package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-slides-api/internal/application/slides"
	slidesmodel "lesson-slides-api/internal/application/slides/model"
	"lesson-slides-api/internal/config"
	"lesson-slides-api/internal/interfaces/http/dto"
	wfmodel "lesson-slides-api/internal/workflow/model"
)

type fakeGenerator struct {
	out *slides.DeckGenerateOutput
	err error
}

func (g *fakeGenerator) Generate(ctx context.Context, in *wfmodel.DeckGenerateInput) (*slides.DeckGenerateOutput, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.out, nil
}

type fakeRenderer struct {
	deck []byte
	err  error
}

func (r *fakeRenderer) Render(ctx context.Context, plan *slidesmodel.SlidePlan) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.deck, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.DefaultProvider = "gemini"
	cfg.LLM.Providers = map[string]config.ProviderConfig{
		"gemini": {Model: "gemini-2.0-flash"},
	}
	cfg.Slides.MaxSlides = 20
	return cfg
}

func newSlidesEngine(gen slides.PlanGenerator, ren slides.DeckRenderer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	svc := slides.NewDeckService(gen, ren, nil, nil, slides.Options{
		Provider:  cfg.LLM.DefaultProvider,
		MaxSlides: cfg.Slides.MaxSlides,
	})
	h := NewSlidesHandler(cfg, svc)

	engine := gin.New()
	engine.POST("/api/generate-slides", h.GenerateSlides)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-slides", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGenerateSlidesSuccess(t *testing.T) {
	deck := []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}
	gen := &fakeGenerator{out: &slides.DeckGenerateOutput{
		Plan: &slidesmodel.SlidePlan{Slides: []slidesmodel.Slide{
			{Title: "Photosynthesis"},
			{Title: "Light Reactions"},
		}},
	}}
	engine := newSlidesEngine(gen, &fakeRenderer{deck: deck})

	w := postJSON(t, engine, `{"topic":"Photosynthesis"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pptxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=presentation.pptx`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, deck, w.Body.Bytes())
}

func TestGenerateSlidesMissingTopic(t *testing.T) {
	engine := newSlidesEngine(&fakeGenerator{}, &fakeRenderer{})

	w := postJSON(t, engine, `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "topic is required", resp.Message)
}

func TestGenerateSlidesMalformedBody(t *testing.T) {
	engine := newSlidesEngine(&fakeGenerator{}, &fakeRenderer{})

	w := postJSON(t, engine, `{"topic":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateSlidesUnknownProvider(t *testing.T) {
	engine := newSlidesEngine(&fakeGenerator{}, &fakeRenderer{})

	w := postJSON(t, engine, `{"topic":"Photosynthesis","provider":"claude"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "llm provider not found")
}

func TestGenerateSlidesGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("llm unreachable")}
	engine := newSlidesEngine(gen, &fakeRenderer{deck: []byte{0x50, 0x4B}})

	w := postJSON(t, engine, `{"topic":"Photosynthesis"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Equal(t, "failed to generate slide content", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "4001", resp.Error.ErrorCode)
}

func TestGenerateSlidesWhitespaceTopic(t *testing.T) {
	engine := newSlidesEngine(&fakeGenerator{}, &fakeRenderer{})

	w := postJSON(t, engine, `{"topic":"   "}`)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "topic is required", resp.Message)
}
