package slides

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slidesmodel "lesson-slides-api/internal/application/slides/model"
	wfmodel "lesson-slides-api/internal/workflow/model"
	apperrors "lesson-slides-api/pkg/errors"
)

// stubGenerator 可编程的 PlanGenerator 测试替身
type stubGenerator struct {
	out     *DeckGenerateOutput
	err     error
	lastIn  *wfmodel.DeckGenerateInput
	calls   int
}

func (g *stubGenerator) Generate(ctx context.Context, in *wfmodel.DeckGenerateInput) (*DeckGenerateOutput, error) {
	g.calls++
	g.lastIn = in
	if g.err != nil {
		return nil, g.err
	}
	return g.out, nil
}

// stubRenderer 可编程的 DeckRenderer 测试替身
type stubRenderer struct {
	deck  []byte
	err   error
	calls int
}

func (r *stubRenderer) Render(ctx context.Context, plan *slidesmodel.SlidePlan) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.deck, nil
}

func twoSlideOutput() *DeckGenerateOutput {
	return &DeckGenerateOutput{
		Plan: &slidesmodel.SlidePlan{Slides: []slidesmodel.Slide{
			{Title: "Photosynthesis", Subtitle: "An Overview"},
			{Title: "Light Reactions", Content: "• Thylakoids"},
		}},
		Meta: wfmodel.LLMUsageMeta{Provider: "gemini", Model: "gemini-2.0-flash", PromptTokens: 120, CompletionTokens: 340},
	}
}

func TestGenerateDeckSuccess(t *testing.T) {
	gen := &stubGenerator{out: twoSlideOutput()}
	ren := &stubRenderer{deck: []byte{0x50, 0x4B, 0x03, 0x04}}
	svc := NewDeckService(gen, ren, nil, nil, Options{Provider: "gemini", Model: "gemini-2.0-flash", MaxSlides: 20})

	result, err := svc.GenerateDeck(context.Background(), GenerateDeckInput{Topic: "  Photosynthesis  "})
	require.NoError(t, err)

	assert.Equal(t, []byte{0x50, 0x4B, 0x03, 0x04}, result.Deck)
	assert.Equal(t, 2, result.SlideCount)
	assert.False(t, result.FromCache)
	assert.Equal(t, "gemini", result.Meta.Provider)

	require.NotNil(t, gen.lastIn)
	assert.Equal(t, "Photosynthesis", gen.lastIn.Topic, "topic trimmed before generation")
	assert.Equal(t, "gemini", gen.lastIn.Provider, "provider defaulted from options")
	assert.Equal(t, "gemini-2.0-flash", gen.lastIn.Model)
}

func TestGenerateDeckProviderOverride(t *testing.T) {
	gen := &stubGenerator{out: twoSlideOutput()}
	ren := &stubRenderer{deck: []byte{0x50, 0x4B}}
	svc := NewDeckService(gen, ren, nil, nil, Options{Provider: "gemini", MaxSlides: 20})

	_, err := svc.GenerateDeck(context.Background(), GenerateDeckInput{
		Topic:    "Photosynthesis",
		Provider: "openai",
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)

	assert.Equal(t, "openai", gen.lastIn.Provider)
	assert.Equal(t, "gpt-4o-mini", gen.lastIn.Model)
}

func TestGenerateDeckEmptyTopic(t *testing.T) {
	gen := &stubGenerator{out: twoSlideOutput()}
	ren := &stubRenderer{deck: []byte{0x50, 0x4B}}
	svc := NewDeckService(gen, ren, nil, nil, Options{MaxSlides: 20})

	_, err := svc.GenerateDeck(context.Background(), GenerateDeckInput{Topic: "   "})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeInvalidParam, appErr.Code)
	assert.Equal(t, 0, gen.calls, "generator not invoked for empty topic")
	assert.Equal(t, 0, ren.calls)
}

func TestGenerateDeckGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("llm unreachable")}
	ren := &stubRenderer{deck: []byte{0x50, 0x4B}}
	svc := NewDeckService(gen, ren, nil, nil, Options{MaxSlides: 20})

	_, err := svc.GenerateDeck(context.Background(), GenerateDeckInput{Topic: "Photosynthesis"})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeGenerationFailed, appErr.Code)
	assert.ErrorContains(t, err, "llm unreachable")
	assert.Equal(t, 0, ren.calls, "renderer skipped when generation fails")
}

func TestGenerateDeckInvalidPlan(t *testing.T) {
	gen := &stubGenerator{out: &DeckGenerateOutput{Plan: &slidesmodel.SlidePlan{}}}
	ren := &stubRenderer{deck: []byte{0x50, 0x4B}}
	svc := NewDeckService(gen, ren, nil, nil, Options{MaxSlides: 20})

	_, err := svc.GenerateDeck(context.Background(), GenerateDeckInput{Topic: "Photosynthesis"})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodePlanInvalid, appErr.Code)

	var vErr SlidePlanValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGenerateDeckRendererFailure(t *testing.T) {
	gen := &stubGenerator{out: twoSlideOutput()}
	ren := &stubRenderer{err: errors.New("zip write failed")}
	svc := NewDeckService(gen, ren, nil, nil, Options{MaxSlides: 20})

	_, err := svc.GenerateDeck(context.Background(), GenerateDeckInput{Topic: "Photosynthesis"})
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeRenderFailed, appErr.Code)
}
