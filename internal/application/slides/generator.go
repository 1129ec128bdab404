package slides

import (
	"context"
	"fmt"
	"strings"
	"time"

	slidesmodel "lesson-slides-api/internal/application/slides/model"
	workflowchain "lesson-slides-api/internal/workflow/chain"
	wfmodel "lesson-slides-api/internal/workflow/model"
	workflowport "lesson-slides-api/internal/workflow/port"
)

type DeckGenerateOutput struct {
	Plan *slidesmodel.SlidePlan
	Raw  string
	Meta wfmodel.LLMUsageMeta
}

// SlideDeckGenerator 封装课件内容生成工作流
type SlideDeckGenerator struct {
	chain *workflowchain.SlideDeckChain
}

func NewSlideDeckGenerator(factory workflowport.ChatModelFactory) *SlideDeckGenerator {
	return &SlideDeckGenerator{
		chain: workflowchain.NewSlideDeckChain(factory),
	}
}

func (g *SlideDeckGenerator) Generate(ctx context.Context, in *wfmodel.DeckGenerateInput) (*DeckGenerateOutput, error) {
	if g == nil || g.chain == nil {
		return nil, fmt.Errorf("slide deck workflow not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	outMsg, err := g.chain.Invoke(ctx, in)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}

	plan, raw, err := ParseSlidePlan(outMsg.Content)
	if err != nil {
		return nil, err
	}

	meta := wfmodel.LLMUsageMeta{
		Provider:    strings.TrimSpace(in.Provider),
		Model:       strings.TrimSpace(in.Model),
		GeneratedAt: time.Now().UTC(),
	}
	if in.Temperature != nil {
		meta.Temperature = float64(*in.Temperature)
	}
	if outMsg.ResponseMeta != nil && outMsg.ResponseMeta.Usage != nil {
		meta.PromptTokens = outMsg.ResponseMeta.Usage.PromptTokens
		meta.CompletionTokens = outMsg.ResponseMeta.Usage.CompletionTokens
	}

	return &DeckGenerateOutput{
		Plan: plan,
		Raw:  raw,
		Meta: meta,
	}, nil
}
