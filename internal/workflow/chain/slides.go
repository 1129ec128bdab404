package chain

import (
	"context"
	"fmt"
	"strings"
	"sync"

	openaiopts "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	llmctx "lesson-slides-api/internal/domain/service"
	wfmodel "lesson-slides-api/internal/workflow/model"
	wfnode "lesson-slides-api/internal/workflow/node"
	workflowport "lesson-slides-api/internal/workflow/port"
	workflowprompt "lesson-slides-api/internal/workflow/prompt"
	"lesson-slides-api/pkg/logger"
)

const maxTopicRunes = 2000

type SlideDeckChain struct {
	factory workflowport.ChatModelFactory

	chainOnce sync.Once
	chain     compose.Runnable[*wfmodel.DeckGenerateInput, *schema.Message]
	chainErr  error
}

func NewSlideDeckChain(factory workflowport.ChatModelFactory) *SlideDeckChain {
	return &SlideDeckChain{factory: factory}
}

func (c *SlideDeckChain) Invoke(ctx context.Context, in *wfmodel.DeckGenerateInput) (*schema.Message, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}

	chain, err := c.getChain()
	if err != nil {
		return nil, err
	}
	return chain.Invoke(ctx, in)
}

type slideDeckChainState struct {
	In       *wfmodel.DeckGenerateInput
	Messages []*schema.Message
	OutMsg   *schema.Message
}

func (c *SlideDeckChain) getChain() (compose.Runnable[*wfmodel.DeckGenerateInput, *schema.Message], error) {
	c.chainOnce.Do(func() {
		c.chain, c.chainErr = c.buildChain(context.Background())
	})
	return c.chain, c.chainErr
}

func (c *SlideDeckChain) buildChain(ctx context.Context) (compose.Runnable[*wfmodel.DeckGenerateInput, *schema.Message], error) {
	chain := compose.NewChain[*wfmodel.DeckGenerateInput, *schema.Message]()

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, in *wfmodel.DeckGenerateInput) (*slideDeckChainState, error) {
			if in == nil {
				return nil, fmt.Errorf("input is nil")
			}
			return &slideDeckChainState{In: in}, nil
		}),
		compose.WithNodeName("slide_deck.init"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *slideDeckChainState) (*slideDeckChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			msgs, err := formatSlideDeckMessages(ctx, st.In)
			if err != nil {
				return nil, err
			}
			st.Messages = msgs
			return st, nil
		}),
		compose.WithNodeName("slide_deck.template"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(ctx context.Context, st *slideDeckChainState) (*slideDeckChainState, error) {
			if st == nil || st.In == nil {
				return nil, fmt.Errorf("state is nil")
			}
			if c.factory == nil {
				return nil, fmt.Errorf("llm factory not configured")
			}

			ctx = llmctx.WithWorkflowProvider(ctx, "slide_deck_generate", strings.TrimSpace(st.In.Provider))
			chatModel, err := c.factory.Get(ctx, strings.TrimSpace(st.In.Provider))
			if err != nil {
				return nil, err
			}

			outMsg, err := chatModel.Generate(ctx, st.Messages, buildSlideDeckModelOptions(st.In, true)...)
			if err != nil && wfnode.IsResponseFormatUnsupportedError(err) {
				logger.Warn(ctx, "llm json_schema not supported, fallback to prompt-only",
					"provider", strings.TrimSpace(st.In.Provider),
					"model", pickModel(st.In),
					"error", err.Error(),
				)
				outMsg, err = chatModel.Generate(ctx, st.Messages, buildSlideDeckModelOptions(st.In, false)...)
			}
			if err != nil {
				return nil, err
			}
			if outMsg == nil {
				return nil, fmt.Errorf("empty llm response")
			}
			st.OutMsg = outMsg
			return st, nil
		}),
		compose.WithNodeName("slide_deck.llm"),
	)

	chain.AppendLambda(
		compose.InvokableLambda(func(_ context.Context, st *slideDeckChainState) (*schema.Message, error) {
			if st == nil || st.OutMsg == nil {
				return nil, fmt.Errorf("state is nil")
			}
			return st.OutMsg, nil
		}),
		compose.WithNodeName("slide_deck.finalize"),
	)

	return chain.Compile(ctx)
}

var defaultPromptRegistry = workflowprompt.NewRegistry()

func formatSlideDeckMessages(ctx context.Context, in *wfmodel.DeckGenerateInput) ([]*schema.Message, error) {
	tpl, err := defaultPromptRegistry.ChatTemplate(workflowprompt.PromptSlideDeckV1)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{
		"topic": wfnode.TruncateByRunes(strings.TrimSpace(in.Topic), maxTopicRunes),
	}
	return tpl.Format(ctx, vars)
}

func buildSlideDeckModelOptions(in *wfmodel.DeckGenerateInput, enableSchema bool) []model.Option {
	opts := make([]model.Option, 0, 4)
	if in == nil {
		return opts
	}

	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if strings.TrimSpace(in.Model) != "" {
		m := strings.TrimSpace(in.Model)
		opts = append(opts, model.WithModel(m))
	}

	if enableSchema {
		opts = append(opts, openaiopts.WithExtraFields(map[string]any{
			"response_format": map[string]any{
				"type": "json_schema",
				"json_schema": map[string]any{
					"name":   "slide_deck",
					"strict": false,
					"schema": slideDeckJSONSchema(),
				},
			},
		}))
	}

	return opts
}

func pickModel(in *wfmodel.DeckGenerateInput) string {
	if in == nil {
		return ""
	}
	if strings.TrimSpace(in.Model) != "" {
		return strings.TrimSpace(in.Model)
	}
	return ""
}

func slideDeckJSONSchema() map[string]any {
	// 说明：顶层数组 + strict=false，部分供应商不接受时由 prompt-only 回退兜底。
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"title", "content"},
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"subtitle": map[string]any{"type": "string"},
				"content":  map[string]any{"type": "string"},
			},
		},
	}
}
