package chain

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "lesson-slides-api/internal/workflow/model"
)

// fakeChatModel 可编程的 BaseChatModel 测试替身
type fakeChatModel struct {
	mu        sync.Mutex
	calls     int
	lastMsgs  []*schema.Message
	out       *schema.Message
	err       error
	failFirst error
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastMsgs = input
	if m.failFirst != nil && m.calls == 1 {
		return nil, m.failFirst
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

type fakeFactory struct {
	m   model.BaseChatModel
	err error
}

func (f *fakeFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.m, nil
}

func TestSlideDeckChainInvoke(t *testing.T) {
	cm := &fakeChatModel{out: schema.AssistantMessage(`[{"title":"Photosynthesis"}]`, nil)}
	c := NewSlideDeckChain(&fakeFactory{m: cm})

	out, err := c.Invoke(context.Background(), &wfmodel.DeckGenerateInput{
		Topic:    "Photosynthesis",
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, `[{"title":"Photosynthesis"}]`, out.Content)

	assert.Equal(t, 1, cm.calls)
	require.Len(t, cm.lastMsgs, 2)
	assert.Equal(t, schema.System, cm.lastMsgs[0].Role)
	assert.Equal(t, schema.User, cm.lastMsgs[1].Role)
	assert.Contains(t, cm.lastMsgs[1].Content, "Photosynthesis")
}

func TestSlideDeckChainSchemaFallback(t *testing.T) {
	cm := &fakeChatModel{
		out:       schema.AssistantMessage(`[{"title":"Photosynthesis"}]`, nil),
		failFirst: errors.New("response_format is not supported by this model"),
	}
	c := NewSlideDeckChain(&fakeFactory{m: cm})

	out, err := c.Invoke(context.Background(), &wfmodel.DeckGenerateInput{Topic: "Photosynthesis"})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 2, cm.calls, "retries once without json_schema")
}

func TestSlideDeckChainModelError(t *testing.T) {
	cm := &fakeChatModel{err: errors.New("rate limit exceeded")}
	c := NewSlideDeckChain(&fakeFactory{m: cm})

	_, err := c.Invoke(context.Background(), &wfmodel.DeckGenerateInput{Topic: "Photosynthesis"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "rate limit exceeded")
	assert.Equal(t, 1, cm.calls, "non-format errors are not retried")
}

func TestSlideDeckChainFactoryError(t *testing.T) {
	c := NewSlideDeckChain(&fakeFactory{err: errors.New("provider not configured: claude")})

	_, err := c.Invoke(context.Background(), &wfmodel.DeckGenerateInput{Topic: "Photosynthesis"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "provider not configured")
}

func TestSlideDeckChainNilInput(t *testing.T) {
	c := NewSlideDeckChain(&fakeFactory{m: &fakeChatModel{}})

	_, err := c.Invoke(context.Background(), nil)
	assert.Error(t, err)

	var missing *SlideDeckChain
	_, err = missing.Invoke(context.Background(), &wfmodel.DeckGenerateInput{Topic: "x"})
	assert.Error(t, err)
}
