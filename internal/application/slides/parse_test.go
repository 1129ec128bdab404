package slides

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlidePlanBareArray(t *testing.T) {
	raw := `[{"title":"Photosynthesis","subtitle":"An Overview"},{"title":"Light Reactions","content":"• Occur in thylakoids\n• Produce ATP"}]`

	plan, jsonText, err := ParseSlidePlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Slides, 2)
	assert.Equal(t, "Photosynthesis", plan.Slides[0].Title)
	assert.Equal(t, "An Overview", plan.Slides[0].Subtitle)
	assert.Equal(t, "• Occur in thylakoids\n• Produce ATP", plan.Slides[1].Content)
	assert.Equal(t, raw, jsonText)
}

func TestParseSlidePlanCodeFence(t *testing.T) {
	raw := "```json\n[{\"title\":\"Photosynthesis\"}]\n```"

	plan, _, err := ParseSlidePlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Slides, 1)
	assert.Equal(t, "Photosynthesis", plan.Slides[0].Title)
}

func TestParseSlidePlanWrappedObject(t *testing.T) {
	raw := `{"slides":[{"title":"Photosynthesis"},{"title":"Calvin Cycle"}]}`

	plan, _, err := ParseSlidePlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Slides, 2)
	assert.Equal(t, "Calvin Cycle", plan.Slides[1].Title)
}

func TestParseSlidePlanSurroundingProse(t *testing.T) {
	raw := "Here is your deck:\n[{\"title\":\"Photosynthesis\"}]\nHope it helps!"

	plan, _, err := ParseSlidePlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Slides, 1)
}

func TestParseSlidePlanMissingOuterBrackets(t *testing.T) {
	raw := `{"title":"Photosynthesis"},{"title":"Light Reactions"}`

	plan, jsonText, err := ParseSlidePlan(raw)
	require.NoError(t, err)
	require.Len(t, plan.Slides, 2)
	assert.Equal(t, "["+raw+"]", jsonText)
}

func TestParseSlidePlanEmptyOutput(t *testing.T) {
	_, _, err := ParseSlidePlan("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty slide deck output")
}

func TestParseSlidePlanGarbage(t *testing.T) {
	_, _, err := ParseSlidePlan("sorry, I cannot help with that")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse slide deck json")
}
