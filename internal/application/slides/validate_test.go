package slides

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	slidesmodel "lesson-slides-api/internal/application/slides/model"
)

func TestValidateSlidePlanOK(t *testing.T) {
	plan := &slidesmodel.SlidePlan{Slides: []slidesmodel.Slide{
		{Title: "Photosynthesis", Subtitle: "An Overview"},
		{Title: "Light Reactions", Content: "• Thylakoid membranes\n• ATP and NADPH"},
	}}
	assert.NoError(t, ValidateSlidePlan(plan, 0))
}

func TestValidateSlidePlanNil(t *testing.T) {
	err := ValidateSlidePlan(nil, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan is nil")
}

func TestValidateSlidePlanEmptySlides(t *testing.T) {
	err := ValidateSlidePlan(&slidesmodel.SlidePlan{}, 10)
	require.Error(t, err)

	var vErr SlidePlanValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Issues, "slides must not be empty")
}

func TestValidateSlidePlanTooManySlides(t *testing.T) {
	plan := &slidesmodel.SlidePlan{}
	for i := 0; i < 5; i++ {
		plan.Slides = append(plan.Slides, slidesmodel.Slide{Title: "Slide"})
	}

	err := ValidateSlidePlan(plan, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many slides: 5 > 3")
}

func TestValidateSlidePlanMissingTitle(t *testing.T) {
	plan := &slidesmodel.SlidePlan{Slides: []slidesmodel.Slide{
		{Title: "Photosynthesis"},
		{Title: "   "},
	}}

	err := ValidateSlidePlan(plan, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slides[1].title is required")
}

func TestValidateSlidePlanFieldLengths(t *testing.T) {
	plan := &slidesmodel.SlidePlan{Slides: []slidesmodel.Slide{{
		Title:    strings.Repeat("标", 256),
		Subtitle: strings.Repeat("s", 256),
		Content:  strings.Repeat("c", 20001),
	}}}

	err := ValidateSlidePlan(plan, 10)
	require.Error(t, err)

	var vErr SlidePlanValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Issues, "slides[0].title too long")
	assert.Contains(t, vErr.Issues, "slides[0].subtitle too long")
	assert.Contains(t, vErr.Issues, "slides[0].content too long")
}

func TestValidateSlidePlanDefaultLimit(t *testing.T) {
	plan := &slidesmodel.SlidePlan{}
	for i := 0; i < DefaultMaxSlides+1; i++ {
		plan.Slides = append(plan.Slides, slidesmodel.Slide{Title: "Slide"})
	}

	err := ValidateSlidePlan(plan, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many slides")
}
