package slides

import (
	"fmt"
	"strings"
	"unicode/utf8"

	slidesmodel "lesson-slides-api/internal/application/slides/model"
)

// DefaultMaxSlides 未配置上限时的兜底值
const DefaultMaxSlides = 20

type SlidePlanValidationError struct {
	Issues []string
}

func (e SlidePlanValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "slide plan validation failed"
	}
	return "slide plan validation failed: " + strings.Join(e.Issues, "; ")
}

// ValidateSlidePlan 对 SlidePlan 做强约束校验，避免脏数据进入渲染。
func ValidateSlidePlan(plan *slidesmodel.SlidePlan, maxSlides int) error {
	var issues []string
	if plan == nil {
		return SlidePlanValidationError{Issues: []string{"plan is nil"}}
	}
	if maxSlides <= 0 {
		maxSlides = DefaultMaxSlides
	}

	if len(plan.Slides) == 0 {
		issues = append(issues, "slides must not be empty")
	}
	if len(plan.Slides) > maxSlides {
		issues = append(issues, fmt.Sprintf("too many slides: %d > %d", len(plan.Slides), maxSlides))
	}

	for i := range plan.Slides {
		s := plan.Slides[i]
		path := fmt.Sprintf("slides[%d]", i)

		title := strings.TrimSpace(s.Title)
		if title == "" {
			issues = append(issues, path+".title is required")
		} else if utf8.RuneCountInString(title) > 255 {
			issues = append(issues, path+".title too long")
		}

		if utf8.RuneCountInString(s.Subtitle) > 255 {
			issues = append(issues, path+".subtitle too long")
		}
		if utf8.RuneCountInString(s.Content) > 20000 {
			issues = append(issues, path+".content too long")
		}
	}

	if len(issues) > 0 {
		return SlidePlanValidationError{Issues: issues}
	}
	return nil
}
