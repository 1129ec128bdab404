// Package slides 实现课件生成应用服务。
package slides

import (
	"encoding/json"
	"fmt"
	"strings"

	slidesmodel "lesson-slides-api/internal/application/slides/model"
	wfnode "lesson-slides-api/internal/workflow/node"
)

// ParseSlidePlan 从模型输出中解析 SlidePlan，并返回"截取后的 JSON 文本"。
// 兼容三种输出形态：裸数组、{"slides": [...]} 包装对象、缺失外层中括号的对象序列。
func ParseSlidePlan(rawText string) (*slidesmodel.SlidePlan, string, error) {
	jsonText := wfnode.ExtractJSONObject(rawText)
	if strings.TrimSpace(jsonText) == "" {
		return nil, jsonText, fmt.Errorf("empty slide deck output")
	}

	var items []slidesmodel.Slide
	if err := json.Unmarshal([]byte(jsonText), &items); err == nil {
		return &slidesmodel.SlidePlan{Slides: items}, jsonText, nil
	}

	var wrapped slidesmodel.SlidePlan
	if err := json.Unmarshal([]byte(jsonText), &wrapped); err == nil && len(wrapped.Slides) > 0 {
		return &wrapped, jsonText, nil
	}

	bracketed := jsonText
	if !strings.HasPrefix(bracketed, "[") {
		bracketed = "[" + bracketed
	}
	if !strings.HasSuffix(bracketed, "]") {
		bracketed = bracketed + "]"
	}
	if err := json.Unmarshal([]byte(bracketed), &items); err != nil {
		return nil, jsonText, fmt.Errorf("failed to parse slide deck json: %w", err)
	}
	return &slidesmodel.SlidePlan{Slides: items}, bracketed, nil
}
