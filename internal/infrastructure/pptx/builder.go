package pptx

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	slidesmodel "lesson-slides-api/internal/application/slides/model"
)

var tracer = otel.Tracer("pptx")

// 版面常量，16:9 画布（10 x 5.625 英寸）
const (
	emuPerInch = 914400

	slideWidth  = int64(10.0 * emuPerInch)
	slideHeight = int64(5.625 * emuPerInch)

	// 内容页左侧色条宽度
	sideBarWidth = int64(1.5 * emuPerInch)

	// 标题页底部色带
	titleBandTop    = int64(4.125 * emuPerInch)
	titleBandHeight = int64(1.5 * emuPerInch)

	// 字体大小 (pt)
	fontDeckTitle    = 40
	fontDeckSubtitle = 24
	fontSlideTitle   = 33
	fontSubtitle     = 21
	fontBody         = 18
	fontSlideNumber  = 14
)

const textColor = "FF000000"

// Builder 将 SlidePlan 渲染为 PPTX
type Builder struct {
	theme Theme
}

// NewBuilder 创建渲染器，theme 在整个生命周期内不变
func NewBuilder(theme Theme) *Builder {
	return &Builder{theme: theme}
}

func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// Render 渲染整套课件。首页按标题页排版，其余按内容页排版。
func (b *Builder) Render(ctx context.Context, plan *slidesmodel.SlidePlan) ([]byte, error) {
	_, span := tracer.Start(ctx, "pptx.Render")
	defer span.End()

	if plan == nil || len(plan.Slides) == 0 {
		return nil, fmt.Errorf("slide plan is empty")
	}
	span.SetAttributes(attribute.Int("pptx.slide_count", len(plan.Slides)))

	p := ppt.New()
	p.GetDocumentProperties().Title = strings.TrimSpace(plan.Slides[0].Title)
	p.GetDocumentProperties().Creator = "lesson-slides-api"

	for i := range plan.Slides {
		if i == 0 {
			b.addTitleSlide(p, plan.Slides[i])
			continue
		}
		b.addContentSlide(p, plan.Slides[i], i)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create pptx writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to write pptx: %w", err)
	}

	span.SetAttributes(attribute.Int("pptx.size_bytes", buf.Len()))
	return buf.Bytes(), nil
}

// addTitleSlide 标题页：居中主标题 + 强调色副标题 + 底部主题色带
func (b *Builder) addTitleSlide(p *ppt.Presentation, s slidesmodel.Slide) {
	slide := p.GetActiveSlide()

	band := slide.CreateRichTextShape()
	band.SetOffsetX(0).SetOffsetY(titleBandTop)
	band.SetWidth(slideWidth).SetHeight(titleBandHeight)
	band.SetFill(solidFill(b.theme.Primary))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(int64(0.75 * emuPerInch)).SetOffsetY(int64(1.4 * emuPerInch))
	titleShape.SetWidth(int64(8.5 * emuPerInch)).SetHeight(int64(1.0 * emuPerInch))
	titleTr := titleShape.CreateTextRun(s.Title)
	titleTr.GetFont().SetSize(fontDeckTitle).SetBold(true).SetColor(ppt.NewColor(textColor))
	alignCenter(titleShape.GetActiveParagraph())

	if s.Subtitle != "" {
		subShape := slide.CreateRichTextShape()
		subShape.SetOffsetX(int64(0.75 * emuPerInch)).SetOffsetY(int64(2.625 * emuPerInch))
		subShape.SetWidth(int64(8.5 * emuPerInch)).SetHeight(int64(0.75 * emuPerInch))
		subTr := subShape.CreateTextRun(s.Subtitle)
		subTr.GetFont().SetSize(fontDeckSubtitle).SetColor(ppt.NewColor(b.theme.Accent))
		alignCenter(subShape.GetActiveParagraph())
	}
}

// addContentSlide 内容页：左侧主题色条、标题、副标题、浅色内容面板、页码
func (b *Builder) addContentSlide(p *ppt.Presentation, s slidesmodel.Slide, number int) {
	slide := p.CreateSlide()

	sideBar := slide.CreateRichTextShape()
	sideBar.SetOffsetX(0).SetOffsetY(0)
	sideBar.SetWidth(sideBarWidth).SetHeight(slideHeight)
	sideBar.SetFill(solidFill(b.theme.Primary))

	titleShape := slide.CreateRichTextShape()
	titleShape.SetOffsetX(int64(1.875 * emuPerInch)).SetOffsetY(int64(0.375 * emuPerInch))
	titleShape.SetWidth(int64(7.5 * emuPerInch)).SetHeight(int64(0.75 * emuPerInch))
	titleTr := titleShape.CreateTextRun(s.Title)
	titleTr.GetFont().SetSize(fontSlideTitle).SetBold(true).SetColor(ppt.NewColor(textColor))

	contentTop := 1.125
	if s.Subtitle != "" {
		subShape := slide.CreateRichTextShape()
		subShape.SetOffsetX(int64(1.875 * emuPerInch)).SetOffsetY(int64(1.125 * emuPerInch))
		subShape.SetWidth(int64(7.5 * emuPerInch)).SetHeight(int64(0.4 * emuPerInch))
		subTr := subShape.CreateTextRun(s.Subtitle)
		subTr.GetFont().SetSize(fontSubtitle).SetColor(ppt.NewColor(b.theme.Accent))
		contentTop = 1.5
	}

	if s.Content != "" {
		panel := slide.CreateRichTextShape()
		panel.SetOffsetX(int64(1.875 * emuPerInch)).SetOffsetY(int64(contentTop * emuPerInch))
		panel.SetWidth(int64(7.5 * emuPerInch)).SetHeight(int64((5.25 - contentTop) * emuPerInch))
		panel.SetFill(solidFill(b.theme.PanelFill))
		b.writeBullets(panel, s.Content)
	}

	numShape := slide.CreateRichTextShape()
	numShape.SetOffsetX(int64(0.375 * emuPerInch)).SetOffsetY(int64(5.1 * emuPerInch))
	numShape.SetWidth(int64(0.75 * emuPerInch)).SetHeight(int64(0.35 * emuPerInch))
	numTr := numShape.CreateTextRun(strconv.Itoa(number))
	numTr.GetFont().SetSize(fontSlideNumber).SetColor(ppt.NewColor(b.theme.SlideNumber))
	alignCenter(numShape.GetActiveParagraph())
}

// writeBullets 按 • 切分要点，要点内的换行继续拆成独立段落。
// Knowledge Check / Think-Pair-Share / Activity / Exit Ticket 行按主题高亮加粗。
func (b *Builder) writeBullets(shape *ppt.RichTextShape, content string) {
	first := true
	for _, bullet := range strings.Split(content, "•") {
		bullet = strings.TrimSpace(bullet)
		if bullet == "" {
			continue
		}

		color, bold := b.bulletStyle(bullet)
		for _, line := range strings.Split(bullet, "\n") {
			line = strings.TrimRight(line, " \t")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !first {
				shape.CreateParagraph()
			}
			first = false

			tr := shape.CreateTextRun(line)
			tr.GetFont().SetSize(fontBody).SetBold(bold).SetColor(ppt.NewColor(color))
		}
	}
}

func (b *Builder) bulletStyle(bullet string) (color string, bold bool) {
	switch {
	case strings.Contains(bullet, "Knowledge Check:"), strings.Contains(bullet, "Exit Ticket:"):
		return b.theme.Question, true
	case strings.Contains(bullet, "Think-Pair-Share"), strings.Contains(bullet, "Activity:"):
		return b.theme.Activity, true
	default:
		return textColor, false
	}
}
