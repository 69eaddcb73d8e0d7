package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is the common surface of everything a Panel can host.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
	SetY(y float64)
}

// section is a titled group of consecutive widgets.
type section struct {
	title      string
	startIndex int
	endIndex   int // exclusive
}

// Panel manages a scrollable column of labelled widgets.
type Panel struct {
	X, Y          float64
	Width, Height float64

	widgets      []Widget
	labels       []string
	sections     []section
	scrollOffset float64

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty panel at the given screen rectangle.
func NewPanel(x, y, width, height float64) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection opens a titled group; widgets added next belong to it.
func (p *Panel) AddSection(title string) {
	p.sections = append(p.sections, section{title: title, startIndex: len(p.widgets)})
}

// EndSection closes the current section.
func (p *Panel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].endIndex = len(p.widgets)
	}
}

// AddSlider appends a slider spanning the panel width and returns it so the
// caller can read its Value every frame.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, 0, p.Width-20, label, min, max, value)
	p.widgets = append(p.widgets, s)
	p.labels = append(p.labels, label)
	return s
}

// AddCheckbox appends a checkbox and returns it.
func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, 0, label, value)
	p.widgets = append(p.widgets, c)
	p.labels = append(p.labels, label)
	return c
}

// AddButton appends a full-width button and returns it.
func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, 0, p.Width-20, 24, label, onClick)
	p.widgets = append(p.widgets, b)
	p.labels = append(p.labels, "")
	return b
}

// Contains reports whether a screen point lies inside the panel rectangle.
// The host uses it to keep clicks on the panel from acting on the world.
func (p *Panel) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.Width && y >= p.Y && y <= p.Y+p.Height
}

// Update handles scrolling and forwards input to every widget.
func (p *Panel) Update() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		p.scrollOffset -= dy * 20
		maxScroll := p.contentHeight() - p.Height + 40
		if maxScroll < 0 {
			maxScroll = 0
		}
		if p.scrollOffset < 0 {
			p.scrollOffset = 0
		}
		if p.scrollOffset > maxScroll {
			p.scrollOffset = maxScroll
		}
	}

	for _, w := range p.widgets {
		w.Update()
	}
}

// Draw renders the panel frame, section headers and visible widgets.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, "Configuration", int(p.X+10), int(p.Y+5))

	currentY := p.Y + 30 - p.scrollOffset
	widgetIdx := 0

	for si, sec := range p.sections {
		if currentY >= p.Y-25 && currentY <= p.Y+p.Height {
			vector.FillRect(screen,
				float32(p.X+5), float32(currentY),
				float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, sec.title, int(p.X+10), int(currentY+5))
		}
		currentY += 25

		for widgetIdx < sec.endIndex && widgetIdx < len(p.widgets) {
			w := p.widgets[widgetIdx]
			if currentY >= p.Y-30 && currentY <= p.Y+p.Height {
				if label := p.labels[widgetIdx]; label != "" {
					ebitenutil.DebugPrintAt(screen, label, int(p.X+10), int(currentY))
				}
				w.SetY(currentY + 15)
				w.Draw(screen)
			}
			currentY += w.Height()
			widgetIdx++
		}

		if si < len(p.sections)-1 {
			widgetIdx = p.sections[si+1].startIndex
		}
	}
}

func (p *Panel) contentHeight() float64 {
	h := 30.0 + float64(len(p.sections))*25
	for _, w := range p.widgets {
		h += w.Height()
	}
	return h
}
