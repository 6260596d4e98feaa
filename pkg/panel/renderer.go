package panel

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"
	"github.com/itohio/pmmon/pkg/display"
)

var (
	backgroundColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	segmentOnColor  = color.RGBA{R: 255, G: 40, B: 20, A: 255}
	segmentOffColor = color.RGBA{R: 50, G: 20, B: 20, A: 255}
	safeOnColor     = color.RGBA{R: 40, G: 220, B: 60, A: 255}
	unsafeOnColor   = color.RGBA{R: 255, G: 40, B: 20, A: 255}
	ledOffColor     = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	labelColor      = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

const (
	// digit cell aspect ratio (height / width)
	digitAspect = 2.0
	// segment thickness relative to the digit width
	segmentRatio = 1.0 / 6.0
)

// rect is an axis-aligned rectangle in widget coordinates.
type rect struct {
	X, Y, W, H float32
}

// panelRenderer renders the panel widget.
type panelRenderer struct {
	panel *Panel

	background *canvas.Rectangle
	segments   [display.NumDigits][display.NumSegments]*canvas.Rectangle
	safeLED    *canvas.Circle
	unsafeLED  *canvas.Circle
	safeText   *canvas.Text
	unsafeText *canvas.Text

	objects []fyne.CanvasObject
}

func newRenderer(p *Panel) *panelRenderer {
	r := &panelRenderer{
		panel:      p,
		background: canvas.NewRectangle(backgroundColor),
		safeLED:    canvas.NewCircle(ledOffColor),
		unsafeLED:  canvas.NewCircle(ledOffColor),
		safeText:   canvas.NewText("SAFE", labelColor),
		unsafeText: canvas.NewText("UNSAFE", labelColor),
	}
	r.objects = append(r.objects, r.background)
	for pos := range r.segments {
		for i := range r.segments[pos] {
			seg := canvas.NewRectangle(segmentOffColor)
			seg.CornerRadius = 2
			r.segments[pos][i] = seg
			r.objects = append(r.objects, seg)
		}
	}
	r.objects = append(r.objects, r.safeLED, r.unsafeLED, r.safeText, r.unsafeText)
	r.Refresh()
	return r
}

// MinSize returns the minimum size of the widget.
func (r *panelRenderer) MinSize() fyne.Size {
	return fyne.NewSize(240, 120)
}

// Layout arranges the widget components.
func (r *panelRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)

	l := computeLayout(size.Width, size.Height)
	for pos, cell := range l.digits {
		for i, seg := range r.segments[pos] {
			s := segmentRect(i, cell.W, cell.H)
			seg.Move(fyne.NewPos(cell.X+s.X, cell.Y+s.Y))
			seg.Resize(fyne.NewSize(s.W, s.H))
		}
	}

	r.safeLED.Move(fyne.NewPos(l.safe.X, l.safe.Y))
	r.safeLED.Resize(fyne.NewSize(l.safe.W, l.safe.H))
	r.unsafeLED.Move(fyne.NewPos(l.unsafe.X, l.unsafe.Y))
	r.unsafeLED.Resize(fyne.NewSize(l.unsafe.W, l.unsafe.H))

	textSize := math32.Max(10, l.safe.H*0.6)
	r.safeText.TextSize = textSize
	r.unsafeText.TextSize = textSize
	r.safeText.Move(fyne.NewPos(l.safe.X+l.safe.W*1.3, l.safe.Y))
	r.unsafeText.Move(fyne.NewPos(l.unsafe.X+l.unsafe.W*1.3, l.unsafe.Y))
}

// Refresh updates segment and LED colors from the latched line state.
func (r *panelRenderer) Refresh() {
	shown, safe, unsafe := r.panel.state()

	for pos := range r.segments {
		for i, seg := range r.segments[pos] {
			seg.FillColor = segmentOffColor
			if shown[pos].Lit(i) {
				seg.FillColor = segmentOnColor
			}
			seg.Refresh()
		}
	}

	r.safeLED.FillColor = ledOffColor
	if safe {
		r.safeLED.FillColor = safeOnColor
	}
	r.unsafeLED.FillColor = ledOffColor
	if unsafe {
		r.unsafeLED.FillColor = unsafeOnColor
	}
	r.safeLED.Refresh()
	r.unsafeLED.Refresh()
}

// Objects returns all canvas objects for rendering.
func (r *panelRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *panelRenderer) Destroy() {}

// panelLayout holds the digit cells and LED positions for a widget size.
type panelLayout struct {
	digits [display.NumDigits]rect
	safe   rect
	unsafe rect
}

// computeLayout fits two digit cells on the left two thirds of the widget
// and stacks the LEDs on the right third.
func computeLayout(width, height float32) panelLayout {
	var l panelLayout

	margin := math32.Min(width, height) * 0.08
	digitArea := width*2/3 - margin
	gap := margin

	cellW := math32.Min((digitArea-margin-gap)/2, (height-2*margin)/digitAspect)
	cellW = math32.Max(cellW, 0)
	cellH := cellW * digitAspect
	top := (height - cellH) / 2

	for pos := range l.digits {
		l.digits[pos] = rect{
			X: margin + float32(pos)*(cellW+gap),
			Y: top,
			W: cellW,
			H: cellH,
		}
	}

	led := math32.Min(height/6, width/12)
	ledX := width*2/3 + margin
	l.safe = rect{X: ledX, Y: height/3 - led/2, W: led, H: led}
	l.unsafe = rect{X: ledX, Y: height*2/3 - led/2, W: led, H: led}

	return l
}

// segmentRect returns segment i (0 = a ... 6 = g) inside a w x h cell.
func segmentRect(i int, w, h float32) rect {
	t := w * segmentRatio
	half := h / 2
	inner := w - 2*t
	vert := half - t - t/2

	switch i {
	case 0: // a
		return rect{X: t, Y: 0, W: inner, H: t}
	case 1: // b
		return rect{X: w - t, Y: t, W: t, H: vert}
	case 2: // c
		return rect{X: w - t, Y: half + t/2, W: t, H: vert}
	case 3: // d
		return rect{X: t, Y: h - t, W: inner, H: t}
	case 4: // e
		return rect{X: 0, Y: half + t/2, W: t, H: vert}
	case 5: // f
		return rect{X: 0, Y: t, W: t, H: vert}
	case 6: // g
		return rect{X: t, Y: half - t/2, W: inner, H: t}
	}
	return rect{}
}
