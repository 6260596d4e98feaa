package panel

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/itohio/pmmon/pkg/display"
	"github.com/itohio/pmmon/pkg/indicator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanel_LatchesMultiplexedDigits(t *testing.T) {
	test.NewTempApp(t)
	p := New()

	mux := display.NewMultiplexer(p.SegmentLines(), p.EnableLines(), display.SevenSegment)
	mux.SetDigits(display.Encode(42))

	mux.Tick()
	assert.Equal(t, display.SevenSegment(4), p.Shown(0))
	assert.Equal(t, display.Segments(0), p.Shown(1))

	mux.Tick()
	assert.Equal(t, display.SevenSegment(4), p.Shown(0), "disabled position keeps its pattern")
	assert.Equal(t, display.SevenSegment(2), p.Shown(1))

	mux.SetDigits(display.Encode(7))
	mux.Tick()
	mux.Tick()
	assert.Equal(t, display.SevenSegment(0), p.Shown(0))
	assert.Equal(t, display.SevenSegment(7), p.Shown(1))
}

func TestPanel_LEDs(t *testing.T) {
	test.NewTempApp(t)
	p := New()

	ind := indicator.New(p.SafeLine(), p.UnsafeLine())
	safe, unsafe := p.LEDs()
	assert.False(t, safe)
	assert.False(t, unsafe)

	ind.Drive(12)
	safe, unsafe = p.LEDs()
	assert.True(t, safe)
	assert.False(t, unsafe)

	ind.Drive(51)
	safe, unsafe = p.LEDs()
	assert.False(t, safe)
	assert.True(t, unsafe)
}

func TestPanel_Flush(t *testing.T) {
	test.NewTempApp(t)
	p := New()

	assert.False(t, p.Flush(), "nothing changed")

	p.SafeLine().Set(true)
	assert.True(t, p.Flush())
	assert.False(t, p.Flush(), "dirty flag cleared")

	p.SafeLine().Set(true)
	assert.False(t, p.Flush(), "same level is not a change")
}

func TestPanel_Render(t *testing.T) {
	test.NewTempApp(t)
	p := New()
	w := test.NewWindow(p)
	defer w.Close()

	mux := display.NewMultiplexer(p.SegmentLines(), p.EnableLines(), nil)
	mux.SetDigits(display.Encode(18))
	mux.Tick()
	mux.Tick()
	p.Flush()

	r := test.WidgetRenderer(p).(*panelRenderer)
	for i := 0; i < display.NumSegments; i++ {
		want := segmentOffColor
		if display.SevenSegment(8).Lit(i) {
			want = segmentOnColor
		}
		assert.Equal(t, want, r.segments[1][i].FillColor, "segment %d", i)
	}
}

func TestComputeLayout(t *testing.T) {
	l := computeLayout(300, 150)

	for _, d := range l.digits {
		assert.Greater(t, d.W, float32(0))
		assert.InDelta(t, d.W*digitAspect, d.H, 1e-3)
		assert.LessOrEqual(t, d.Y+d.H, float32(150))
	}
	assert.Less(t, l.digits[0].X+l.digits[0].W, l.digits[1].X, "digits do not overlap")
	assert.Less(t, l.digits[1].X+l.digits[1].W, l.safe.X, "LEDs are right of the digits")
	assert.Less(t, l.safe.Y, l.unsafe.Y)
}

func TestSegmentRect_StaysInsideCell(t *testing.T) {
	const w, h = 30, 60
	for i := 0; i < display.NumSegments; i++ {
		s := segmentRect(i, w, h)
		require.Greater(t, s.W, float32(0), "segment %d", i)
		require.Greater(t, s.H, float32(0), "segment %d", i)
		assert.GreaterOrEqual(t, s.X, float32(0))
		assert.GreaterOrEqual(t, s.Y, float32(0))
		assert.LessOrEqual(t, s.X+s.W, float32(w)+1e-3)
		assert.LessOrEqual(t, s.Y+s.H, float32(h)+1e-3)
	}
}
