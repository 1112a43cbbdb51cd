package procede

import (
	"image"
	"image/color"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/voidshard/procede/internal/line"
	"github.com/voidshard/procede/internal/voronoi"
	"github.com/voidshard/procede/quad"
	"github.com/voidshard/procede/river"
	"github.com/voidshard/procede/streets"
)

// ErrNoLots is returned when there is nothing to draw.
var ErrNoLots = errors.New("no lots to render")

const (
	// bit numbers for our per pixel bitmap
	bitLot      = 0
	bitRiver    = 1
	bitObstacle = 2
	bitStreet   = 3
	bitNode     = 4

	// margin in metres around the drawn features
	renderMargin = 20

	// river curves are drawn as this many straight pieces
	riverSamples = 16
)

// ColourScheme defines how various features of a town are coloured.
type ColourScheme struct {
	Background color.Color
	Lots       color.Color
	LotEdges   color.Color
	Rivers     color.Color
	Obstacles  color.Color
	Streets    color.Color
	Nodes      map[NodeKind]color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.White,
		Lots:       colornames.Wheat,
		LotEdges:   colornames.Tan,
		Rivers:     colornames.Lightblue,
		Obstacles:  colornames.Lightgray,
		Streets:    colornames.Dimgray,
		Nodes: map[NodeKind]color.Color{
			Intersection: colornames.Crimson,
			Corner:       colornames.Gold,
			Straight:     colornames.Steelblue,
			DeadEnd:      colornames.Black,
			Isolated:     colornames.Fuchsia,
		},
	}
}

// TownImage is a raster of a town map. Each pixel holds a small bitmap of
// the features drawn over it, and the kind of any node sitting on it.
type TownImage struct {
	// area in uv covered by the image
	area  quad.Rect
	scale float64 // pixels per metre

	// flags is the per pixel bitmap
	//   bit 0 -> isLot
	//   bit 1 -> isRiver
	//   bit 2 -> isObstacle
	//   bit 3 -> isStreet
	//   bit 4 -> isNode
	//   bit 5-7 -> unused
	flags *image.Gray

	// kinds holds NodeKind.ID() where bitNode is set
	kinds *image.Gray

	// scratch image for lots & rivers. We lean on a drawing lib to fill
	// shapes, then transfer the result into flags in endDraw()
	ctx *gg.Context
}

// NewTownImage rasterises the town map, lots & rivers at scale pixels per
// metre. Rivers must be in the same uv space as the town.
func NewTownImage(m *streets.TownMap, lots []*streets.LotPoly, rivers []river.Segment, scale float64) *TownImage {
	area := drawnArea(m, lots, rivers).Inflate(renderMargin)
	w := int(math.Ceil(area.Width() * scale))
	h := int(math.Ceil(area.Height() * scale))
	bounds := image.Rect(0, 0, maxint(w, 1), maxint(h, 1))

	ctx := gg.NewContextForRGBA(image.NewRGBA(bounds))
	ctx.SetRGBA(0, 0, 0, 0)
	ctx.Clear()

	t := &TownImage{
		area:  area,
		scale: scale,
		flags: image.NewGray(bounds),
		kinds: image.NewGray(bounds),
		ctx:   ctx,
	}

	for _, p := range lots {
		for _, lot := range p.Lots {
			t.drawLot(lot.Bounds)
		}
	}
	for _, s := range rivers {
		t.drawRiver(s)
	}
	t.endDraw()

	for _, o := range m.Obstacles() {
		t.setLine(o.A, o.B, bitObstacle)
	}
	for _, e := range m.Edges() {
		t.setLine(e.UVA, e.UVB, bitStreet)
	}
	for _, n := range m.Nodes() {
		p := t.Pixel(n.UV)
		t.set(p.X, p.Y, bitNode)
		if t.inBounds(p.X, p.Y) {
			t.kinds.SetGray(p.X, p.Y, color.Gray{Y: KindOf(n).ID()})
		}
	}
	return t
}

// drawnArea returns the uv area covered by everything we're drawing.
func drawnArea(m *streets.TownMap, lots []*streets.LotPoly, rivers []river.Segment) quad.Rect {
	area := quad.NullRect()
	for _, n := range m.Nodes() {
		area = area.Expand(n.UV)
	}
	for _, o := range m.Obstacles() {
		area = area.Union(o.Bounds)
	}
	for _, p := range lots {
		for _, v := range p.Poly {
			area = area.Expand(v)
		}
	}
	for _, s := range rivers {
		area = area.Union(s.Bounds)
	}
	if area.IsNull() {
		return quad.NullAt(r2.Point{})
	}
	return area
}

// Pixel returns the pixel uv falls on. Y is flipped so north is up.
func (t *TownImage) Pixel(uv r2.Point) image.Point {
	return image.Pt(
		int(math.Floor((uv.X-t.area.Min.X)*t.scale)),
		int(math.Floor((t.area.Max.Y-uv.Y)*t.scale)),
	)
}

// Bounds returns the image bounds.
func (t *TownImage) Bounds() image.Rectangle {
	return t.flags.Bounds()
}

// IsLot returns if a lot covers x,y
func (t *TownImage) IsLot(x, y int) bool { return t.get(x, y, bitLot) }

// IsRiver returns if a river covers x,y
func (t *TownImage) IsRiver(x, y int) bool { return t.get(x, y, bitRiver) }

// IsObstacle returns if an obstacle crosses x,y
func (t *TownImage) IsObstacle(x, y int) bool { return t.get(x, y, bitObstacle) }

// IsStreet returns if a street crosses x,y
func (t *TownImage) IsStreet(x, y int) bool { return t.get(x, y, bitStreet) }

// NodeKind returns the kind of the node at x,y, if there is one.
func (t *TownImage) NodeKind(x, y int) (NodeKind, bool) {
	if !t.get(x, y, bitNode) {
		return "", false
	}
	return kindForID(t.kinds.GrayAt(x, y).Y)
}

// Image returns the town coloured with the given scheme.
func (t *TownImage) Image(scheme *ColourScheme) image.Image {
	bnds := t.flags.Bounds()
	im := image.NewRGBA(bnds)

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			bm := t.getBM(dx, dy)

			if bm.Get(bitNode) {
				if kind, ok := t.NodeKind(dx, dy); ok {
					if col, ok := scheme.Nodes[kind]; ok {
						im.Set(dx, dy, col)
						continue
					}
				}
			}

			switch {
			case bm.Get(bitStreet):
				im.Set(dx, dy, scheme.Streets)
			case bm.Get(bitObstacle):
				im.Set(dx, dy, scheme.Obstacles)
			case bm.Get(bitRiver):
				im.Set(dx, dy, scheme.Rivers)
			case bm.Get(bitLot):
				im.Set(dx, dy, scheme.Lots)
			default:
				im.Set(dx, dy, scheme.Background)
			}
		}
	}

	return im
}

// SaveAdv saves the town as a PNG using the given scheme.
func (t *TownImage) SaveAdv(fpath string, scheme *ColourScheme) error {
	ctx := gg.NewContextForRGBA(t.Image(scheme).(*image.RGBA))
	return ctx.SavePNG(fpath)
}

// Save writes the raw feature bitmap as a grayscale PNG.
func (t *TownImage) Save(fpath string) error {
	return savePNG(fpath, t.flags)
}

// Render draws the town map, lots & rivers to a PNG with the default
// scheme. Lot edges are outlined over the raster.
func Render(fpath string, m *streets.TownMap, lots []*streets.LotPoly, rivers []river.Segment, scale float64) error {
	t := NewTownImage(m, lots, rivers, scale)
	scheme := DefaultScheme()

	ctx := gg.NewContextForRGBA(t.Image(scheme).(*image.RGBA))
	ctx.SetColor(scheme.LotEdges)
	ctx.SetLineWidth(1)
	for _, p := range lots {
		for _, lot := range p.Lots {
			t.tracePath(ctx, lot.Bounds)
			ctx.Stroke()
		}
	}
	return ctx.SavePNG(fpath)
}

// RenderLotCells draws the voronoi cells of every lot nucleus across all
// the given polygons, unclipped, to a PNG. Useful for checking how lots
// in neighbouring blocks meet.
func RenderLotCells(fpath string, lots []*streets.LotPoly) error {
	area := quad.NullRect()
	nuclei := []r2.Point{}
	for _, p := range lots {
		for _, l := range p.Lots {
			area = area.Expand(l.Nucleus)
			nuclei = append(nuclei, l.Nucleus)
		}
	}
	if len(nuclei) == 0 {
		return ErrNoLots
	}

	b := voronoi.NewBuilder(area.Inflate(renderMargin))
	for _, n := range nuclei {
		b.AddSite(n)
	}
	return errors.Wrap(b.Voronoi().Diagram().Render(fpath), "failed to render lot cells")
}

// tracePath adds the closed ring to the context path.
func (t *TownImage) tracePath(ctx *gg.Context, ring []r2.Point) {
	for i, v := range ring {
		p := t.point(v)
		if i == 0 {
			ctx.MoveTo(p.X, p.Y)
		} else {
			ctx.LineTo(p.X, p.Y)
		}
	}
	ctx.ClosePath()
}

// point returns uv in (fractional) image co-ords.
func (t *TownImage) point(uv r2.Point) r2.Point {
	return r2.Point{X: (uv.X - t.area.Min.X) * t.scale, Y: (t.area.Max.Y - uv.Y) * t.scale}
}

// drawLot (polygon) on to our scratch image
func (t *TownImage) drawLot(ring []r2.Point) {
	if len(ring) < 3 {
		return
	}
	t.ctx.SetColor(color.RGBA{255, 0, 0, 255})
	t.tracePath(t.ctx, ring)
	t.ctx.Fill()
}

// drawRiver (thick curve) on to our scratch image
func (t *TownImage) drawRiver(s river.Segment) {
	t.ctx.SetColor(color.RGBA{0, 255, 0, 255})
	t.ctx.SetLineCapRound()
	for i := 0; i < riverSamples; i++ {
		t0 := float64(i) / riverSamples
		t1 := float64(i+1) / riverSamples
		a, b := t.point(s.Curve.Sample(t0)), t.point(s.Curve.Sample(t1))
		t.ctx.SetLineWidth(math.Max(1, s.WidthAt(t0)*t.scale))
		t.ctx.DrawLine(a.X, a.Y, b.X, b.Y)
		t.ctx.Stroke()
	}
}

// endDraw copies the lot & river shapes from the scratch image into our
// flags.
func (t *TownImage) endDraw() {
	temp := t.ctx.Image()
	bnds := temp.Bounds()

	for dy := bnds.Min.Y; dy < bnds.Max.Y; dy++ {
		for dx := bnds.Min.X; dx < bnds.Max.X; dx++ {
			r, g, _, _ := temp.At(dx, dy).RGBA()
			r = r >> 8
			g = g >> 8

			if g >= 128 {
				t.set(dx, dy, bitRiver)
			} else if r >= 128 {
				t.set(dx, dy, bitLot)
			}
		}
	}
}

// setLine sets the bit on every pixel between uv a & b.
func (t *TownImage) setLine(a, b r2.Point, bit int) {
	for _, p := range line.PointsBetween(t.Pixel(a), t.Pixel(b)) {
		t.set(p.X, p.Y, bit)
	}
}

// set the given bit at x,y
func (t *TownImage) set(x, y, bit int) {
	if !t.inBounds(x, y) {
		return
	}
	bm := t.getBM(x, y)
	bm.Set(bit, true)
	t.flags.SetGray(x, y, color.Gray{Y: bm.Data(false)[0]})
}

// get the given bit at x,y
func (t *TownImage) get(x, y, bit int) bool {
	if !t.inBounds(x, y) {
		return false
	}
	return t.getBM(x, y).Get(bit)
}

// getBM gets the 8 bit bitmap at x,y
func (t *TownImage) getBM(x, y int) bitmap.Bitmap {
	return bitmap.Bitmap([]byte{t.flags.GrayAt(x, y).Y})
}

// inBounds determines if x,y is inside of the image area
func (t *TownImage) inBounds(x, y int) bool {
	return image.Pt(x, y).In(t.flags.Bounds())
}
