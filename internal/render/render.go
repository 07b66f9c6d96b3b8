// Package render draws a headless PNG diagram of a Position, supplementing
// the core's text-only Position.Pretty with a graphical board rendering
// that needs no GUI event loop. It only reads a Position through its
// exported surface (PieceOn, Checkers); it never
// mutates one.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/xqcore/internal/board"
)

// Options controls the rendered diagram's geometry.
type Options struct {
	CellSize int // pixels per grid cell; default 64
	Margin   int // border around the grid for file/rank labels; default 32
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = 64
	}
	if o.Margin <= 0 {
		o.Margin = 32
	}
	return o
}

var labelFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return
	}
	labelFace = face
}

// RenderPNG draws pos to a PNG image and writes it to path.
func RenderPNG(pos *board.Position, path string, opts Options) error {
	img := Render(pos, opts)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return nil
}

// Render draws pos to an in-memory RGBA diagram.
func Render(pos *board.Position, opts Options) *image.RGBA {
	opts = opts.withDefaults()
	cell, margin := opts.CellSize, opts.Margin
	w := margin*2 + cell*(board.NumFiles-1)
	h := margin*2 + cell*(board.NumRanks-1)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{0xe8, 0xd3, 0xa0, 0xff}}, image.Point{}, draw.Src)

	boardToPx := func(f, r int) (int, int) {
		return margin + f*cell, margin + (board.NumRanks-1-r)*cell
	}

	drawGrid(img, opts)
	drawPalaceDiagonals(img, opts)

	checkers := pos.Checkers()
	for sq := board.Square(0); int(sq) < board.NumSquares; sq++ {
		pc := pos.PieceOn(sq)
		if pc == board.NoPiece {
			continue
		}
		x, y := boardToPx(sq.File(), sq.Rank())
		drawPiece(img, pc, x, y, cell, checkers.Test(sq))
	}

	drawLabels(img, opts)
	return img
}

func drawGrid(img *image.RGBA, opts Options) {
	cell, margin := opts.CellSize, opts.Margin
	lineColor := color.RGBA{0x40, 0x30, 0x10, 0xff}
	riverRank := 4 // between rank 4 and rank 5: the uncrossed horizontal gap

	for r := 0; r < board.NumRanks; r++ {
		y := margin + (board.NumRanks-1-r)*cell
		x0, x1 := margin, margin+cell*(board.NumFiles-1)
		if r == riverRank || r == riverRank+1 {
			// River gap: only draw the two edge columns, per Xiangqi's board.
			hLine(img, x0, x0+1, y, lineColor)
			hLine(img, x1-1, x1, y, lineColor)
			continue
		}
		hLine(img, x0, x1, y, lineColor)
	}
	for f := 0; f < board.NumFiles; f++ {
		x := margin + f*cell
		if f == 0 || f == board.NumFiles-1 {
			vLine(img, x, margin, margin+cell*(board.NumRanks-1), lineColor)
			continue
		}
		vLine(img, x, margin, margin+cell*4, lineColor)
		vLine(img, x, margin+cell*5, margin+cell*(board.NumRanks-1), lineColor)
	}
}

func drawPalaceDiagonals(img *image.RGBA, opts Options) {
	cell, margin := opts.CellSize, opts.Margin
	lineColor := color.RGBA{0x40, 0x30, 0x10, 0xff}
	px := func(f, r int) (int, int) { return margin + f*cell, margin + (board.NumRanks-1-r)*cell }

	for _, baseRank := range [2]int{0, 7} {
		x0, y0 := px(3, baseRank)
		x1, y1 := px(5, baseRank+2)
		diagLine(img, x0, y0, x1, y1, lineColor)
		x0, y0 = px(5, baseRank)
		x1, y1 = px(3, baseRank+2)
		diagLine(img, x0, y0, x1, y1, lineColor)
	}
}

func drawPiece(img *image.RGBA, pc board.Piece, x, y, cell int, inCheck bool) {
	radius := cell/2 - 4
	ring := "#c0392b"
	if inCheck {
		ring = "#f1c40f"
	}
	fill := "#fdf6e3"
	textColor := "#c0392b"
	if pc.Color() == board.Black {
		textColor = "#1b1b1b"
	}

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">
<circle cx="%d" cy="%d" r="%d" fill="%s" stroke="%s" stroke-width="3"/>
<text x="%d" y="%d" font-size="%d" text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-weight="bold" fill="%s">%c</text>
</svg>`, cell, cell, cell/2, cell/2, radius, fill, ring, cell/2, cell/2, radius, textColor, pc.Letter())

	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(svg)))
	if err != nil {
		return
	}
	icon.SetTarget(0, 0, float64(cell), float64(cell))

	glyph := image.NewRGBA(image.Rect(0, 0, cell, cell))
	scanner := rasterx.NewScannerGV(cell, cell, glyph, glyph.Bounds())
	raster := rasterx.NewDasher(cell, cell, scanner)
	icon.Draw(raster, 1.0)

	draw.Draw(img, image.Rect(x-cell/2, y-cell/2, x+cell/2, y+cell/2), glyph, image.Point{}, draw.Over)
}

func drawLabels(img *image.RGBA, opts Options) {
	if labelFace == nil {
		return
	}
	cell, margin := opts.CellSize, opts.Margin
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{0x20, 0x20, 0x20, 0xff}), Face: labelFace}
	for f := 0; f < board.NumFiles; f++ {
		label := string(rune('a' + f))
		x := margin + f*cell - 4
		d.Dot = fixed.P(x, margin/2+6)
		d.DrawString(label)
	}
	for r := 0; r < board.NumRanks; r++ {
		y := margin + (board.NumRanks-1-r)*cell + 6
		d.Dot = fixed.P(margin/2-4, y)
		d.DrawString(fmt.Sprint(r))
	}
}

func hLine(img *image.RGBA, x0, x1 int, y int, c color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y, c)
		img.Set(x, y+1, c)
	}
}

func vLine(img *image.RGBA, x int, y0, y1 int, c color.Color) {
	for y := y0; y <= y1; y++ {
		img.Set(x, y, c)
		img.Set(x+1, y, c)
	}
}

// diagLine draws a straight line with Bresenham's algorithm — the palace
// crosses are the only non-axis-aligned strokes on the board.
func diagLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx - dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
