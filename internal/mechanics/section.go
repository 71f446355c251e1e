package mechanics

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Bitmap is a rasterized cross-section. Cells are stored row by row with
// row 0 at the lowest y. DX and DY are the real-world pixel pitch.
type Bitmap struct {
	NX, NY int
	DX, DY float64
	Cells  []bool
}

// ParseBitmap reads nx*ny cell characters from text, skipping whitespace.
// A '1' marks an active cell. The first text row is the highest y row.
func ParseBitmap(text string, nx, ny int, dx, dy float64) (Bitmap, error) {
	if nx <= 0 || ny <= 0 {
		return Bitmap{}, fmt.Errorf("%w: dimensions %d x %d", ErrBitmap, nx, ny)
	}
	if dx <= 0 || dy <= 0 {
		return Bitmap{}, fmt.Errorf("%w: pixel size %g x %g", ErrBitmap, dx, dy)
	}
	b := Bitmap{NX: nx, NY: ny, DX: dx, DY: dy, Cells: make([]bool, nx*ny)}
	n := 0
	for _, c := range text {
		if c <= ' ' {
			continue
		}
		if n == nx*ny {
			return Bitmap{}, fmt.Errorf("%w: more than %d cells", ErrBitmap, nx*ny)
		}
		row := ny - 1 - n/nx
		b.Cells[row*nx+n%nx] = c == '1'
		n++
	}
	if n != nx*ny {
		return Bitmap{}, fmt.Errorf("%w: %d cells, want %d", ErrBitmap, n, nx*ny)
	}
	return b, nil
}

// Active reports whether cell (ix, iy) carries load.
func (b Bitmap) Active(ix, iy int) bool { return b.Cells[iy*b.NX+ix] }

// String renders the bitmap in the form ParseBitmap reads.
func (b Bitmap) String() string {
	var sb strings.Builder
	for iy := b.NY - 1; iy >= 0; iy-- {
		sb.WriteByte('\n')
		for ix := 0; ix < b.NX; ix++ {
			if b.Active(ix, iy) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// CrossSection holds the area properties of the active cells of a bitmap.
// Cell centres are measured from the area centroid.
type CrossSection struct {
	Bitmap Bitmap
	// CentroidX and CentroidY locate the centroid from the bitmap's
	// lower left corner.
	CentroidX, CentroidY float64
	X, Y                 []float64
	Ix, Iy, Ixy          float64
	CellArea, Area       float64
}

func NewCrossSection(b Bitmap) (*CrossSection, error) {
	var xs, ys []float64
	for iy := 0; iy < b.NY; iy++ {
		for ix := 0; ix < b.NX; ix++ {
			if b.Active(ix, iy) {
				xs = append(xs, (float64(ix)+0.5)*b.DX)
				ys = append(ys, (float64(iy)+0.5)*b.DY)
			}
		}
	}
	n := len(xs)
	if n == 0 {
		return nil, ErrEmptySection
	}
	cs := &CrossSection{
		Bitmap:    b,
		CentroidX: floats.Sum(xs) / float64(n),
		CentroidY: floats.Sum(ys) / float64(n),
		CellArea:  b.DX * b.DY,
	}
	floats.AddConst(-cs.CentroidX, xs)
	floats.AddConst(-cs.CentroidY, ys)
	cs.X, cs.Y = xs, ys
	cs.Area = float64(n) * cs.CellArea
	cs.Ix = floats.Dot(ys, ys) * cs.CellArea
	cs.Iy = floats.Dot(xs, xs) * cs.CellArea
	cs.Ixy = floats.Dot(xs, ys) * cs.CellArea
	return cs, nil
}

// Cells is the number of active cells.
func (cs *CrossSection) Cells() int { return len(cs.X) }

// Det is Ix*Iy - Ixy^2, the denominator of the bending formula.
func (cs *CrossSection) Det() float64 { return cs.Ix*cs.Iy - cs.Ixy*cs.Ixy }

// PrincipalMoments returns the minimum and maximum second moments of area
// about centroidal axes.
func (cs *CrossSection) PrincipalMoments() (lo, hi float64, err error) {
	var eig mat.EigenSym
	a := mat.NewSymDense(2, []float64{cs.Ix, cs.Ixy, cs.Ixy, cs.Iy})
	if !eig.Factorize(a, false) {
		return 0, 0, ErrSingularSection
	}
	v := eig.Values(nil)
	return v[0], v[1], nil
}
