package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/model"
	"github.com/san-kum/gaitsim/internal/spatial"
)

// Camera is an orthographic view. With zero yaw and pitch the screen shows
// the sagittal plane: world X to the right and world Z up.
type Camera struct {
	Yaw, Pitch float64
	Zoom       float64
	Center     r3.Vec
	// Extent is the half-width of the scene in metres at Zoom 1.
	Extent float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1, Extent: 1}
}

func (c *Camera) Rotate(yaw, pitch float64) {
	c.Yaw += yaw
	c.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Pitch+pitch))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(20, c.Zoom*1.25) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.05, c.Zoom/1.25) }

// Fit centres the camera on points and sizes the view to contain them.
func (c *Camera) Fit(points []r3.Vec) {
	if len(points) == 0 {
		return
	}
	var sum r3.Vec
	for _, p := range points {
		sum = r3.Add(sum, p)
	}
	c.Center = r3.Scale(1/float64(len(points)), sum)
	extent := 0.0
	for _, p := range points {
		extent = math.Max(extent, r3.Norm(r3.Sub(p, c.Center)))
	}
	c.Extent = math.Max(0.1, 1.2*extent)
}

func (c *Camera) view(p r3.Vec) r3.Vec {
	q := spatial.Compose(
		spatial.FromAxisAngle(spatial.XAxis, c.Pitch),
		spatial.FromAxisAngle(spatial.ZAxis, c.Yaw),
	)
	return spatial.Rotate(q, r3.Sub(p, c.Center))
}

// Project maps a world point to dot coordinates on a sw x sh canvas. ok
// is false when the point falls outside it.
func (c *Camera) Project(p r3.Vec, sw, sh int) (x, y int, depth float64, ok bool) {
	v := c.view(p)
	scale := c.Zoom * float64(min(sw, sh)) / (2 * c.Extent)
	x = sw/2 + int(math.Round(v.X*scale))
	y = sh/2 - int(math.Round(v.Z*scale))
	return x, y, v.Y, x >= 0 && x < sw && y >= 0 && y < sh
}

type Edge struct {
	Start, End r3.Vec
}

// Scene is the drawable geometry of a model at one instant.
type Scene struct {
	Bones   []Edge
	Straps  []Edge
	Anchors []r3.Vec
}

// Points returns every vertex in the scene.
func (s *Scene) Points() []r3.Vec {
	pts := make([]r3.Vec, 0, 2*(len(s.Bones)+len(s.Straps))+len(s.Anchors))
	for _, e := range s.Bones {
		pts = append(pts, e.Start, e.End)
	}
	for _, e := range s.Straps {
		pts = append(pts, e.Start, e.End)
	}
	return append(pts, s.Anchors...)
}

// SceneOf draws a bone from each body's centre of mass to every marker on
// it, each strap as its marker path and each joint as its anchor.
func SceneOf(m *model.Model) (*Scene, error) {
	s := &Scene{}
	w := m.World()
	for _, mk := range m.Markers() {
		if mk.Body().IsWorld() {
			continue
		}
		pose, err := w.Pose(mk.Body())
		if err != nil {
			return nil, err
		}
		p, err := mk.WorldPosition()
		if err != nil {
			return nil, err
		}
		s.Bones = append(s.Bones, Edge{Start: pose.Position, End: p})
	}
	for _, st := range m.Straps() {
		markers := st.Markers()
		for i := 1; i < len(markers); i++ {
			a, err := markers[i-1].WorldPosition()
			if err != nil {
				return nil, err
			}
			b, err := markers[i].WorldPosition()
			if err != nil {
				return nil, err
			}
			s.Straps = append(s.Straps, Edge{Start: a, End: b})
		}
	}
	for _, j := range m.Joints() {
		s.Anchors = append(s.Anchors, j.Anchor())
	}
	return s, nil
}

// Render draws s onto c.
func Render(c *Canvas, s *Scene, cam *Camera) {
	sw, sh := c.Dots()
	line := func(e Edge) {
		x1, y1, _, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, _, v2 := cam.Project(e.End, sw, sh)
		if v1 || v2 {
			c.DrawLine(x1, y1, x2, y2)
		}
	}
	for _, e := range s.Bones {
		line(e)
	}
	for _, e := range s.Straps {
		line(e)
	}
	for _, a := range s.Anchors {
		if x, y, _, ok := cam.Project(a, sw, sh); ok {
			c.Cross(x, y)
		}
	}
}
