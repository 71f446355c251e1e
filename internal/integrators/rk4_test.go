package integrators

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/dynamo"
	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/spatial"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerFirstOrder(t *testing.T) {
	x := NewEuler().Step(&simpleDynamics{}, dynamo.State{1, 0}, 0, 0.1)
	if x[0] != 1 || x[1] != -0.1 {
		t.Errorf("got %v, expected [1 -0.1]", x)
	}
}

func TestRK4SpinsBody(t *testing.T) {
	w := rigid.NewWorld()
	_, err := w.AddBody(rigid.Body{
		Name:            "Foot",
		Position:        r3.Vec{Z: 1},
		Orientation:     spatial.Identity(),
		LinearVelocity:  r3.Vec{X: 0.5},
		AngularVelocity: r3.Vec{Z: math.Pi / 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	k := rigid.NewKinematics(w)
	integ := NewRK4()

	x := k.State()
	dt := 1e-3
	for i := 0; i < 1000; i++ {
		x = integ.Step(k, x, float64(i)*dt, dt)
	}
	if err := k.SetState(x); err != nil {
		t.Fatal(err)
	}

	pose, _ := w.Pose(0)
	if math.Abs(pose.Position.X-0.5) > 1e-9 || pose.Position.Z != 1 {
		t.Errorf("position: got %v", pose.Position)
	}
	want := spatial.FromAxisAngle(spatial.ZAxis, math.Pi/2)
	if quat.Abs(quat.Sub(want, pose.Orientation)) > 1e-6 {
		t.Errorf("orientation: got %v, expected %v", pose.Orientation, want)
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		if _, ok := New(name); !ok {
			t.Errorf("%s not registered", name)
		}
	}
	if _, ok := New("verlet"); ok {
		t.Error("unexpected integrator")
	}
}
