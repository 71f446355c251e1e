package integrators

import (
	"fmt"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/gaitsim/internal/rigid"
	"github.com/san-kum/gaitsim/internal/spatial"
)

func benchKinematics(b *testing.B, bodies int) *rigid.Kinematics {
	b.Helper()
	w := rigid.NewWorld()
	for i := 0; i < bodies; i++ {
		_, err := w.AddBody(rigid.Body{
			Name:            fmt.Sprintf("Segment%d", i),
			Orientation:     spatial.Identity(),
			LinearVelocity:  r3.Vec{X: 1},
			AngularVelocity: r3.Vec{X: 0.1, Y: 0.2, Z: 0.3},
		})
		if err != nil {
			b.Fatal(err)
		}
	}
	return rigid.NewKinematics(w)
}

func BenchmarkEuler(b *testing.B) {
	integrator := NewEuler()
	dyn := benchKinematics(b, 8)
	x := dyn.State()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 1e-4)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	dyn := benchKinematics(b, 8)
	x := dyn.State()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 1e-4)
	}
}

func BenchmarkRK4LargeModel(b *testing.B) {
	integrator := NewRK4()
	dyn := benchKinematics(b, 64)
	x := dyn.State()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(dyn, x, 0, 1e-4)
	}
}
