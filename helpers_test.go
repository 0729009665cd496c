package suspension

import (
	"math"

	"github.com/akmonengine/suspension/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func renderableFunc(fn func(position mgl64.Vec3)) actor.Renderable {
	return actor.RenderableFunc(func(transform actor.Transform) {
		fn(transform.Position)
	})
}

// Helper function to compare floats with epsilon tolerance
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Helper function to compare quaternions with epsilon tolerance
func quatAlmostEqual(a, b mgl64.Quat, epsilon float64) bool {
	return almostEqual(a.W, b.W, epsilon) &&
		almostEqual(a.V.X(), b.V.X(), epsilon) &&
		almostEqual(a.V.Y(), b.V.Y(), epsilon) &&
		almostEqual(a.V.Z(), b.V.Z(), epsilon)
}
