package constraint

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// SpringDamper is a linear spring in parallel with a linear damper.
// Its parameters are fixed for its lifetime.
type SpringDamper struct {
	stiffness  float64 // k (N/m)
	damping    float64 // c (N⋅s/m)
	restLength float64 // (m)
}

// NewSpringDamper panics on negative stiffness or damping, or a non-positive rest length
// (a zero rest length lets the endpoints meet, where the spring has no direction).
func NewSpringDamper(stiffness, damping, restLength float64) SpringDamper {
	if stiffness < 0 || damping < 0 {
		panic(fmt.Sprintf("constraint: spring coefficients must be >= 0, got k=%v c=%v", stiffness, damping))
	}
	if !(restLength > 0) {
		panic(fmt.Sprintf("constraint: spring rest length must be > 0, got %v", restLength))
	}

	return SpringDamper{stiffness: stiffness, damping: damping, restLength: restLength}
}

func (s SpringDamper) Stiffness() float64  { return s.stiffness }
func (s SpringDamper) Damping() float64    { return s.damping }
func (s SpringDamper) RestLength() float64 { return s.restLength }

// Force returns the force on endpoint A, endpoint B receives its negation:
//
//	-k(|a-b| - rest)·normalize(a-b) - c(va - vb)
//
// Coincident endpoints have no spring direction, only the damping term remains.
func (s SpringDamper) Force(positionA, positionB, velocityA, velocityB mgl64.Vec3) mgl64.Vec3 {
	delta := positionA.Sub(positionB)
	relativeVelocity := velocityA.Sub(velocityB)
	damping := relativeVelocity.Mul(-s.damping)

	length := delta.Len()
	if length == 0 {
		return damping
	}

	spring := delta.Mul(-s.stiffness * (length - s.restLength) / length)

	return spring.Add(damping)
}

// Extension is the signed stretch of the spring, negative when compressed
func (s SpringDamper) Extension(positionA, positionB mgl64.Vec3) float64 {
	return positionA.Sub(positionB).Len() - s.restLength
}
