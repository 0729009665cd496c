package constraint

import (
	"math"
	"testing"

	"github.com/akmonengine/suspension/actor"
	"github.com/akmonengine/suspension/terrain"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	_ Constraint = (*Alignment)(nil)
	_ Constraint = (*Floor)(nil)
)

func newTestChassis(position mgl64.Vec3, yaw float64) *actor.RigidBody {
	body := actor.NewRigidBody(position, mgl64.Vec3{}, 1000, mgl64.Vec3{1, 1, 1})
	body.Orientation = mgl64.QuatRotate(yaw, actor.UpAxis)

	return body
}

// =============================================================================
// Alignment Tests
// =============================================================================

func TestAlignment_SolvePosition(t *testing.T) {
	tests := []struct {
		name  string
		body  *actor.RigidBody
		mount mgl64.Vec3
		want  mgl64.Vec3
	}{
		{
			name: "zero mount follows the centre of mass",
			body: newTestChassis(mgl64.Vec3{2, 5, -3}, 0),
			want: mgl64.Vec3{2, 1.5, -3},
		},
		{
			name:  "mount rotates with the chassis",
			body:  newTestChassis(mgl64.Vec3{0, 5, 0}, math.Pi/2),
			mount: mgl64.Vec3{0, 0, -1.5},
			want:  mgl64.Vec3{-1.5, 1.5, 0},
		},
		{
			name:  "vertical part of the mount is ignored",
			body:  newTestChassis(mgl64.Vec3{1, 5, 1}, 0),
			mount: mgl64.Vec3{0, 3, 0},
			want:  mgl64.Vec3{1, 1.5, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wheel := actor.NewWheel(mgl64.Vec3{7, 1.5, 7}, mgl64.Vec3{}, 100, 1)
			alignment := Alignment{Body: tt.body, Wheel: wheel, Mount: tt.mount}

			alignment.SolvePosition()

			if !vec3AlmostEqual(wheel.Position, tt.want, 1e-9) {
				t.Errorf("wheel position = %v, want %v", wheel.Position, tt.want)
			}
		})
	}
}

// =============================================================================
// Floor Tests
// =============================================================================

func TestFloor_SolvePosition(t *testing.T) {
	tests := []struct {
		name        string
		field       terrain.HeightField
		position    mgl64.Vec3
		radius      float64
		wantY       float64
		wantContact bool
	}{
		{"below flat floor", terrain.Flat{}, mgl64.Vec3{0, 0.5, 0}, 1, 1, true},
		{"resting exactly", terrain.Flat{}, mgl64.Vec3{0, 1, 0}, 1, 1, false},
		{"above", terrain.Flat{Level: -2}, mgl64.Vec3{0, 0, 0}, 1, 0, false},
		{"below waves at origin", terrain.DefaultWaves(), mgl64.Vec3{0, 0, 0}, 1, 1.1, true},
		{"point wheel", terrain.Flat{Level: 3}, mgl64.Vec3{4, 2, 4}, 0, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wheel := actor.NewWheel(tt.position, mgl64.Vec3{}, 100, tt.radius)
			floor := Floor{Wheel: wheel, Field: tt.field}

			floor.SolvePosition()

			if !almostEqual(wheel.Position.Y(), tt.wantY, 1e-12) {
				t.Errorf("y = %v, want %v", wheel.Position.Y(), tt.wantY)
			}
			if floor.Contact != tt.wantContact {
				t.Errorf("Contact = %v, want %v", floor.Contact, tt.wantContact)
			}
			if wheel.Position.X() != tt.position.X() || wheel.Position.Z() != tt.position.Z() {
				t.Errorf("floor moved the wheel horizontally: %v", wheel.Position)
			}
		})
	}
}

func TestFloor_SamplesUnderTheWheel(t *testing.T) {
	field := terrain.Func(func(x, z float64) float64 { return x + 10*z })
	wheel := actor.NewWheel(mgl64.Vec3{1, -5, 2}, mgl64.Vec3{}, 1, 0.5)
	floor := Floor{Wheel: wheel, Field: field}

	floor.SolvePosition()

	if !almostEqual(wheel.Position.Y(), 21.5, 1e-12) {
		t.Errorf("y = %v, want Height(1, 2) + radius = 21.5", wheel.Position.Y())
	}
}

func TestAnchor(t *testing.T) {
	body := newTestChassis(mgl64.Vec3{0, 5, 0}, 0)

	if got := Anchor(body, mgl64.Vec3{}); got != body.Position {
		t.Errorf("Anchor(zero mount) = %v, want the centre of mass %v", got, body.Position)
	}
	if got := Anchor(body, mgl64.Vec3{0, 0, -1.5}); !vec3AlmostEqual(got, mgl64.Vec3{0, 5, -1.5}, 1e-12) {
		t.Errorf("Anchor() = %v, want (0, 5, -1.5)", got)
	}
}
