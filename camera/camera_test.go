package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/skyswarm/components"
	"github.com/pthm-cable/skyswarm/config"
)

func approxVec(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func newRig(mode components.ViewMode) *Rig {
	r := New(config.MustLoad("").Camera)
	r.Mode = mode
	return r
}

func TestNewStartsThirdPerson(t *testing.T) {
	r := New(config.MustLoad("").Camera)
	if r.Mode != components.ThirdPerson {
		t.Errorf("initial mode = %v, want third_person", r.Mode)
	}
	// Looks at the origin from the start position
	want := mgl32.Vec3{0, -4.5, -9}.Normalize()
	if !approxVec(r.Forward(), want, 1e-4) {
		t.Errorf("forward = %v, want %v", r.Forward(), want)
	}
}

func TestLookRotation(t *testing.T) {
	tests := []struct {
		name   string
		target mgl32.Vec3
	}{
		{"ahead", mgl32.Vec3{0, 0, -10}},
		{"right", mgl32.Vec3{10, 0, 0}},
		{"behind", mgl32.Vec3{0, 0, 10}},
		{"up and left", mgl32.Vec3{-3, 4, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := LookRotation(mgl32.Vec3{}, tt.target, worldUp, mgl32.QuatIdent())
			if got, want := q.Rotate(localFwd), tt.target.Normalize(); !approxVec(got, want, 1e-4) {
				t.Errorf("forward = %v, want %v", got, want)
			}
			// No roll: the right axis stays horizontal
			if right := q.Rotate(mgl32.Vec3{1, 0, 0}); math.Abs(float64(right.Y())) > 1e-4 {
				t.Errorf("right axis tilted: %v", right)
			}
		})
	}
}

func TestLookRotationDegenerate(t *testing.T) {
	fallback := mgl32.QuatRotate(0.3, axisY)

	if q := LookRotation(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}, worldUp, fallback); q != fallback {
		t.Errorf("zero direction: got %v, want fallback", q)
	}
	if q := LookRotation(mgl32.Vec3{}, mgl32.Vec3{0, 5, 0}, worldUp, fallback); q != fallback {
		t.Errorf("direction parallel to up: got %v, want fallback", q)
	}
}

func TestFirstPersonSnapsToCraft(t *testing.T) {
	r := newRig(components.FirstPerson)
	craft := components.NewCraft()
	craft.Position = mgl32.Vec3{10, 20, 30}
	craft.Orientation = mgl32.QuatRotate(0.7, axisY)

	r.Update(craft)

	if r.Pose.Position != craft.Position {
		t.Errorf("camera at %v, want craft position %v", r.Pose.Position, craft.Position)
	}
	if !approxVec(r.Forward(), craft.Forward(), 1e-4) {
		t.Errorf("camera forward = %v, want craft forward %v", r.Forward(), craft.Forward())
	}
	if r.MeshVisibility() != components.Hidden {
		t.Error("craft mesh should be hidden in first person")
	}
}

func TestFirstPersonRollsWithBank(t *testing.T) {
	r := newRig(components.FirstPerson)
	craft := components.NewCraft()
	craft.Bank = 0.4

	r.Update(craft)

	up := r.Pose.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
	want := mgl32.Vec3{-float32(math.Sin(0.4)), float32(math.Cos(0.4)), 0}
	if !approxVec(up, want, 1e-4) {
		t.Errorf("camera up = %v, want %v", up, want)
	}
	// Rolling does not change where the camera looks
	if !approxVec(r.Forward(), localFwd, 1e-4) {
		t.Errorf("forward = %v, want -Z", r.Forward())
	}
}

func TestThirdPersonSmoothing(t *testing.T) {
	r := newRig(components.ThirdPerson)
	craft := components.NewCraft()
	start := r.Pose.Position

	r.Update(craft)

	desired := mgl32.Vec3{0, 5, 30}
	want := start.Add(desired.Sub(start).Mul(0.2))
	if !approxVec(r.Pose.Position, want, 1e-4) {
		t.Errorf("after one tick camera at %v, want %v", r.Pose.Position, want)
	}

	for i := 0; i < 200; i++ {
		r.Update(craft)
	}
	if !approxVec(r.Pose.Position, desired, 1e-3) {
		t.Errorf("camera converged to %v, want %v", r.Pose.Position, desired)
	}

	toCraft := craft.Position.Sub(r.Pose.Position).Normalize()
	if !approxVec(r.Forward(), toCraft, 1e-4) {
		t.Errorf("camera forward = %v, want toward craft %v", r.Forward(), toCraft)
	}
	if r.MeshVisibility() != components.Visible {
		t.Error("craft mesh should be visible in third person")
	}
}

func TestThirdPersonFollowsHeading(t *testing.T) {
	r := newRig(components.ThirdPerson)
	craft := components.NewCraft()
	craft.Orientation = mgl32.QuatRotate(math.Pi/2, axisY) // nose toward -X

	for i := 0; i < 200; i++ {
		r.Update(craft)
	}

	// Behind a craft facing -X is +X
	if !approxVec(r.Pose.Position, mgl32.Vec3{30, 5, 0}, 1e-3) {
		t.Errorf("camera at %v, want (30,5,0)", r.Pose.Position)
	}
}

func TestFreePanIsExternal(t *testing.T) {
	r := newRig(components.FreePan)
	pose := components.Pose{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatRotate(1, axisZ)}
	r.SetPose(pose)

	craft := components.NewCraft()
	craft.Position = mgl32.Vec3{100, 0, 0}
	r.Update(craft)

	if r.Pose != pose {
		t.Errorf("free pan pose changed: %v", r.Pose)
	}
	if r.MeshVisibility() != components.Visible {
		t.Error("craft mesh should be visible in free pan")
	}
}

func TestUpdateWithoutCraft(t *testing.T) {
	r := newRig(components.ThirdPerson)
	before := r.Pose
	r.Update(nil)
	if r.Pose != before {
		t.Error("camera moved without a craft")
	}
}

func TestSwitchModeCycle(t *testing.T) {
	r := newRig(components.ThirdPerson)
	want := []components.ViewMode{components.FreePan, components.FirstPerson, components.ThirdPerson}
	for i, w := range want {
		if got := r.SwitchMode(); got != w {
			t.Fatalf("switch %d: got %v, want %v", i+1, got, w)
		}
	}
}

func TestMeshPose(t *testing.T) {
	craft := components.NewCraft()
	craft.Position = mgl32.Vec3{4, 5, 6}
	craft.Orientation = mgl32.QuatRotate(0.5, axisY)

	p := MeshPose(craft)
	if p.Position != craft.Position {
		t.Errorf("mesh at %v, want %v", p.Position, craft.Position)
	}
	// The model's +Z nose faces the craft's flight direction
	if nose := p.Rotation.Rotate(axisZ); !approxVec(nose, craft.Forward(), 1e-4) {
		t.Errorf("mesh nose = %v, want %v", nose, craft.Forward())
	}

	// Bank rolls the mesh without changing its heading
	craft.Bank = 0.5
	banked := MeshPose(craft)
	if nose := banked.Rotation.Rotate(axisZ); !approxVec(nose, craft.Forward(), 1e-4) {
		t.Errorf("banked nose = %v, want %v", nose, craft.Forward())
	}
	if up := banked.Rotation.Rotate(axisY); math.Abs(float64(up.Y()-float32(math.Cos(0.5)))) > 1e-4 {
		t.Errorf("banked up = %v", up)
	}
}
