// Package pose holds the local position, rotation and scale triple shared by
// transforms, rest poses and keyframe deltas.
package pose

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a local transform. It is a value type: assigning a Pose copies it.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// Identity returns the pose that applies no change
func Identity() Pose {
	return Pose{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// New creates a pose from its three channels
func New(position mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) Pose {
	return Pose{Position: position, Rotation: rotation, Scale: scale}
}

// Duplicate returns an independent copy of p.
func (p Pose) Duplicate() Pose {
	return p
}

// Space returns the local matrix T * R * S.
func (p Pose) Space() mgl64.Mat4 {
	t := mgl64.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	s := mgl64.Scale3D(p.Scale.X(), p.Scale.Y(), p.Scale.Z())

	return t.Mul4(p.Rotation.Mat4()).Mul4(s)
}

// SpaceInverse returns the inverse of Space.
func (p Pose) SpaceInverse() mgl64.Mat4 {
	return p.Space().Inv()
}

// ApproxEqual reports whether every component of p and other differs by at
// most epsilon. The check is absolute, not relative to the magnitudes.
func (p Pose) ApproxEqual(other Pose, epsilon float64) bool {
	return vecApproxEqual(p.Position, other.Position, epsilon) &&
		approxEqual(p.Rotation.W, other.Rotation.W, epsilon) &&
		vecApproxEqual(p.Rotation.V, other.Rotation.V, epsilon) &&
		vecApproxEqual(p.Scale, other.Scale, epsilon)
}

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

func vecApproxEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return approxEqual(a.X(), b.X(), epsilon) &&
		approxEqual(a.Y(), b.Y(), epsilon) &&
		approxEqual(a.Z(), b.Z(), epsilon)
}

// Lerp interpolates every channel linearly. The rotation is interpolated
// component-wise and is not renormalized.
func Lerp(a, b Pose, weight float64) Pose {
	return Pose{
		Position: LerpVec(a.Position, b.Position, weight),
		Rotation: a.Rotation.Add(b.Rotation.Sub(a.Rotation).Scale(weight)),
		Scale:    LerpVec(a.Scale, b.Scale, weight),
	}
}
