package skeleton

import "github.com/go-gl/mathgl/mgl64"

var rollAxis = mgl64.Vec3{0, 1, 0}

// Roll rotates j around its local Y axis by degrees and counter-rotates its
// children so they do not move in world space. Rest pose and keyframes are
// not modified.
//
// When recursive, every child is then rolled by the same degrees.
func (j *Joint) Roll(degrees float64, recursive bool) *Joint {
	change := mgl64.QuatRotate(mgl64.DegToRad(degrees), rollAxis)
	changeInverse := change.Inverse()

	j.Rotation = j.Rotation.Mul(change)
	for _, child := range j.Children() {
		child.Position = changeInverse.Rotate(child.Position)
		child.Rotation = changeInverse.Mul(child.Rotation)

		if recursive {
			child.Roll(degrees, true)
		}
	}

	return j
}
