package skeleton

import (
	"github.com/akmonengine/skeleton/transform"
	"github.com/go-gl/mathgl/mgl64"
)

// rebase loads the rest pose of j and its children, runs apply on j, then
// writes the rest poses back. The children absorb the change in their rest
// pose and keep their own keyframes.
func (j *Joint) rebase(apply func(), keep transform.Keep) {
	children := j.Children()

	j.LoadRestPose(false)
	for _, child := range children {
		child.LoadRestPose(false)
	}

	apply()

	j.WriteRestPose(false, keep)
	for _, child := range children {
		child.WriteRestPose(false, transform.KeepNone)
	}
}

// ApplyRestposePosition resets the rest pose position to the origin, or adds
// position to it.
//
// The current properties of j and its children are overwritten with their
// rest pose. The keyframes of j are rewritten so its animation does not
// change. The children rest poses stay in place in world space, their
// keyframes are not updated.
func (j *Joint) ApplyRestposePosition(position *mgl64.Vec3, recursive bool) *Joint {
	j.rebase(func() {
		j.ApplyPosition(position, false)
	}, transform.KeepAll)

	if recursive {
		for _, child := range j.Children() {
			child.ApplyRestposePosition(position, true)
		}
	}

	return j
}

// ApplyRestposeRotation resets the rest pose rotation to identity, or
// post-multiplies rotation to it.
//
// Same as ApplyRestposePosition, except that only the keyframe positions of j
// are rewritten. Keyframe rotations and scales are unchanged.
func (j *Joint) ApplyRestposeRotation(rotation *mgl64.Quat, recursive bool) *Joint {
	j.rebase(func() {
		j.ApplyRotation(rotation, false)
	}, transform.KeepPosition)

	if recursive {
		for _, child := range j.Children() {
			child.ApplyRestposeRotation(rotation, true)
		}
	}

	return j
}

// ApplyRestposeScale resets the rest pose scale to one, or multiplies it
// component-wise by scale.
//
// Same as ApplyRestposePosition, except that only the keyframe positions of j
// are rewritten. Keyframe rotations and scales are unchanged.
func (j *Joint) ApplyRestposeScale(scale *mgl64.Vec3, recursive bool) *Joint {
	j.rebase(func() {
		j.ApplyScale(scale, false)
	}, transform.KeepPosition)

	if recursive {
		for _, child := range j.Children() {
			child.ApplyRestposeScale(scale, true)
		}
	}

	return j
}
