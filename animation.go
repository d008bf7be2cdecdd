package skeleton

import (
	"github.com/akmonengine/skeleton/pose"
	"github.com/akmonengine/skeleton/transform"
	"github.com/go-gl/mathgl/mgl64"
)

// LoadRestPose sets the current properties to the rest pose.
func (j *Joint) LoadRestPose(recursive bool) *Joint {
	j.SetPose(j.restPose)

	if recursive {
		for _, child := range j.Children() {
			child.LoadRestPose(true)
		}
	}

	return j
}

// WriteRestPose sets the rest pose to the current properties.
//
// The keyframes channels selected by keep are rewritten first so LoadPose
// resolves to the same properties as before. With KeepNone the keyframes are
// left as they are and the animation changes with the rest pose.
func (j *Joint) WriteRestPose(recursive bool, keep transform.Keep) *Joint {
	if keep != transform.KeepNone {
		current := j.Pose()
		positionChange := current.SpaceInverse().Mul4(j.restPose.Space())
		// LoadPose composes rest * key, so the new rest inverse goes on the
		// left. The other order only holds for commuting rotations.
		rotationChange := current.Rotation.Inverse().Mul(j.restPose.Rotation)
		scaleChange := pose.DivVec(j.restPose.Scale, current.Scale)

		for i := range j.keyframes {
			key := &j.keyframes[i].Pose
			if keep.Has(transform.KeepPosition) {
				key.Position = mgl64.TransformCoordinate(key.Position, positionChange)
			}
			if keep.Has(transform.KeepRotation) {
				key.Rotation = rotationChange.Mul(key.Rotation)
			}
			if keep.Has(transform.KeepScale) {
				key.Scale = pose.MulVec(scaleChange, key.Scale)
			}
		}
	}

	j.restPose = j.Pose()

	if recursive {
		for _, child := range j.Children() {
			child.WriteRestPose(true, keep)
		}
	}

	return j
}

// LoadKeyframe sets the current properties to the raw keyframe data at
// frame, without the rest pose applied.
func (j *Joint) LoadKeyframe(frame int, recursive bool) *Joint {
	j.SetPose(j.KeyframePose(frame))

	if recursive {
		for _, child := range j.Children() {
			child.LoadKeyframe(frame, true)
		}
	}

	return j
}

// WriteKeyframe stores the current properties as raw keyframe data at frame.
func (j *Joint) WriteKeyframe(frame int, recursive bool) *Joint {
	j.InsertKeyframePose(frame, j.Pose())

	if recursive {
		for _, child := range j.Children() {
			child.WriteKeyframe(frame, true)
		}
	}

	return j
}

// LoadPose sets the current properties to the animation at frame, the rest
// pose combined with the keyframe data. See KeyframePose for how frame is
// resolved.
func (j *Joint) LoadPose(frame int, recursive bool) *Joint {
	key := j.KeyframePose(frame)

	j.currentFrame = frame
	j.Position = mgl64.TransformCoordinate(key.Position, j.restPose.Space())
	j.Rotation = j.restPose.Rotation.Mul(key.Rotation)
	j.Scale = pose.MulVec(j.restPose.Scale, key.Scale)

	if recursive {
		for _, child := range j.Children() {
			child.LoadPose(frame, true)
		}
	}

	return j
}

// WritePose stores the current properties as the animation at frame, by
// removing the rest pose from them. An existing keyframe is overwritten.
func (j *Joint) WritePose(frame int, recursive bool) *Joint {
	key := pose.New(
		mgl64.TransformCoordinate(j.Position, j.restPose.SpaceInverse()),
		j.restPose.Rotation.Inverse().Mul(j.Rotation),
		pose.DivVec(j.Scale, j.restPose.Scale),
	)
	j.InsertKeyframePose(frame, key)

	if recursive {
		for _, child := range j.Children() {
			child.WritePose(frame, true)
		}
	}

	return j
}
