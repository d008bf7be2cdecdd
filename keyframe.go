package skeleton

import (
	"sort"

	"github.com/akmonengine/skeleton/pose"
)

// Keyframe holds the change of the local properties relative to the rest
// pose at a frame id.
type Keyframe struct {
	Frame int
	Pose  pose.Pose
}

// Keyframes returns a copy of the keyframes ordered by frame id
func (j *Joint) Keyframes() []Keyframe {
	keyframes := make([]Keyframe, len(j.keyframes))
	copy(keyframes, j.keyframes)

	return keyframes
}

// SetKeyframes replaces the keyframes with a sorted copy of keyframes.
// Negative frame ids are clamped to 0. On duplicated frame ids the later
// entry wins.
func (j *Joint) SetKeyframes(keyframes []Keyframe) {
	sorted := make([]Keyframe, len(keyframes))
	copy(sorted, keyframes)
	for i := range sorted {
		sorted[i].Frame = max(0, sorted[i].Frame)
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].Frame < sorted[b].Frame
	})

	j.keyframes = sorted[:0]
	for _, key := range sorted {
		if n := len(j.keyframes); n > 0 && j.keyframes[n-1].Frame == key.Frame {
			j.keyframes[n-1] = key
			continue
		}
		j.keyframes = append(j.keyframes, key)
	}
}

// search returns the index of the first keyframe at or after frame
func (j *Joint) search(frame int) int {
	return sort.Search(len(j.keyframes), func(i int) bool {
		return j.keyframes[i].Frame >= frame
	})
}

// resolveFrame maps a negative frame id past the last local keyframe.
func (j *Joint) resolveFrame(frame int) int {
	if frame >= 0 {
		return frame
	}

	_, last := j.KeyframeRange(false)
	return max(0, last+1-frame)
}

// KeyframePose returns the keyframe data at frame.
//
//   - Without keyframes the identity pose is returned.
//   - A negative frame counts from one past the last keyframe.
//   - Outside of the keyframe range the last keyframe is used, on both ends.
//   - Between two keyframes the channels are interpolated linearly with the
//     weight (before + frame) / after.
func (j *Joint) KeyframePose(frame int) pose.Pose {
	if len(j.keyframes) == 0 {
		return pose.Identity()
	}
	frame = j.resolveFrame(frame)

	index := j.search(frame)
	switch {
	case index == len(j.keyframes):
		return j.keyframes[len(j.keyframes)-1].Pose
	case j.keyframes[index].Frame == frame:
		return j.keyframes[index].Pose
	case index == 0:
		// before the first keyframe still answers with the last one
		return j.keyframes[len(j.keyframes)-1].Pose
	}

	before := j.keyframes[index-1]
	after := j.keyframes[index]
	// stored frame ids are never negative, so after.Frame > 0 here
	weight := float64(before.Frame+frame) / float64(after.Frame)

	return pose.Lerp(before.Pose, after.Pose, weight)
}

// InsertKeyframePose stores p at frame, overwriting an existing keyframe.
// A negative frame counts from one past the last keyframe.
func (j *Joint) InsertKeyframePose(frame int, p pose.Pose) *Joint {
	frame = j.resolveFrame(frame)
	index := j.search(frame)

	if index < len(j.keyframes) && j.keyframes[index].Frame == frame {
		j.keyframes[index].Pose = p
		return j
	}

	j.keyframes = append(j.keyframes, Keyframe{})
	copy(j.keyframes[index+1:], j.keyframes[index:])
	j.keyframes[index] = Keyframe{Frame: frame, Pose: p}

	return j
}

// RemoveKeyframe deletes the keyframe at frame if there is one.
func (j *Joint) RemoveKeyframe(frame int, recursive bool) *Joint {
	index := j.search(frame)
	if index < len(j.keyframes) && j.keyframes[index].Frame == frame {
		j.keyframes = append(j.keyframes[:index], j.keyframes[index+1:]...)
	}

	if recursive {
		for _, child := range j.Children() {
			child.RemoveKeyframe(frame, true)
		}
	}

	return j
}

// KeyframeRange returns the first and last frame id, or (0, 0) without
// keyframes. includeChildren widens the range over the descendants of a
// joint that has keyframes of its own.
func (j *Joint) KeyframeRange(includeChildren bool) (int, int) {
	if len(j.keyframes) == 0 {
		return 0, 0
	}
	first, last := j.keyframes[0].Frame, j.keyframes[len(j.keyframes)-1].Frame

	if includeChildren {
		for _, child := range j.Children() {
			childFirst, childLast := child.KeyframeRange(true)
			first = min(first, childFirst)
			last = max(last, childLast)
		}
	}

	return first, last
}
