// Package skeleton provides animated joints: transforms with a rest pose and
// a sparse set of keyframes.
//
//   - Bone alignment is expected along Y+.
//   - Space is right handed, Y+ up, X+ right and Z- forward.
//   - Positive rotations are counter clockwise.
//
// The animation is computed as Pose = RestPose + Keyframe, where both the
// rest pose and the keyframes are in local space.
package skeleton

import (
	"github.com/akmonengine/skeleton/pose"
	"github.com/akmonengine/skeleton/transform"
	"github.com/go-gl/mathgl/mgl64"
)

// Joint is a transform carrying animation data.
// The embedded Transform holds the current local properties.
type Joint struct {
	*transform.Transform

	restPose     pose.Pose
	keyframes    []Keyframe
	currentFrame int
}

// Option configures a Joint in NewJoint
type Option func(*Joint)

func WithPosition(position mgl64.Vec3) Option {
	return func(j *Joint) {
		j.Position = position
	}
}

func WithRotation(rotation mgl64.Quat) Option {
	return func(j *Joint) {
		j.Rotation = rotation
	}
}

func WithScale(scale mgl64.Vec3) Option {
	return func(j *Joint) {
		j.Scale = scale
	}
}

// WithRestPose sets the rest pose. It does not change the current properties.
func WithRestPose(restPose pose.Pose) Option {
	return func(j *Joint) {
		j.restPose = restPose
	}
}

// WithKeyframes sets the keyframes, see SetKeyframes.
func WithKeyframes(keyframes ...Keyframe) Option {
	return func(j *Joint) {
		j.SetKeyframes(keyframes)
	}
}

// NewJoint creates a joint with identity properties, an identity rest pose
// and no keyframes, then applies opts.
func NewJoint(name string, opts ...Option) *Joint {
	j := &Joint{
		Transform:    transform.New(name),
		restPose:     pose.Identity(),
		currentFrame: -1,
	}
	j.Bind(j)

	for _, opt := range opts {
		opt(j)
	}

	return j
}

// RestPose is the pose without any keyframe applied, the common T-Pose.
func (j *Joint) RestPose() pose.Pose {
	return j.restPose
}

// SetRestPose stores a copy of restPose
func (j *Joint) SetRestPose(restPose pose.Pose) {
	j.restPose = restPose.Duplicate()
}

// CurrentFrame is the latest frame loaded with LoadPose, or -1.
func (j *Joint) CurrentFrame() int {
	return j.currentFrame
}

// =============================================================================
// Hierarchy
// =============================================================================

func jointOf(t *transform.Transform) *Joint {
	if t == nil {
		return nil
	}

	j, _ := t.Owner().(*Joint)
	return j
}

// Parent returns the parent joint, or nil when j is a root or attached to a
// plain transform.
func (j *Joint) Parent() *Joint {
	return jointOf(j.Transform.Parent())
}

// Children returns the child joints in order. Plain transforms attached to j
// are skipped.
func (j *Joint) Children() []*Joint {
	var children []*Joint
	for _, child := range j.Transform.Children() {
		if joint := jointOf(child); joint != nil {
			children = append(children, joint)
		}
	}

	return children
}

// Attach adds children keeping their world position, rotation and scale.
func (j *Joint) Attach(children ...*Joint) error {
	return j.AttachKeep(transform.KeepAll, children...)
}

// AttachKeep adds children, keeping only the given channels in world space.
func (j *Joint) AttachKeep(keep transform.Keep, children ...*Joint) error {
	return j.Transform.Attach(keep, nodes(children)...)
}

// Detach removes children keeping their world position, rotation and scale.
func (j *Joint) Detach(children ...*Joint) {
	j.DetachKeep(transform.KeepAll, children...)
}

func (j *Joint) DetachKeep(keep transform.Keep, children ...*Joint) {
	j.Transform.Detach(keep, nodes(children)...)
}

func (j *Joint) ClearParent() {
	j.Transform.ClearParent(transform.KeepAll)
}

func (j *Joint) ClearChildren() {
	j.Transform.ClearChildren(transform.KeepAll)
}

func nodes(joints []*Joint) []transform.Node {
	out := make([]transform.Node, len(joints))
	for i, joint := range joints {
		out[i] = joint
	}

	return out
}

// LayoutEntry is one row of Joint.Layout
type LayoutEntry struct {
	Joint *Joint
	Index int
	Depth int
}

// Layout lists j and its descendant joints depth first. Index and Depth
// refer to the full transform tree.
func (j *Joint) Layout() []LayoutEntry {
	var entries []LayoutEntry
	for _, entry := range j.Transform.Layout() {
		if joint, ok := entry.Node.(*Joint); ok {
			entries = append(entries, LayoutEntry{Joint: joint, Index: entry.Index, Depth: entry.Depth})
		}
	}

	return entries
}

// Filter returns j and its descendant joints whose name contains pattern,
// or equals it when isEqual is set.
func (j *Joint) Filter(pattern string, isEqual, caseSensitive bool) []*Joint {
	return joints(j.Transform.Filter(pattern, isEqual, caseSensitive))
}

// FilterRegex returns j and its descendant joints whose name matches pattern.
func (j *Joint) FilterRegex(pattern string) ([]*Joint, error) {
	matches, err := j.Transform.FilterRegex(pattern)
	if err != nil {
		return nil, err
	}

	return joints(matches), nil
}

func joints(matches []transform.Node) []*Joint {
	var out []*Joint
	for _, node := range matches {
		if joint, ok := node.(*Joint); ok {
			out = append(out, joint)
		}
	}

	return out
}
