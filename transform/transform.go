// Package transform provides a spatial node with local position, rotation
// and scale, arranged in a parent/child hierarchy.
//
// A Transform is owned by its parent. The parent pointer is a back reference
// only. Types that embed a *Transform call Bind so the hierarchy hands them
// back from Children, Filter and Layout.
package transform

import (
	"fmt"

	"github.com/akmonengine/skeleton/pose"
	"github.com/go-gl/mathgl/mgl64"
)

// Node is anything that is backed by a Transform
type Node interface {
	Local() *Transform
}

// Transform represents a local space relative to its parent
type Transform struct {
	Name     string
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	owner    Node
	parent   *Transform
	children []*Transform
}

// New creates an identity transform
func New(name string) *Transform {
	return &Transform{
		Name:     name,
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

func (t *Transform) Local() *Transform {
	return t
}

// Bind registers the value embedding t, returned by Owner.
func (t *Transform) Bind(owner Node) {
	t.owner = owner
}

// Owner returns the bound embedding value, or t itself.
func (t *Transform) Owner() Node {
	if t.owner == nil {
		return t
	}

	return t.owner
}

func (t *Transform) String() string {
	return fmt.Sprintf("%s: %v - %v - %v", t.Name, t.Position, t.Rotation, t.Scale)
}

// =============================================================================
// Local & world space
// =============================================================================

// Pose returns a copy of the local properties
func (t *Transform) Pose() pose.Pose {
	return pose.New(t.Position, t.Rotation, t.Scale)
}

// SetPose overwrites the local properties
func (t *Transform) SetPose(p pose.Pose) {
	t.Position = p.Position
	t.Rotation = p.Rotation
	t.Scale = p.Scale
}

// Space returns the local to parent matrix
func (t *Transform) Space() mgl64.Mat4 {
	return t.Pose().Space()
}

// SpaceInverse returns the parent to local matrix
func (t *Transform) SpaceInverse() mgl64.Mat4 {
	return t.Pose().SpaceInverse()
}

// SpaceWorld returns the local to world matrix
func (t *Transform) SpaceWorld() mgl64.Mat4 {
	if t.parent == nil {
		return t.Space()
	}

	return t.parent.SpaceWorld().Mul4(t.Space())
}

// SpaceWorldInverse returns the world to local matrix
func (t *Transform) SpaceWorldInverse() mgl64.Mat4 {
	return t.SpaceWorld().Inv()
}

func (t *Transform) PositionWorld() mgl64.Vec3 {
	if t.parent == nil {
		return t.Position
	}

	return mgl64.TransformCoordinate(t.Position, t.parent.SpaceWorld())
}

// RotationWorld composes the rotations from the root down to t.
// Non uniform scale on an ancestor is not accounted for.
func (t *Transform) RotationWorld() mgl64.Quat {
	if t.parent == nil {
		return t.Rotation
	}

	return t.parent.RotationWorld().Mul(t.Rotation)
}

// ScaleWorld composes the scales component-wise from the root down to t.
func (t *Transform) ScaleWorld() mgl64.Vec3 {
	if t.parent == nil {
		return t.Scale
	}

	return pose.MulVec(t.parent.ScaleWorld(), t.Scale)
}

func (t *Transform) worldPose() pose.Pose {
	return pose.New(t.PositionWorld(), t.RotationWorld(), t.ScaleWorld())
}

// restoreWorld rewrites the kept channels so they match world under the
// current parent.
func (t *Transform) restoreWorld(keep Keep, world pose.Pose) {
	if t.parent == nil {
		if keep.Has(KeepPosition) {
			t.Position = world.Position
		}
		if keep.Has(KeepRotation) {
			t.Rotation = world.Rotation
		}
		if keep.Has(KeepScale) {
			t.Scale = world.Scale
		}
		return
	}

	if keep.Has(KeepPosition) {
		t.Position = mgl64.TransformCoordinate(world.Position, t.parent.SpaceWorldInverse())
	}
	if keep.Has(KeepRotation) {
		t.Rotation = t.parent.RotationWorld().Inverse().Mul(world.Rotation)
	}
	if keep.Has(KeepScale) {
		t.Scale = pose.DivVec(world.Scale, t.parent.ScaleWorld())
	}
}

// =============================================================================
// Apply: change a local channel, children stay in place
// =============================================================================

// ApplyPosition resets the position to the origin, or adds the given offset.
// Children are moved back so they do not change in world space. When
// recursive, each child then gets the same reset or offset itself, so only
// the leaves keep their compensation and a nil reset moves the whole subtree
// to the origin.
func (t *Transform) ApplyPosition(position *mgl64.Vec3, recursive bool) {
	next := mgl64.Vec3{0, 0, 0}
	if position != nil {
		next = t.Position.Add(*position)
	}

	change := next.Sub(t.Position)
	t.Position = next

	// the offset expressed in the space the children live in
	local := pose.DivVec(t.Rotation.Inverse().Rotate(change), t.Scale)
	for _, child := range t.children {
		child.Position = child.Position.Sub(local)
	}

	if recursive {
		for _, child := range t.children {
			child.ApplyPosition(position, true)
		}
	}
}

// ApplyRotation resets the rotation to identity, or post-multiplies the
// given rotation. Children are counter-rotated. When recursive, each child is
// then rotated the same way, which overrides its counter-rotation.
func (t *Transform) ApplyRotation(rotation *mgl64.Quat, recursive bool) {
	previous := t.Rotation
	next := mgl64.QuatIdent()
	if rotation != nil {
		next = previous.Mul(*rotation)
	}
	t.Rotation = next

	change := next.Inverse().Mul(previous)
	for _, child := range t.children {
		scaled := pose.MulVec(t.Scale, child.Position)
		child.Position = pose.DivVec(change.Rotate(scaled), t.Scale)
		child.Rotation = change.Mul(child.Rotation)
	}

	if recursive {
		for _, child := range t.children {
			child.ApplyRotation(rotation, true)
		}
	}
}

// ApplyScale resets the scale to one, or multiplies component-wise by the
// given scale. Children are scaled back. When recursive, each child is then
// scaled the same way, which overrides its compensation.
func (t *Transform) ApplyScale(scale *mgl64.Vec3, recursive bool) {
	previous := t.Scale
	next := mgl64.Vec3{1, 1, 1}
	if scale != nil {
		next = pose.MulVec(previous, *scale)
	}
	t.Scale = next

	ratio := pose.DivVec(previous, next)
	for _, child := range t.children {
		child.Position = pose.MulVec(ratio, child.Position)
		child.Scale = pose.MulVec(ratio, child.Scale)
	}

	if recursive {
		for _, child := range t.children {
			child.ApplyScale(scale, true)
		}
	}
}
