package transform

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

var eulerAxes = map[byte]struct {
	index int
	axis  mgl64.Vec3
}{
	'X': {0, mgl64.Vec3{1, 0, 0}},
	'Y': {1, mgl64.Vec3{0, 1, 0}},
	'Z': {2, mgl64.Vec3{0, 0, 1}},
}

// EulerToQuat builds a rotation from per-axis angles in degrees.
// order is a permutation of "XYZ" naming the sequence the rotations are
// applied in. Extrinsic rotations use the fixed parent axes, intrinsic ones
// the rotated axes.
func EulerToQuat(degrees mgl64.Vec3, order string, extrinsic bool) (mgl64.Quat, error) {
	order = strings.ToUpper(order)
	if len(order) != 3 {
		return mgl64.Quat{}, errors.Wrapf(ErrEulerOrder, "%q", order)
	}

	seen := map[byte]bool{}
	rotation := mgl64.QuatIdent()
	for i := 0; i < len(order); i++ {
		axis, ok := eulerAxes[order[i]]
		if !ok || seen[order[i]] {
			return mgl64.Quat{}, errors.Wrapf(ErrEulerOrder, "%q", order)
		}
		seen[order[i]] = true

		step := mgl64.QuatRotate(mgl64.DegToRad(degrees[axis.index]), axis.axis)
		if extrinsic {
			rotation = step.Mul(rotation)
		} else {
			rotation = rotation.Mul(step)
		}
	}

	return rotation, nil
}

// SetEuler sets the local rotation from Euler angles in degrees, see EulerToQuat.
func (t *Transform) SetEuler(degrees mgl64.Vec3, order string, extrinsic bool) error {
	rotation, err := EulerToQuat(degrees, order, extrinsic)
	if err != nil {
		return err
	}

	t.Rotation = rotation

	return nil
}
