package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Space Tests
// =============================================================================

func TestNew_Identity(t *testing.T) {
	node := New("root")

	assert.Equal(t, "root", node.Name)
	assert.True(t, vec3AlmostEqual(node.Position, mgl64.Vec3{0, 0, 0}, 1e-10))
	assert.True(t, quatAlmostEqual(node.Rotation, mgl64.QuatIdent(), 1e-10))
	assert.True(t, vec3AlmostEqual(node.Scale, mgl64.Vec3{1, 1, 1}, 1e-10))
	assert.Nil(t, node.Parent())
	assert.Empty(t, node.Children())
	assert.Same(t, node, node.Owner())
}

func TestWorldSpace(t *testing.T) {
	root := New("root")
	root.Position = mgl64.Vec3{0, 1, 0}
	root.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})

	child := New("child")
	child.Position = mgl64.Vec3{1, 0, 0}
	require.NoError(t, root.Attach(KeepNone, child))

	// rotated +90° about Z, so local X maps onto world Y
	if !vec3AlmostEqual(child.PositionWorld(), mgl64.Vec3{0, 2, 0}, 1e-9) {
		t.Errorf("PositionWorld = %v, want {0 2 0}", child.PositionWorld())
	}
	if !quatAlmostEqual(child.RotationWorld(), root.Rotation, 1e-9) {
		t.Errorf("RotationWorld = %v, want %v", child.RotationWorld(), root.Rotation)
	}

	origin := mgl64.TransformCoordinate(mgl64.Vec3{0, 2, 0}, child.SpaceWorldInverse())
	if !vec3AlmostEqual(origin, mgl64.Vec3{0, 0, 0}, 1e-9) {
		t.Errorf("SpaceWorldInverse * world position = %v, want origin", origin)
	}
}

func TestScaleWorld(t *testing.T) {
	root := New("root")
	root.Scale = mgl64.Vec3{2, 3, 4}
	child := New("child")
	child.Scale = mgl64.Vec3{0.5, 1, 2}
	require.NoError(t, root.Attach(KeepNone, child))

	assert.True(t, vec3AlmostEqual(child.ScaleWorld(), mgl64.Vec3{1, 3, 8}, 1e-10))
}

// =============================================================================
// Hierarchy Tests
// =============================================================================

func TestAttach_KeepAll(t *testing.T) {
	root := New("root")
	root.Position = mgl64.Vec3{5, 0, 0}
	root.Rotation = mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	root.Scale = mgl64.Vec3{2, 2, 2}

	child := New("child")
	child.Position = mgl64.Vec3{1, 2, 3}
	child.Rotation = mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{1, 0, 0})

	before := child.SpaceWorld()
	require.NoError(t, root.Attach(KeepAll, child))

	assert.Same(t, root, child.Parent())
	assert.True(t, mat4AlmostEqual(child.SpaceWorld(), before, 1e-9))
}

func TestAttach_KeepNone(t *testing.T) {
	root := New("root")
	root.Position = mgl64.Vec3{5, 0, 0}
	child := New("child")
	child.Position = mgl64.Vec3{1, 2, 3}

	require.NoError(t, root.Attach(KeepNone, child))

	assert.True(t, vec3AlmostEqual(child.Position, mgl64.Vec3{1, 2, 3}, 1e-10))
	assert.True(t, vec3AlmostEqual(child.PositionWorld(), mgl64.Vec3{6, 2, 3}, 1e-10))
}

func TestAttach_MovesBetweenParents(t *testing.T) {
	a := New("a")
	b := New("b")
	child := New("child")

	require.NoError(t, a.Attach(KeepAll, child))
	require.NoError(t, b.Attach(KeepAll, child))

	assert.Empty(t, a.Children())
	assert.Equal(t, []*Transform{child}, b.Children())
	assert.Same(t, b, child.Parent())
}

func TestAttach_Cycle(t *testing.T) {
	root := New("root")
	child := New("child")
	grandchild := New("grandchild")
	require.NoError(t, root.Attach(KeepAll, child))
	require.NoError(t, child.Attach(KeepAll, grandchild))

	tests := []struct {
		name   string
		parent *Transform
		node   *Transform
	}{
		{"self", root, root},
		{"parent under child", child, root},
		{"root under grandchild", grandchild, root},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parent.Attach(KeepAll, tt.node)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCycle))
		})
	}

	// hierarchy untouched
	assert.Nil(t, root.Parent())
	assert.Same(t, root, grandchild.Root())
}

func TestDetach(t *testing.T) {
	root := New("root")
	root.Position = mgl64.Vec3{0, 10, 0}
	child := New("child")
	child.Position = mgl64.Vec3{0, 1, 0}
	other := New("other")
	require.NoError(t, root.Attach(KeepNone, child))

	root.Detach(KeepPosition, child, other)

	assert.Nil(t, child.Parent())
	assert.Empty(t, root.Children())
	assert.True(t, vec3AlmostEqual(child.Position, mgl64.Vec3{0, 11, 0}, 1e-10))
}

func TestClearParentAndChildren(t *testing.T) {
	root := New("root")
	a := New("a")
	b := New("b")
	require.NoError(t, root.Attach(KeepAll, a, b))
	assert.Equal(t, []*Transform{a, b}, root.Children())

	a.ClearParent(KeepAll)
	assert.Equal(t, []*Transform{b}, root.Children())

	root.ClearChildren(KeepAll)
	assert.Empty(t, root.Children())
	assert.Nil(t, b.Parent())
}

func TestChildren_ReturnsCopy(t *testing.T) {
	root := New("root")
	child := New("child")
	require.NoError(t, root.Attach(KeepAll, child))

	children := root.Children()
	children[0] = nil

	assert.Same(t, child, root.Children()[0])
}

// =============================================================================
// Apply Tests
// =============================================================================

func newArm(t *testing.T) (*Transform, *Transform) {
	t.Helper()

	root := New("upper")
	root.Position = mgl64.Vec3{1, 2, 3}
	root.Rotation = mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{0, 0, 1})
	root.Scale = mgl64.Vec3{2, 2, 2}

	child := New("lower")
	child.Position = mgl64.Vec3{0, 1, 0}
	child.Rotation = mgl64.QuatRotate(math.Pi/6, mgl64.Vec3{1, 0, 0})
	require.NoError(t, root.Attach(KeepNone, child))

	return root, child
}

func TestApplyPosition(t *testing.T) {
	offset := mgl64.Vec3{1, 1, 1}

	tests := []struct {
		name     string
		position *mgl64.Vec3
		want     mgl64.Vec3
	}{
		{"reset", nil, mgl64.Vec3{0, 0, 0}},
		{"add", &offset, mgl64.Vec3{2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, child := newArm(t)
			before := child.SpaceWorld()

			root.ApplyPosition(tt.position, false)

			assert.True(t, vec3AlmostEqual(root.Position, tt.want, 1e-10), "Position = %v", root.Position)
			assert.True(t, mat4AlmostEqual(child.SpaceWorld(), before, 1e-9))
		})
	}
}

func TestApplyRotation(t *testing.T) {
	extra := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	tests := []struct {
		name     string
		rotation *mgl64.Quat
	}{
		{"reset", nil},
		{"add", &extra},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, child := newArm(t)
			want := mgl64.QuatIdent()
			if tt.rotation != nil {
				want = root.Rotation.Mul(*tt.rotation)
			}
			before := child.SpaceWorld()

			root.ApplyRotation(tt.rotation, false)

			assert.True(t, quatAlmostEqual(root.Rotation, want, 1e-10))
			assert.True(t, mat4AlmostEqual(child.SpaceWorld(), before, 1e-9))
		})
	}
}

func TestApplyScale(t *testing.T) {
	half := mgl64.Vec3{0.5, 0.5, 0.5}

	tests := []struct {
		name  string
		scale *mgl64.Vec3
		want  mgl64.Vec3
	}{
		{"reset", nil, mgl64.Vec3{1, 1, 1}},
		{"multiply", &half, mgl64.Vec3{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, child := newArm(t)
			before := child.SpaceWorld()

			root.ApplyScale(tt.scale, false)

			assert.True(t, vec3AlmostEqual(root.Scale, tt.want, 1e-10))
			assert.True(t, mat4AlmostEqual(child.SpaceWorld(), before, 1e-9))
		})
	}
}

func newChain(t *testing.T) []*Transform {
	t.Helper()

	root, child := newArm(t)
	grandchild := New("hand")
	grandchild.Position = mgl64.Vec3{0, 2, 0}
	grandchild.Rotation = mgl64.QuatRotate(-math.Pi/5, mgl64.Vec3{0, 1, 0})
	grandchild.Scale = mgl64.Vec3{3, 3, 3}
	require.NoError(t, child.Attach(KeepNone, grandchild))

	return []*Transform{root, child, grandchild}
}

// a recursive reset applies to every descendant, so nothing is kept in place
func TestApplyPosition_Recursive(t *testing.T) {
	chain := newChain(t)

	chain[0].ApplyPosition(nil, true)

	for _, node := range chain {
		assert.True(t, vec3AlmostEqual(node.Position, mgl64.Vec3{}, 1e-10), "%s position = %v", node.Name, node.Position)
		assert.True(t, vec3AlmostEqual(node.PositionWorld(), mgl64.Vec3{}, 1e-10), "%s world position = %v", node.Name, node.PositionWorld())
	}
}

func TestApplyRotation_Recursive(t *testing.T) {
	chain := newChain(t)

	chain[0].ApplyRotation(nil, true)

	for _, node := range chain {
		assert.True(t, quatAlmostEqual(node.Rotation, mgl64.QuatIdent(), 1e-10), "%s rotation = %v", node.Name, node.Rotation)
		assert.True(t, quatAlmostEqual(node.RotationWorld(), mgl64.QuatIdent(), 1e-10), "%s world rotation = %v", node.Name, node.RotationWorld())
	}
}

func TestApplyScale_Recursive(t *testing.T) {
	chain := newChain(t)

	chain[0].ApplyScale(nil, true)

	for _, node := range chain {
		assert.True(t, vec3AlmostEqual(node.Scale, mgl64.Vec3{1, 1, 1}, 1e-10), "%s scale = %v", node.Name, node.Scale)
		assert.True(t, vec3AlmostEqual(node.ScaleWorld(), mgl64.Vec3{1, 1, 1}, 1e-10), "%s world scale = %v", node.Name, node.ScaleWorld())
	}
}

// =============================================================================
// Traversal Tests
// =============================================================================

func newTree(t *testing.T) *Transform {
	t.Helper()

	hips := New("Hips")
	spine := New("Spine")
	leftLeg := New("LeftLeg")
	rightLeg := New("RightLeg")
	head := New("Head")
	require.NoError(t, hips.Attach(KeepAll, spine, leftLeg, rightLeg))
	require.NoError(t, spine.Attach(KeepAll, head))

	return hips
}

func TestLayout(t *testing.T) {
	entries := newTree(t).Layout()

	want := []struct {
		name  string
		depth int
	}{
		{"Hips", 0},
		{"Spine", 1},
		{"Head", 2},
		{"LeftLeg", 1},
		{"RightLeg", 1},
	}

	require.Len(t, entries, len(want))
	for i, w := range want {
		assert.Equal(t, w.name, entries[i].Node.Local().Name)
		assert.Equal(t, i, entries[i].Index)
		assert.Equal(t, w.depth, entries[i].Depth)
	}
}

func TestFilter(t *testing.T) {
	root := newTree(t)

	tests := []struct {
		name          string
		pattern       string
		isEqual       bool
		caseSensitive bool
		want          []string
	}{
		{"contains insensitive", "leg", false, false, []string{"LeftLeg", "RightLeg"}},
		{"contains sensitive miss", "leg", false, true, nil},
		{"equal", "spine", true, false, []string{"Spine"}},
		{"equal sensitive miss", "spine", true, true, nil},
		{"includes self", "hips", false, false, []string{"Hips"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(root.Filter(tt.pattern, tt.isEqual, tt.caseSensitive)))
		})
	}
}

func TestFilterRegex(t *testing.T) {
	root := newTree(t)

	nodes, err := root.FilterRegex("^(Left|Right)")
	require.NoError(t, err)
	assert.Equal(t, []string{"LeftLeg", "RightLeg"}, names(nodes))

	_, err = root.FilterRegex("(")
	assert.Error(t, err)
}

// =============================================================================
// Keep Tests
// =============================================================================

func TestParseKeep(t *testing.T) {
	tests := []struct {
		names   []string
		want    Keep
		wantErr bool
	}{
		{nil, KeepNone, false},
		{[]string{"position"}, KeepPosition, false},
		{[]string{"Position", "ROTATION", "scale"}, KeepAll, false},
		{[]string{"rotation", "rotation"}, KeepRotation, false},
		{[]string{"velocity"}, KeepNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, err := ParseKeep(tt.names...)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownChannel))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeep_String(t *testing.T) {
	assert.Equal(t, "none", KeepNone.String())
	assert.Equal(t, "position|scale", (KeepPosition | KeepScale).String())
	assert.Equal(t, "position|rotation|scale", KeepAll.String())
}

// =============================================================================
// Euler Tests
// =============================================================================

func TestSetEuler(t *testing.T) {
	x := mgl64.QuatRotate(mgl64.DegToRad(30), mgl64.Vec3{1, 0, 0})
	y := mgl64.QuatRotate(mgl64.DegToRad(45), mgl64.Vec3{0, 1, 0})
	z := mgl64.QuatRotate(mgl64.DegToRad(60), mgl64.Vec3{0, 0, 1})

	tests := []struct {
		name      string
		order     string
		extrinsic bool
		want      mgl64.Quat
	}{
		{"ZXY extrinsic", "ZXY", true, y.Mul(x).Mul(z)},
		{"ZXY intrinsic", "ZXY", false, z.Mul(x).Mul(y)},
		{"xyz lower case", "xyz", true, z.Mul(y).Mul(x)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := New("node")
			require.NoError(t, node.SetEuler(mgl64.Vec3{30, 45, 60}, tt.order, tt.extrinsic))
			assert.True(t, quatAlmostEqual(node.Rotation, tt.want, 1e-10), "Rotation = %v, want %v", node.Rotation, tt.want)
		})
	}
}

func TestSetEuler_InvalidOrder(t *testing.T) {
	for _, order := range []string{"", "XY", "XXY", "XYW", "XYZX"} {
		t.Run(order, func(t *testing.T) {
			node := New("node")
			err := node.SetEuler(mgl64.Vec3{10, 20, 30}, order, true)
			assert.True(t, errors.Is(err, ErrEulerOrder))
			assert.True(t, quatAlmostEqual(node.Rotation, mgl64.QuatIdent(), 1e-10))
		})
	}
}

// =============================================================================
// Helpers
// =============================================================================

func names(nodes []Node) []string {
	var out []string
	for _, node := range nodes {
		out = append(out, node.Local().Name)
	}
	return out
}

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

func quatAlmostEqual(a, b mgl64.Quat, epsilon float64) bool {
	return almostEqual(a.W, b.W, epsilon) &&
		almostEqual(a.V.X(), b.V.X(), epsilon) &&
		almostEqual(a.V.Y(), b.V.Y(), epsilon) &&
		almostEqual(a.V.Z(), b.V.Z(), epsilon)
}

func mat4AlmostEqual(a, b mgl64.Mat4, epsilon float64) bool {
	for i := range a {
		if !almostEqual(a[i], b[i], epsilon) {
			return false
		}
	}
	return true
}
