package pose

import "github.com/go-gl/mathgl/mgl64"

// LerpVec interpolates a and b linearly by weight
func LerpVec(a, b mgl64.Vec3, weight float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(weight))
}

// MulVec multiplies a and b component-wise
func MulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// DivVec divides a by b component-wise. A zero component in b yields ±Inf or NaN.
func DivVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() / b.X(), a.Y() / b.Y(), a.Z() / b.Z()}
}
