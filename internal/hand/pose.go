package hand

import "gonum.org/v1/gonum/spatial/r3"

// Pose is a rigid transform between two coordinate spaces, stored as a
// row-major 4x4 matrix. An anchor's pose maps anchor-local coordinates to
// the shared origin space; a joint's pose maps joint-local coordinates to
// the owning anchor's space.
type Pose struct {
	M [16]float64 `json:"m"`
}

// Identity returns the identity pose.
func Identity() Pose {
	return Pose{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Translation returns an identity-rotation pose translated by (x, y, z).
func Translation(x, y, z float64) Pose {
	p := Identity()
	p.M[3] = x
	p.M[7] = y
	p.M[11] = z
	return p
}

// Mul returns the composition p * q. Composing an anchor's origin-space
// pose with a joint's anchor-space pose yields the joint's origin-space
// pose: originFromJoint = originFromAnchor.Mul(anchorFromJoint).
func (p Pose) Mul(q Pose) Pose {
	var out Pose
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += p.M[row*4+k] * q.M[k*4+col]
			}
			out.M[row*4+col] = sum
		}
	}
	return out
}

// Position returns the translation component of the pose.
func (p Pose) Position() r3.Vec {
	return r3.Vec{X: p.M[3], Y: p.M[7], Z: p.M[11]}
}
