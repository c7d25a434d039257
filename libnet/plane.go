package libnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// xy is a position projected into a net's plane.
type xy struct {
	X, Y float64
}

// netPlane projects 3D positions onto the plane a net is resolved in.
//
// (u, v, normal) is a right-handed orthonormal frame, so a net lying in the XY plane with a +Z normal projects unchanged.
type netPlane struct {
	normal r3.Vec
	u, v   r3.Vec
}

var zAxis = r3.Vec{Z: 1}

func newNetPlane(normal r3.Vec) netPlane {
	if r3.Norm(normal) == 0 {
		normal = zAxis
	}
	n := r3.Unit(normal)

	helper := r3.Vec{Y: 1}
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ay >= ax && ay >= az {
		helper = zAxis
	}
	u := r3.Unit(r3.Cross(helper, n))
	return netPlane{
		normal: n,
		u:      u,
		v:      r3.Cross(n, u),
	}
}

func (p *netPlane) project(pos r3.Vec) xy {
	return xy{
		X: r3.Dot(pos, p.u),
		Y: r3.Dot(pos, p.v),
	}
}

// signedArea returns the area of the given closed loop projected onto this plane, positive if it winds counter-clockwise.
func (p *netPlane) signedArea(loop []r3.Vec) float64 {
	return 0.5 * r3.Dot(newellNormal(loop), p.normal)
}

// newellNormal returns the Newell normal of a closed loop, whose length is twice the loop's vector area.
func newellNormal(loop []r3.Vec) r3.Vec {
	var n r3.Vec
	N := len(loop)
	for i, pi := range loop {
		pj := loop[(i+1)%N]
		n.X += (pi.Y - pj.Y) * (pi.Z + pj.Z)
		n.Y += (pi.Z - pj.Z) * (pi.X + pj.X)
		n.Z += (pi.X - pj.X) * (pi.Y + pj.Y)
	}
	return n
}

// fitNormal returns the normal of the least-squares plane through the given points.
//
// The sign is chosen so the normal's largest component is positive.  Collinear or coincident points
// have no unique plane, so +Z is returned for them.
func fitNormal(pts []r3.Vec) r3.Vec {
	if len(pts) < 3 {
		return zAxis
	}

	var c r3.Vec
	for _, pt := range pts {
		c = r3.Add(c, pt)
	}
	c = r3.Scale(1/float64(len(pts)), c)

	var cov [9]float64
	for _, pt := range pts {
		d := r3.Sub(pt, c)
		dv := [3]float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[3*i+j] += dv[i] * dv[j]
			}
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(mat.NewSymDense(3, cov[:]), true) {
		return zAxis
	}

	// eigenvalues are ascending: [0] is the normal's variance, [1] is zero for collinear points
	vals := eig.Values(nil)
	if vals[2] <= 0 || vals[1] <= 1e-12*vals[2] {
		return zAxis
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	n := r3.Vec{X: vecs.At(0, 0), Y: vecs.At(1, 0), Z: vecs.At(2, 0)}

	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case az >= ax && az >= ay:
		if n.Z < 0 {
			n = r3.Scale(-1, n)
		}
	case ay >= ax:
		if n.Y < 0 {
			n = r3.Scale(-1, n)
		}
	default:
		if n.X < 0 {
			n = r3.Scale(-1, n)
		}
	}
	return r3.Unit(n)
}
