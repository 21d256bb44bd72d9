/*
 * vectors.go, part of gomolmesh.
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * goMolMesh is built on goChem, currently developed at the Universidad de Santiago de Chile (USACH)
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package v3

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

//appzero is the norm under which a vector is taken to be the zero vector.
const appzero = 1e-12

//Unit returns the unit vector along v, or the zero vector if v is the zero vector.
func Unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < appzero {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

//IsZero returns true if the norm of v is negligible.
func IsZero(v r3.Vec) bool {
	return r3.Norm(v) < appzero
}

//Normal returns the unit normal of the triangle p1, p2, p3, that is,
//the normalized (p2-p1)x(p3-p1).
func Normal(p1, p2, p3 r3.Vec) r3.Vec {
	return Unit(r3.Cross(r3.Sub(p2, p1), r3.Sub(p3, p1)))
}

//Midpoint returns the point halfway between a and b.
func Midpoint(a, b r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(a, b))
}

//Mean returns the average of the given vectors. It returns the zero vector if none is given.
func Mean(vecs ...r3.Vec) r3.Vec {
	if len(vecs) == 0 {
		return r3.Vec{}
	}
	var ret r3.Vec
	for _, v := range vecs {
		ret = r3.Add(ret, v)
	}
	return r3.Scale(1/float64(len(vecs)), ret)
}

//Bounds returns the minimum and maximum corners of the axis-aligned box
//containing all the points. ok is false if no points were given.
func Bounds(points []r3.Vec) (min, max r3.Vec, ok bool) {
	if len(points) == 0 {
		return min, max, false
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i], zs[i] = p.X, p.Y, p.Z
	}
	min = r3.Vec{X: floats.Min(xs), Y: floats.Min(ys), Z: floats.Min(zs)}
	max = r3.Vec{X: floats.Max(xs), Y: floats.Max(ys), Z: floats.Max(zs)}
	return min, max, true
}

//Ring fills dst with len(dst) points on the ellipse of the given radius around center,
//spanned by the r and s vectors. The last point is the same as the first one, so the ring
//divides the circle in len(dst)-1 slices. dst is returned for convenience.
func Ring(dst []r3.Vec, center, r, s r3.Vec, radius float64) []r3.Vec {
	slices := len(dst) - 1
	for i := range dst {
		angle := float64(i) / float64(slices) * 2 * math.Pi
		off := r3.Add(r3.Scale(radius*math.Cos(angle), r), r3.Scale(radius*math.Sin(angle), s))
		dst[i] = r3.Add(center, off)
	}
	return dst
}

//Vec3 returns the single precision version of v.
func Vec3(v r3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

//FromVec3 returns the double precision version of v.
func FromVec3(v mgl32.Vec3) r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

//Dihedral returns the dihedral angle, in radians, defined by the points a, b, c and d.
func Dihedral(a, b, c, d r3.Vec) float64 {
	bma := r3.Sub(b, a)
	cmb := r3.Sub(c, b)
	dmc := r3.Sub(d, c)
	first := r3.Dot(r3.Scale(r3.Norm(cmb), bma), r3.Cross(cmb, dmc))
	second := r3.Dot(r3.Cross(bma, cmb), r3.Cross(cmb, dmc))
	return math.Atan2(first, second)
}
