/*
 * primitives.go, part of gomolmesh.
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

package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	chem "github.com/rmera/gomolmesh"
	v3 "github.com/rmera/gomolmesh/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//SphereVertices returns the number of vertices of a sphere with the given slices.
func SphereVertices(slices int) int {
	return 6 * slices * slices
}

//CylinderVertices returns the number of vertices of a bond cylinder with the given slices.
func CylinderVertices(slices int) int {
	return 12 * (slices + 1)
}

//Sphere emits a UV sphere of the given radius, made of slices rings of slices
//cells, each cell split in 2 triangles. The normals point outwards.
func (S *Session) Sphere(center r3.Vec, radius float64, slices int, c mgl32.Vec4) error {
	step := 2 * math.Pi / float64(slices)
	dir := func(i, j int) r3.Vec {
		theta := step / 2 * float64(i)
		phi := step * float64(j)
		st := math.Sin(theta)
		return r3.Vec{X: st * math.Sin(phi), Y: math.Cos(theta), Z: st * math.Cos(phi)}
	}
	put := func(d r3.Vec) {
		S.vertex(r3.Add(center, r3.Scale(radius, d)), r3.Scale(S.brightness, d), c)
	}
	return S.primitive(SphereVertices(slices), "sphere", func() bool {
		for i := 0; i < slices; i++ {
			for j := 0; j < slices; j++ {
				d1, d2, d3, d4 := dir(i, j), dir(i+1, j), dir(i+1, j+1), dir(i, j+1)
				put(d1)
				put(d2)
				put(d3)
				put(d1)
				put(d3)
				put(d4)
			}
		}
		return true
	})
}

//Cylinder emits a bond between two atoms, split at the midpoint, each half with
//the color of the closest atom.
//Both atoms are flagged to be drawn by the sphere pass.
func (S *Session) Cylinder(a1, a2 *chem.Atom, radius float64, slices int) error {
	S.sphere[a1.Serial] = true
	S.sphere[a2.Serial] = true
	return S.cylinder(a1.Coord, a2.Coord, radius, slices, S.atomColor(a1, White), S.atomColor(a2, White))
}

func (S *Session) cylinder(start, end r3.Vec, radius float64, slices int, c1, c2 mgl32.Vec4) error {
	axis := r3.Sub(end, start)
	if v3.IsZero(axis) {
		S.rep.Report(chem.DiagDegenerateGeometry, 0, 0, "zero-length bond at %v", start)
		return nil
	}
	var rvec r3.Vec
	for {
		rvec = r3.Cross(axis, S.randomUnit())
		if !v3.IsZero(rvec) {
			break
		}
	}
	rvec = v3.Unit(rvec)
	svec := v3.Unit(r3.Cross(rvec, axis))
	mid := v3.Midpoint(start, end)
	offset := func(i int) r3.Vec {
		a := float64(i) / float64(slices) * 2 * math.Pi
		return r3.Add(r3.Scale(radius*math.Cos(a), rvec), r3.Scale(radius*math.Sin(a), svec))
	}
	put := func(p1, p2, p3 r3.Vec, c mgl32.Vec4) {
		S.tri(p1, p2, p3, r3.Scale(S.brightness, v3.Normal(p1, p2, p3)), c)
	}
	return S.primitive(CylinderVertices(slices), "cylinder", func() bool {
		for i := 0; i <= slices; i++ {
			o1, o2 := offset(i), offset(i+1)
			put(r3.Add(mid, o1), r3.Add(start, o1), r3.Add(start, o2), c1)
			put(r3.Add(mid, o1), r3.Add(start, o2), r3.Add(mid, o2), c1)
			put(r3.Add(end, o1), r3.Add(mid, o1), r3.Add(mid, o2), c2)
			put(r3.Add(end, o1), r3.Add(mid, o2), r3.Add(end, o2), c2)
		}
		return true
	})
}

//line emits a line segment, for the CA trace. The accumulator must be in Lines mode.
func (S *Session) line(p1, p2 r3.Vec, c mgl32.Vec4) error {
	n := r3.Vec{X: S.brightness, Y: S.brightness, Z: S.brightness}
	return S.primitive(2, "line", func() bool {
		S.vertex(p1, n, c)
		S.vertex(p2, n, c)
		return true
	})
}
