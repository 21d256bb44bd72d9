/*
 * vectors_test.go, part of gomolmesh.
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
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-9
}

func TestSomeVecs(Te *testing.T) {
	u := Unit(r3.Vec{X: 3, Y: 0, Z: 4})
	if !near(u, r3.Vec{X: 0.6, Z: 0.8}) {
		Te.Errorf("bad unit vector %v", u)
	}
	if !IsZero(Unit(r3.Vec{})) {
		Te.Errorf("the unit of the zero vector should be zero")
	}
	n := Normal(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1})
	if !near(n, r3.Vec{Z: 1}) {
		Te.Errorf("bad normal %v", n)
	}
	if m := Mean(r3.Vec{X: 1}, r3.Vec{X: 3, Y: 2}); !near(m, Midpoint(r3.Vec{X: 1}, r3.Vec{X: 3, Y: 2})) {
		Te.Errorf("mean and midpoint differ: %v", m)
	}
	if !IsZero(Mean()) {
		Te.Errorf("mean of nothing should be zero")
	}
	lo, hi, ok := Bounds([]r3.Vec{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 5, Z: 0}})
	if !ok || !near(lo, r3.Vec{X: -1, Y: -2}) || !near(hi, r3.Vec{X: 1, Y: 5, Z: 3}) {
		Te.Errorf("bad bounds %v %v", lo, hi)
	}
	if _, _, ok := Bounds(nil); ok {
		Te.Errorf("bounds of nothing")
	}
	v := r3.Vec{X: 1.5, Y: -2.25, Z: 8}
	if back := FromVec3(Vec3(v)); !near(back, v) {
		Te.Errorf("single precision round trip changed %v to %v", v, back)
	}
	if Vec3(v) != (mgl32.Vec3{1.5, -2.25, 8}) {
		Te.Errorf("bad conversion %v", Vec3(v))
	}
}

func TestRing(Te *testing.T) {
	center := r3.Vec{X: 1, Y: 1, Z: 1}
	ring := Ring(make([]r3.Vec, 9), center, r3.Vec{X: 1}, r3.Vec{Y: 1}, 2)
	if !near(ring[0], ring[8]) {
		Te.Errorf("ring not closed: %v %v", ring[0], ring[8])
	}
	for i, p := range ring {
		if d := r3.Norm(r3.Sub(p, center)); math.Abs(d-2) > 1e-9 {
			Te.Errorf("point %d at %f from the center", i, d)
		}
	}
	if !near(ring[2], r3.Vec{X: 1, Y: 3, Z: 1}) {
		Te.Errorf("bad quarter point %v", ring[2])
	}
}

func TestDihedral(Te *testing.T) {
	a := r3.Vec{X: 1, Y: 0, Z: 0}
	b := r3.Vec{}
	c := r3.Vec{Z: 1}
	for _, deg := range []float64{0, 60, -60, 120, 180} {
		rad := deg * math.Pi / 180
		d := r3.Vec{X: math.Cos(rad), Y: math.Sin(rad), Z: 1}
		got := Dihedral(a, b, c, d) * 180 / math.Pi
		if math.Abs(math.Abs(got)-math.Abs(deg)) > 1e-6 {
			Te.Errorf("expected %f degrees, got %f", deg, got)
		}
	}
	d := r3.Vec{X: 0, Y: 1, Z: 1}
	if Dihedral(a, b, c, d)*Dihedral(a, b, c, r3.Vec{Y: -1, Z: 1}) >= 0 {
		Te.Errorf("opposite dihedrals with the same sign")
	}
}
