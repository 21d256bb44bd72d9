/*
 * catmullrom_test.go, part of gomolmesh.
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

package spline

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < 1e-6
}

func zigzag(n int) []r3.Vec {
	ret := make([]r3.Vec, n)
	for i := range ret {
		ret[i] = r3.Vec{X: float64(i) * 3.8, Y: 2 * math.Sin(float64(i)), Z: float64(i % 2)}
	}
	return ret
}

func TestThroughControlPoints(Te *testing.T) {
	pts := zigzag(8)
	C, err := New(pts...)
	if err != nil {
		Te.Fatal(err)
	}
	segs := len(pts) - 3
	for k := 0; k <= segs; k++ {
		t := float64(k) / float64(segs)
		if p := C.Point(t); !near(p, pts[k+1]) {
			Te.Errorf("t=%f gave %v, expected %v", t, p, pts[k+1])
		}
	}
}

func TestFewPoints(Te *testing.T) {
	if _, err := New(r3.Vec{}); err == nil {
		Te.Errorf("A curve with one point was accepted")
	}
	a, b, c := r3.Vec{X: 1}, r3.Vec{X: 2, Y: 1}, r3.Vec{X: 4}
	C, _ := New(a, b)
	if !near(C.Point(0), a) || !near(C.Point(1), b) {
		Te.Errorf("2-point curve doesn't join its points: %v %v", C.Point(0), C.Point(1))
	}
	C.Add(c)
	if !near(C.Point(0), a) || !near(C.Point(0.5), b) || !near(C.Point(1), c) {
		Te.Errorf("3-point curve doesn't go through its points")
	}
	if C.Len() != 3 {
		Te.Errorf("Wrong length %d", C.Len())
	}
}

func TestClosed(Te *testing.T) {
	pts := zigzag(6)
	C, _ := New(pts...)
	C.Closed = true
	for k := range pts {
		t := float64(k) / float64(len(pts))
		if p := C.Point(t); !near(p, pts[k]) {
			Te.Errorf("closed t=%f gave %v, expected %v", t, p, pts[k])
		}
	}
}

func TestTangentAndSample(Te *testing.T) {
	C, _ := New(r3.Vec{X: -1}, r3.Vec{}, r3.Vec{X: 1}, r3.Vec{X: 2}, r3.Vec{X: 3})
	for _, t := range []float64{0, 0.3, 1} {
		tg := C.Tangent(t)
		if !near(tg, r3.Vec{X: 1}) {
			Te.Errorf("Tangent at %f is %v", t, tg)
		}
	}
	s := C.Sample(5)
	if len(s) != 5 || !near(s[0], r3.Vec{}) || !near(s[4], r3.Vec{X: 2}) {
		Te.Errorf("Wrong samples %v", s)
	}
	for i := 1; i < len(s); i++ {
		if s[i].X <= s[i-1].X {
			Te.Errorf("Samples not monotonic on a straight line: %v", s)
		}
	}
}
