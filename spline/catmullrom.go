/*
 * catmullrom.go, part of gomolmesh.
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

//Package spline implements Catmull-Rom curves through 3D control points.
package spline

import (
	"math"

	v3 "github.com/rmera/gomolmesh/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//The parameter step used to estimate tangents.
const delta = 1e-4

//CatmullRom is an interpolating curve through a set of control points. The curve
//is parameterized in [0,1]. An open curve goes from the second control point to
//the one before the last, which only serve to give the ends a direction. A closed
//curve goes through all the points and back to the first one.
type CatmullRom struct {
	points []r3.Vec
	Closed bool
}

//New returns an open curve through the given points. At least 2 points are needed.
func New(points ...r3.Vec) (*CatmullRom, error) {
	if len(points) < 2 {
		return nil, &Error{message: "at least 2 control points are needed", deco: []string{"New"}}
	}
	C := new(CatmullRom)
	C.points = append(C.points, points...)
	return C, nil
}

//Add appends a control point to the curve.
func (C *CatmullRom) Add(p r3.Vec) {
	C.points = append(C.points, p)
}

//Len returns the number of control points.
func (C *CatmullRom) Len() int {
	return len(C.points)
}

//Control returns the i-th control point.
func (C *CatmullRom) Control(i int) r3.Vec {
	return C.points[i]
}

//window returns the points to use for evaluation. Open curves with fewer than
//4 points get their ends duplicated, so the curve goes through all of them.
func (C *CatmullRom) window() []r3.Vec {
	p := C.points
	if C.Closed || len(p) >= 4 || len(p) == 0 {
		return p
	}
	w := make([]r3.Vec, 0, len(p)+2)
	w = append(w, p[0])
	w = append(w, p...)
	return append(w, p[len(p)-1])
}

//Point returns the position of the curve at the parameter t. A negative t is
//moved forward by 1, and values beyond 1 extrapolate the last segment.
//Point panics if the curve has no control points.
func (C *CatmullRom) Point(t float64) r3.Vec {
	p := C.window()
	n := len(p)
	if n == 0 {
		panic("spline: evaluating a curve without control points")
	}
	if n == 1 {
		return p[0]
	}
	if t < 0 {
		t++
	}
	if C.Closed {
		return closedPoint(p, t)
	}
	segs := n - 3
	tt := t
	if tt == 1 {
		tt -= 1e-5
	}
	ci := 2 + int(math.Floor(tt*float64(segs)))
	u := t*float64(segs) - float64(ci-2)
	if ci < 2 {
		ci = 2
	}
	if ci > n-2 {
		ci = n - 2
	}
	var ret r3.Vec
	for j := -2; j <= 1; j++ {
		ret = r3.Add(ret, r3.Scale(basis(j, u), p[ci+j]))
	}
	return ret
}

func closedPoint(p []r3.Vec, t float64) r3.Vec {
	n := len(p)
	tt := t
	if tt >= 1 {
		tt = math.Mod(tt, 1)
	}
	ci := int(math.Floor(tt * float64(n)))
	u := tt*float64(n) - float64(ci)
	var ret r3.Vec
	for j := -2; j <= 1; j++ {
		k := ((ci+j+1)%n + n) % n
		ret = r3.Add(ret, r3.Scale(basis(j, u), p[k]))
	}
	return ret
}

//basis returns the Catmull-Rom blending weight of the control point at
//offset j (-2 to 1) from the current one, at the local parameter t.
func basis(j int, t float64) float64 {
	switch j {
	case -2:
		return ((-t+2)*t - 1) * t / 2
	case -1:
		return ((3*t-5)*t*t + 2) / 2
	case 0:
		return ((-3*t+4)*t + 1) * t / 2
	case 1:
		return (t - 1) * t * t / 2
	}
	return 0
}

//Tangent returns the unit vector along the direction of the curve at t.
func (C *CatmullRom) Tangent(t float64) r3.Vec {
	t0, t1 := t-delta, t+delta
	if t0 < 0 {
		t0 = 0
	}
	if t1 > 1 && !C.Closed {
		t1 = 1
	}
	return v3.Unit(r3.Sub(C.Point(t1), C.Point(t0)))
}

//Sample returns n points evenly spaced in parameter along the curve,
//including both ends. n must be at least 2.
func (C *CatmullRom) Sample(n int) []r3.Vec {
	if n < 2 {
		n = 2
	}
	ret := make([]r3.Vec, n)
	for i := range ret {
		ret[i] = C.Point(float64(i) / float64(n-1))
	}
	return ret
}

//Error is the error type for the spline package. It fullfills chem.Error.
type Error struct {
	message string
	deco    []string
}

func (err *Error) Error() string {
	return "spline: " + err.message
}

//Decorate Adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
