/*
 * ribbon.go, part of gomolmesh.
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
	chem "github.com/rmera/gomolmesh"
	"github.com/rmera/gomolmesh/spline"
	v3 "github.com/rmera/gomolmesh/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//Spline samples per residue.
const csf = 10

//Cross-section radii.
const (
	coilRadius  = 0.25
	helixRadius = 1.0
)

//Flat sections are this many times thinner across than along.
const flatten = 5

//Arrow heads start with this countdown, and taper to a point as it reaches 0.
const arrowCountdown = 11

//Ribbons emits the ribbon, helix, sheet and nucleic backbone meshes of all the chains.
func (S *Session) Ribbons() error {
	for i, list := range S.mol.Chains {
		curve, ok := S.chainCurve(list)
		if !ok {
			S.rep.Report(chem.DiagMissingGeometryAtom, 0, 0, "chain %d (%c) has too few backbone points", i, list[0].Chain)
			continue
		}
		if err := S.chainRibbon(list, curve); err != nil {
			return err
		}
	}
	return nil
}

//chainCurve builds the spline through the backbone atoms of a chain. The start atom of the
//first residue and the end atom of the last one are added as control points, so the
//curve goes from the first backbone atom to the last one.
func (S *Session) chainCurve(list []*chem.ChainDescriptor) (*spline.CatmullRom, bool) {
	curve := new(spline.CatmullRom)
	first := list[0]
	start := S.atom(first.Start)
	if start == nil {
		start = S.atom(first.Guide)
	}
	if start == nil {
		return nil, false
	}
	curve.Add(start.Coord)
	for j, d := range list {
		if bb := S.atom(d.Backbone); bb != nil {
			curve.Add(bb.Coord)
		}
		d.CurveIndex = j * csf
	}
	last := list[len(list)-1]
	if last.Type == chem.Nucleic {
		if a := S.atom(last.NucleicEnd); a != nil {
			curve.Add(a.Coord)
		}
	}
	end := S.atom(last.End)
	if end == nil {
		end = S.atom(last.Guide)
	}
	if end != nil {
		curve.Add(end.Coord)
	}
	return curve, curve.Len() >= 4
}

//chainRibbon splits the chain in runs of the same type and renders each one.
func (S *Session) chainRibbon(list []*chem.ChainDescriptor, curve *spline.CatmullRom) error {
	S.cacheValid = false
	n := len(list)
	cur := list[0].Type
	start := 0
	var err error
	for j := 1; j < n; j++ {
		if list[j].Type == cur {
			continue
		}
		switch cur {
		case chem.Ribbon:
			err = S.coil(curve, start, j, n)
		case chem.AlphaHelix, chem.Nucleic:
			err = S.helix(curve, list, start, j, chem.AlphaHelix)
		case chem.BetaSheet:
			err = S.helix(curve, list, start, j, chem.BetaSheet)
		}
		if err != nil {
			return err
		}
		start = j
		cur = list[j].Type
	}
	switch cur {
	case chem.Ribbon:
		err = S.coil(curve, start, n-1, n)
	case chem.AlphaHelix:
		err = S.helix(curve, list, start, n-1, chem.AlphaHelix)
	case chem.BetaSheet:
		err = S.helix(curve, list, start, n-1, chem.BetaSheet)
	case chem.Nucleic:
		err = S.nucleicRibbon(curve, list, start, n)
	}
	return err
}

//coil renders the descriptors from si to ei as a thin round tube.
func (S *Session) coil(curve *spline.CatmullRom, si, ei, count int) error {
	scaling := curve.Len() * csf
	start := si * scaling / count
	end := ei * scaling / count
	seed := r3.Vec{Y: 999}
	alt := r3.Vec{X: 999}
	v1 := make([]r3.Vec, S.ribbonSlices+1)
	v2 := make([]r3.Vec, S.ribbonSlices+1)
	at := func(w int) r3.Vec { return curve.Point(float64(w) / float64(scaling)) }
	for w := start; w < end; w++ {
		ps, pe, pb := at(w), at(w+1), at(w+2)
		p := r3.Sub(pe, ps)
		if w == start {
			r := r3.Cross(p, seed)
			if v3.IsZero(r) {
				r = r3.Cross(p, alt)
			}
			s := r3.Cross(r, p)
			v3.Ring(v1, ps, v3.Unit(r), v3.Unit(s), coilRadius)
			if err := S.connect(v1, p); err != nil {
				return err
			}
		}
		r := r3.Cross(seed, p)
		if v3.IsZero(r) {
			r = r3.Cross(alt, p)
		}
		s := r3.Cross(r, p)
		v3.Ring(v2, pe, v3.Unit(r), v3.Unit(s), coilRadius)
		v1 = alignRing(v1, v2, r3.Sub(pb, ps))
		if err := S.tube(v1, v2, Red); err != nil {
			return err
		}
		copy(v1, v2)
		S.keep(v2)
	}
	return nil
}

//alignRing returns the cache ring rotated so that its first point is the one for
//which the direction to next[0] best matches target. The last point repeats the first.
func alignRing(cache, next []r3.Vec, target r3.Vec) []r3.Vec {
	t := v3.Unit(target)
	best, bestDot := 0, -1.0
	for i := range cache {
		if d := r3.Dot(v3.Unit(r3.Sub(next[0], cache[i])), t); d > bestDot {
			best, bestDot = i, d
		}
	}
	ret := make([]r3.Vec, len(cache))
	j := best
	for i := 0; i < len(cache)-1; i++ {
		if j >= len(cache) {
			j = 1
		}
		ret[i] = cache[j]
		j++
	}
	ret[len(ret)-1] = ret[0]
	return ret
}

//frame keeps the running average of the last cross-section directions, which
//keeps helices and sheets from twisting abruptly.
type frame struct {
	prev  [3]r3.Vec
	begun bool
}

//smooth flips r if it points against the previous direction, then averages it with
//the previous 3 directions.
func (F *frame) smooth(r r3.Vec) r3.Vec {
	if r3.Dot(r, F.prev[0]) < 0 {
		r = r3.Scale(-1, r)
	}
	if !F.begun {
		F.prev = [3]r3.Vec{r, r, r}
		F.begun = true
		return r
	}
	r = r3.Scale(0.25, r3.Add(r3.Add(F.prev[0], F.prev[1]), r3.Add(F.prev[2], r)))
	F.prev[2] = F.prev[1]
	F.prev[1] = F.prev[0]
	F.prev[0] = r
	return r
}

//arrowHead follows the taper of the arrow that ends a sheet.
type arrowHead struct {
	countdown int
	begun     bool
}

//next returns the radius of the next ring of the arrow and the scale of its
//thin side. The first ring is the base of the arrow, which goes on the same
//point as the previous one.
func (A *arrowHead) next() (radius, across float64, base bool) {
	if !A.begun {
		A.begun = true
		A.countdown = arrowCountdown - 1
		return helixRadius, 1.0 / flatten, true
	}
	radius = 1.5*float64(A.countdown)/10 + 0.1
	if A.countdown > 0 {
		A.countdown--
	}
	if A.countdown < 3 {
		return radius, 1 / float64(2*A.countdown+1), false
	}
	return radius, 1.0 / flatten, false
}

//helix renders the descriptors from si to ei as a flat band, oriented by the
//C=O (or sugar) direction of each residue. Sheets end in an arrow.
func (S *Session) helix(curve *spline.CatmullRom, list []*chem.ChainDescriptor, si, ei int, kind chem.SSType) error {
	count := len(list)
	scaling := curve.Len() * csf
	start := si * scaling / count
	end := ei * scaling / count
	at := func(w int) r3.Vec {
		if w < 0 {
			w = 0
		}
		return curve.Point(float64(w) / float64(scaling))
	}
	v1 := make([]r3.Vec, S.ribbonSlices+1)
	v2 := make([]r3.Vec, S.ribbonSlices+1)
	var F frame
	var head arrowHead
	arrow := false
	radius := helixRadius
	first := true
	for w := start; w < end; w++ {
		ci := (w + 1) * count / scaling
		if ci >= count {
			ci = count - 1
		}
		d := list[ci]
		carbon, oxygen := S.atom(d.End), S.atom(d.Guide)
		if carbon == nil || oxygen == nil {
			S.rep.Report(chem.DiagMissingGeometryAtom, 0, d.Backbone, "residue %d%c lacks its guide atoms", d.ResSeq, d.Chain)
			continue
		}
		if kind == chem.BetaSheet && (ci+1 >= count || list[ci+1].Type != kind) {
			arrow = true
		}
		pPrev, pStart, pEnd := at(w-1), at(w), at(w+1)
		r1 := r3.Sub(oxygen.Coord, carbon.Coord)
		s1 := r3.Cross(r1, r3.Sub(pStart, pPrev))
		r2 := F.smooth(r3.Sub(oxygen.Coord, carbon.Coord))
		s2 := r3.Cross(r2, r3.Sub(pEnd, pStart))
		r1, s1, r2, s2 = v3.Unit(r1), v3.Unit(s1), v3.Unit(r2), v3.Unit(s2)
		across := 1.0 / flatten
		repeat := false
		if arrow {
			radius, across, repeat = head.next()
		}
		s1 = r3.Scale(1.0/flatten, s1)
		s2 = r3.Scale(across, s2)
		if first {
			v3.Ring(v1, pStart, r1, s1, radius)
			if err := S.connect(v1, r3.Sub(pEnd, pStart)); err != nil {
				return err
			}
			first = false
		}
		v3.Ring(v2, pEnd, r2, s2, radius)
		if err := S.tube(v1, v2, Green); err != nil {
			return err
		}
		copy(v1, v2)
		S.keep(v2)
		if repeat {
			w--
		}
	}
	return nil
}

//nucleicRibbon renders the nucleic acid descriptors from si to ei. The flat side of
//the band follows the C1' direction.
func (S *Session) nucleicRibbon(curve *spline.CatmullRom, list []*chem.ChainDescriptor, si, ei int) error {
	count := len(list)
	scaling := (curve.Len() - 2) * csf
	if scaling <= 0 {
		return nil
	}
	start := si * scaling / count
	end := ei * scaling / count
	if start == 0 {
		start = 1
	}
	at := func(w int) r3.Vec { return curve.Point(float64(w) / float64(scaling)) }
	v1 := make([]r3.Vec, S.ribbonSlices+1)
	v2 := make([]r3.Vec, S.ribbonSlices+1)
	var F frame
	first := true
	for w := start; w < end; w++ {
		ci := w * count / scaling
		if ci >= count {
			ci = count - 1
		}
		d := list[ci]
		endAtom, guide := S.atom(d.End), S.atom(d.Guide)
		if endAtom == nil || guide == nil {
			S.rep.Report(chem.DiagMissingGeometryAtom, 0, d.Backbone, "nucleotide %d%c lacks its guide atoms", d.ResSeq, d.Chain)
			continue
		}
		pPrev, pStart, pEnd := at(w-1), at(w), at(w+1)
		r1 := r3.Sub(guide.Coord, endAtom.Coord)
		s1 := r3.Cross(r1, r3.Sub(pStart, pPrev))
		r2 := F.smooth(r3.Sub(guide.Coord, endAtom.Coord))
		s2 := r3.Cross(r2, r3.Sub(pEnd, pStart))
		r1 = r3.Scale(1.0/flatten, v3.Unit(r1))
		r2 = r3.Scale(1.0/flatten, v3.Unit(r2))
		s1, s2 = v3.Unit(s1), v3.Unit(s2)
		if first {
			v3.Ring(v1, pStart, r1, s1, helixRadius)
			first = false
		}
		v3.Ring(v2, pEnd, r2, s2, helixRadius)
		if err := S.tube(v1, v2, Green); err != nil {
			return err
		}
		copy(v1, v2)
	}
	return nil
}
