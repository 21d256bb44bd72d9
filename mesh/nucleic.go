/*
 * nucleic.go, part of gomolmesh.
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
	v3 "github.com/rmera/gomolmesh/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//LadderVertices is the number of vertices of each ladder rung.
const LadderVertices = 36

//rungLength returns the length of the rung for the given base.
func rungLength(b chem.BaseKind) float64 {
	if b == chem.Purine {
		return 3
	}
	return 5
}

//Ladders emits a rung for each nucleotide of the molecule that has its base atoms.
func (S *Session) Ladders() error {
	for _, list := range S.mol.Chains {
		for _, d := range list {
			if d.Base == chem.NoBase {
				continue
			}
			if err := S.rung(d); err != nil {
				return err
			}
		}
	}
	return nil
}

//rung emits a flat box. Seen from above:
//
//	c2 ---- p ---- c1 (corner atom)
//	|               |
//	|               r
//	|               |
//	c4 ------------ c3
//
//p goes from the corner atom to the guide atom, r towards the planar atom.
func (S *Session) rung(d *chem.ChainDescriptor) error {
	corner, guide, planar := S.atom(d.Corner), S.atom(d.BaseGuide), S.atom(d.Planar)
	if corner == nil || guide == nil || planar == nil {
		S.rep.Report(chem.DiagMissingGeometryAtom, 0, d.Corner, "nucleotide %s %d%c lacks its base atoms", d.ResName, d.ResSeq, d.Chain)
		return nil
	}
	c1 := corner.Coord
	p := v3.Unit(r3.Sub(guide.Coord, c1))
	r := v3.Unit(r3.Sub(planar.Coord, c1))
	s := r3.Cross(p, r)
	across := r3.Scale(2, r3.Cross(s, p))
	c2 := r3.Add(c1, r3.Scale(rungLength(d.Base), p))
	c3 := r3.Add(c1, across)
	c4 := r3.Add(c2, across)
	up := r3.Scale(0.25, s)
	t := [4]r3.Vec{r3.Add(c1, up), r3.Add(c2, up), r3.Add(c3, up), r3.Add(c4, up)}
	b := [4]r3.Vec{r3.Sub(c1, up), r3.Sub(c2, up), r3.Sub(c3, up), r3.Sub(c4, up)}
	c := BaseColor(d.ResName)
	return S.primitive(LadderVertices, "ladder rung", func() bool {
		S.face(t[0], t[2], t[1], c)
		S.face(t[2], t[3], t[1], c)
		S.face(b[0], b[1], b[2], c)
		S.face(b[2], b[1], b[3], c)
		//sides
		S.face(t[0], b[0], b[2], c)
		S.face(t[0], b[2], t[2], c)
		S.face(t[2], b[2], b[3], c)
		S.face(t[2], b[3], t[3], c)
		S.face(t[3], b[3], b[1], c)
		S.face(t[3], b[1], t[1], c)
		S.face(t[1], b[1], b[0], c)
		S.face(t[1], b[0], t[0], c)
		return !v3.IsZero(s)
	})
}
