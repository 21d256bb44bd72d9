/*
 * geometric.go, part of gomolmesh.
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

package chem

import (
	"math"

	v3 "github.com/rmera/gomolmesh/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//BoundingBox returns the corners of the box containing all the non-HETATM atoms
//of the molecule. ok is false if there are no such atoms.
func (M *Molecule) BoundingBox() (min, max r3.Vec, ok bool) {
	points := make([]r3.Vec, 0, len(M.Atoms))
	for _, at := range M.Atoms {
		if at.Het {
			continue
		}
		points = append(points, at.Coord)
	}
	return v3.Bounds(points)
}

//Recenter translates all atoms so the bounding box of the non-HETATM atoms is centered
//at the origin, and sets the Offset of the molecule to the diagonal of that box. The
//translation is accumulated in M.Center, so calling it again does nothing.
//If legacy is given and true, the Offset is computed with the formula of older
//renderers, sqrt(dx^2+dy^2+dz+dz).
func (M *Molecule) Recenter(legacy ...bool) {
	min, max, ok := M.BoundingBox()
	if !ok {
		return
	}
	extent := r3.Sub(max, min)
	center := r3.Add(r3.Scale(0.5, extent), min)
	if len(legacy) > 0 && legacy[0] {
		M.Offset = math.Sqrt(extent.X*extent.X + extent.Y*extent.Y + extent.Z + extent.Z)
	} else {
		M.Offset = r3.Norm(extent)
	}
	for _, at := range M.Atoms {
		at.Coord = r3.Sub(at.Coord, center)
	}
	M.Center = r3.Add(M.Center, center)
	M.Min = r3.Sub(min, center)
	M.Max = r3.Sub(max, center)
}

//Centroid returns the geometric center of the given atoms.
func Centroid(atoms []*Atom) r3.Vec {
	points := make([]r3.Vec, len(atoms))
	for i, at := range atoms {
		points[i] = at.Coord
	}
	return v3.Mean(points...)
}
