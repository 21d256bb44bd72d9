/*
 * colors.go, part of gomolmesh.
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
	"github.com/go-gl/mathgl/mgl32"
	chem "github.com/rmera/gomolmesh"
)

var (
	White = mgl32.Vec4{1, 1, 1, 1}
	Green = mgl32.Vec4{0, 1, 0, 1}
	Red   = mgl32.Vec4{1, 0, 0, 1}
)

func rgb(r, g, b int) mgl32.Vec4 {
	return mgl32.Vec4{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

//Colors for the ladder rungs, by nucleotide.
var baseColors = map[string]mgl32.Vec4{
	"A":  rgb(160, 160, 255),
	"DA": rgb(160, 160, 255),
	"G":  rgb(255, 112, 112),
	"DG": rgb(255, 112, 112),
	"C":  rgb(255, 140, 75),
	"DC": rgb(255, 140, 75),
	"T":  rgb(160, 255, 160),
	"DT": rgb(160, 255, 160),
	"U":  rgb(255, 128, 160),
}

//BaseColor returns the color of the ladder rung for the given residue. Unknown
//residues are white.
func BaseColor(resName string) mgl32.Vec4 {
	if c, ok := baseColors[resName]; ok {
		return c
	}
	return White
}

//atomColor returns the color of the element of the atom, or def if it's not in the table.
func (S *Session) atomColor(at *chem.Atom, def mgl32.Vec4) mgl32.Vec4 {
	c, ok := S.elements.Color(at.Symbol)
	if !ok {
		return def
	}
	return mgl32.Vec4(c)
}
