/*
 * options.go, part of gomolmesh.
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
	"log"

	chem "github.com/rmera/gomolmesh"
)

//Options contains the options for mesh generation.
type Options struct {
	Slices           int     //slices for bond cylinders. 0 means choose from the number of atoms.
	SphereSlices     int     //slices (and half the stacks) for atom spheres.
	RibbonSlices     int     //points on each cross-section ring of ribbons and helices.
	BrightnessFactor float64 //the molecule size is divided by this to scale the normals.
	AvailableMemory  int64   //bytes. Half of it is the budget for the geometry. 0 means no limit.
	BlockVertices    int     //capacity of the accumulator blocks
	Seed             int64   //for the random vectors used to build bond frames.
	Elements         *chem.ElementTable
	Logger           *log.Logger
}

//DefaultOptions returns the options used when none are given.
func DefaultOptions() *Options {
	r := new(Options)
	r.Slices = 0
	r.SphereSlices = 10
	r.RibbonSlices = 20
	r.BrightnessFactor = 12
	r.AvailableMemory = 0
	r.BlockVertices = DefaultBlockVertices
	r.Seed = 1
	return r
}

//autoSlices returns the bond slices for a molecule with natoms atoms.
func autoSlices(natoms int) int {
	switch {
	case natoms > 20000:
		return 10
	case natoms < 10000:
		return 20
	}
	return 10
}
