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

package chem

import "log"

//ParseOptions contains the options for PDBRead and related functions.
type ParseOptions struct {
	ConectMaxSqDist float64 //CONECT pairs farther than this (squared, in A^2) are rejected.
	BackboneMaxDist float64 //Peptide/phosphodiester links longer than this (A) are rejected.
	//LegacyOffset makes the molecule size be computed with the formula
	//of older renderers, which is not a real diagonal.
	LegacyOffset bool
	//HetDistanceBonds makes HETATM residues with atoms left without bonds be
	//bonded by a covalent radii criterion, in addition to their CONECT records.
	HetDistanceBonds bool
	Templates        *TemplateSet
	Logger           *log.Logger //nil means no logging.
}

//DefaultParseOptions returns the options used by PDBRead when none are given.
func DefaultParseOptions() *ParseOptions {
	r := new(ParseOptions)
	r.ConectMaxSqDist = 20
	r.BackboneMaxDist = 2.0
	r.LegacyOffset = false
	r.HetDistanceBonds = false
	r.Templates = nil //the embedded CHARMM-derived set.
	return r
}
