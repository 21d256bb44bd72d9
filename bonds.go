/*
 * bonds.go, part of gomolmesh.
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
	"gonum.org/v1/gonum/stat"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Note that just common "bio-elements" are present
var symbolCovrad = map[string]float64{
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,  // hs
	"Fe": 1.52, //hs
	"Mn": 1.61, //hs
	"Ni": 1.24,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

//templateBonds adds the bonds given by the residue templates. A residue is a run of
//consecutive non-HETATM atoms with the same chain, sequence number and insertion code.
func (P *pdbParser) templateBonds() {
	atoms := P.mol.Atoms
	for i := 0; i < len(atoms); {
		if atoms[i].Het {
			i++
			continue
		}
		j := i + 1
		for j < len(atoms) && !atoms[j].Het && atoms[j].SameResidue(atoms[i]) {
			j++
		}
		P.residueBonds(atoms[i:j])
		i = j
	}
}

func (P *pdbParser) residueBonds(res []*Atom) {
	name := res[0].ResName
	if res[0].IsWater() {
		return
	}
	if !P.templates.Has(name) {
		P.rep.Report(DiagMissingTemplate, 0, res[0].Serial, "no template for %s %d%c", name, res[0].ResSeq, res[0].Chain)
		return
	}
	for _, at := range res {
		for _, partner := range P.templates.Partners(name, at.Name) {
			for _, other := range res {
				if other != at && other.Name == partner {
					P.mol.AddBond(at.Serial, other.Serial, FromTemplate)
					break
				}
			}
		}
	}
	for _, at := range res {
		if at.BondCount == 0 {
			P.rep.Report(DiagUnbondedAtom, 0, at.Serial, "%s of %s %d%c got no template bonds", at.Name, name, at.ResSeq, at.Chain)
		}
	}
}

//backboneLinks bonds each C (or O3') atom to the N (or P) atom of the following residue
//if they are close enough. HETATM atoms are not considered.
func (P *pdbParser) backboneLinks() {
	var last *Atom
	dists := make([]float64, 0, len(P.mol.Chains)*20)
	for _, at := range P.mol.Atoms {
		if at.Het {
			continue
		}
		switch at.Name {
		case "O3'", "C":
			last = at
		case "P", "N":
			if last == nil || at.ResSeq != last.ResSeq+1 || at.Chain != last.Chain {
				continue
			}
			d := Distance(last, at)
			if d < P.opts.BackboneMaxDist {
				P.mol.AddBond(last.Serial, at.Serial, FromBackbone)
				dists = append(dists, d)
			} else {
				P.rep.Report(DiagBackboneTooFar, 0, at.Serial, "%s %d-%s %d distance %.2f", last.Name, last.Serial, at.Name, at.Serial, d)
			}
			last = nil
		}
	}
	if len(dists) > 0 {
		P.rep.Logf("%d backbone links, mean length %.3f A", len(dists), stat.Mean(dists, nil))
	}
}

//hetDistanceBonds bonds the atoms of each HETATM residue by a simple distance
//criterium, similar to that described in DOI:10.1186/1758-2946-3-33. Residues where
//every atom already has a bond, usually from CONECT records, are left alone.
func (P *pdbParser) hetDistanceBonds() {
	atoms := P.mol.Atoms
	for i := 0; i < len(atoms); {
		if !atoms[i].Het {
			i++
			continue
		}
		j := i + 1
		for j < len(atoms) && atoms[j].Het && atoms[j].SameResidue(atoms[i]) {
			j++
		}
		res := atoms[i:j]
		i = j
		unbonded := false
		for _, at := range res {
			if at.BondCount == 0 {
				unbonded = true
				break
			}
		}
		if !unbonded || res[0].IsWater() {
			continue
		}
		for k, at1 := range res {
			cov1 := symbolCovrad[at1.Symbol]
			if cov1 == 0 {
				continue
			}
			for _, at2 := range res[k+1:] {
				cov2 := symbolCovrad[at2.Symbol]
				if cov2 == 0 {
					continue
				}
				d := Distance(at1, at2)
				if d < cov1+cov2+bondtol && d > tooclose {
					P.mol.AddBond(at1.Serial, at2.Serial, FromDistance)
				}
			}
		}
	}
}
