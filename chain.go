/*
 * chain.go, part of gomolmesh.
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

//Residue names for the two nucleotide base families. The ladder
//rungs are built from different atoms for each.
var pyrimidines = []string{"DC", "DT", "C", "T", "U"}
var purines = []string{"DA", "DG", "A", "G", "8OG"}

func baseKind(resName string) BaseKind {
	switch {
	case isInString(pyrimidines, resName):
		return Pyrimidine
	case isInString(purines, resName):
		return Purine
	}
	return NoBase
}

//chainBuilder traces the polymer chains of a molecule.
type chainBuilder struct {
	mol   *Molecule
	terAt map[int]bool
	cur   []*ChainDescriptor
	desc  *ChainDescriptor
	last  *Atom
}

//buildChains groups the non-HETATM, non-water atoms in one descriptor per residue
//and the descriptors in chains. A chain ends when the chain identifier changes,
//at a TER record, and when a water or HETATM atom is found.
//Only chains with more than 2 descriptors are kept.
func (P *pdbParser) buildChains() {
	B := &chainBuilder{mol: P.mol, terAt: P.terAt}
	for _, at := range P.mol.Atoms {
		if at.Het || at.IsWater() {
			B.flush()
			B.commit()
			B.last = nil
			continue
		}
		if B.last != nil {
			if at.Chain != B.last.Chain || B.terAt[at.Order] {
				B.flush()
				B.commit()
			} else if !at.SameResidue(B.last) {
				B.flush()
			}
		}
		if B.desc == nil {
			B.desc = &ChainDescriptor{ResName: at.ResName, Chain: at.Chain, ResSeq: at.ResSeq, ICode: at.ICode, Base: baseKind(at.ResName)}
		}
		B.assign(at)
		B.last = at
	}
	B.flush()
	B.commit()
}

//flush appends the current descriptor to the current chain, if it has a backbone atom.
func (B *chainBuilder) flush() {
	d := B.desc
	B.desc = nil
	if d == nil || !d.HasBackbone() {
		return
	}
	if d.Guide == 0 {
		d.Guide = d.Backbone
	}
	B.cur = append(B.cur, d)
}

//commit adds the current chain to the molecule, if it is long enough to be splined.
func (B *chainBuilder) commit() {
	if len(B.cur) > 2 {
		B.mol.Chains = append(B.mol.Chains, B.cur)
		B.mol.RibbonNodeCount += len(B.cur)
	}
	B.cur = nil
}

//assign fills the role of the atom in the current descriptor, if it has one.
func (B *chainBuilder) assign(at *Atom) {
	d := B.desc
	s := at.Serial
	switch at.Name {
	case "CA":
		d.Backbone = s
	case "O":
		d.Guide = s
	case "N":
		d.Start = s
	case "C":
		d.End = s
	case "C5'":
		d.Backbone = s
		d.Type = Nucleic
		B.mol.HasNucleic = true
		at.Class = NucleicBackbone
	case "C1'":
		d.Guide = s
		at.Class = NucleicBackbone
	case "O5'":
		d.Start = s
	case "O3'":
		d.End = s
	case "C3'":
		d.NucleicEnd = s
		at.Class = NucleicBackbone
	case "C2'", "C4'", "O4'":
		at.Class = NucleicBackbone
	}
	switch d.Base {
	case Pyrimidine:
		switch at.Name {
		case "N1":
			d.Corner = s
			at.Class = NucleicBase
		case "C2":
			d.BaseGuide = s
		case "C6":
			d.Planar = s
		}
	case Purine:
		switch at.Name {
		case "N9":
			d.Corner = s
			at.Class = NucleicBase
		case "C4":
			d.BaseGuide = s
		case "N7":
			d.Planar = s
		}
	}
}

//annotate sets the type of the descriptors from the one for residue initSeq of the given chain
//to the one for endSeq, which is also flagged as the end of the run. If the end is not found,
//the last descriptor of the chain is flagged instead.
func (P *pdbParser) annotate(chain byte, initSeq, endSeq int, t SSType, startNotFound, endNotFound DiagCode) {
	for _, list := range P.mol.Chains {
		for j, d := range list {
			if d.Chain != chain || d.ResSeq != initSeq {
				continue
			}
			d.Type = t
			if d.ResSeq == endSeq {
				d.EndOfSS = true
				return
			}
			last := d
			for _, e := range list[j+1:] {
				last = e
				e.Type = t
				if e.ResSeq == endSeq {
					e.EndOfSS = true
					return
				}
			}
			P.rep.Report(endNotFound, 0, 0, "%s %c%d-%d: end residue not in chain", t, chain, initSeq, endSeq)
			last.EndOfSS = true
			return
		}
	}
	P.rep.Report(startNotFound, 0, 0, "%s %c%d-%d: start residue not in any chain", t, chain, initSeq, endSeq)
}
