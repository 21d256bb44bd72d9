/*
 * handy.go, part of gomolmesh.
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
	"sort"
	"strings"
)

//ResidueAtoms returns the atoms of the residue with the given chain and sequence number,
//in file order. The insertion code is ignored.
func ResidueAtoms(mol *Molecule, chain byte, resSeq int) []*Atom {
	ret := make([]*Atom, 0, 10)
	for _, at := range mol.Atoms {
		if at.Chain == chain && at.ResSeq == resSeq {
			ret = append(ret, at)
		}
	}
	return ret
}

//ChainIDs returns the sorted, distinct chain identifiers present in the molecule.
func ChainIDs(mol *Molecule) []string {
	seen := make(map[byte]bool)
	ret := make([]string, 0, 2)
	for _, at := range mol.Atoms {
		if seen[at.Chain] {
			continue
		}
		seen[at.Chain] = true
		ret = append(ret, string(at.Chain))
	}
	sort.Strings(ret)
	return ret
}

//isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	if container == nil {
		return false
	}
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

//padRight returns s padded with spaces up to n characters.
func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
