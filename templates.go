/*
 * templates.go, part of gomolmesh.
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
	"bufio"
	"bytes"
	_ "embed"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/protein.rtf
var proteinTopology []byte

//go:embed data/dna.rtf
var dnaTopology []byte

//go:embed data/rna.rtf
var rnaTopology []byte

//Residue names that are read under another name.
var templateAliases = map[string]string{
	"ALAD": "ALA",
}

//Residues that get a copy of another residue's template after loading,
//if they are not defined themselves.
var templateCopies = map[string][]string{
	"HSD": {"HIS", "HSE", "HSP"},
}

//CHARMM uses a different naming convention than the PDB for some atoms.
//These are the renames, per residue, applied to the template names.
var allResidueRenames = map[string]string{"HN": "H", "O1P": "OP1", "O2P": "OP2"}

var longChainRenames = map[string]string{
	"HB1": "HB2", "HB2": "HB3",
	"HG1": "HG2", "HG2": "HG3",
	"HD1": "HD2", "HD2": "HD3",
	"HE1": "HE2", "HE2": "HE3",
}

var betaRenames = map[string]string{"HB1": "HB2", "HB2": "HB3"}

var residueRenames = map[string]map[string]string{
	"ARG": longChainRenames,
	"ASN": longChainRenames,
	"ASP": longChainRenames,
	"GLN": longChainRenames,
	"GLU": longChainRenames,
	"LYS": longChainRenames,
	"PRO": longChainRenames,
	"GLY": {"HA1": "HA2", "HA2": "HA3"},
	"HSD": betaRenames,
	"HSE": betaRenames,
	"HSP": betaRenames,
	"HIS": betaRenames,
	"LEU": betaRenames,
	"PHE": betaRenames,
	"TRP": betaRenames,
	"TYR": betaRenames,
	"ILE": {"HG11": "HG12", "HG12": "HG13", "CD": "CD1", "HD1": "HD11", "HD2": "HD12", "HD3": "HD13"},
	"MET": {"HB1": "HB2", "HB2": "HB3", "HG1": "HG2", "HG2": "HG3"},
	"SER": {"HB1": "HB2", "HB2": "HB3", "HG1": "HG"},
	"CYS": {"HB1": "HB2", "HB2": "HB3", "HG1": "HG"},
	"DT":  {"C5M": "C7", "H51": "H71", "H52": "H72", "H53": "H73"},
}

//pdbName returns the PDB name of the CHARMM atom name in the given residue.
func pdbName(res, name string) string {
	if n, ok := residueRenames[res][name]; ok {
		return n
	}
	if n, ok := allResidueRenames[name]; ok {
		return n
	}
	return name
}

//TemplateSet holds, for each residue name, the atom names bonded to each atom
//inside that residue. Pairs are stored in both directions.
type TemplateSet struct {
	res map[string]map[string][]string
}

var defaultTemplates struct {
	once sync.Once
	set  *TemplateSet
	err  error
}

//DefaultTemplates returns the protein, DNA and RNA templates embedded in the package.
func DefaultTemplates() *TemplateSet {
	defaultTemplates.once.Do(func() {
		defaultTemplates.set, defaultTemplates.err = LoadTemplates(bytes.NewReader(proteinTopology), bytes.NewReader(dnaTopology), bytes.NewReader(rnaTopology))
	})
	if defaultTemplates.err != nil {
		panic(defaultTemplates.err.Error())
	}
	return defaultTemplates.set
}

//NewTemplateSet returns an empty TemplateSet.
func NewTemplateSet() *TemplateSet {
	return &TemplateSet{res: make(map[string]map[string][]string)}
}

//LoadTemplates builds a TemplateSet from one or more CHARMM-style topology files.
func LoadTemplates(readers ...io.Reader) (*TemplateSet, error) {
	T := NewTemplateSet()
	for _, r := range readers {
		if err := T.Load(r); err != nil {
			return nil, errDecorate(err, "LoadTemplates")
		}
	}
	T.copies()
	return T, nil
}

//Load reads the RESI, BOND and DOUBLE lines of a CHARMM topology file and adds them
//to the set. Pairs with atoms from a neighbouring residue ("+N", "-O3'") are ignored,
//as are all other records. A '!' starts a comment.
func (T *TemplateSet) Load(r io.Reader) error {
	in := bufio.NewScanner(r)
	current := ""
	for in.Scan() {
		line := in.Text()
		if i := strings.IndexByte(line, '!'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToUpper(fields[0]) {
		case "RESI":
			if len(fields) < 2 {
				current = ""
				continue
			}
			current = strings.ToUpper(fields[1])
			if a, ok := templateAliases[current]; ok {
				current = a
			}
			if _, ok := T.res[current]; !ok {
				T.res[current] = make(map[string][]string)
			}
		case "BOND", "DOUBLE":
			if current == "" {
				continue
			}
			pairs := fields[1:]
			for i := 0; i+1 < len(pairs); i += 2 {
				T.add(current, pairs[i], pairs[i+1])
			}
		case "END":
			current = ""
		}
	}
	if err := in.Err(); err != nil {
		return errDecorate(err, "Load")
	}
	return nil
}

func (T *TemplateSet) add(res, n1, n2 string) {
	if strings.HasPrefix(n1, "+") || strings.HasPrefix(n1, "-") || strings.HasPrefix(n2, "+") || strings.HasPrefix(n2, "-") {
		return
	}
	n1, n2 = pdbName(res, n1), pdbName(res, n2)
	if n1 == n2 {
		return
	}
	m := T.res[res]
	if !isInString(m[n1], n2) {
		m[n1] = append(m[n1], n2)
	}
	if !isInString(m[n2], n1) {
		m[n2] = append(m[n2], n1)
	}
}

//copies gives the histidine protonation states, and any other residue with an
//entry in templateCopies, the template of their base residue.
func (T *TemplateSet) copies() {
	for from, targets := range templateCopies {
		src, ok := T.res[from]
		if !ok {
			continue
		}
		for _, to := range targets {
			if _, ok := T.res[to]; ok {
				continue
			}
			T.res[to] = src
		}
	}
}

//Has returns true if the set has a template for the residue.
func (T *TemplateSet) Has(res string) bool {
	_, ok := T.res[res]
	return ok
}

//Partners returns the names of the atoms bonded to atom in the residue res.
//The returned slice should not be modified.
func (T *TemplateSet) Partners(res, atom string) []string {
	return T.res[res][atom]
}

//Residues returns the sorted names of the residues in the set.
func (T *TemplateSet) Residues() []string {
	ret := make([]string, 0, len(T.res))
	for k := range T.res {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}
