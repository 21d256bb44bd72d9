/*
 * chem.go, part of gomolmesh.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

//Atom contains the information read for one PDB ATOM or HETATM record.
//Coordinates are kept in Coord, and are shifted when the molecule is recentered.
type Atom struct {
	Serial    int
	Name      string
	AltLoc    byte
	ResName   string
	Chain     byte
	ResSeq    int
	ICode     byte
	Symbol    string
	Coord     r3.Vec
	Het       bool // is hetatm in the pdb file? Stays true if Class changes.
	Class     AtomClass
	BondCount int //number of bonds this atom takes part in.
	Order     int //position of the atom in the file, among the stored atoms.
}

//IsWater returns true if the atom belongs to a water molecule.
func (A *Atom) IsWater() bool {
	return A.ResName == "HOH" || A.ResName == "WAT"
}

//SameResidue returns true if both atoms belong to the same residue:
//same chain, sequence number and insertion code.
func (A *Atom) SameResidue(B *Atom) bool {
	return A.Chain == B.Chain && A.ResSeq == B.ResSeq && A.ICode == B.ICode
}

func (A *Atom) String() string {
	return fmt.Sprintf("%s %d %s %c%d%c", A.Name, A.Serial, A.ResName, A.Chain, A.ResSeq, A.ICode)
}

//AtomClass tags atoms that have a special role in the rendering.
type AtomClass int

const (
	StandardAtom AtomClass = iota
	HeteroAtom
	NucleicBackbone
	NucleicBase
)

//BondSource records which of the parsing stages created a bond.
type BondSource int

const (
	FromTemplate BondSource = iota
	FromBackbone
	FromConect
	FromDistance
)

func (B BondSource) String() string {
	switch B {
	case FromTemplate:
		return "template"
	case FromBackbone:
		return "backbone"
	case FromConect:
		return "conect"
	case FromDistance:
		return "distance"
	}
	return "unknown"
}

//Bond is an unordered pair of atoms, referenced by serial number.
type Bond struct {
	At1    int
	At2    int
	Source BondSource
}

//Cross returns the serial of the atom bonded to the one with serial s,
//or -1 if s doesn't take part in the bond.
func (B Bond) Cross(s int) int {
	switch s {
	case B.At1:
		return B.At2
	case B.At2:
		return B.At1
	}
	return -1
}

//SSType is the secondary structure assigned to a chain descriptor.
type SSType int

const (
	Ribbon SSType = iota //plain coil
	AlphaHelix
	BetaSheet
	Nucleic
)

func (S SSType) String() string {
	switch S {
	case Ribbon:
		return "ribbon"
	case AlphaHelix:
		return "helix"
	case BetaSheet:
		return "sheet"
	case Nucleic:
		return "nucleic"
	}
	return "unknown"
}

//BaseKind identifies the nucleotide base family of a descriptor.
type BaseKind int

const (
	NoBase BaseKind = iota
	Purine
	Pyrimidine
)

//ChainDescriptor holds the atoms that define one residue of a polymer chain
//for the purposes of tracing the backbone. The atoms are referenced by serial,
//0 means the role was not filled.
type ChainDescriptor struct {
	ResName string
	Chain   byte
	ResSeq  int
	ICode   byte

	Backbone   int //CA or C5'
	Guide      int //O or C1'
	Start      int //N or O5'
	End        int //C or O3'
	NucleicEnd int //C3'

	Base      BaseKind
	Corner    int //N1 or N9
	BaseGuide int //C2 or C4
	Planar    int //C6 or N7

	Type       SSType
	EndOfSS    bool //last descriptor of a helix or sheet
	CurveIndex int  //position of the descriptor on the chain spline
}

//HasBackbone returns true if the backbone atom of the descriptor was found.
func (C *ChainDescriptor) HasBackbone() bool {
	return C.Backbone > 0
}

//Helix is an entry of a HELIX record.
type Helix struct {
	Serial    int
	ID        string
	InitRes   string
	InitChain byte
	InitSeq   int
	InitICode byte
	EndRes    string
	EndChain  byte
	EndSeq    int
	EndICode  byte
	Class     int
	Comment   string
	Length    int
}

//SheetResidue identifies one of the residues named in a SHEET record.
type SheetResidue struct {
	Atom  string
	Res   string
	Chain byte
	Seq   int
	ICode byte
}

//Sheet is an entry of a SHEET record.
type Sheet struct {
	Strand     int
	ID         string
	NumStrands int
	Init       SheetResidue
	End        SheetResidue
	Sense      int
	Current    SheetResidue //registration, only for strands after the first.
	Previous   SheetResidue
}

//Molecule contains all the information obtained from a PDB file, after the
//geometry has been recentered and the topology inferred.
type Molecule struct {
	Name    string
	Atoms   []*Atom //in file order
	Bonds   []Bond
	Helices []Helix
	Sheets  []Sheet
	Chains  [][]*ChainDescriptor

	//Center is the accumulated translation applied to the coordinates.
	Center r3.Vec
	Min    r3.Vec
	Max    r3.Vec
	//Offset is a measure of the size of the molecule. It is used to scale
	//the brightness of the normals.
	Offset float64

	RibbonNodeCount int
	MaxSerial       int
	HasNucleic      bool
	Ters            []int //atom order at which each TER record was found

	serials map[int]*Atom
	bondIdx map[[2]int]int
}

//NewMolecule returns an empty, ready to use, molecule.
func NewMolecule(name string) *Molecule {
	M := new(Molecule)
	M.Name = name
	M.serials = make(map[int]*Atom)
	M.bondIdx = make(map[[2]int]int)
	M.Min = r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	M.Max = r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	return M
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//Atom returns the atom with the given serial number, or nil if no such
//atom was stored.
func (M *Molecule) Atom(serial int) *Atom {
	if serial <= 0 {
		return nil
	}
	return M.serials[serial]
}

//BondCount returns the number of distinct bonds in the molecule.
func (M *Molecule) BondCount() int {
	return len(M.Bonds)
}

//AddAtom appends the atom to the molecule. It returns false if an atom with the
//same serial is already present, in which case the molecule is not changed.
func (M *Molecule) AddAtom(at *Atom) bool {
	if _, ok := M.serials[at.Serial]; ok {
		return false
	}
	at.Order = len(M.Atoms)
	if at.Serial > M.MaxSerial {
		M.MaxSerial = at.Serial
	}
	M.Atoms = append(M.Atoms, at)
	M.serials[at.Serial] = at
	return true
}

//AddBond adds a bond between the atoms with serials s1 and s2. Repeated pairs, in either order,
//and self-pairs are ignored. It returns true if a new bond was added.
func (M *Molecule) AddBond(s1, s2 int, source BondSource) bool {
	if s1 == s2 {
		return false
	}
	a1, a2 := M.Atom(s1), M.Atom(s2)
	if a1 == nil || a2 == nil {
		return false
	}
	key := bondKey(s1, s2)
	if _, ok := M.bondIdx[key]; ok {
		return false
	}
	M.bondIdx[key] = len(M.Bonds)
	M.Bonds = append(M.Bonds, Bond{At1: s1, At2: s2, Source: source})
	a1.BondCount++
	a2.BondCount++
	return true
}

//Bonded returns true if the atoms with serials s1 and s2 are bonded.
func (M *Molecule) Bonded(s1, s2 int) bool {
	_, ok := M.bondIdx[bondKey(s1, s2)]
	return ok
}

//BondedTo returns the atoms bonded to the one with the given serial, in bond order.
func (M *Molecule) BondedTo(serial int) []*Atom {
	ret := make([]*Atom, 0, 4)
	for _, b := range M.Bonds {
		if c := b.Cross(serial); c > 0 {
			ret = append(ret, M.Atom(c))
		}
	}
	return ret
}

//BondLengths returns the length of each bond, in bond order.
func (M *Molecule) BondLengths() []float64 {
	ret := make([]float64, 0, len(M.Bonds))
	for _, b := range M.Bonds {
		ret = append(ret, Distance(M.Atom(b.At1), M.Atom(b.At2)))
	}
	return ret
}

func bondKey(s1, s2 int) [2]int {
	if s1 > s2 {
		s1, s2 = s2, s1
	}
	return [2]int{s1, s2}
}

//Distance returns the distance between two atoms.
func Distance(a1, a2 *Atom) float64 {
	return r3.Norm(r3.Sub(a1.Coord, a2.Coord))
}

//SqDistance returns the squared distance between two atoms.
func SqDistance(a1, a2 *Atom) float64 {
	return r3.Norm2(r3.Sub(a1.Coord, a2.Coord))
}

//ChainCount returns the number of traced chains.
func (M *Molecule) ChainCount() int {
	return len(M.Chains)
}

//Stats contains the counts external code needs to choose a representation
//and estimate its memory cost.
type Stats struct {
	Atoms       int
	Bonds       int
	Chains      int
	RibbonNodes int
	Helices     int
	Sheets      int
}

//Stats returns the counts for the molecule.
func (M *Molecule) Stats() Stats {
	return Stats{
		Atoms:       len(M.Atoms),
		Bonds:       len(M.Bonds),
		Chains:      len(M.Chains),
		RibbonNodes: M.RibbonNodeCount,
		Helices:     len(M.Helices),
		Sheets:      len(M.Sheets),
	}
}
