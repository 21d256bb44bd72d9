/*
 * graph.go, part of gomolmesh.
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

package chemgraph

import (
	"fmt"
	"math"
	"sort"

	chem "github.com/rmera/gomolmesh"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Atom is a graph node wrapping a chem.Atom. Its ID is the atom serial.
type Atom struct {
	*chem.Atom
}

func (A *Atom) ID() int64 {
	return int64(A.Serial)
}

//Topology is the bond graph of a molecule. Edges are weighted by the bond length.
type Topology struct {
	*simple.WeightedUndirectedGraph
	mol *chem.Molecule
}

//FromMolecule builds the bond graph of mol.
func FromMolecule(mol *chem.Molecule) *Topology {
	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, at := range mol.Atoms {
		g.AddNode(&Atom{at})
	}
	for i, b := range mol.Bonds {
		n1, n2 := g.Node(int64(b.At1)), g.Node(int64(b.At2))
		if n1 == nil || n2 == nil {
			panic(fmt.Sprintf("FromMolecule: Bond %d has at least one non-existent atom", i))
		}
		a1, a2 := n1.(*Atom), n2.(*Atom)
		g.SetWeightedEdge(g.NewWeightedEdge(n1, n2, chem.Distance(a1.Atom, a2.Atom)))
	}
	return &Topology{WeightedUndirectedGraph: g, mol: mol}
}

func serials(nodes []graph.Node) []int {
	ret := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, int(n.ID()))
	}
	sort.Ints(ret)
	return ret
}

//Components returns the serials of the atoms in each connected fragment of the molecule.
//Each fragment is sorted, and the fragments are ordered by their first serial.
func (T *Topology) Components() [][]int {
	cc := topo.ConnectedComponents(T)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, serials(c))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

//Neighbors returns the sorted serials of the atoms bonded to the given one.
func (T *Topology) Neighbors(serial int) []int {
	return serials(graph.NodesOf(T.From(int64(serial))))
}

//Path returns the serials of the atoms in the shortest bonded path from s1 to s2,
//and its length in A. The path is nil if the atoms are not connected.
func (T *Topology) Path(s1, s2 int) ([]int, float64) {
	from := T.Node(int64(s1))
	if from == nil || T.Node(int64(s2)) == nil {
		return nil, math.Inf(1)
	}
	p, w := path.DijkstraFrom(from, T).To(int64(s2))
	if len(p) == 0 {
		return nil, math.Inf(1)
	}
	ret := make([]int, len(p))
	for i, n := range p {
		ret[i] = int(n.ID())
	}
	return ret, w
}

//ResidueConnected returns true if all the atoms of the given residue belong to the same
//bonded fragment, counting only bonds within the residue. It returns false if the residue
//is not found.
func ResidueConnected(mol *chem.Molecule, chain byte, resSeq int) bool {
	atoms := chem.ResidueAtoms(mol, chain, resSeq)
	if len(atoms) == 0 {
		return false
	}
	g := simple.NewUndirectedGraph()
	for _, at := range atoms {
		g.AddNode(&Atom{at})
	}
	for _, b := range mol.Bonds {
		n1, n2 := g.Node(int64(b.At1)), g.Node(int64(b.At2))
		if n1 != nil && n2 != nil {
			g.SetEdge(g.NewEdge(n1, n2))
		}
	}
	return len(topo.ConnectedComponents(g)) == 1
}
