/*
 * plot_test.go, part of gomolmesh.
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

package chemplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/gomolmesh"
)

func readPeptide(Te *testing.T) *chem.Molecule {
	Te.Helper()
	mol, _, err := chem.ReadPDBFile("../mesh/testdata/peptide.pdb", nil)
	if err != nil {
		Te.Fatal(err)
	}
	return mol
}

func angleNear(a, b float64) bool {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d < 1
}

func TestRamaCalc(Te *testing.T) {
	mol := readPeptide(Te)
	sets := RamaList(mol, "")
	if len(sets) != 12 {
		Te.Fatalf("expected 12 residues, got %d", len(sets))
	}
	if sets[0].ResSeq != 2 || sets[11].ResSeq != 13 {
		Te.Errorf("unexpected residue range %d-%d", sets[0].ResSeq, sets[11].ResSeq)
	}
	if sets[0].Type != chem.AlphaHelix || sets[10].Type != chem.BetaSheet {
		Te.Errorf("unexpected secondary structure %v %v", sets[0].Type, sets[10].Type)
	}
	rama, err := RamaCalc(mol, sets)
	if err != nil {
		Te.Fatal(err)
	}
	for i, v := range rama {
		phi, psi := -57.0, -47.0
		if sets[i].ResSeq >= 9 {
			phi, psi = -120, 130
		}
		if !angleNear(v[0], phi) || !angleNear(v[1], psi) {
			Te.Errorf("residue %d: phi %.1f psi %.1f, expected %.0f %.0f", sets[i].ResSeq, v[0], v[1], phi, psi)
		}
	}
	if len(RamaList(mol, "B")) != 0 {
		Te.Errorf("chain filter ignored")
	}
	if _, err := RamaCalc(nil, sets); err == nil {
		Te.Errorf("nil molecule accepted")
	}
}

func TestRamaResidueFilter(Te *testing.T) {
	sets := []RamaSet{{ResName: "GLY"}, {ResName: "ALA"}, {ResName: "GLY"}, {ResName: "SER"}}
	in, idx := RamaResidueFilter(sets, []string{"GLY"}, true)
	if len(in) != 2 || idx[0] != 0 || idx[1] != -1 || idx[2] != 1 {
		Te.Errorf("bad filter-in result %v %v", in, idx)
	}
	out, idx := RamaResidueFilter(sets, []string{"GLY"}, false)
	if len(out) != 2 || out[1].ResName != "SER" || idx[3] != 1 {
		Te.Errorf("bad filter-out result %v %v", out, idx)
	}
}

func TestPlots(Te *testing.T) {
	mol := readPeptide(Te)
	dir := Te.TempDir()
	sets := RamaList(mol, "A")
	rama, err := RamaCalc(mol, sets)
	if err != nil {
		Te.Fatal(err)
	}
	rplot := filepath.Join(dir, "rama.png")
	if err := RamaPlot(rama, sets, []int{0, 5}, "peptide", rplot); err != nil {
		Te.Fatal(err)
	}
	if err := RamaPlot(rama, sets, []int{0, 1, 2, 3, 4}, "peptide", rplot); err == nil {
		Te.Errorf("more than 4 tagged residues accepted")
	}
	if err := RamaPlot(rama[:2], sets, nil, "peptide", rplot); err == nil {
		Te.Errorf("mismatched data accepted")
	}
	bplot := filepath.Join(dir, "bonds.png")
	if err := BondLengthPlot(mol.BondLengths(), 0, "bonds", bplot); err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{rplot, bplot} {
		if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
			Te.Errorf("plot %s not written: %v", name, err)
		}
	}
}
