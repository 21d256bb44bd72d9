/*
 * pdb_test.go, part of gomolmesh.
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
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/spatial/r3"
)

const alaPDB = `ATOM      1  N   ALA A   1      -0.966   0.493   1.500  1.00  0.00           N
ATOM      2  CA  ALA A   1       0.257   0.418   0.692  1.00  0.00           C
ATOM      3  C   ALA A   1      -0.094   0.017  -0.716  1.00  0.00           C
ATOM      4  O   ALA A   1      -1.056  -0.682  -0.923  1.00  0.00           O
ATOM      5  CB  ALA A   1       1.204  -0.620   1.296  1.00  0.00           C
ATOM      6  H   ALA A   1      -1.500   1.200   1.300  1.00  0.00           H
ATOM      7  HA  ALA A   1       0.700   1.300   0.700  1.00  0.00            
ATOM      8  OXT ALA A   1       0.500   0.500  -1.500  1.00  0.00           O
END
`

const linkClosePDB = `ATOM      1  C   GLY A   1       0.000   0.000   0.000  1.00  0.00           C
ATOM      2  N   GLY A   2       1.500   0.000   0.000  1.00  0.00           N
`

const linkFarPDB = `ATOM      1  C   GLY A   1       0.000   0.000   0.000  1.00  0.00           C
ATOM      2  N   GLY A   2       3.000   0.000   0.000  1.00  0.00           N
`

const conectPDB = `HETATM    1  C1  LIG A   1       0.000   0.000   0.000  1.00  0.00           C
HETATM    2  C2  LIG A   1       1.400   0.000   0.000  1.00  0.00           C
HETATM    3  C3  LIG A   1       5.000   0.000   0.000  1.00  0.00           C
HETATM    5  O1  LIG A   1       0.000   1.300   0.000  1.00  0.00           O
CONECT    1    2    3
CONECT    2    1
CONECT    1    4    5
CONECT    5    1    1   99
CONECT   99    1
END
`

const chainsPDB = `HELIX    1   1 ALA A    5  ALA A   10  1                                   6
SHEET    1   A 1 ALA A   2  ALA A   3  0
HELIX    2   2 ALA C    5  ALA C   10  1                                   6
HELIX    3   3 ALA A   11  ALA A   40  1                                  30
ATOM      1  CA  ALA A   1       3.420   1.683   1.081  1.00  0.00           C
ATOM      2  CA  ALA A   2       6.840   1.819  -0.832  1.00  0.00           C
ATOM      3  CA  ALA A   3      10.260   0.282  -1.980  1.00  0.00           C
ATOM      4  CA  ALA A   4      13.680  -1.514  -1.307  1.00  0.00           C
ATOM      5  CA  ALA A   5      17.100  -1.918   0.567  1.00  0.00           C
ATOM      6  CA  ALA A   6      20.520  -0.559   1.920  1.00  0.00           C
ATOM      7  CA  ALA A   7      23.940   1.314   1.508  1.00  0.00           C
ATOM      8  CA  ALA A   8      27.360   1.979  -0.291  1.00  0.00           C
ATOM      9  CA  ALA A   9      30.780   0.824  -1.822  1.00  0.00           C
ATOM     10  CA  ALA A  10      34.200  -1.088  -1.678  1.00  0.00           C
ATOM     11  CA  ALA A  11      37.620  -2.000   0.009  1.00  0.00           C
ATOM     12  CA  ALA A  12      41.040  -1.073   1.688  1.00  0.00           C
TER
ATOM     13  CA  ALA B   1       3.800  10.000   0.000  1.00  0.00           C
ATOM     14  CA  ALA B   2       7.600  10.000   0.000  1.00  0.00           C
END
`

const terPDB = `ATOM      1  CA  ALA A   1       3.800   0.000   0.000  1.00  0.00           C
ATOM      2  CA  ALA A   2       7.600   0.000   0.000  1.00  0.00           C
ATOM      3  CA  ALA A   3      11.400   0.000   0.000  1.00  0.00           C
TER
ATOM      4  CA  ALA A   4      15.200   0.000   0.000  1.00  0.00           C
ATOM      5  CA  ALA A   5      19.000   0.000   0.000  1.00  0.00           C
ATOM      6  CA  ALA A   6      22.800   0.000   0.000  1.00  0.00           C
END
`

const modelsPDB = `HETATM    1  C1  LIG A   1       0.000   0.000   0.000  1.00  0.00           C
HETATM    2  C2  LIG A   1       1.500   0.000   0.000  1.00  0.00           C
ENDMDL
MODEL        2
HETATM    3  C1  LIG A   1       0.000   0.000   0.000  1.00  0.00           C
HETATM    4  C2  LIG A   1       1.500   0.000   0.000  1.00  0.00           C
ENDMDL
CONECT    1    2
CONECT    3    4
END
`

const dnaPDB = `ATOM      1  P    DA B   1       6.000   0.000   0.340  1.00  0.00           P
ATOM      2  O5'  DA B   1       7.500   0.000   0.340  1.00  0.00           O
ATOM      3  C5'  DA B   1       8.200   1.200   0.340  1.00  0.00           C
ATOM      4  C4'  DA B   1       9.700   1.000   0.340  1.00  0.00           C
ATOM      5  O4'  DA B   1      10.200   2.300   0.540  1.00  0.00           O
ATOM      6  C3'  DA B   1      10.300   0.300   1.540  1.00  0.00           C
ATOM      7  O3'  DA B   1      11.700   0.500   1.540  1.00  0.00           O
ATOM      8  C2'  DA B   1      10.200  -1.200   1.240  1.00  0.00           C
ATOM      9  C1'  DA B   1      10.800   2.200   1.740  1.00  0.00           C
ATOM     10  N9   DA B   1      10.900   3.500   2.440  1.00  0.00           N
ATOM     11  C8   DA B   1      10.000   4.500   2.340  1.00  0.00           C
ATOM     12  N7   DA B   1      10.400   5.600   2.940  1.00  0.00           N
ATOM     13  C5   DA B   1      11.700   5.300   3.340  1.00  0.00           C
ATOM     14  C4   DA B   1      11.900   4.000   3.140  1.00  0.00           C
ATOM     15  P    DA B   2      12.000   0.000   0.680  1.00  0.00           P
ATOM     16  O5'  DA B   2      13.500   0.000   0.680  1.00  0.00           O
ATOM     17  C5'  DA B   2      14.200   1.200   0.680  1.00  0.00           C
ATOM     18  C4'  DA B   2      15.700   1.000   0.680  1.00  0.00           C
ATOM     19  O4'  DA B   2      16.200   2.300   0.880  1.00  0.00           O
ATOM     20  C3'  DA B   2      16.300   0.300   1.880  1.00  0.00           C
ATOM     21  O3'  DA B   2      17.700   0.500   1.880  1.00  0.00           O
ATOM     22  C2'  DA B   2      16.200  -1.200   1.580  1.00  0.00           C
ATOM     23  C1'  DA B   2      16.800   2.200   2.080  1.00  0.00           C
ATOM     24  N9   DA B   2      16.900   3.500   2.780  1.00  0.00           N
ATOM     25  C8   DA B   2      16.000   4.500   2.680  1.00  0.00           C
ATOM     26  N7   DA B   2      16.400   5.600   3.280  1.00  0.00           N
ATOM     27  C5   DA B   2      17.700   5.300   3.680  1.00  0.00           C
ATOM     28  C4   DA B   2      17.900   4.000   3.480  1.00  0.00           C
ATOM     29  P    DA B   3      18.000   0.000   1.020  1.00  0.00           P
ATOM     30  O5'  DA B   3      19.500   0.000   1.020  1.00  0.00           O
ATOM     31  C5'  DA B   3      20.200   1.200   1.020  1.00  0.00           C
ATOM     32  C4'  DA B   3      21.700   1.000   1.020  1.00  0.00           C
ATOM     33  O4'  DA B   3      22.200   2.300   1.220  1.00  0.00           O
ATOM     34  C3'  DA B   3      22.300   0.300   2.220  1.00  0.00           C
ATOM     35  O3'  DA B   3      23.700   0.500   2.220  1.00  0.00           O
ATOM     36  C2'  DA B   3      22.200  -1.200   1.920  1.00  0.00           C
ATOM     37  C1'  DA B   3      22.800   2.200   2.420  1.00  0.00           C
ATOM     38  N9   DA B   3      22.900   3.500   3.120  1.00  0.00           N
ATOM     39  C8   DA B   3      22.000   4.500   3.020  1.00  0.00           C
ATOM     40  N7   DA B   3      22.400   5.600   3.620  1.00  0.00           N
ATOM     41  C5   DA B   3      23.700   5.300   4.020  1.00  0.00           C
ATOM     42  C4   DA B   3      23.900   4.000   3.820  1.00  0.00           C
END
`

const badPDB = `ATOM    abc  CA  ALA A   1       0.000   0.000   0.000  1.00  0.00           C
ATOM      2  CA  ALA A   2      x.yz     0.000   0.000  1.00  0.00           C
ATOM      3  CB BALA A   2       3.800   1.500   0.000  1.00  0.00           C
ATOM      4  CB AALA A   2       3.800   1.500   0.000  1.00  0.00           C
ATOM      4  OG  SER A   3       3.800   1.500   0.000  1.00  0.00           O
END
`

func parseString(Te *testing.T, name, pdb string) (*Molecule, Diagnostics) {
	Te.Helper()
	mol, diags, err := ParsePDB(strings.NewReader(pdb), name, nil)
	if err != nil {
		Te.Fatal(err)
	}
	return mol, diags
}

func TestHydrogensExcluded(Te *testing.T) {
	mol, _ := parseString(Te, "ala", alaPDB)
	for _, at := range mol.Atoms {
		if at.Symbol == "H" {
			Te.Errorf("Hydrogen %s was stored", at)
		}
		if at.Name == "OXT" {
			Te.Errorf("OXT was stored")
		}
	}
	if mol.Len() != 5 {
		Te.Errorf("Expected 5 atoms, got %d", mol.Len())
	}
}

func TestAlaTemplate(Te *testing.T) {
	mol, diags := parseString(Te, "ala", alaPDB)
	expected := [][2]int{{1, 2}, {2, 3}, {3, 4}, {2, 5}}
	for _, v := range expected {
		if !mol.Bonded(v[0], v[1]) {
			Te.Errorf("Missing bond %d-%d", v[0], v[1])
		}
	}
	if mol.BondCount() != len(expected) {
		Te.Errorf("Expected %d bonds, got %d", len(expected), mol.BondCount())
	}
	for _, at := range mol.Atoms {
		if at.BondCount < 1 {
			Te.Errorf("Atom %s has no bonds", at)
		}
	}
	if diags.Has(DiagMissingTemplate) || diags.Has(DiagUnbondedAtom) {
		Te.Errorf("Unexpected diagnostics: %v", diags)
	}
}

func TestBackboneLink(Te *testing.T) {
	mol, _ := parseString(Te, "close", linkClosePDB)
	if mol.BondCount() != 1 || !mol.Bonded(1, 2) {
		Te.Errorf("Expected one C-N bond, got %v", mol.Bonds)
	}
	if mol.Bonds[0].Source != FromBackbone {
		Te.Errorf("Bond source is %s", mol.Bonds[0].Source)
	}
	mol, diags := parseString(Te, "far", linkFarPDB)
	if mol.BondCount() != 0 {
		Te.Errorf("Expected no bonds, got %v", mol.Bonds)
	}
	if diags.Count(DiagBackboneTooFar) != 1 {
		Te.Errorf("Expected one %s diagnostic, got %v", DiagBackboneTooFar, diags)
	}
}

func TestConect(Te *testing.T) {
	mol, diags := parseString(Te, "conect", conectPDB)
	if mol.BondCount() != 2 || !mol.Bonded(1, 2) || !mol.Bonded(5, 1) {
		Te.Errorf("Expected bonds 1-2 and 1-5, got %v", mol.Bonds)
	}
	for _, b := range mol.Bonds {
		if b.Source != FromConect {
			continue
		}
		if d := Distance(mol.Atom(b.At1), mol.Atom(b.At2)); d > math.Sqrt(20) {
			Te.Errorf("CONECT bond %v is %.2f A long", b, d)
		}
	}
	if diags.Count(DiagConectTooFar) != 1 {
		Te.Errorf("Expected one %s diagnostic, got %v", DiagConectTooFar, diags)
	}
	missing := diags.Filter(DiagMissingAtom)
	if len(missing) != 3 {
		Te.Errorf("Expected three %s diagnostics, got %v", DiagMissingAtom, diags)
	}
	//the base serial 99 is beyond any atom in the file
	if len(missing) > 0 && (missing[len(missing)-1].Serial != 99 || missing[len(missing)-1].Line != 9) {
		Te.Errorf("CONECT record with an unknown base atom not reported: %v", missing)
	}
}

func TestBondDedup(Te *testing.T) {
	for name, pdb := range map[string]string{"ala": alaPDB, "conect": conectPDB, "dna": dnaPDB, "chains": chainsPDB} {
		mol, _ := parseString(Te, name, pdb)
		seen := make(map[[2]int]bool)
		for _, b := range mol.Bonds {
			k := bondKey(b.At1, b.At2)
			if seen[k] {
				Te.Errorf("%s: bond %v repeated", name, k)
			}
			seen[k] = true
		}
	}
	mol := NewMolecule("dedup")
	mol.AddAtom(&Atom{Serial: 1, Name: "C1"})
	mol.AddAtom(&Atom{Serial: 2, Name: "C2"})
	if !mol.AddBond(1, 2, FromTemplate) || mol.AddBond(2, 1, FromConect) || mol.AddBond(1, 1, FromConect) {
		Te.Errorf("AddBond doesn't deduplicate")
	}
	if mol.Atom(1).BondCount != 1 || mol.Atom(2).BondCount != 1 {
		Te.Errorf("Wrong bond counts")
	}
}

func TestRecenterIdempotent(Te *testing.T) {
	mol, _ := parseString(Te, "chains", chainsPDB)
	min, max, _ := mol.BoundingBox()
	if c := r3.Norm(r3.Add(min, max)); c > 1e-9 {
		Te.Errorf("Box not centered: %v %v", min, max)
	}
	before := make([]r3.Vec, mol.Len())
	for i, at := range mol.Atoms {
		before[i] = at.Coord
	}
	offset, center := mol.Offset, mol.Center
	mol.Recenter()
	for i, at := range mol.Atoms {
		if r3.Norm(r3.Sub(at.Coord, before[i])) > 1e-9 {
			Te.Errorf("Atom %s moved from %v to %v", at, before[i], at.Coord)
		}
	}
	if math.Abs(offset-mol.Offset) > 1e-9 || r3.Norm(r3.Sub(center, mol.Center)) > 1e-9 {
		Te.Errorf("Offset or center changed: %f %f %v %v", offset, mol.Offset, center, mol.Center)
	}
	Te.Logf("Offset %f center %v", mol.Offset, mol.Center)
}

func TestLegacyOffset(Te *testing.T) {
	opts := DefaultParseOptions()
	opts.LegacyOffset = true
	mol, _, err := ParsePDB(strings.NewReader(chainsPDB), "chains", opts)
	if err != nil {
		Te.Fatal(err)
	}
	e := r3.Sub(mol.Max, mol.Min)
	legacy := math.Sqrt(e.X*e.X + e.Y*e.Y + e.Z + e.Z)
	if math.Abs(mol.Offset-legacy) > 1e-9 {
		Te.Errorf("Legacy offset %f, expected %f", mol.Offset, legacy)
	}
	mol, _ = parseString(Te, "chains", chainsPDB)
	if math.Abs(mol.Offset-r3.Norm(e)) > 1e-9 {
		Te.Errorf("Offset %f, expected the diagonal %f", mol.Offset, r3.Norm(e))
	}
}

func TestChains(Te *testing.T) {
	mol, diags := parseString(Te, "chains", chainsPDB)
	if mol.ChainCount() != 1 {
		Te.Fatalf("Expected 1 chain, got %d", mol.ChainCount())
	}
	if mol.RibbonNodeCount != 12 {
		Te.Errorf("Expected 12 ribbon nodes, got %d", mol.RibbonNodeCount)
	}
	for _, list := range mol.Chains {
		if len(list) <= 2 {
			Te.Errorf("Chain of length %d committed", len(list))
		}
	}
	for _, d := range mol.Chains[0] {
		var want SSType
		switch {
		case d.ResSeq >= 5 && d.ResSeq <= 12:
			want = AlphaHelix
		case d.ResSeq == 2 || d.ResSeq == 3:
			want = BetaSheet
		default:
			want = Ribbon
		}
		if d.Type != want {
			Te.Errorf("Residue %d is %s, expected %s", d.ResSeq, d.Type, want)
		}
		end := d.ResSeq == 10 || d.ResSeq == 3 || d.ResSeq == 12
		if d.EndOfSS != end {
			Te.Errorf("Residue %d has EndOfSS %t", d.ResSeq, d.EndOfSS)
		}
	}
	if diags.Count(DiagHelixStartNotFound) != 1 || diags.Count(DiagHelixEndNotFound) != 1 {
		Te.Errorf("Expected helix start and end diagnostics, got %v", diags.ByCode())
	}
	if len(mol.Helices) != 3 || mol.Helices[0].Length != 6 || mol.Helices[0].EndSeq != 10 {
		Te.Errorf("Wrong helices %v", mol.Helices)
	}
	if len(mol.Sheets) != 1 || mol.Sheets[0].Init.Seq != 2 || mol.Sheets[0].End.Seq != 3 {
		Te.Errorf("Wrong sheets %v", mol.Sheets)
	}
}

func TestTer(Te *testing.T) {
	mol, _ := parseString(Te, "ter", terPDB)
	if mol.ChainCount() != 2 {
		Te.Errorf("Expected 2 chains, got %d", mol.ChainCount())
	}
	if len(mol.Ters) != 1 || mol.Ters[0] != 3 {
		Te.Errorf("Wrong TER positions %v", mol.Ters)
	}
}

func TestFirstModelOnly(Te *testing.T) {
	mol, _ := parseString(Te, "models", modelsPDB)
	if mol.Len() != 2 {
		Te.Errorf("Expected 2 atoms, got %d", mol.Len())
	}
	if mol.BondCount() != 1 || !mol.Bonded(1, 2) {
		Te.Errorf("Trailing CONECT not applied: %v", mol.Bonds)
	}
}

func TestNucleic(Te *testing.T) {
	mol, _ := parseString(Te, "dna", dnaPDB)
	if !mol.HasNucleic || mol.ChainCount() != 1 || len(mol.Chains[0]) != 3 {
		Te.Fatalf("Wrong nucleic chain: %d chains", mol.ChainCount())
	}
	for _, d := range mol.Chains[0] {
		if d.Type != Nucleic || d.Base != Purine {
			Te.Errorf("Descriptor %d is %s, base %d", d.ResSeq, d.Type, d.Base)
		}
		if mol.Atom(d.Backbone).Name != "C5'" || mol.Atom(d.Guide).Name != "C1'" || mol.Atom(d.NucleicEnd).Name != "C3'" {
			Te.Errorf("Wrong backbone roles in %d", d.ResSeq)
		}
		corner := mol.Atom(d.Corner)
		if corner == nil || corner.Name != "N9" || corner.Class != NucleicBase {
			Te.Errorf("Wrong corner atom in %d", d.ResSeq)
		}
		if mol.Atom(d.BaseGuide).Name != "C4" || mol.Atom(d.Planar).Name != "N7" {
			Te.Errorf("Wrong base roles in %d", d.ResSeq)
		}
		if mol.Atom(d.Guide).Class != NucleicBackbone {
			Te.Errorf("C1' not tagged as nucleic backbone")
		}
	}
	//O3' of each residue to the P of the next.
	for _, b := range mol.Bonds {
		if b.Source == FromBackbone {
			a1, a2 := mol.Atom(b.At1), mol.Atom(b.At2)
			if a1.Name != "O3'" || a2.Name != "P" {
				Te.Errorf("Wrong backbone link %s-%s", a1, a2)
			}
		}
	}
	if !mol.Bonded(1, 2) {
		Te.Errorf("P-O5' bond missing")
	}
}

func TestMalformedFields(Te *testing.T) {
	mol, diags := parseString(Te, "bad", badPDB)
	if mol.Len() != 2 || mol.Atom(2) == nil || mol.Atom(4) == nil {
		Te.Errorf("Wrong atoms stored: %d", mol.Len())
	}
	if mol.Atom(4).ResName != "ALA" {
		Te.Errorf("The duplicate atom replaced the first one")
	}
	for _, c := range []DiagCode{DiagBadInteger, DiagBadFloat, DiagDuplicateAtom} {
		if !diags.Has(c) {
			Te.Errorf("Missing %s diagnostic: %v", c, diags)
		}
	}
}

type failingReader struct{}

func (f failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestPartialRead(Te *testing.T) {
	r := io.MultiReader(strings.NewReader(chainsPDB), failingReader{})
	mol, diags, err := ParsePDB(r, "partial", nil)
	if err == nil {
		Te.Fatal("Expected a read error")
	}
	if _, ok := err.(Error); !ok {
		Te.Errorf("Error %v doesn't implement chem.Error", err)
	}
	if !diags.Has(DiagReadError) {
		Te.Errorf("No read error diagnostic")
	}
	if mol.ChainCount() != 1 || mol.Offset == 0 {
		Te.Errorf("Partial molecule not finished")
	}
}

func TestReadPDBFile(Te *testing.T) {
	dir := Te.TempDir()
	plain := filepath.Join(dir, "ala.pdb")
	if err := os.WriteFile(plain, []byte(alaPDB), 0644); err != nil {
		Te.Fatal(err)
	}
	gzname := filepath.Join(dir, "ala.pdb.gz")
	f, err := os.Create(gzname)
	if err != nil {
		Te.Fatal(err)
	}
	gw := gzip.NewWriter(f)
	gw.Write([]byte(alaPDB))
	gw.Close()
	f.Close()
	zname := filepath.Join(dir, "ala.pdb.zst")
	f, err = os.Create(zname)
	if err != nil {
		Te.Fatal(err)
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		Te.Fatal(err)
	}
	zw.Write([]byte(alaPDB))
	zw.Close()
	f.Close()
	empty := filepath.Join(dir, "empty.pdb")
	os.WriteFile(empty, nil, 0644)
	for _, name := range []string{plain, gzname, zname} {
		mol, _, err := ReadPDBFile(name, nil)
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if mol.Name != "ala" || mol.Len() != 5 || mol.BondCount() != 4 {
			Te.Errorf("%s: read %s with %d atoms and %d bonds", name, mol.Name, mol.Len(), mol.BondCount())
		}
	}
	mol, _, err := ReadPDBFile(empty, nil)
	if err != nil || mol.Len() != 0 {
		Te.Errorf("Empty file: %v", err)
	}
	_, _, err = ReadPDBFile(filepath.Join(dir, "nothere.pdb"), nil)
	if e, ok := err.(FileError); !ok || e.FileName() == "" {
		Te.Errorf("Expected a FileError, got %v", err)
	}
}
