/*
 * histo_test.go, part of gomolmesh.
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

package histo

import (
	"encoding/json"
	"math"
	"testing"

	chem "github.com/rmera/gomolmesh"
)

func TestHisto(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata, 3)
	//8, 32 and 44 are outside
	want := []float64{2, 6, 2, 7, 9}
	for i, v := range D.View() {
		if v != want[i] {
			Te.Fatalf("Wrong histogram %v, want %v", D.View(), want)
		}
	}
	if D.Total() != 26 || D.ID() != 3 {
		Te.Errorf("Wrong total %d or ID %d", D.Total(), D.ID())
	}
	D.AddData(0.5, 3.99, 100)
	if D.View()[0] != 3 || D.View()[3] != 8 || D.Total() != 29 {
		Te.Errorf("AddData failed: %v", D.View())
	}
	D.Normalize()
	D.Normalize()
	if math.Abs(D.Sum()-28.0/29.0) > 1e-9 {
		Te.Errorf("Wrong normalized sum %f", D.Sum())
	}
	j, err := json.Marshal(D)
	if err != nil {
		Te.Fatal(err)
	}
	D2 := new(Data)
	if err := json.Unmarshal(j, D2); err != nil {
		Te.Fatal(err)
	}
	if !D2.Normalized() || D2.Total() != 29 || D2.ID() != 3 || len(D2.View()) != 5 {
		Te.Errorf("JSON round trip lost data: %s", D2)
	}
	if err := json.Unmarshal([]byte(`{"dividers":[0,1,2],"histo":[1]}`), D2); err == nil {
		Te.Errorf("Accepted a histogram with the wrong number of bins")
	}
}

func TestBondLengths(Te *testing.T) {
	mol, _, err := chem.ReadPDBFile("../mesh/testdata/peptide.pdb", nil)
	if err != nil {
		Te.Fatal(err)
	}
	D, s := BondLengths(mol)
	if s.N != mol.BondCount() || D.Total() != s.N {
		Te.Errorf("Counted %d lengths, histogram has %d, %d bonds", s.N, D.Total(), mol.BondCount())
	}
	if s.Min < 1.2 || s.Max > 1.6 || s.Mean < s.Min || s.Mean > s.Max {
		Te.Errorf("Implausible bond lengths %+v", s)
	}
	if Summarize(nil) != (Summary{}) || Summarize([]float64{2}).StdDev != 0 {
		Te.Errorf("Wrong summary for small inputs")
	}
}
