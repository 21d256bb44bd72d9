/*
 * atomicdata.go, part of gomolmesh.
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
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/elements.txt
var elementInfo []byte

//go:embed data/vdw.txt
var vdwInfo []byte

//A map for assigning mass to elements.
//Note that just common "bio-elements" are present
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"Se": 78.96,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Cu": 63.55,
	"Zn": 65.38,
	"Co": 58.93,
	"Fe": 55.84,
	"Mn": 54.94,
	"Ni": 58.69,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

//Element contains the static information for one chemical element.
type Element struct {
	Number int
	Symbol string
	Name   string
	Color  [4]float32 //RGBA, each in [0,1]
	VdW    float64    //van der Waals radius in A. 0 if unknown.
	Mass   float64
}

//ElementTable maps element symbols to their information.
type ElementTable struct {
	bySymbol map[string]*Element
}

var defaultElements struct {
	once  sync.Once
	table *ElementTable
	err   error
}

//DefaultElements returns the element table built from the embedded data files.
//It panics if the embedded data is corrupted, which would be a bug.
func DefaultElements() *ElementTable {
	defaultElements.once.Do(func() {
		defaultElements.table, defaultElements.err = LoadElementTable(bytes.NewReader(elementInfo), bytes.NewReader(vdwInfo))
	})
	if defaultElements.err != nil {
		panic(defaultElements.err.Error())
	}
	return defaultElements.table
}

//LoadElementTable reads an element information file and a van der Waals radii file and returns
//the corresponding table. The element file is made of 4-line records: atomic number, symbol, name
//and color as #RRGGBB. The radii file has a header line, then one element per line, with the symbol
//in the columns 1-3 and the radius, in pm, in columns 6-8. vdw can be nil.
func LoadElementTable(info, vdw io.Reader) (*ElementTable, error) {
	E := &ElementTable{bySymbol: make(map[string]*Element)}
	in := bufio.NewScanner(info)
	var rec []string
	line := 0
	for in.Scan() {
		line++
		s := strings.TrimSpace(in.Text())
		if s == "" && len(rec) == 0 {
			continue
		}
		rec = append(rec, s)
		if len(rec) < 4 {
			continue
		}
		el, err := parseElementRecord(rec)
		if err != nil {
			return nil, NewError(fmt.Sprintf("element record ending at line %d: %s", line, err.Error()), "LoadElementTable")
		}
		el.Mass = symbolMass[el.Symbol]
		E.bySymbol[symbolKey(el.Symbol)] = el
		rec = rec[:0]
	}
	if err := in.Err(); err != nil {
		return nil, errDecorate(err, "LoadElementTable")
	}
	if len(rec) != 0 {
		return nil, NewError("truncated element record at end of input", "LoadElementTable")
	}
	if vdw == nil {
		return E, nil
	}
	in = bufio.NewScanner(vdw)
	first := true
	for in.Scan() {
		if first {
			first = false //header
			continue
		}
		l := in.Text()
		if len(strings.TrimSpace(l)) == 0 {
			continue
		}
		l = padRight(l, 8)
		sym := strings.TrimSpace(l[0:3])
		pm, err := strconv.Atoi(strings.TrimSpace(l[5:8]))
		if err != nil {
			continue
		}
		el, ok := E.bySymbol[symbolKey(sym)]
		if !ok {
			continue
		}
		el.VdW = float64(pm) / 100
	}
	if err := in.Err(); err != nil {
		return nil, errDecorate(err, "LoadElementTable")
	}
	return E, nil
}

func parseElementRecord(rec []string) (*Element, error) {
	n, err := strconv.Atoi(rec[0])
	if err != nil {
		return nil, err
	}
	col, err := parseHexColor(rec[3])
	if err != nil {
		return nil, err
	}
	return &Element{Number: n, Symbol: rec[1], Name: rec[2], Color: col}, nil
}

func parseHexColor(s string) ([4]float32, error) {
	var ret [4]float32
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return ret, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return ret, err
	}
	ret[0] = float32((v>>16)&0xff) / 255
	ret[1] = float32((v>>8)&0xff) / 255
	ret[2] = float32(v&0xff) / 255
	ret[3] = 1
	return ret, nil
}

//Lookup returns the information for the element with the given symbol.
//The symbol is matched case-insensitively.
func (E *ElementTable) Lookup(symbol string) (Element, bool) {
	el, ok := E.bySymbol[symbolKey(symbol)]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

//Color returns the color of the element with the given symbol, and false
//if the element is not in the table.
func (E *ElementTable) Color(symbol string) ([4]float32, bool) {
	el, ok := E.bySymbol[symbolKey(symbol)]
	if !ok {
		return [4]float32{}, false
	}
	return el.Color, true
}

//VdW returns the van der Waals radius of the element, in A, or 0 if
//it is not known.
func (E *ElementTable) VdW(symbol string) float64 {
	el, ok := E.bySymbol[symbolKey(symbol)]
	if !ok {
		return 0
	}
	return el.VdW
}

//Len returns the number of elements in the table.
func (E *ElementTable) Len() int {
	return len(E.bySymbol)
}

func symbolKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

//symbolFromName guesses the element of an atom from its PDB name, for files
//that leave the element columns empty. Leading digits are skipped, so "1HB" is
//a hydrogen. It returns an empty string if it can't guess.
func symbolFromName(name string) string {
	name = strings.ToUpper(strings.TrimLeft(strings.TrimSpace(name), "0123456789"))
	if name == "" {
		return ""
	}
	symbol := ""
	switch name[0] {
	case 'H':
		symbol = "H"
	case 'C':
		switch name {
		case "CU":
			symbol = "Cu"
		case "CO":
			symbol = "Co"
		case "CL":
			symbol = "Cl"
		default:
			symbol = "C" //Ca is not considered here, CA is an alpha carbon.
		}
	case 'N':
		if name == "NA" {
			symbol = "Na"
		} else {
			symbol = "N"
		}
	case 'O':
		symbol = "O"
	case 'P':
		symbol = "P"
	case 'S':
		if name == "SE" {
			symbol = "Se"
		} else {
			symbol = "S"
		}
	case 'Z':
		if strings.HasPrefix(name, "ZN") {
			symbol = "Zn"
		}
	case 'F':
		if name == "FE" {
			symbol = "Fe"
		} else {
			symbol = "F"
		}
	}
	return symbol
}
