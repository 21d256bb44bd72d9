/*
 * json.go, part of gomolmesh.
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

package chemjson

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	chem "github.com/rmera/gomolmesh"
	"github.com/rmera/gomolmesh/histo"
	"github.com/rmera/gomolmesh/mesh"
)

//An easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InOptions     bool //If error, was it in parsing the options?
	InParse       bool //Was it reading the structure?
	InBuild       bool
	InPostProcess bool   //was it in preparing the output?
	File          string //Which input file?
	Function      string //which go function gave the error
	Message       string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "options":
		jerr.InOptions = true
	case "parse":
		jerr.InParse = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InBuild = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	if ferr, ok := err.(chem.FileError); ok {
		jerr.File = ferr.FileName()
	}
	return jerr
}

//Options passed from the calling external program
type Options struct {
	Files        []string
	Mode         string
	Output       string //empty for no mesh file
	Slices       int    //0 for the defaults
	SphereSlices int
	RibbonSlices int
	MemoryLimit  int64
}

//DecodeOptions Decodes or unmarshals json options into an Options structure.
//The options are expected in one line.
func DecodeOptions(stdin *bufio.Reader) (*Options, *Error) {
	line, err := stdin.ReadBytes('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return nil, NewError("options", "DecodeOptions", err)
	}
	ret := new(Options)
	err = json.Unmarshal(line, ret)
	if err != nil {
		return nil, NewError("options", "DecodeOptions", err)
	}
	return ret, nil
}

//Diagnostic is the serializable form of a chem.Diagnostic.
type Diagnostic struct {
	Code    string
	Line    int `json:",omitempty"`
	Serial  int `json:",omitempty"`
	Message string
}

//Summary is the information on a structure and its mesh passed back to the calling program.
type Summary struct {
	Name        string
	Stats       chem.Stats
	Nucleic     bool
	BondLengths histo.Summary
	BondHisto   *histo.Data `json:",omitempty"`
	Requested   string `json:",omitempty"`
	Mode        string `json:",omitempty"`
	Reduced     bool
	Slices      mesh.Tessellation
	Budget      int64
	Limit       int64
	Session     string `json:",omitempty"`
	Vertices    int
	Blocks      int
	Counts      map[string]int //diagnostics per code
	Diagnostics []Diagnostic
}

//Summarize collects the information on mol, the diagnostics produced reading it,
//and the result of a mesh build, which can be nil.
func Summarize(mol *chem.Molecule, diags chem.Diagnostics, result *mesh.Result) *Summary {
	S := &Summary{
		Name:    mol.Name,
		Stats:   mol.Stats(),
		Nucleic: mol.HasNucleic,
		Counts:  make(map[string]int),
	}
	S.BondHisto, S.BondLengths = histo.BondLengths(mol)
	all := diags
	if result != nil {
		plan := result.Plan
		S.Requested = plan.Requested.String()
		S.Mode = plan.Mode.String()
		S.Reduced = plan.Reduced
		S.Slices = plan.Tessellation
		S.Budget = plan.Budget.Total()
		S.Limit = plan.Limit
		S.Session = result.Session.String()
		S.Vertices = result.Vertices
		S.Blocks = result.Blocks
		all = append(append(chem.Diagnostics{}, diags...), result.Diagnostics...)
	}
	S.Diagnostics = make([]Diagnostic, 0, len(all))
	for _, d := range all {
		S.Diagnostics = append(S.Diagnostics, Diagnostic{Code: d.Code.String(), Line: d.Line, Serial: d.Serial, Message: d.Message})
	}
	for code, n := range all.ByCode() {
		S.Counts[code.String()] = n
	}
	return S
}

//Send Marshals the summary and writes to out, returns an error or nil
func (J *Summary) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "Summary.Send", err)
	}
	return nil
}
