/*
 * diagnostics.go, part of gomolmesh.
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
	"log"
)

//DiagCode identifies the kind of a non-fatal problem found while reading a
//file, inferring the topology or building the geometry.
type DiagCode int

const (
	DiagBadInteger DiagCode = iota + 1
	DiagBadFloat
	DiagMissingAtom
	DiagDuplicateAtom
	DiagMissingTemplate
	DiagUnbondedAtom
	DiagConectTooFar
	DiagBackboneTooFar
	DiagHelixStartNotFound
	DiagHelixEndNotFound
	DiagSheetStartNotFound
	DiagSheetEndNotFound
	DiagReadError
	DiagMissingGeometryAtom
	DiagDegenerateGeometry
	DiagBudgetDowngrade
	DiagBudgetExceeded
)

var diagNames = map[DiagCode]string{
	DiagBadInteger:          "bad integer",
	DiagBadFloat:            "bad float",
	DiagMissingAtom:         "missing atom",
	DiagDuplicateAtom:       "duplicate atom",
	DiagMissingTemplate:     "missing template",
	DiagUnbondedAtom:        "unbonded atom",
	DiagConectTooFar:        "CONECT partner too far",
	DiagBackboneTooFar:      "backbone link too long",
	DiagHelixStartNotFound:  "helix start not found",
	DiagHelixEndNotFound:    "helix end not found",
	DiagSheetStartNotFound:  "sheet start not found",
	DiagSheetEndNotFound:    "sheet end not found",
	DiagReadError:           "read error",
	DiagMissingGeometryAtom: "missing geometry atom",
	DiagDegenerateGeometry:  "degenerate geometry",
	DiagBudgetDowngrade:     "tessellation reduced",
	DiagBudgetExceeded:      "memory budget exceeded",
}

func (D DiagCode) String() string {
	if s, ok := diagNames[D]; ok {
		return s
	}
	return fmt.Sprintf("diagnostic %d", int(D))
}

//Diagnostic is a non-fatal problem. Line is the 1-based input line, or 0 when
//the problem is not tied to a line. Serial is the atom involved, if any.
type Diagnostic struct {
	Code    DiagCode
	Line    int
	Serial  int
	Message string
}

func (D Diagnostic) String() string {
	s := D.Code.String()
	if D.Line > 0 {
		s += fmt.Sprintf(" (line %d)", D.Line)
	}
	if D.Serial > 0 {
		s += fmt.Sprintf(" (atom %d)", D.Serial)
	}
	return s + ": " + D.Message
}

//Diagnostics is a list of diagnostics, in the order they were produced.
type Diagnostics []Diagnostic

//Count returns the number of diagnostics with the given code.
func (D Diagnostics) Count(code DiagCode) int {
	n := 0
	for _, v := range D {
		if v.Code == code {
			n++
		}
	}
	return n
}

//Has returns true if at least one diagnostic has the given code.
func (D Diagnostics) Has(code DiagCode) bool {
	return D.Count(code) > 0
}

//Filter returns the diagnostics with the given code.
func (D Diagnostics) Filter(code DiagCode) Diagnostics {
	var ret Diagnostics
	for _, v := range D {
		if v.Code == code {
			ret = append(ret, v)
		}
	}
	return ret
}

//ByCode returns the number of diagnostics for each code present.
func (D Diagnostics) ByCode() map[DiagCode]int {
	ret := make(map[DiagCode]int)
	for _, v := range D {
		ret[v.Code]++
	}
	return ret
}

//Reporter collects diagnostics and, if it has a logger, also logs them.
//A nil *Reporter discards everything.
type Reporter struct {
	diags  Diagnostics
	logger *log.Logger
	prefix string
}

//NewReporter returns a reporter that logs to logger, which can be nil.
//prefix is prepended to each logged line.
func NewReporter(prefix string, logger *log.Logger) *Reporter {
	return &Reporter{logger: logger, prefix: prefix}
}

//Report adds a diagnostic. line and serial can be 0.
func (R *Reporter) Report(code DiagCode, line, serial int, format string, args ...interface{}) {
	if R == nil {
		return
	}
	d := Diagnostic{Code: code, Line: line, Serial: serial, Message: fmt.Sprintf(format, args...)}
	R.diags = append(R.diags, d)
	if R.logger != nil {
		R.logger.Printf("%s%s", R.prefix, d)
	}
}

//Logf logs an informational message. Nothing is collected.
func (R *Reporter) Logf(format string, args ...interface{}) {
	if R == nil || R.logger == nil {
		return
	}
	R.logger.Printf(R.prefix+format, args...)
}

//Append adds already-built diagnostics, without logging them.
func (R *Reporter) Append(d ...Diagnostic) {
	if R == nil {
		return
	}
	R.diags = append(R.diags, d...)
}

//Diagnostics returns the diagnostics collected so far.
func (R *Reporter) Diagnostics() Diagnostics {
	if R == nil {
		return nil
	}
	return R.diags
}
