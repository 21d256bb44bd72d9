/*
 * interfaces.go, part of gomolmesh.
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

import "fmt"

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds the string to the decoration slice and returns the slice. An empty string just returns the current value.
	//The decorate slice contains a list of functions in the calling stack. Extra information goes in this format: "FunctionName: Extra info"
}

// FileError is the interface for errors related to reading or writing a file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
}

//CError is the general error type for the chem package. It fullfills chem.Error and chem.FileError
type CError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

//NewError returns a new CError with the given message and the name
//of the function that created it as first decoration.
func NewError(message, caller string) *CError {
	return &CError{message: message, deco: []string{caller}, critical: true}
}

func (err *CError) Error() string {
	if err.filename != "" {
		return fmt.Sprintf("file %s error: %s", err.filename, err.message)
	}
	return err.message
}

//Decorate Adds new information to the error
func (err *CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error, if any.
func (err *CError) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise
func (err *CError) Critical() bool { return err.critical }

//errDecorate decorates err with the caller's name if err implements chem.Error.
//Other errors are wrapped in a new CError.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return &CError{message: err.Error(), deco: []string{caller}, critical: true}
}

const (
	ErrNilMolecule = "Given nil molecule"
	ErrUnableOpen  = "Unable to open file"
	ErrNoAtoms     = "No atoms could be read"
	ErrReadFailed  = "Error reading input"
	ErrTooFewPts   = "Not enough control points"
)
