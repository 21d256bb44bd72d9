/*
 * errors.go, part of gomolmesh.
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

package mesh

import chem "github.com/rmera/gomolmesh"

//Error is the error type of the mesh package. It fullfills chem.Error.
type Error struct {
	message string
	deco    []string
	err     error //the underlying error, if any.
}

func newError(message, caller string, err error) *Error {
	return &Error{message: message, deco: []string{caller}, err: err}
}

func (E *Error) Error() string {
	if E.err != nil {
		return "mesh: " + E.message + ": " + E.err.Error()
	}
	return "mesh: " + E.message
}

//Decorate Adds new information to the error
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Unwrap returns the underlying error, if any.
func (E *Error) Unwrap() error {
	return E.err
}

//errDecorate adds caller to the decorations of err. Errors that
//can't be decorated are wrapped in an *Error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(chem.Error); ok {
		e.Decorate(caller)
		return e
	}
	return newError("failed", caller, err)
}

const (
	ErrInUse       = "accumulator in use by another session"
	ErrRewind      = "can't rewind to a flushed block"
	ErrSink        = "writing block"
	ErrUnknownMode = "unknown view mode"
	ErrNilMolecule = "nil molecule"
)
