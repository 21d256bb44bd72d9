/*
 * meshio.go, part of gomolmesh.
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

package meshio

import (
	"bufio"
	"compress/lzw"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gomolmesh/mesh"
)

const lzwLitwidth = 8

var endian = binary.LittleEndian

//Writer writes mesh blocks to a compressed file. It implements mesh.Sink.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	w         *bufio.Writer
	filename  string
	writeable bool
	blocks    int
	vertices  int
}

//compressor returns the function that wraps a writer in the compression
//given by the extension of name. zstd is the default.
func compressor(name string) func(io.Writer) (io.WriteCloser, error) {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".gz"):
		return func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestCompression) }
	case strings.HasSuffix(name, ".lzw"):
		return func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case strings.HasSuffix(name, ".zz"):
		return func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, flate.BestCompression) }
	}
	return func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	}
}

//NewWriter creates the file name and writes the header to it. The compression is chosen
//from the extension of name: .gz for gzip, .zz for deflate, .lzw for LZW, anything else
//for zstd. The header keys must not contain '=' or new lines.
func NewWriter(name string, header map[string]string) (*Writer, error) {
	W := &Writer{filename: name}
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.h, err = compressor(name)(W.f)
	if err != nil {
		W.f.Close()
		return nil, Error{"Can't start compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.w = bufio.NewWriter(W.h)
	keys := make([]string, 0, len(header))
	for k := range header {
		if strings.ContainsAny(k, "=\n") || strings.Contains(header[k], "\n") {
			W.abort()
			return nil, Error{fmt.Sprintf("%s: %q", BadHeader, k), name, []string{"NewWriter"}, true}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(W.w, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(W.w, "** %d\n", mesh.Stride)
	W.writeable = true
	return W, nil
}

func (W *Writer) abort() {
	W.h.Close()
	W.f.Close()
}

//WriteBlock appends the block to the file.
func (W *Writer) WriteBlock(b mesh.Block) error {
	if !W.writeable {
		return Error{UnIniWrite, W.filename, []string{"WriteBlock"}, true}
	}
	if len(b.Data)%mesh.FloatsPerVertex != 0 {
		return Error{fmt.Sprintf("%s: %d floats", WrongFormat, len(b.Data)), W.filename, []string{"WriteBlock"}, true}
	}
	if err := W.w.WriteByte(byte(b.Mode)); err != nil {
		return Error{err.Error(), W.filename, []string{"WriteBlock"}, true}
	}
	if err := binary.Write(W.w, endian, uint32(b.Vertices())); err != nil {
		return Error{err.Error(), W.filename, []string{"binary.Write", "WriteBlock"}, true}
	}
	if err := binary.Write(W.w, endian, b.Data); err != nil {
		return Error{err.Error(), W.filename, []string{"binary.Write", "WriteBlock"}, true}
	}
	W.blocks++
	W.vertices += b.Vertices()
	return nil
}

//Blocks returns the number of blocks written.
func (W *Writer) Blocks() int { return W.blocks }

//Vertices returns the number of vertices written.
func (W *Writer) Vertices() int { return W.vertices }

//Close flushes the data and closes the file. The Writer can't be used after this call.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	if err := W.w.Flush(); err != nil {
		W.abort()
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	if err := W.h.Close(); err != nil {
		W.f.Close()
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	if err := W.f.Close(); err != nil {
		return Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

//zstdReadCloser lets a *zstd.Decoder be used as an io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func decompressor(name string) func(io.Reader) (io.ReadCloser, error) {
	name = strings.ToLower(name)
	switch {
	case strings.HasSuffix(name, ".gz"):
		return func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	case strings.HasSuffix(name, ".lzw"):
		return func(a io.Reader) (io.ReadCloser, error) { return lzw.NewReader(a, lzw.MSB, lzwLitwidth), nil }
	case strings.HasSuffix(name, ".zz"):
		return func(a io.Reader) (io.ReadCloser, error) { return flate.NewReader(a), nil }
	}
	return func(a io.Reader) (io.ReadCloser, error) {
		r, err := zstd.NewReader(a)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{r}, nil
	}
}

//Reader reads the blocks of a mesh file.
type Reader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	filename string
	readable bool
}

//Open opens a mesh file for reading, and returns the reader and
//the header of the file.
func Open(name string) (*Reader, map[string]string, error) {
	R := &Reader{filename: name}
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"Open"}, true}
	}
	R.z, err = decompressor(name)(bufio.NewReader(R.f))
	if err != nil {
		R.f.Close()
		return nil, nil, Error{"Can't read header: " + err.Error(), name, []string{"Open"}, true}
	}
	R.h = bufio.NewReader(R.z)
	m := make(map[string]string)
	for {
		str, err := R.h.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, nil, Error{"Can't read header: " + err.Error(), name, []string{"Open"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			f := strings.Fields(str)
			if len(f) < 2 {
				R.Close()
				return nil, nil, Error{fmt.Sprintf("%s: no stride in '%s'", WrongFormat, str), name, []string{"Open"}, true}
			}
			stride, err := strconv.Atoi(f[1])
			if err != nil || stride != mesh.Stride {
				R.Close()
				return nil, nil, Error{fmt.Sprintf("%s: stride %s, expected %d", WrongFormat, f[1], mesh.Stride), name, []string{"Open"}, true}
			}
			break
		}
		k, v, ok := strings.Cut(str, "=")
		if !ok {
			R.Close()
			return nil, nil, Error{fmt.Sprintf("%s: '%s'", BadHeader, str), name, []string{"Open"}, true}
		}
		m[k] = v
	}
	R.readable = true
	return R, m, nil
}

//Next returns the next block of the file. At the end of the file, it returns io.EOF.
func (R *Reader) Next() (mesh.Block, error) {
	var b mesh.Block
	if !R.readable {
		return b, Error{UnIniRead, R.filename, []string{"Next"}, true}
	}
	mode, err := R.h.ReadByte()
	if err == io.EOF {
		return b, io.EOF
	} else if err != nil {
		return b, Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	var n uint32
	if err := binary.Read(R.h, endian, &n); err != nil {
		return b, Error{"Truncated block: " + err.Error(), R.filename, []string{"binary.Read", "Next"}, true}
	}
	b.Mode = mesh.Primitive(mode)
	b.Data = make([]float32, int(n)*mesh.FloatsPerVertex)
	if err := binary.Read(R.h, endian, b.Data); err != nil {
		return b, Error{"Truncated block: " + err.Error(), R.filename, []string{"binary.Read", "Next"}, true}
	}
	return b, nil
}

//Close closes the file. The Reader can't be used after this call.
func (R *Reader) Close() error {
	if R == nil {
		return nil
	}
	R.readable = false
	if R.z != nil {
		R.z.Close()
	}
	return R.f.Close()
}

//ReadAll returns all the blocks of the file name, and its header.
func ReadAll(name string) ([]mesh.Block, map[string]string, error) {
	R, header, err := Open(name)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadAll")
	}
	defer R.Close()
	var blocks []mesh.Block
	for {
		b, err := R.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return blocks, header, errDecorate(err, "ReadAll")
		}
		blocks = append(blocks, b)
	}
	return blocks, header, nil
}
