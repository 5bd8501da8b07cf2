/*
 * file.go, part of gotweezer.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */

package sweep

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	tweezer "github.com/rmera/gotweezer"
)

//Sweep files are compressed text. After the optional header, with one key=value
//pair per line, a line "** N" gives the number of columns, and then each line
//contains one point:
//wavelength omega waist potential scattering omega_radial omega_axial valid
//The compression depends on the last letter of the file name: 'z' for gzip,
//'r' for raw deflate and zstd for anything else (we use .tsf).

const columns = 8

const (
	compressionLevel = 6
	NotWriteable     = "sweep file not open for writing"
	NotReadable      = "sweep file not open for reading"
)

//Write!
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	filename  string
	writeable bool
	n         int
}

// NewWriter creates the file name and writes the header to it. The header
// keys are written in lexical order. Keys can't contain '=' and neither keys
// nor values can contain newlines.
func NewWriter(name string, header map[string]string) (*Writer, error) {
	W := new(Writer)
	W.filename = name
	keys := make([]string, 0, len(header))
	for k, v := range header {
		if strings.ContainsAny(k, "=\n") || strings.Contains(v, "\n") || k == "" {
			return nil, &Error{fmt.Sprintf("invalid header entry %q=%q", k, v), name, []string{"NewWriter"}, true}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, &Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	W.h, err = anyNewWriter(name)(W.f)
	if err != nil {
		W.f.Close()
		return nil, &Error{"can't start compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.writeable = true
	var headerstr strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&headerstr, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(&headerstr, "** %d\n", columns)
	if _, err := io.WriteString(W.h, headerstr.String()); err != nil {
		W.Close()
		return nil, &Error{"can't write header: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	return W, nil
}

func anyNewWriter(name string) func(io.Writer) (io.WriteCloser, error) {
	switch last(name) {
	case 'z':
		return func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, compressionLevel) }
	case 'r':
		return func(a io.Writer) (io.WriteCloser, error) { return flate.NewWriter(a, compressionLevel) }
	default:
		return func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		}
	}
}

func last(name string) byte {
	if name == "" {
		return 0
	}
	return strings.ToLower(name)[len(name)-1]
}

// Len returns the number of points written so far.
func (W *Writer) Len() int {
	return W.n
}

// WNext writes one point to the file.
func (W *Writer) WNext(p Point) error {
	if W == nil || !W.writeable {
		return &Error{NotWriteable, "", []string{"WNext"}, true}
	}
	valid := 1
	fields := [columns - 1]float64{p.Wavelength, p.Omega, p.Waist, p.Potential, p.Scattering, p.OmegaRadial, p.OmegaAxial}
	if !p.Valid() {
		valid = 0
		for i := 3; i < len(fields); i++ {
			fields[i] = math.NaN()
		}
	}
	strs := make([]string, 0, columns)
	for _, v := range fields {
		strs = append(strs, strconv.FormatFloat(v, 'g', -1, 64))
	}
	strs = append(strs, strconv.Itoa(valid))
	if _, err := io.WriteString(W.h, strings.Join(strs, " ")+"\n"); err != nil {
		return &Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	W.n++
	return nil
}

// Close flushes the compressor and closes the file. The Writer
// can't be used after this call.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	err := W.h.Close()
	err2 := W.f.Close()
	if err == nil {
		err = err2
	}
	if err != nil {
		return &Error{err.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

//Read!
type Reader struct {
	f        *os.File
	h        io.ReadCloser
	b        *bufio.Reader
	filename string
	readable bool
}

//*zstd.Decoder doesn't implement io.ReadCloser, as its Close returns nothing.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

// NewReader opens the sweep file name and reads its header, which is returned.
func NewReader(name string) (*Reader, map[string]string, error) {
	R := new(Reader)
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, nil, &Error{err.Error(), name, []string{"NewReader"}, true}
	}
	switch last(name) {
	case 'z':
		R.h, err = gzip.NewReader(R.f)
	case 'r':
		R.h = flate.NewReader(R.f)
	default:
		var d *zstd.Decoder
		d, err = zstd.NewReader(R.f)
		if err == nil {
			R.h = zstdCloser{d}
		}
	}
	if err != nil {
		R.f.Close()
		return nil, nil, &Error{"can't start decompressor: " + err.Error(), name, []string{"NewReader"}, true}
	}
	R.b = bufio.NewReader(R.h)
	R.readable = true
	header := make(map[string]string)
	for {
		line, err := R.b.ReadString('\n')
		if err != nil {
			R.Close()
			return nil, nil, &Error{"truncated header: " + err.Error(), name, []string{"NewReader"}, true}
		}
		line = strings.TrimSuffix(line, "\n")
		if strings.HasPrefix(line, "** ") {
			n, err := strconv.Atoi(strings.TrimSpace(line[3:]))
			if err != nil || n != columns {
				R.Close()
				return nil, nil, &Error{fmt.Sprintf("unsupported column line %q", line), name, []string{"NewReader"}, true}
			}
			break
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			R.Close()
			return nil, nil, &Error{fmt.Sprintf("malformed header line %q", line), name, []string{"NewReader"}, true}
		}
		header[k] = v
	}
	return R, header, nil
}

// Readable returns true if more points can be read.
func (R *Reader) Readable() bool {
	return R != nil && R.readable
}

// Next reads the next point. After the last point, it returns an error
// that implements LastRecordError and wraps io.EOF. Points that were written
// as resonant are returned with an Err wrapping tweezer.ErrSingular.
func (R *Reader) Next() (Point, error) {
	var p Point
	if !R.Readable() {
		return p, &Error{NotReadable, "", []string{"Next"}, true}
	}
	line, err := R.b.ReadString('\n')
	if err == io.EOF && line == "" {
		R.Close()
		return p, newLastRecordError(R.filename, "Next")
	}
	if err != nil && err != io.EOF {
		return p, &Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) != columns {
		return p, &Error{fmt.Sprintf("record with %d fields, expected %d", len(fields), columns), R.filename, []string{"Next"}, true}
	}
	var vals [columns - 1]float64
	for i := range vals {
		vals[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return p, &Error{err.Error(), R.filename, []string{"Next"}, true}
		}
	}
	p = Point{Wavelength: vals[0], Omega: vals[1], Waist: vals[2], Potential: vals[3], Scattering: vals[4], OmegaRadial: vals[5], OmegaAxial: vals[6]}
	if fields[columns-1] != "1" {
		p.Potential, p.Scattering, p.OmegaRadial, p.OmegaAxial = 0, 0, 0, 0
		p.Err = fmt.Errorf("gotweezer/sweep: resonant point at %g m read from %s: %w", p.Wavelength, R.filename, tweezer.ErrSingular)
	}
	return p, nil
}

// Close closes the Reader. It can't be used after this call.
func (R *Reader) Close() {
	if R == nil || !R.readable {
		return
	}
	R.readable = false
	R.h.Close()
	R.f.Close()
}

// WriteFile writes all the points to the sweep file name.
func WriteFile(name string, header map[string]string, points []Point) error {
	W, err := NewWriter(name, header)
	if err != nil {
		return errDecorate(err, "WriteFile")
	}
	for _, p := range points {
		if err := W.WNext(p); err != nil {
			W.Close()
			return errDecorate(err, "WriteFile")
		}
	}
	return errDecorate(W.Close(), "WriteFile")
}

// ReadFile reads all the points in the sweep file name.
func ReadFile(name string) ([]Point, map[string]string, error) {
	R, header, err := NewReader(name)
	if err != nil {
		return nil, nil, errDecorate(err, "ReadFile")
	}
	defer R.Close()
	var points []Point
	for {
		p, err := R.Next()
		if err != nil {
			var last LastRecordError
			if errors.As(err, &last) {
				return points, header, nil
			}
			return nil, nil, errDecorate(err, "ReadFile")
		}
		points = append(points, p)
	}
}

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	return tweezer.Decorate(err, caller)
}

// Error is the error type for sweep files. It fullfills tweezer.Decorator.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("sweep file %s error: %s [%s]", err.filename, err.message, strings.Join(err.deco, " < "))
}

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error
func (err *Error) FileName() string { return err.filename }

// Critical returns whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

// LastRecordError is implemented by the error returned after the last point of a file
// has been read, so it can be told apart from real errors.
type LastRecordError interface {
	error
	NormalLastRecordTermination() //does nothing, just to separate this interface from other errors.
}

type lastRecordError struct {
	filename string
	deco     []string
}

func (E *lastRecordError) NormalLastRecordTermination() {}

func (E *lastRecordError) Error() string { return "EOF" }

func (E *lastRecordError) Unwrap() error { return io.EOF }

func (E *lastRecordError) FileName() string { return E.filename }

func (E *lastRecordError) Critical() bool { return false }

func (E *lastRecordError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newLastRecordError(filename string, caller string) *lastRecordError {
	return &lastRecordError{filename, []string{caller}}
}
