// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geonames

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Position locates a line within its source. Line is 1-based.
type Position struct {
	File string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// LineError attaches a source position to a per-line failure.
type LineError struct {
	Pos Position
	Err error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// LineFunc receives each raw line. Returning a non-nil error stops the scan
// and the error is returned unchanged.
type LineFunc func(pos Position, line string) error

// EachLine calls fn for every line of r, in order. name labels positions.
// Lines may be of any length; the alternatenames column of large cities
// runs to tens of kilobytes. A trailing "\r" is dropped.
func EachLine(r io.Reader, name string, fn LineFunc) error {
	br := bufio.NewReaderSize(r, 64*1024)

	pos := Position{File: name}
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("reading %s after line %d: %w", name, pos.Line, err)
		}
		if line == "" && err == io.EOF {
			return nil
		}

		pos.Line++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if ferr := fn(pos, line); ferr != nil {
			return ferr
		}
		if err == io.EOF {
			return nil
		}
	}
}

// EachFileLine opens path and calls fn for every line. A path ending in
// .zip is read as a GeoNames archive: each .txt entry is scanned in
// archive order. The file handle is closed before EachFileLine returns.
func EachFileLine(path string, fn LineFunc) error {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return eachZipLine(path, fn)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	return EachLine(f, path, fn)
}

func eachZipLine(path string, fn LineFunc) error {
	rz, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening zip file: %w", err)
	}
	defer rz.Close()

	entries := 0
	for _, zf := range rz.File {
		if zf.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(zf.Name), ".txt") {
			continue
		}
		entries++
		if err := eachZipEntryLine(path, zf, fn); err != nil {
			return err
		}
	}
	if entries == 0 {
		return fmt.Errorf("zip file %s contains no .txt entry", path)
	}
	return nil
}

// eachZipEntryLine scans one archive entry. Split out so the entry is
// closed before the next one opens.
func eachZipEntryLine(archive string, zf *zip.File, fn LineFunc) error {
	rc, err := zf.Open()
	if err != nil {
		return fmt.Errorf("opening %s in zip: %w", zf.Name, err)
	}
	defer rc.Close()

	return EachLine(rc, archive+"!"+zf.Name, fn)
}
