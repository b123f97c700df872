// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package geonames

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seenLine struct {
	pos  Position
	line string
}

func collect(t *testing.T, path string) []seenLine {
	t.Helper()
	var seen []seenLine
	err := EachFileLine(path, func(pos Position, line string) error {
		seen = append(seen, seenLine{pos, line})
		return nil
	})
	require.NoError(t, err)
	return seen
}

func writeText(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeZip creates an archive with the given entries in order.
func writeZip(t *testing.T, dir, name string, entries [][2]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(e[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestEachLine(t *testing.T) {
	var seen []seenLine
	err := EachLine(strings.NewReader("a\r\nb\n\nc"), "mem", func(pos Position, line string) error {
		seen = append(seen, seenLine{pos, line})
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []seenLine{
		{Position{"mem", 1}, "a"},
		{Position{"mem", 2}, "b"},
		{Position{"mem", 3}, ""},
		{Position{"mem", 4}, "c"},
	}, seen)
}

func TestEachLine_StopsOnError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := EachLine(strings.NewReader("a\nb\nc\n"), "mem", func(pos Position, line string) error {
		calls++
		if pos.Line == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestEachLine_LongLine(t *testing.T) {
	// Longer than bufio's default 64 KiB token limit.
	alt := strings.Repeat("Londinium,", 20000)
	line := londonWith(map[int]string{ColAlternateNames: alt})

	var got string
	err := EachLine(strings.NewReader(line+"\n"), "mem", func(_ Position, l string) error {
		got = l
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, line, got)
}

func TestEachLine_NoLengthLimit(t *testing.T) {
	alt := strings.Repeat("x", 5<<20)
	line := londonWith(map[int]string{ColAlternateNames: alt})

	var lines []string
	err := EachLine(strings.NewReader(line+"\r\n"+londonLine), "mem", func(_ Position, l string) error {
		lines = append(lines, l)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, len(line), len(lines[0]))
	assert.Equal(t, londonLine, lines[1])
}

func TestEachFileLine_Text(t *testing.T) {
	dir := t.TempDir()
	path := writeText(t, dir, "cities15000.txt", "first\nsecond\n")

	seen := collect(t, path)
	require.Len(t, seen, 2)
	assert.Equal(t, Position{path, 2}, seen[1].pos)
	assert.Equal(t, "second", seen[1].line)
}

func TestEachFileLine_Missing(t *testing.T) {
	err := EachFileLine(filepath.Join(t.TempDir(), "nope.txt"), func(Position, string) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestEachFileLine_Zip(t *testing.T) {
	dir := t.TempDir()
	path := writeZip(t, dir, "cities15000.zip", [][2]string{
		{"readme.md", "ignored\n"},
		{"cities15000.txt", "one\ntwo\n"},
		{"extra.TXT", "three\n"},
	})

	seen := collect(t, path)
	require.Len(t, seen, 3)
	assert.Equal(t, "one", seen[0].line)
	assert.Equal(t, Position{path + "!cities15000.txt", 2}, seen[1].pos)
	assert.Equal(t, Position{path + "!extra.TXT", 1}, seen[2].pos)
}

func TestEachFileLine_ZipWithoutText(t *testing.T) {
	dir := t.TempDir()
	path := writeZip(t, dir, "empty.zip", [][2]string{{"readme.md", "x"}})

	err := EachFileLine(path, func(Position, string) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .txt entry")
}

func TestLineError(t *testing.T) {
	err := &LineError{Pos: Position{"cities.txt", 7}, Err: ErrInvalidID}
	assert.Equal(t, "cities.txt:7: invalid geonameid", err.Error())
	assert.ErrorIs(t, err, ErrInvalidID)
}
