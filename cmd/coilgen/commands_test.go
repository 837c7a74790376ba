package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coilgen/coilgen/internal/coil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_StdoutCSV(t *testing.T) {
	out, err := run(t, "generate", "--lx", "50", "--by", "50", "--width", "2", "--gap", "1", "--turns", "1", "--precision", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "path,turn,corner,x_mm,y_mm", lines[0])
	assert.Equal(t, "outer,1,2,0.0,50.0", lines[2])
}

func TestGenerate_TXTFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coil.txt")

	_, err := run(t, "generate", "--lx", "50", "--by", "50", "--width", "2", "--gap", "1", "--turns", "3", "--inner", "-f", "txt", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// outer + reversed inner + closing point
	assert.Len(t, strings.Split(string(data), "\n"), 25)
}

func TestGenerate_Errors(t *testing.T) {
	_, err := run(t, "generate", "--lx", "10", "--by", "10", "--width", "1", "--gap", "1", "--turns", "10")
	var geomErr *coil.GeometryError
	require.True(t, errors.As(err, &geomErr))
	assert.Equal(t, 1, geomErr.Achievable)

	_, err = run(t, "generate", "--turns", "0")
	var paramErr *coil.InvalidParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, "turns", paramErr.Field)

	_, err = run(t, "generate", "--format", "dxf")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestMaxTurns(t *testing.T) {
	out, err := run(t, "max-turns", "--lx", "50", "--by", "50", "--width", "2", "--gap", "1")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	_, err = run(t, "max-turns", "--width", "0")
	assert.Error(t, err)
}
