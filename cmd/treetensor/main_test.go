package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/treetensor/internal/tree"
	"github.com/born-ml/treetensor/internal/treetensor"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "treetensor v0.1.0-dev (archive format v2, backend CPU)\n", out)
}

func TestOps(t *testing.T) {
	out, _, err := run(t, "ops")
	require.NoError(t, err)

	assert.Regexp(t, `(?m)^abs\s+preserve$`, out)
	assert.Regexp(t, `(?m)^abs_\s+inplace$`, out)
	assert.Regexp(t, `(?m)^sum\s+reduce$`, out)
	assert.Regexp(t, `(?m)^tensor\s+literal$`, out)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), len(treetensor.Default.Names()))
}

func TestApplyYAML(t *testing.T) {
	path := writeTemp(t, "x.yaml", "a: [-1, 2]\nb:\n  x: [[-1.5]]\n")

	out, _, err := run(t, "apply", "abs", path, "--output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "a: [1, 2]\nb:\n  x: [[1.5]]\n", out)

	out, _, err = run(t, "apply", "sum", path, "--output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "-0.5\n", out)
}

func TestApplyTreeOutput(t *testing.T) {
	path := writeTemp(t, "x.json", `{"b": [1.5], "a": {"c": [true]}}`)

	out, _, err := run(t, "apply", "clone", path, "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"<TensorTree>",
		"├── b --> tensor([1.5])",
		"└── a --> <TensorTree>",
		"    └── c --> tensor([True])",
		"",
	}, "\n"), out)
}

func TestApplyArgs(t *testing.T) {
	path := writeTemp(t, "x.toml", "a = [-2.0, 0.5, 3.0]\n")

	out, _, err := run(t, "apply", "clamp", path, "--arg=-1", "--arg=1", "--output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "a: [-1.0, 0.5, 1.0]\n", out)

	out, _, err = run(t, "apply", "zeros", "--arg", "[2, 3]", "--dtype", "int32", "--output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "[[0, 0, 0], [0, 0, 0]]\n", out)
}

func TestApplyTwoTreesAndSave(t *testing.T) {
	a := writeTemp(t, "a.yaml", "w: [1.0, 2.0]\nb: [0.5]\n")
	b := writeTemp(t, "b.yaml", "w: [10.0, 20.0]\nb: [0.25]\n")
	archive := filepath.Join(t.TempDir(), "sum.born")

	_, stderr, err := run(t, "apply", "add", a, b, "--out", archive)
	require.NoError(t, err)
	assert.Contains(t, stderr, "result saved")

	out, _, err := run(t, "apply", "clone", archive, "--output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "w: [11.0, 22.0]\nb: [0.75]\n", out)
}

func TestApplyEach(t *testing.T) {
	a := writeTemp(t, "a.yaml", "x: [1, 2]\n")
	b := writeTemp(t, "b.yaml", "x: [3]\ny: [4]\n")

	out, _, err := run(t, "apply", "sum", "--each", a, b, "--output", "yaml")
	require.NoError(t, err)
	assert.Equal(t, "# "+a+"\n3\n# "+b+"\n7\n", out)
}

func TestApplyErrors(t *testing.T) {
	a := writeTemp(t, "a.yaml", "x: [1.0]\n")
	b := writeTemp(t, "b.yaml", "y: [1.0]\n")

	_, _, err := run(t, "apply", "nope", a)
	assert.ErrorIs(t, err, treetensor.ErrUnknownOp)

	_, _, err = run(t, "apply", "add", a, b)
	assert.ErrorIs(t, err, tree.ErrStructureMismatch)

	_, _, err = run(t, "apply", "abs", a, "--each", "--out", "x.born")
	assert.ErrorContains(t, err, "--each")

	_, _, err = run(t, "apply", "abs", "--each")
	assert.ErrorContains(t, err, "at least one file")

	_, _, err = run(t, "apply", "abs", a, "--dtype", "half")
	assert.ErrorContains(t, err, "--dtype")

	_, _, err = run(t, "apply", "abs", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	src := writeTemp(t, "w.yaml", "layer:\n  weight: [[1.0, 2.0]]\n  bias: [0.5]\n")
	dir := t.TempDir()

	st := filepath.Join(dir, "w.safetensors")
	_, _, err := run(t, "convert", src, st)
	require.NoError(t, err)

	back := filepath.Join(dir, "back.yaml")
	_, _, err = run(t, "convert", st, back)
	require.NoError(t, err)

	data, err := os.ReadFile(back)
	require.NoError(t, err)
	// SafeTensors stores names sorted.
	assert.Equal(t, "layer:\n  bias: [0.5]\n  weight: [[1.0, 2.0]]\n", string(data))

	_, _, err = run(t, "convert", src, filepath.Join(dir, "w.txt"))
	assert.ErrorContains(t, err, "unsupported output format")

	scalar := writeTemp(t, "s.yaml", "[1, 2]\n")
	_, _, err = run(t, "convert", scalar, filepath.Join(dir, "s.born"))
	assert.ErrorContains(t, err, "a tree is required")
}

func TestConfigFile(t *testing.T) {
	cfg := writeTemp(t, "treetensor.yaml", "float_dtype: float64\ncolor: never\nlog_level: debug\n")
	path := writeTemp(t, "x.yaml", "a: [0.5]\n")

	out, stderr, err := run(t, "--config", cfg, "apply", "clone", path)
	require.NoError(t, err)
	assert.Equal(t, "<TensorTree>\n└── a --> tensor([0.5], dtype=float64)\n", out)
	assert.Contains(t, stderr, "configuration loaded")

	_, _, err = run(t, "--config", cfg, "--output", "xml", "ops")
	assert.ErrorContains(t, err, "output must be")

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "ops")
	assert.Error(t, err)
}
