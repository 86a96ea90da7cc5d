package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T) (modelPath, root string) {
	t.Helper()

	root = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.css"), []byte("body{color:red}\n"), 0o644))

	modelPath = filepath.Join(t.TempDir(), "wro.yaml")
	modelYAML := "groups:\n  - name: core\n    resources:\n      - uri: a.css\n        type: css\n"
	require.NoError(t, os.WriteFile(modelPath, []byte(modelYAML), 0o644))
	return modelPath, root
}

func TestRun_WritesContentToStdout(t *testing.T) {
	modelPath, root := writeFixtures(t)

	var out bytes.Buffer
	err := run([]string{
		"-model", modelPath,
		"-root", root,
		"-request", "core.css?minimize=false",
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}\n", out.String())
}

func TestRun_WritesVersionedArtifact(t *testing.T) {
	modelPath, root := writeFixtures(t)
	outDir := t.TempDir()

	var out bytes.Buffer
	err := run([]string{
		"-model", modelPath,
		"-root", root,
		"-request", "core.css",
		"-out", outDir,
	}, &out)
	require.NoError(t, err)

	target := strings.TrimSpace(out.String())
	assert.True(t, strings.HasPrefix(filepath.Base(target), "core-"))
	assert.True(t, strings.HasSuffix(target, ".css"))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}\n", string(data))
}

func TestRun_MissingRequest(t *testing.T) {
	var out bytes.Buffer
	err := run(nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-request")
}

func TestRun_UnknownGroup(t *testing.T) {
	modelPath, root := writeFixtures(t)

	var out bytes.Buffer
	err := run([]string{
		"-model", modelPath,
		"-root", root,
		"-request", "absent.css",
	}, &out)
	assert.Error(t, err)
}
