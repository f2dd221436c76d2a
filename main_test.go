package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRewrite(t *testing.T) {
	root := filepath.Join(t.TempDir(), "FrontEnd")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "lib"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "app.js"), []byte(`fetch("http://localhost:3000/api")`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "node_modules", "lib", "index.js"), []byte("localhost:3000"), 0o644))

	v := newTestViper()
	v.Set("tree", true)
	var out bytes.Buffer
	require.NoError(t, runRewrite(&out, v, nil, []string{root}))

	data, err := os.ReadFile(filepath.Join(root, "src", "app.js"))
	require.NoError(t, err)
	assert.Equal(t, `fetch("https://yup.notiffly.com.br/api")`, string(data))

	data, err = os.ReadFile(filepath.Join(root, "node_modules", "lib", "index.js"))
	require.NoError(t, err)
	assert.Equal(t, "localhost:3000", string(data))

	assert.Contains(t, out.String(), "Total files processed: 1\n")
	assert.Contains(t, out.String(), "Modified files:\nFrontEnd\n└── src\n    └── app.js\n")
}

func TestRunRewriteMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "FrontEnd")

	var out bytes.Buffer
	err := runRewrite(&out, newTestViper(), nil, []string{missing})

	require.ErrorIs(t, err, ErrRootNotFound)
	assert.Empty(t, out.String())
}

func TestRunRewriteInvalidConfig(t *testing.T) {
	v := newTestViper()
	v.Set("suffixes", []string{})

	err := runRewrite(&bytes.Buffer{}, v, nil, []string{t.TempDir()})
	assert.ErrorIs(t, err, ErrNoSuffixes)
}
