package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pagecluster/testutil"
)

func writePages(t *testing.T, dir string, groups [][]string) {
	t.Helper()
	for g, bodies := range groups {
		for i, body := range bodies {
			name := filepath.Join(dir, fmt.Sprintf("g%d-%02d.html", g, i))
			require.NoError(t, os.WriteFile(name, []byte(body), 0o644))
		}
	}
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

// labels parses "url cluster" lines into a map keyed by file base name.
func labels(t *testing.T, out string) map[string]int {
	t.Helper()
	m := make(map[string]int)
	for _, line := range strings.Split(out, "\n") {
		url, label, ok := strings.Cut(line, " ")
		if !ok || !strings.HasPrefix(url, "file://") {
			continue
		}
		n, err := strconv.Atoi(label)
		require.NoError(t, err, line)
		m[filepath.Base(url)] = n
	}
	return m
}

func TestLoadDir_SkipsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte("<div></div>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), []byte{0xff, 0xfe, 0xfd}, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.html"), []byte("<p></p>"), 0o644))

	pages, err := loadDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.True(t, strings.HasPrefix(pages[0].URL, "file://"))
	assert.True(t, strings.HasSuffix(pages[0].URL, "a.html"))
	assert.True(t, strings.HasSuffix(pages[1].URL, "c.html"))
}

func TestClusterAndClassify(t *testing.T) {
	pagesDir := t.TempDir()
	storeDir := t.TempDir()
	writePages(t, pagesDir, testutil.NewRNG(5).PageGroups(2, 10))

	common := []string{
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--clusters", "2",
		"--store", "local",
		"--store-dir", storeDir,
		"--log-level", "error",
	}

	out := run(t, append([]string{"cluster", pagesDir}, common...)...)
	assert.Contains(t, out, "Total pages: 20")
	assert.Contains(t, out, "Clustering in")

	clustered := labels(t, out)
	require.Len(t, clustered, 20)
	assert.NotEqual(t, clustered["g0-00.html"], clustered["g1-00.html"])
	for name, label := range clustered {
		assert.Equal(t, clustered[name[:2]+"-00.html"], label, name)
	}

	_, err := os.Stat(filepath.Join(storeDir, "session.snap"))
	require.NoError(t, err)

	out = run(t, append([]string{"classify", pagesDir}, common...)...)
	assert.Equal(t, clustered, labels(t, out))
}
