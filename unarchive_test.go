package main

import (
	"archive/zip"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/freq_report/domain/models"
)

func compressGzip(t *testing.T, src, dst string) {
	t.Helper()
	f, err := os.Create(dst)
	require.NoError(t, err)
	defer f.Close()
	w := gzip.NewWriter(f)
	copyFile(t, src, w)
	require.NoError(t, w.Close())
}

func compressLZ4(t *testing.T, src, dst string) {
	t.Helper()
	f, err := os.Create(dst)
	require.NoError(t, err)
	defer f.Close()
	w := lz4.NewWriter(f)
	copyFile(t, src, w)
	require.NoError(t, w.Close())
}

func compressZip(t *testing.T, src, dst string) {
	t.Helper()
	f, err := os.Create(dst)
	require.NoError(t, err)
	defer f.Close()
	zw := zip.NewWriter(f)
	readme, err := zw.Create("README.txt")
	require.NoError(t, err)
	_, err = readme.Write([]byte("tiny"))
	require.NoError(t, err)
	w, err := zw.Create("nested/" + filepath.Base(src))
	require.NoError(t, err)
	copyFile(t, src, w)
	require.NoError(t, zw.Close())
}

func copyFile(t *testing.T, src string, w io.Writer) {
	t.Helper()
	in, err := os.Open(src)
	require.NoError(t, err)
	defer in.Close()
	_, err = io.Copy(w, in)
	require.NoError(t, err)
}

func TestPrepareDatabaseFilePlain(t *testing.T) {
	path, cleanup, err := prepareDatabaseFile("survey.db")
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, "survey.db", path)
}

func TestGenerateFrequencyReportFromArchives(t *testing.T) {
	compressors := map[string]func(*testing.T, string, string){
		".gz":  compressGzip,
		".lz4": compressLZ4,
		".zip": compressZip,
	}
	for ext, compress := range compressors {
		t.Run(ext, func(t *testing.T) {
			cfg := newTestConfig(t, "data",
				"CREATE TABLE data (age INTEGER)",
				"INSERT INTO data VALUES (1), (2), (2)",
			)
			archive := cfg.DatabasePath + ext
			compress(t, cfg.DatabasePath, archive)
			require.NoError(t, os.Remove(cfg.DatabasePath))
			cfg.DatabasePath = archive

			require.NoError(t, generateFrequencyReport(context.Background(), cfg, io.Discard))
			assert.FileExists(t, cfg.ReportPath())
			assert.FileExists(t, archive, "the archive is kept")
		})
	}
}

func TestPrepareDatabaseFileCleanup(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.db")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	compressGzip(t, src, src+".gz")

	path, cleanup, err := prepareDatabaseFile(src + ".gz")
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(b))
	assert.Equal(t, "data.db", filepath.Base(path))

	cleanup()
	assert.NoDirExists(t, filepath.Dir(path))
}

func TestPrepareDatabaseFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	_, _, err := prepareDatabaseFile(path)
	assert.ErrorIs(t, err, models.ErrConnection)
}
