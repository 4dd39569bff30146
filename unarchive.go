package main

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4"
	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/freq_report/domain/models"
)

// prepareDatabaseFile returns the path of an uncompressed database file.
// Archives are unpacked into a fresh temp directory which cleanup removes;
// the archive itself is left untouched.
func prepareDatabaseFile(filePath string) (string, func(), error) {
	var unpack func(string, string) (string, error)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".zip":
		unpack = unpackZipArchive
	case ".gz":
		unpack = unpackGzipArchive
	case ".lz4":
		unpack = unpackLZ4Archive
	default:
		return filePath, func() {}, nil
	}

	dir := filepath.Join(os.TempDir(), "freqreport-"+uuid.NewV4().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("%w: %w", models.ErrConnection, err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	dbPath, err := unpack(filePath, dir)
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("%w: unpack %s: %w", models.ErrConnection, filePath, err)
	}
	return dbPath, cleanup, nil
}

// unpackZipArchive extracts the largest file of the archive.
func unpackZipArchive(filePath, destDir string) (string, error) {
	r, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var largestFile *zip.File
	var largestSize uint64
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if largestFile == nil || f.UncompressedSize64 > largestSize {
			largestFile = f
			largestSize = f.UncompressedSize64
		}
	}
	if largestFile == nil {
		return "", fmt.Errorf("%s holds no files", filePath)
	}

	rc, err := largestFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return extractTo(filepath.Join(destDir, filepath.Base(largestFile.Name)), rc)
}

func unpackGzipArchive(filePath, destDir string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return "", err
	}
	defer gz.Close()

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return extractTo(filepath.Join(destDir, name), gz)
}

func unpackLZ4Archive(filePath, destDir string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return extractTo(filepath.Join(destDir, name), lz4.NewReader(file))
}

func extractTo(destPath string, r io.Reader) (string, error) {
	outFile, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, r); err != nil {
		return "", err
	}
	return destPath, outFile.Close()
}
