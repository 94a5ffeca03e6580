package testutil

import (
	"archive/tar"
	"bytes"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Files maps slash separated paths to file contents. A path ending in "/"
// is a directory entry.
type Files map[string]string

func (x Files) sortedNames() []string {
	names := make([]string, 0, len(x))
	for name := range x {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ZipArchive builds a zip archive in memory.
func ZipArchive(t testing.TB, files Files) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range files.sortedNames() {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// TarArchive builds an uncompressed tar archive. symlinks maps link names
// to targets.
func TarArchive(t testing.TB, files Files, symlinks map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := tar.NewWriter(&buf)
	for _, name := range files.sortedNames() {
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(files[name])), Typeflag: tar.TypeReg}
		if name[len(name)-1] == '/' {
			hdr = &tar.Header{Name: name, Mode: 0755, Typeflag: tar.TypeDir}
		}
		if err := w.WriteHeader(hdr); err != nil {
			t.Fatalf("failed to write tar header %s: %v", name, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			if _, err := w.Write([]byte(files[name])); err != nil {
				t.Fatalf("failed to write tar entry %s: %v", name, err)
			}
		}
	}
	for name, target := range symlinks {
		hdr := &tar.Header{Name: name, Linkname: target, Mode: 0777, Typeflag: tar.TypeSymlink}
		if err := w.WriteHeader(hdr); err != nil {
			t.Fatalf("failed to write symlink %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close tar: %v", err)
	}
	return buf.Bytes()
}

// TarGzArchive builds a gzip compressed tar archive.
func TarGzArchive(t testing.TB, files Files) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(TarArchive(t, files, nil)); err != nil {
		t.Fatalf("failed to gzip tar: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close gzip: %v", err)
	}
	return buf.Bytes()
}

// TarZstdArchive builds a zstd compressed tar archive.
func TarZstdArchive(t testing.TB, files Files) []byte {
	t.Helper()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("failed to create zstd encoder: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(TarArchive(t, files, nil), nil)
}
