package usecase

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/octopages/pkg/domain/types"
	"github.com/m-mizutani/octopages/pkg/utils/logging"
	"github.com/m-mizutani/octopages/pkg/utils/safe"
)

type archiveFormat string

const (
	formatZip     archiveFormat = "zip"
	formatTar     archiveFormat = "tar"
	formatTarGzip archiveFormat = "tar.gz"
	formatTarZstd archiveFormat = "tar.zst"
)

var (
	magicZip  = []byte("PK\x03\x04")
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicTar  = []byte("ustar")
)

// downloadFile copies an archive stream into w. When expectedSize is
// positive, a different byte count is treated as a corrupt download.
func downloadFile(ctx context.Context, src io.ReadCloser, w io.Writer, expectedSize int64) error {
	defer safe.Close(src)

	n, err := io.Copy(w, src)
	if err != nil {
		if ctx.Err() != nil {
			return goerr.Wrap(ctx.Err(), "download interrupted")
		}
		return goerr.Wrap(types.ErrDownloadCorruption, "failed to read download stream",
			goerr.V("written", n),
			goerr.V("error", err.Error()),
		)
	}

	if expectedSize > 0 && n != expectedSize {
		return goerr.Wrap(types.ErrDownloadCorruption, "downloaded size does not match",
			goerr.V("expected", expectedSize),
			goerr.V("actual", n),
		)
	}

	return nil
}

func detectFormat(src string) (archiveFormat, error) {
	fd, err := os.Open(filepath.Clean(src))
	if err != nil {
		return "", goerr.Wrap(types.ErrFilesystem, "failed to open archive", goerr.V("path", src), goerr.V("error", err.Error()))
	}
	defer safe.Close(fd)

	head := make([]byte, 512)
	n, err := io.ReadFull(fd, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", goerr.Wrap(types.ErrFilesystem, "failed to read archive", goerr.V("path", src), goerr.V("error", err.Error()))
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, magicZip):
		return formatZip, nil
	case bytes.HasPrefix(head, magicGzip):
		return formatTarGzip, nil
	case bytes.HasPrefix(head, magicZstd):
		return formatTarZstd, nil
	case len(head) >= 262 && bytes.Equal(head[257:262], magicTar):
		return formatTar, nil
	}

	return "", goerr.Wrap(types.ErrDownloadCorruption, "unknown archive format", goerr.V("path", src), goerr.V("size", n))
}

// archiveEntry is one member of an archive, independent of its format.
type archiveEntry struct {
	Name string
	Dir  bool
	Link bool
}

// walkArchive calls fn for every member. r is nil for directories.
func walkArchive(src string, format archiveFormat, fn func(entry archiveEntry, r io.Reader) error) error {
	if format == formatZip {
		return walkZip(src, fn)
	}

	fd, err := os.Open(filepath.Clean(src))
	if err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to open archive", goerr.V("path", src), goerr.V("error", err.Error()))
	}
	defer safe.Close(fd)

	var r io.Reader = bufio.NewReader(fd)
	switch format {
	case formatTarGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return goerr.Wrap(types.ErrDownloadCorruption, "broken gzip stream", goerr.V("error", err.Error()))
		}
		defer safe.Close(gz)
		r = gz

	case formatTarZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return goerr.Wrap(types.ErrDownloadCorruption, "broken zstd stream", goerr.V("error", err.Error()))
		}
		defer zr.Close()
		r = zr
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return goerr.Wrap(types.ErrDownloadCorruption, "broken tar archive", goerr.V("error", err.Error()))
		}

		entry := archiveEntry{Name: hdr.Name}
		switch hdr.Typeflag {
		case tar.TypeDir:
			entry.Dir = true
		case tar.TypeReg:
		case tar.TypeSymlink, tar.TypeLink:
			entry.Link = true
		case tar.TypeXGlobalHeader, tar.TypeXHeader:
			continue
		default:
			return goerr.Wrap(types.ErrDownloadCorruption, "unsupported tar entry type",
				goerr.V("name", hdr.Name),
				goerr.V("type", string(hdr.Typeflag)),
			)
		}

		var body io.Reader
		if !entry.Dir {
			body = tr
		}
		if err := fn(entry, body); err != nil {
			return err
		}
	}
}

func walkZip(src string, fn func(entry archiveEntry, r io.Reader) error) error {
	zipFile, err := zip.OpenReader(src)
	if err != nil {
		return goerr.Wrap(types.ErrDownloadCorruption, "failed to open zip file", goerr.V("file", src), goerr.V("error", err.Error()))
	}
	defer safe.Close(zipFile)

	for _, f := range zipFile.File {
		entry := archiveEntry{
			Name: f.Name,
			Dir:  f.FileInfo().IsDir(),
			Link: f.Mode()&fs.ModeSymlink != 0,
		}
		if entry.Dir || entry.Link {
			if err := fn(entry, nil); err != nil {
				return err
			}
			continue
		}

		if err := walkZipFile(f, entry, fn); err != nil {
			return err
		}
	}

	return nil
}

func walkZipFile(f *zip.File, entry archiveEntry, fn func(entry archiveEntry, r io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return goerr.Wrap(types.ErrDownloadCorruption, "failed to open zip entry", goerr.V("name", f.Name), goerr.V("error", err.Error()))
	}
	defer safe.Close(rc)

	return fn(entry, rc)
}

// cleanEntryPath normalizes a member name to a slash separated relative
// path. Absolute names and ".." segments are rejected.
func cleanEntryPath(name string) (string, error) {
	normalized := strings.ReplaceAll(name, "\\", "/")
	if strings.HasPrefix(normalized, "/") || filepath.IsAbs(name) {
		return "", goerr.Wrap(types.ErrDownloadCorruption, "absolute path in archive", goerr.V("path", name))
	}

	var safeParts []string
	for _, part := range strings.Split(normalized, "/") {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			return "", goerr.Wrap(types.ErrDownloadCorruption, "illegal file path of archive", goerr.V("path", name))
		}
		safeParts = append(safeParts, part)
	}

	return strings.Join(safeParts, "/"), nil
}

// stepDownDirectory strips prefix from an entry path. An entry equal to
// prefix itself yields "".
func stepDownDirectory(fpath, prefix string) string {
	if prefix == "" {
		return fpath
	}
	if fpath == prefix {
		return ""
	}
	return strings.TrimPrefix(fpath, prefix+"/")
}

// commonRoot returns the single top-level directory every file of the
// archive lives under, or "" when files sit at the top level or under
// several directories.
func commonRoot(paths []string) string {
	var root string
	for _, p := range paths {
		first, rest, nested := strings.Cut(p, "/")
		if !nested || rest == "" {
			return ""
		}
		if root == "" {
			root = first
		} else if root != first {
			return ""
		}
	}
	return root
}

// scanArchive validates every member and returns the cleaned file paths.
func scanArchive(src string, format archiveFormat) ([]string, error) {
	var files []string
	err := walkArchive(src, format, func(entry archiveEntry, _ io.Reader) error {
		if entry.Link {
			return goerr.Wrap(types.ErrDownloadCorruption, "links are not allowed in archive", goerr.V("path", entry.Name))
		}
		p, err := cleanEntryPath(entry.Name)
		if err != nil {
			return err
		}
		if !entry.Dir && p != "" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// extractArchive unpacks src into dst, which must exist. Every member is
// validated before anything is written. An archive that wraps all of its
// files in a single directory is unpacked without that directory. It
// returns the top-level names written to dst.
func extractArchive(ctx context.Context, src, dst string) ([]string, error) {
	format, err := detectFormat(src)
	if err != nil {
		return nil, err
	}

	files, err := scanArchive(src, format)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, goerr.Wrap(types.ErrDownloadCorruption, "archive has no files", goerr.V("path", src))
	}

	root := commonRoot(files)
	if root != "" {
		logging.From(ctx).Debug("stepping down archive root directory", "root", root)
	}

	topLevel := make(map[string]struct{})
	err = walkArchive(src, format, func(entry archiveEntry, r io.Reader) error {
		if entry.Dir {
			return nil
		}
		p, err := cleanEntryPath(entry.Name)
		if err != nil {
			return err
		}
		target := stepDownDirectory(p, root)
		if target == "" {
			return nil
		}

		first, _, _ := strings.Cut(target, "/")
		topLevel[first] = struct{}{}

		return extractFile(dst, target, r)
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(topLevel))
	for name := range topLevel {
		names = append(names, name)
	}
	return names, nil
}

func extractFile(dst, target string, r io.Reader) error {
	fpath := filepath.Join(dst, filepath.FromSlash(target))
	if !strings.HasPrefix(fpath, filepath.Clean(dst)+string(os.PathSeparator)) {
		return goerr.Wrap(types.ErrDownloadCorruption, "illegal file path of archive", goerr.V("path", fpath))
	}

	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to create directory", goerr.V("path", fpath), goerr.V("error", err.Error()))
	}

	// #nosec
	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return goerr.Wrap(types.ErrFilesystem, "failed to open file", goerr.V("fpath", fpath), goerr.V("error", err.Error()))
	}
	defer safe.Close(out)

	// #nosec
	if _, err := io.Copy(out, r); err != nil {
		return goerr.Wrap(types.ErrDownloadCorruption, "failed to copy file content", goerr.V("path", target), goerr.V("error", err.Error()))
	}

	return nil
}

// archiveRootHas reports whether name is a top-level member.
func archiveRootHas(names []string, name string) bool {
	for _, n := range names {
		if path.Clean(n) == name {
			return true
		}
	}
	return false
}
