package utils

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
)

// ArchiveEntry is one file inside an export archive. Name uses forward
// slashes regardless of OS.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// WriteArchive writes entries as a zip archive to w.
func WriteArchive(w io.Writer, entries []ArchiveEntry) error {
	zipWriter := zip.NewWriter(w)

	for _, entry := range entries {
		fileWriter, err := zipWriter.Create(entry.Name)
		if err != nil {
			zipWriter.Close()
			return fmt.Errorf("create zip entry %q: %w", entry.Name, err)
		}
		if _, err := fileWriter.Write(entry.Data); err != nil {
			zipWriter.Close()
			return fmt.Errorf("write zip entry %q: %w", entry.Name, err)
		}
	}

	return zipWriter.Close()
}

// ReadArchive reads every regular file from a zip archive. Entries that
// escape the archive root ("../x", absolute names) are rejected, and any
// entry larger than maxEntrySize bytes fails the read.
func ReadArchive(r io.ReaderAt, size int64, maxEntrySize int64) ([]ArchiveEntry, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip file: %w", err)
	}

	entries := make([]ArchiveEntry, 0, len(zipReader.File))
	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() {
			continue
		}

		name := path.Clean(strings.ReplaceAll(file.Name, "\\", "/"))
		if strings.HasPrefix(name, "../") || name == ".." || path.IsAbs(name) {
			return nil, fmt.Errorf("zip entry %q escapes archive root", file.Name)
		}
		if int64(file.UncompressedSize64) > maxEntrySize {
			return nil, fmt.Errorf("zip entry %q exceeds %d bytes", file.Name, maxEntrySize)
		}

		data, err := readZipFile(file, maxEntrySize)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ArchiveEntry{Name: name, Data: data})
	}

	return entries, nil
}

func readZipFile(file *zip.File, limit int64) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", file.Name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("zip entry %q exceeds %d bytes", file.Name, limit)
	}
	return data, nil
}
