package utils

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestWriteThenReadArchive(t *testing.T) {
	var buf bytes.Buffer
	entries := []ArchiveEntry{
		{Name: "root.md", Data: []byte("root")},
		{Name: "work/plans/q3.md", Data: []byte("plans")},
	}
	if err := WriteArchive(&buf, entries); err != nil {
		t.Fatalf("WriteArchive failed: %v", err)
	}

	got, err := ReadArchive(bytes.NewReader(buf.Bytes()), int64(buf.Len()), 1024)
	if err != nil {
		t.Fatalf("ReadArchive failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[1].Name != "work/plans/q3.md" || string(got[1].Data) != "plans" {
		t.Errorf("entry = %+v", got[1])
	}
}

func TestReadArchive_RejectsTraversal(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("../evil.md")
	w.Write([]byte("x"))
	zw.Close()

	if _, err := ReadArchive(bytes.NewReader(buf.Bytes()), int64(buf.Len()), 1024); err == nil {
		t.Fatal("expected traversal entry to be rejected")
	}
}

func TestReadArchive_EntryTooLarge(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteArchive(&buf, []ArchiveEntry{{Name: "big.md", Data: bytes.Repeat([]byte("a"), 100)}}); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadArchive(bytes.NewReader(buf.Bytes()), int64(buf.Len()), 10); err == nil {
		t.Fatal("expected size limit error")
	}
}
