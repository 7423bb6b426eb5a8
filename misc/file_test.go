package misc

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestWriteThenReadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "roundtrip.json")
	contents := []byte(`{"Width": 640}`)

	bytesWritten, err := WriteFile(fileName, contents)
	if err != nil {
		t.Fatalf("writing the file: %s", err)
	}
	if bytesWritten != len(contents) {
		t.Errorf("expected %d bytes written, got %d", len(contents), bytesWritten)
	}

	err, readBack := ReadFile(fileName)
	if err != nil {
		t.Fatalf("reading the file back: %s", err)
	}
	if !bytes.Equal(readBack, contents) {
		t.Errorf("expected %q back, got %q", contents, readBack)
	}
}

func TestFileOperationsRejectEmptyNames(t *testing.T) {
	if err, _ := ReadFile(""); err == nil {
		t.Error("expected reading an unnamed file to fail")
	}
	if _, err := WriteFile("", nil); err == nil {
		t.Error("expected writing an unnamed file to fail")
	}
}

func TestReadFileReportsMissingFiles(t *testing.T) {
	err, _ := ReadFile(filepath.Join(t.TempDir(), "not_there.json"))
	if err == nil {
		t.Error("expected reading a missing file to fail")
	}
}
