package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minutes.docx")

	content := "## Meeting Minutes\n### Date\n2024-01-01\n\n- **Owner**: Daniel\n1. Opening remarks\nClosing paragraph."

	if err := WriteDocx("Meeting Minutes", content, path); err != nil {
		t.Fatalf("WriteDocx() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}
