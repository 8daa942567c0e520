package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.php", []byte("<?php echo 1;"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("test.php")
	if !exists || latestID != id1 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latestID, exists, id1)
	}

	id2 := fs.Revise(id1, []byte("<?php echo 2;"))
	if id2 == id1 {
		t.Fatal("Expected Revise to allocate a new FileID")
	}

	latestID, _ = fs.GetLatest("test.php")
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	if got := string(fs.Get(id1).Content); got != "<?php echo 1;" {
		t.Errorf("first version content = %q", got)
	}
	if got := string(fs.Get(id2).Content); got != "<?php echo 2;" {
		t.Errorf("second version content = %q", got)
	}
	if fs.Get(id1).Path != fs.Get(id2).Path {
		t.Error("Expected both versions to share the path")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.php", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("p.php", []byte("ab\ncd\n\nx"))
	file := fs.Get(id)

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{2, LineCol{Line: 1, Col: 3}}, // the newline itself
		{3, LineCol{Line: 2, Col: 1}},
		{6, LineCol{Line: 3, Col: 1}},
		{7, LineCol{Line: 4, Col: 1}},
	}
	for _, tt := range tests {
		if got := file.Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("l.php", []byte("first\nsecond\n\nlast")))

	cases := map[uint32]string{
		0: "",
		1: "first",
		2: "second",
		3: "",
		4: "last",
		5: "",
	}
	for line, want := range cases {
		if got := file.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
	if file.LineCount() != 4 {
		t.Errorf("LineCount = %d, want 4", file.LineCount())
	}
}

func TestContentKeptAsRead(t *testing.T) {
	raw := []byte("\xEF\xBB\xBF<?php\r\n$a = 1;\n$b = 2;\r\n")
	fs := NewFileSet()
	file := fs.Get(fs.Add("x.php", raw, 0))
	if string(file.Content) != string(raw) {
		t.Fatalf("Content = %q, want the raw bytes", file.Content)
	}
	if file.LineCount() != 4 {
		t.Fatalf("LineCount = %d, want 4", file.LineCount())
	}
	if got := file.GetLine(2); got != "$a = 1;" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := file.GetLine(3); got != "$b = 2;" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if pos := file.Position(18); pos.Line != 3 || pos.Col != 1 {
		t.Errorf("Position(18) = %+v, want 3:1", pos)
	}
}

func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	if f := fs.Get(fs.AddVirtual("empty.php", []byte{})); len(f.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty file, got length %d", len(f.LineIdx))
	}
	if f := fs.Get(fs.AddVirtual("only_newline.php", []byte("\n"))); len(f.LineIdx) != 1 || f.LineIdx[0] != 0 {
		t.Errorf("Expected LineIdx [0] for file with only newline, got %v", f.LineIdx)
	}
	if fs.Get(FileID(99)) != nil {
		t.Error("Expected nil for unknown FileID")
	}
}

func TestLoadCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.php")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\r\nb\r\n" {
		t.Errorf("Expected raw CRLF content, got %q", string(file.Content))
	}
	if got := file.GetLine(1); got != "a" {
		t.Errorf("GetLine(1) = %q, want %q", got, "a")
	}
}
