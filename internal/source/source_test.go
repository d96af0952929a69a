package source

import (
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cairo", []byte("fn f() {\n    x();\n}\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start of file", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 8, LineCol{Line: 1, Col: 9}},
		{"second line indent", 13, LineCol{Line: 2, Col: 5}},
		{"closing brace", 18, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if got != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, got, tt.want)
			}
		})
	}
}

func TestLines(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.cairo", []byte("first\nsecond\n\nlast")))

	if f.LineCount() != 4 {
		t.Fatalf("LineCount = %d, want 4", f.LineCount())
	}
	want := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: "last", 5: ""}
	for line, text := range want {
		if got := f.Line(line); got != text {
			t.Errorf("Line(%d) = %q, want %q", line, got, text)
		}
	}
	if start, end, ok := f.LineRange(2); !ok || start != 6 || end != 12 {
		t.Errorf("LineRange(2) = %d, %d, %v", start, end, ok)
	}
	if _, _, ok := f.LineRange(5); ok {
		t.Error("LineRange past the last line must fail")
	}
}

func TestDisplayPath(t *testing.T) {
	fs := NewFileSet()
	fs.SetBaseDir("/home/user/project")
	long := fs.AddVirtual("/home/user/project/src/contracts/token.cairo", nil)
	short := fs.AddVirtual("src/lib.cairo", nil)

	tests := []struct {
		id    FileID
		style PathStyle
		want  string
	}{
		{long, PathAsLoaded, "/home/user/project/src/contracts/token.cairo"},
		{long, PathShort, "token.cairo"},
		{long, PathRelative, "src/contracts/token.cairo"},
		{long, PathBase, "token.cairo"},
		{short, PathShort, "src/lib.cairo"},
		{short, PathBase, "lib.cairo"},
	}
	for _, tt := range tests {
		if got := fs.DisplayPath(tt.id, tt.style); got != tt.want {
			t.Errorf("DisplayPath(%d, %d) = %q, want %q", tt.id, tt.style, got, tt.want)
		}
	}
}

func TestAddKeepsOldVersions(t *testing.T) {
	fs := NewFileSet()
	old := fs.AddVirtual("./a.cairo", []byte("old"))
	cur := fs.AddVirtual("a.cairo", []byte("new"))
	if old == cur || fs.Get(cur).Path != "a.cairo" || string(fs.Get(old).Content) != "old" {
		t.Fatalf("old=%+v cur=%+v", fs.Get(old), fs.Get(cur))
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	path := t.TempDir() + "/crlf.cairo"
	if err := writeFile(path, "\xEF\xBB\xBFfn f() {\r\n}\r\n"); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "fn f() {\n}\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF", f.Flags)
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		a, b Span
		want bool
	}{
		{Span{Start: 0, End: 5}, Span{Start: 5, End: 9}, false},
		{Span{Start: 0, End: 5}, Span{Start: 4, End: 9}, true},
		{Span{Start: 2, End: 3}, Span{Start: 0, End: 9}, true},
		{Span{Start: 3, End: 3}, Span{Start: 0, End: 9}, true},
		{Span{Start: 0, End: 3}, Span{Start: 3, End: 3}, false},
		{Span{File: 1, Start: 0, End: 5}, Span{Start: 0, End: 5}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}
