package source

import (
	"testing"
)

func TestAddVirtualAndGet(t *testing.T) {
	fs := NewFileSet()

	content := []byte("module Core exposing (..)\n")
	id := fs.AddVirtual("Core.fen", content)

	file := fs.Get(id)
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
	if string(file.Content) != string(content) {
		t.Errorf("unexpected content %q", string(file.Content))
	}

	got, ok := fs.GetByPath("Core.fen")
	if !ok || got.ID != id {
		t.Fatalf("GetByPath = (%v, %v), want id %d", got, ok, id)
	}
}

func TestResolveMultiLine(t *testing.T) {
	fs := NewFileSet()

	// "ab\ncd\ne" — 'c' на второй строке, 'e' на третьей
	id := fs.AddVirtual("test.fen", []byte("ab\ncd\ne"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}},
		{2, LineCol{Line: 1, Col: 3}}, // сам \n
		{3, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 2, Col: 2}},
		{6, LineCol{Line: 3, Col: 1}},
	}

	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tc.off, start, tc.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.fen", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(1); got != "first" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Errorf("GetLine(3) = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Errorf("GetLine(4) = %q, want empty", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	normalized, changed := normalizeCRLF([]byte("a\r\nb\r\nc"))
	if !changed {
		t.Error("expected CRLF normalization to report a change")
	}
	if string(normalized) != "a\nb\nc" {
		t.Errorf("unexpected normalized content %q", string(normalized))
	}

	same, changed := normalizeCRLF([]byte("plain"))
	if changed || string(same) != "plain" {
		t.Errorf("unexpected result for content without CR: %q (%v)", string(same), changed)
	}
}

func TestRemoveBOM(t *testing.T) {
	content := []byte{0xEF, 0xBB, 0xBF, 'x'}
	without, had := removeBOM(content)
	if !had || string(without) != "x" {
		t.Errorf("removeBOM = (%q, %v)", string(without), had)
	}
}
