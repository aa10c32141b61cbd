package report

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/dirdiff/internal/size"
	"github.com/idelchi/dirdiff/internal/snapshot"
)

func TestParseSkipsNonMatchingLines(t *testing.T) {
	input := strings.Join([]string{
		"Disk usage report, generated 2026-08-20",
		"",
		`C:\Users\me\Documents [3.2MB]`,
		"----------------------------------------",
		`C:\Users\me\Downloads [1KB]`,
		"Total: 2 directories",
		`C:\Users\me [4b]`,
	}, "\n")

	snap, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}

	if snap.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", snap.Len())
	}

	cases := []struct {
		path string
		want uint64
	}{
		{`C:\Users\me\Documents`, 3_200_000},
		{`C:\Users\me\Downloads`, 1_000},
		{`C:\Users\me`, 4},
	}
	for _, tc := range cases {
		got, ok := snap.Get(tc.path)
		if !ok || got != tc.want {
			t.Fatalf("Get(%q) = (%d, %v), want (%d, true)", tc.path, got, ok, tc.want)
		}
	}
}

func TestParseFailsOnInvalidSizeUnit(t *testing.T) {
	input := strings.Join([]string{
		`C:\a [1MB]`,
		`C:\b [12XB]`,
	}, "\n")

	snap, err := Parse(strings.NewReader(input))
	if !errors.Is(err, size.ErrInvalidUnit) {
		t.Fatalf("expected ErrInvalidUnit, got %v", err)
	}
	if snap != nil {
		t.Fatalf("expected nil snapshot on failure, got %d entries", snap.Len())
	}
}

func TestParseFailsOnDuplicatePath(t *testing.T) {
	input := strings.Join([]string{
		`C:\a [1MB]`,
		`C:\a [2MB]`,
	}, "\n")

	snap, err := Parse(strings.NewReader(input))
	if !errors.Is(err, snapshot.ErrDuplicatePath) {
		t.Fatalf("expected ErrDuplicatePath, got %v", err)
	}
	if snap != nil {
		t.Fatalf("expected nil snapshot on failure, got %d entries", snap.Len())
	}
}

func TestMatchLine(t *testing.T) {
	cases := []struct {
		line      string
		wantPath  string
		wantToken string
		wantOK    bool
	}{
		{`C:\Users\me\Documents [3.2MB]`, `C:\Users\me\Documents`, "3.2MB", true},
		{`C:\with [brackets] inside [1KB]`, `C:\with [brackets] inside`, "1KB", true},
		{`D:\ [67TB]`, `D:\`, "67TB", true},
		{"", "", "", false},
		{"Total: 2 directories", "", "", false},
		{`no-drive-colon [1KB]`, "", "", false},
		{`C:\missing-brackets`, "", "", false},
		{`C:\empty-size []`, "", "", false},
		{`C:\trailing [1KB] extra`, "", "", false},
	}

	for _, tc := range cases {
		path, token, ok := matchLine(tc.line)
		if ok != tc.wantOK || path != tc.wantPath || token != tc.wantToken {
			t.Fatalf("matchLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.line, path, token, ok, tc.wantPath, tc.wantToken, tc.wantOK)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	snap, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected wrapped fs.ErrNotExist, got %v", err)
	}
	if snap != nil {
		t.Fatalf("expected nil snapshot on failure")
	}
}

func TestLoadRoundTripThroughSave(t *testing.T) {
	b := snapshot.NewBuilder()
	entries := map[string]uint64{
		`C:\a`:    3_200_000,
		`C:\a\b`:  1_000,
		`C:\zzzz`: 4,
	}
	for path, bytes := range entries {
		if err := b.Add(path, bytes); err != nil {
			t.Fatalf("Add(%q): %v", path, err)
		}
	}

	path := filepath.Join(t.TempDir(), "report.txt")
	if err := Save(path, b.Finish()); err != nil {
		t.Fatalf("Save: unexpected error: %v", err)
	}

	snap, err := Load(path)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if snap.Len() != len(entries) {
		t.Fatalf("Len() = %d, want %d", snap.Len(), len(entries))
	}
	for path, want := range entries {
		// The chosen sizes are exactly representable, so the round trip
		// is lossless.
		if got, ok := snap.Get(path); !ok || got != want {
			t.Fatalf("Get(%q) = (%d, %v), want (%d, true)", path, got, ok, want)
		}
	}
}

func TestWriteOrdersPathsAscending(t *testing.T) {
	b := snapshot.NewBuilder()
	for _, p := range []string{`C:\c`, `C:\a`, `C:\b`} {
		if err := b.Add(p, 1_000); err != nil {
			t.Fatalf("Add(%q): %v", p, err)
		}
	}

	var sb strings.Builder
	if err := Write(&sb, b.Finish()); err != nil {
		t.Fatalf("Write: unexpected error: %v", err)
	}

	want := "C:\\a [1KB]\nC:\\b [1KB]\nC:\\c [1KB]\n"
	if sb.String() != want {
		t.Fatalf("Write output = %q, want %q", sb.String(), want)
	}
}
