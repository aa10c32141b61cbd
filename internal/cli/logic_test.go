package cli

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/idelchi/dirdiff/internal/growth"
)

func TestTrimEntriesAppliesMinGrowthAndTop(t *testing.T) {
	entries := []growth.Entry{
		{Path: `C:\a`, Delta: 5_000},
		{Path: `C:\b`, Delta: 3_000},
		{Path: `C:\c`, Delta: 900},
		{Path: `C:\d`, Delta: 100},
	}

	got := trimEntries(entries, 1_000, 0)
	want := []growth.Entry{
		{Path: `C:\a`, Delta: 5_000},
		{Path: `C:\b`, Delta: 3_000},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("trimEntries(min=1000) = %v, want %v", got, want)
	}
}

func TestTrimEntriesKeepsTopN(t *testing.T) {
	entries := []growth.Entry{
		{Path: `C:\a`, Delta: 5_000},
		{Path: `C:\b`, Delta: 3_000},
		{Path: `C:\c`, Delta: 900},
	}

	got := trimEntries(entries, 0, 2)
	if len(got) != 2 || got[0].Path != `C:\a` || got[1].Path != `C:\b` {
		t.Fatalf("trimEntries(top=2) = %v", got)
	}

	if got := trimEntries(entries, 0, 0); len(got) != 3 {
		t.Fatalf("trimEntries(top=0) should keep all, got %v", got)
	}
}

func TestNewResultTotalsUntrimmedEntries(t *testing.T) {
	entries := []growth.Entry{
		{Path: `C:\a`, Delta: 3_000_000},
		{Path: `C:\b`, Delta: 1_000},
	}

	result := newResult("old.txt", "new.txt", entries, 7, time.Second)
	if result.TotalGrowth != 3_001_000 {
		t.Fatalf("TotalGrowth = %d, want 3001000", result.TotalGrowth)
	}
	if result.Grown != 2 || result.Compared != 7 {
		t.Fatalf("Grown/Compared = %d/%d, want 2/7", result.Grown, result.Compared)
	}
}

func TestPrintTableListsEntries(t *testing.T) {
	result := newResult("old.txt", "new.txt", []growth.Entry{
		{Path: `C:\a`, Delta: 3_000_000},
		{Path: `C:\b`, Delta: 1_000},
	}, 2, time.Millisecond)

	var sb strings.Builder
	if err := PrintTable(result, &sb); err != nil {
		t.Fatalf("PrintTable: unexpected error: %v", err)
	}

	out := sb.String()
	for _, want := range []string{`C:\a`, `C:\b`, "Grown directories", "Total growth"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintJSONIsParseable(t *testing.T) {
	result := newResult("old.txt", "new.txt", nil, 0, 0)

	var sb strings.Builder
	if err := PrintJSON(result, &sb); err != nil {
		t.Fatalf("PrintJSON: unexpected error: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, `"total_growth": 0`) {
		t.Fatalf("unexpected JSON output:\n%s", out)
	}
}
