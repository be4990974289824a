package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCSVMissingFileIsEmpty(t *testing.T) {
	store, err := OpenCSV(filepath.Join(t.TempDir(), "high_scores.csv"), 10)
	if err != nil {
		t.Fatalf("OpenCSV() failed: %v", err)
	}

	scores, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected empty table, got %v", scores)
	}
}

func TestCSVAddWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.csv")
	store, err := OpenCSV(path, 10)
	if err != nil {
		t.Fatalf("OpenCSV() failed: %v", err)
	}
	ctx := context.Background()

	store.Add(ctx, Entry{Name: "ann", Score: 240, Lines: 1, Level: 5})
	store.Add(ctx, Entry{Name: "bob, jr", Score: 7200, Lines: 4, Level: 5})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	want := "name,score,lines,level\n\"bob, jr\",7200,4,5\nann,240,1,5\n"
	if string(data) != want {
		t.Errorf("file contents:\n%s\nexpected:\n%s", data, want)
	}
}

func TestCSVLoadToleratesMessyInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.csv")
	content := "name, score, lines, level\n" +
		"ann,100,2,5\n" +
		"\n" +
		"bob,lots,x,\n" +
		"cid,300\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := OpenCSV(path, 10)
	if err != nil {
		t.Fatalf("OpenCSV() failed: %v", err)
	}
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := []Entry{
		{Name: "cid", Score: 300},
		{Name: "ann", Score: 100, Lines: 2, Level: 5},
		{Name: "bob"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVStrayQuotesKeepOtherRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "high_scores.csv")
	content := "name,score,lines,level\n" +
		"bo\"b,100,2,1\n" +
		"ann,50,1,1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := OpenCSV(path, 10)
	if err != nil {
		t.Fatalf("OpenCSV() failed: %v", err)
	}
	ctx := context.Background()

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := []Entry{
		{Name: "bo\"b", Score: 100, Lines: 2, Level: 1},
		{Name: "ann", Score: 50, Lines: 1, Level: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	// Saving rewrites the file in a form the strict reader accepts.
	got, err = store.Add(ctx, Entry{Name: "cid", Score: 75})
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if len(got) != 3 || got[1].Name != "cid" {
		t.Errorf("Add() returned %v, expected cid in second place", got)
	}
}

func TestCSVKeepsTopN(t *testing.T) {
	store, err := OpenCSV(filepath.Join(t.TempDir(), "s.csv"), 3)
	if err != nil {
		t.Fatalf("OpenCSV() failed: %v", err)
	}
	ctx := context.Background()

	var got []Entry
	for _, score := range []int{50, 400, 100, 300, 100} {
		got, err = store.Add(ctx, Entry{Name: "p", Score: score})
		if err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}

	scores := make([]int, len(got))
	for i, e := range got {
		scores[i] = e.Score
	}
	if diff := cmp.Diff([]int{400, 300, 100}, scores); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}

	st, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st != (Stats{Count: 3, Best: 400}) {
		t.Errorf("Stats() = %+v", st)
	}
}
