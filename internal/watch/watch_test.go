package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sky.json")
	other := filepath.Join(dir, "other.json")

	w, err := New(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()
	if err := w.Set(target); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan string, 8)
	go w.Run(ctx, func(p string) { got <- p })

	if err := os.WriteFile(other, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("[[1,2]]"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-got:
		want, _ := filepath.Abs(target)
		if p != want {
			t.Errorf("expected %s, got %s", want, p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case p := <-got:
		t.Errorf("unexpected extra report %s", p)
	case <-time.After(200 * time.Millisecond):
	}
}
