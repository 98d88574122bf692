package resource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestDir_Resolve(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "moneta"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "moneta", "config.yaml"), []byte("version: 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := Dir{Root: root}

	data, err := d.Resolve(context.Background(), DefaultPrimaryPath)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if string(data) != "version: 1" {
		t.Errorf("Resolve() = %q, want %q", data, "version: 1")
	}

	_, err = d.Resolve(context.Background(), "moneta/missing.yaml")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Resolve(missing) error = %v, want *NotFoundError", err)
	}
	if nf.Path != "moneta/missing.yaml" {
		t.Errorf("NotFoundError.Path = %q, want %q", nf.Path, "moneta/missing.yaml")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound)")
	}

	if _, err := d.Resolve(context.Background(), "moneta"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(dir) error = %v, want ErrNotFound", err)
	}
}

func TestDir_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Dir{}).Resolve(ctx, "anything"); !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestFS_Resolve(t *testing.T) {
	r := FS{FS: fstest.MapFS{
		"moneta/config.yaml": {Data: []byte("a: 1")},
	}}

	data, err := r.Resolve(context.Background(), "/moneta/config.yaml")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if string(data) != "a: 1" {
		t.Errorf("Resolve() = %q", data)
	}
	if _, err := r.Resolve(context.Background(), "moneta/other.yaml"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(missing) error = %v, want ErrNotFound", err)
	}
}

func TestChain_FirstHitWins(t *testing.T) {
	first := FS{FS: fstest.MapFS{"a.yaml": {Data: []byte("first")}}}
	second := FS{FS: fstest.MapFS{
		"a.yaml": {Data: []byte("second")},
		"b.yaml": {Data: []byte("only-second")},
	}}
	c := Chain{first, second}

	tests := []struct {
		path string
		want string
	}{
		{"a.yaml", "first"},
		{"b.yaml", "only-second"},
	}
	for _, tt := range tests {
		data, err := c.Resolve(context.Background(), tt.path)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", tt.path, err)
		}
		if string(data) != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.path, data, tt.want)
		}
	}

	_, err := c.Resolve(context.Background(), "c.yaml")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Path != "c.yaml" {
		t.Errorf("Resolve(c.yaml) error = %v, want NotFoundError naming c.yaml", err)
	}
}

func TestChain_StopsOnHardError(t *testing.T) {
	boom := errors.New("boom")
	c := Chain{
		ResolverFunc(func(context.Context, string) ([]byte, error) { return nil, boom }),
		FS{FS: fstest.MapFS{"a.yaml": {Data: []byte("x")}}},
	}
	if _, err := c.Resolve(context.Background(), "a.yaml"); !errors.Is(err, boom) {
		t.Errorf("Resolve() error = %v, want boom", err)
	}
}

func TestEmbedded(t *testing.T) {
	data, err := Embedded().Resolve(context.Background(), DefaultDistPath)
	if err != nil {
		t.Fatalf("Resolve(dist) error: %v", err)
	}
	if len(data) == 0 {
		t.Error("embedded distribution is empty")
	}
	if _, err := Embedded().Resolve(context.Background(), DefaultPrimaryPath); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(primary) error = %v, want ErrNotFound", err)
	}
}
