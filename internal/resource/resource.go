// Package resource resolves logical data paths to bytes. A resolver reads
// the whole resource in one go; callers never see partial content.
package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Default logical paths.
const (
	DefaultPrimaryPath = "moneta/config.yaml"
	DefaultDistPath    = "moneta/dist.yaml"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("resource not found")

// NotFoundError names the path that could not be resolved.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %s not found", e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Resolver reads a resource by logical path. A missing resource yields an
// error matching ErrNotFound.
type Resolver interface {
	Resolve(ctx context.Context, path string) ([]byte, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, path string) ([]byte, error)

func (f ResolverFunc) Resolve(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// Dir resolves paths on disk. Relative paths are joined to Root when it is
// set; absolute paths are read as given.
type Dir struct {
	Root string
}

func (d Dir) Resolve(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full := p
	if d.Root != "" && !filepath.IsAbs(p) {
		full = filepath.Join(d.Root, p)
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: p}
		}
		return nil, fmt.Errorf("reading resource %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, &NotFoundError{Path: p}
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading resource %s: %w", p, err)
	}
	return data, nil
}

// FS resolves paths inside an fs.FS.
type FS struct {
	FS fs.FS
}

func (f FS) Resolve(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := path.Clean(strings.TrimPrefix(filepath.ToSlash(p), "/"))
	if !fs.ValidPath(name) {
		return nil, &NotFoundError{Path: p}
	}
	data, err := fs.ReadFile(f.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, &NotFoundError{Path: p}
		}
		return nil, fmt.Errorf("reading resource %s: %w", p, err)
	}
	return data, nil
}

// Chain tries resolvers in order; the first hit wins. Errors other than
// "not found" stop the search.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, p string) ([]byte, error) {
	for _, r := range c {
		data, err := r.Resolve(ctx, p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, &NotFoundError{Path: p}
}

// Default resolves from the working directory first, then from the
// embedded distribution.
func Default() Resolver {
	return Chain{Dir{}, Embedded()}
}
