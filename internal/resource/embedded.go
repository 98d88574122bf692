package resource

import (
	"context"
	"embed"
)

//go:embed dist/currencies.yaml
var distFS embed.FS

const embeddedDist = "dist/currencies.yaml"

// Embedded serves the built-in distribution data under DefaultDistPath.
func Embedded() Resolver {
	return ResolverFunc(func(ctx context.Context, p string) ([]byte, error) {
		if p != DefaultDistPath {
			return nil, &NotFoundError{Path: p}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return distFS.ReadFile(embeddedDist)
	})
}
