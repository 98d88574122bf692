// Package loader resolves, builds and merges currency data into one
// registry, and optionally publishes it as the process-wide default.
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moneta-labs/moneta/internal/active"
	"github.com/moneta-labs/moneta/internal/dataset"
	"github.com/moneta-labs/moneta/internal/metrics"
	"github.com/moneta-labs/moneta/internal/registry"
	"github.com/moneta-labs/moneta/internal/resource"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Options controls Load.
type Options struct {
	// KeepDist merges the primary data over the distribution data. The
	// distribution must then resolve, whatever Optional says.
	KeepDist bool
	DistPath string
	// Optional lets a missing or malformed primary resource contribute
	// nothing instead of failing the load.
	Optional bool
	Merge    registry.MergeOptions
	Build    []registry.Option

	Resolver resource.Resolver
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	// Verbose logs dropped entries and merge decisions.
	Verbose bool
}

func (o Options) withDefaults() Options {
	if o.DistPath == "" {
		o.DistPath = resource.DefaultDistPath
	}
	if o.Resolver == nil {
		o.Resolver = resource.Default()
	}
	if o.Verbose {
		o.Merge.Verbose = true
		o.Merge.Logger = o.Logger
	}
	return o
}

// Load builds the registry for primaryPath (resource.DefaultPrimaryPath when
// empty):
//
//	KeepDist, primary present   Merge(Build(dist), Build(primary))
//	KeepDist, primary absent    Build(dist)
//	primary present             Build(primary)
//	otherwise                   an empty registry
//
// Absence of the primary resource is an error unless Optional is set.
func Load(ctx context.Context, primaryPath string, opts Options) (*registry.Registry, error) {
	start := time.Now()
	opts = opts.withDefaults()
	if primaryPath == "" {
		primaryPath = resource.DefaultPrimaryPath
	}
	log := opts.Logger.With().Str("primary", primaryPath).Logger()

	r, err := load(ctx, primaryPath, opts, log)
	if err != nil {
		outcome := metrics.OutcomeFailed
		if errors.Is(err, resource.ErrNotFound) || errors.Is(err, dataset.ErrMalformed) {
			outcome = metrics.OutcomeNotFound
		}
		opts.Metrics.ObserveLoad(outcome, time.Since(start))
		return nil, err
	}

	outcome := metrics.OutcomeLoaded
	if r.Len() == 0 {
		outcome = metrics.OutcomeEmpty
	}
	opts.Metrics.ObserveLoad(outcome, time.Since(start))
	opts.Metrics.SetCurrencies(r.Len())
	log.Info().
		Int("currencies", r.Len()).
		Str("version", r.Version()).
		Dur("took", time.Since(start)).
		Msg("currency registry loaded")
	return r, nil
}

func load(ctx context.Context, primaryPath string, opts Options, log zerolog.Logger) (*registry.Registry, error) {
	var dist dataset.Config
	if opts.KeepDist {
		cfg, err := read(ctx, opts.Resolver, opts.DistPath)
		if err != nil {
			return nil, fmt.Errorf("loading distribution data: %w", err)
		}
		dist = cfg
	}

	primary, err := read(ctx, opts.Resolver, primaryPath)
	if err != nil {
		if !isAbsent(err) || !opts.Optional {
			return nil, fmt.Errorf("loading currency data: %w", err)
		}
		log.Debug().Err(err).Msg("optional currency data absent")
		primary = nil
	}

	var distReg, primaryReg *registry.Registry
	g, gctx := errgroup.WithContext(ctx)
	if dist != nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			distReg = registry.Build(dist, buildOptions(opts, log, opts.DistPath)...)
			return nil
		})
	}
	if primary != nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			primaryReg = registry.Build(primary, buildOptions(opts, log, primaryPath)...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch {
	case distReg != nil && primaryReg != nil:
		return registry.Merge(distReg, primaryReg, opts.Merge), nil
	case distReg != nil:
		return distReg, nil
	case primaryReg != nil:
		return primaryReg, nil
	default:
		return registry.Empty(), nil
	}
}

// read resolves and parses one resource. Not-found errors name the path;
// a document that is not a non-empty map is reported as dataset.ErrMalformed.
func read(ctx context.Context, r resource.Resolver, path string) (dataset.Config, error) {
	data, err := r.Resolve(ctx, path)
	if err != nil {
		return nil, err
	}
	cfg, err := dataset.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing resource %s: %w", path, err)
	}
	return cfg, nil
}

func isAbsent(err error) bool {
	return errors.Is(err, resource.ErrNotFound) || errors.Is(err, dataset.ErrMalformed)
}

func buildOptions(opts Options, log zerolog.Logger, path string) []registry.Option {
	out := append([]registry.Option(nil), opts.Build...)
	if opts.Verbose {
		out = append(out, registry.WithReport(func(d dataset.Drop) {
			log.Debug().
				Str("resource", path).
				Str("branch", d.Branch).
				Interface("key", d.Key).
				Str("reason", d.Reason).
				Msg("dropped entry")
		}))
	}
	return out
}

// LoadAndPublish loads like Load and installs the result as the
// process-wide default registry.
func LoadAndPublish(ctx context.Context, primaryPath string, opts Options) (*registry.Registry, error) {
	r, err := Load(ctx, primaryPath, opts)
	if err != nil {
		return nil, err
	}
	active.SetDefault(r)
	opts.Logger.Info().Int("currencies", r.Len()).Msg("default currency registry published")
	return r, nil
}
