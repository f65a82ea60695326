package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/absorb/pkg/absorb"
	"github.com/matzehuels/absorb/pkg/cache"
	"github.com/matzehuels/absorb/pkg/density"
	"github.com/matzehuels/absorb/pkg/formula"
	"github.com/matzehuels/absorb/pkg/observability"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// Runner encapsulates request execution with caching.
// The CLI and any other front end use it to share validation and caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different requests.
type Runner struct {
	Engine *absorb.Engine
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached results. Zero means cache.TTLResult.
	TTL time.Duration
}

// NewRunner creates a runner.
// If engine is nil, an engine over the default element table is used.
// If cache is nil, a NullCache is used (caching disabled).
// If keyer is nil, a DefaultKeyer is used.
func NewRunner(engine *absorb.Engine, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if engine == nil {
		engine = absorb.NewEngine(nil)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Engine: engine,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Sample is a request resolved to engine inputs.
type Sample struct {
	Formula   formula.Formula
	Density   float64 // g/cc
	Estimated bool    // Density derived from a packing fraction
	Radius    float64 // mm
	Point     spectrum.Point
}

// Resolve validates req and resolves its density against the engine's table.
func (r *Runner) Resolve(req Request) (Sample, error) {
	if err := req.ValidateAndSetDefaults(); err != nil {
		return Sample{}, err
	}
	f := req.ParsedFormula()
	rho, err := density.Resolve(f, r.Engine.Table(), req.DensitySpec())
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Formula:   f,
		Density:   rho,
		Estimated: req.DensityType == density.PackedFraction,
		Radius:    req.Radius,
		Point:     req.Point(),
	}, nil
}

// cachedResult is the part of a Result stored in the cache.
type cachedResult struct {
	DensityEstimated bool           `json:"density_estimated"`
	Absorption       *absorb.Result `json:"absorption"`
}

// Execute validates req, then returns the sampled result from the cache or
// by running the engine. Validation errors are returned unwrapped so that
// callers can show them verbatim.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	if err := req.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s, err := r.Resolve(req)
	if err != nil {
		return nil, err
	}

	key := r.Keyer.ResultKey(req.CacheKeyOpts())
	if !req.Refresh {
		if res, ok := r.fromCache(ctx, key); ok {
			return &Result{
				ID:               uuid.NewString(),
				Request:          req,
				DensityEstimated: res.DensityEstimated,
				Absorption:       res.Absorption,
				Stats:            Stats{Points: len(res.Absorption.Curve.Points), Duration: time.Since(start)},
				CacheHit:         true,
				CreatedAt:        time.Now().UTC(),
			}, nil
		}
	}

	name := s.Formula.String()
	hooks := observability.Compute()
	hooks.OnComputeStart(ctx, name, req.Resolution)
	abs, err := r.Engine.Sample(ctx, s.Formula, s.Density, s.Radius, s.Point, req.Resolution)
	if err != nil {
		hooks.OnComputeComplete(ctx, name, 0, false, time.Since(start), err)
		return nil, err
	}
	duration := time.Since(start)
	hooks.OnComputeComplete(ctx, name, len(abs.Curve.Points), abs.Reliable(), duration, nil)

	r.Logger.Info("computed absorption",
		"formula", name,
		"density", s.Density,
		"mu_r", abs.Requested.MuR,
		"points", len(abs.Curve.Points),
		"duration", duration)
	for _, w := range abs.Warnings() {
		r.Logger.Warn("result less reliable", "element", w.Element, "reason", w.Reason)
	}

	r.toCache(ctx, key, cachedResult{DensityEstimated: s.Estimated, Absorption: abs})

	return &Result{
		ID:               uuid.NewString(),
		Request:          req,
		DensityEstimated: s.Estimated,
		Absorption:       abs,
		Stats:            Stats{Points: len(abs.Curve.Points), Duration: duration},
		CreatedAt:        time.Now().UTC(),
	}, nil
}

func (r *Runner) fromCache(ctx context.Context, key string) (*cachedResult, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeResult)
		return nil, false
	}
	var res cachedResult
	if err := json.Unmarshal(data, &res); err != nil || res.Absorption == nil || res.Absorption.Requested == nil {
		r.Logger.Debug("discarding unreadable cache entry", "key", key)
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeResult)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cache.KeyTypeResult)
	return &res, true
}

// toCache stores res. Failures are logged, never returned: a result that
// could not be cached is still a valid result.
func (r *Runner) toCache(ctx context.Context, key string, res cachedResult) {
	data, err := json.Marshal(res)
	if err != nil {
		r.Logger.Warn("failed to encode result for cache", "error", err)
		return
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = cache.TTLResult
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("failed to cache result", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cache.KeyTypeResult, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
