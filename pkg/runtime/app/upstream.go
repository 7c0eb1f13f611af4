// Package app assembles the collaborators shared by the CLI and the web
// server from loaded settings.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/de-tools/ops-atlas/pkg/metrics"
	"github.com/de-tools/ops-atlas/pkg/services/config"
	"github.com/de-tools/ops-atlas/pkg/store/cache"
	"github.com/de-tools/ops-atlas/pkg/store/client"
)

// ProfilesPath resolves the credential profiles file, defaulting to
// ~/.opsatlascfg.
func ProfilesPath(s *config.Settings) (string, error) {
	if s.Upstream.ProfilesFile != "" {
		return s.Upstream.ProfilesFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, config.DefaultProfilesFile), nil
}

// NewFetcher builds the metrics client for profile and wraps it with the
// redis cache when the cache is enabled. reg may be nil. The returned close
// function releases the redis connection.
func NewFetcher(ctx context.Context, s *config.Settings, profile string, reg *metrics.Registry) (client.Fetcher, func() error, error) {
	path, err := ProfilesPath(s)
	if err != nil {
		return nil, nil, err
	}
	profiles, err := config.NewRegistry(path)
	if err != nil {
		return nil, nil, err
	}
	if profile == "" {
		profile = s.Upstream.Profile
	}
	p, err := profiles.GetProfile(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	opts := client.Options{
		Timeout:      s.Upstream.Timeout,
		MaxRetries:   s.Upstream.MaxRetries,
		RetryBackoff: s.Upstream.RetryBackoff,
		RateLimit:    s.Upstream.RateLimit,
		Burst:        s.Upstream.Burst,
	}
	if reg != nil {
		opts.Recorder = reg
	}
	var fetcher client.Fetcher = client.NewMetricsClient(p.Host, p.Token, opts)
	noop := func() error { return nil }

	if !s.Cache.Enabled {
		return fetcher, noop, nil
	}

	rdb, err := cache.NewRedisClient(ctx, cache.Options{
		Addr:     s.Cache.Addr,
		Password: s.Cache.Password,
		DB:       s.Cache.DB,
	})
	if err != nil {
		// The cache is an optimization; run without it.
		zerolog.Ctx(ctx).Warn().Err(err).Str("addr", s.Cache.Addr).Msg("envelope cache disabled")
		return fetcher, noop, nil
	}

	var recorder cache.Recorder
	if reg != nil {
		recorder = reg
	}
	return cache.NewCachedFetcher(fetcher, cache.NewEnvelopeCache(rdb, s.Cache.TTL), recorder), rdb.Close, nil
}
