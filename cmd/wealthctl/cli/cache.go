package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

// VersionBumper invalidates cached pages.
type VersionBumper interface {
	Enabled() bool
	Bump(ctx context.Context) (int64, error)
}

// CacheBumpOptions defines available flags for cache bump.
type CacheBumpOptions struct {
	Cache  VersionBumper
	Stdout io.Writer
	Stderr io.Writer
}

// CacheBumpCommand increments the page cache version.
func CacheBumpCommand(ctx context.Context, opts CacheBumpOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Cache == nil || !opts.Cache.Enabled() {
		_, _ = fmt.Fprintln(opts.Stderr, "cache bump: page cache disabled (set REDIS_ADDR)")
		return 1
	}
	version, err := opts.Cache.Bump(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Stderr, "cache bump: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintf(opts.Stdout, "page cache version is now %d\n", version)
	return 0
}
