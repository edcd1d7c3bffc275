package report

import (
	"context"
	"log/slog"

	"github.com/majerti/smbstats/internal/diskusage"
	"github.com/majerti/smbstats/internal/smbstatus"
)

// Builder assembles a Report from the smbstatus client and the disk usage
// collector. Dependencies are injected at construction so tests run
// against fixtures and fakes.
type Builder struct {
	client    *smbstatus.Client
	collector *diskusage.Collector
	shareDirs []string
	log       *slog.Logger
}

// NewBuilder creates a builder collecting usage for shareDirs.
func NewBuilder(client *smbstatus.Client, collector *diskusage.Collector, shareDirs []string) *Builder {
	return &Builder{
		client:    client,
		collector: collector,
		shareDirs: shareDirs,
		log:       slog.Default().With("component", "report"),
	}
}

// Build runs both smbstatus subcommands, folds the parsed records into a
// per-share map, and attaches disk usage for the configured directories.
// Any command, parsing-contract or collection error collapses the whole
// report to {in_error: true}; a half-built report is worse than an
// explicit failure signal.
func (b *Builder) Build(ctx context.Context) Report {
	status, err := b.collectStatus(ctx)
	if err == nil {
		var space *diskusage.AvailSpace
		space, err = b.collector.Collect(ctx, b.shareDirs)
		if err == nil {
			return Report{
				InError:    false,
				Status:     status,
				AvailSpace: space,
			}
		}
	}

	b.log.Error("report collection failed", "error", err)
	return Report{InError: true}
}

// collectStatus streams both subcommands through their line parsers and
// groups the records by share name, creating an empty entry on first
// reference. Slice append preserves original line order.
func (b *Builder) collectStatus(ctx context.Context) (map[string]*ShareUsage, error) {
	status := make(map[string]*ShareUsage)
	entry := func(share string) *ShareUsage {
		if usage, ok := status[share]; ok {
			return usage
		}
		usage := newShareUsage()
		status[share] = usage
		return usage
	}

	lines, err := b.client.Run(ctx, "shares")
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		conn, err := smbstatus.ParseShareLine(i, line)
		if err != nil {
			return nil, err
		}
		if conn == nil {
			continue
		}
		usage := entry(conn.Share)
		usage.Machines = append(usage.Machines, *conn)
	}

	lines, err = b.client.Run(ctx, "locks")
	if err != nil {
		return nil, err
	}
	for i, line := range lines {
		lock, err := smbstatus.ParseLockLine(i, line)
		if err != nil {
			return nil, err
		}
		if lock == nil {
			continue
		}
		usage := entry(lock.Share)
		usage.LockedFiles = append(usage.LockedFiles, *lock)
	}

	return status, nil
}
