// Package diskusage resolves configured share directories to their
// filesystem mount points and attaches space figures for each mount point.
package diskusage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/majerti/smbstats/internal/host"
)

// Space is the usage of one mounted filesystem, in bytes, passed through
// from the provider unmodified.
type Space struct {
	Used      uint64 `json:"used"`
	Available uint64 `json:"available"`
	Total     uint64 `json:"total"`
}

// AvailSpace maps configured directories to their mount points, and each
// distinct mount point to its space figures.
type AvailSpace struct {
	MountPoints map[string]string `json:"mount_points"`
	DiskUsage   map[string]Space  `json:"disk_usage"`
}

// Provider supplies space figures for a mounted filesystem.
type Provider interface {
	Usage(ctx context.Context, mountPoint string) (Space, error)
}

// GopsutilProvider reads filesystem usage through gopsutil.
type GopsutilProvider struct{}

// Usage returns used/available/total bytes for the given mount point.
func (GopsutilProvider) Usage(ctx context.Context, mountPoint string) (Space, error) {
	stat, err := disk.UsageWithContext(ctx, mountPoint)
	if err != nil {
		return Space{}, err
	}
	return Space{
		Used:      stat.Used,
		Available: stat.Free,
		Total:     stat.Total,
	}, nil
}

// Collector gathers disk usage for the configured share directories.
type Collector struct {
	exec     host.Exec
	provider Provider
	log      *slog.Logger
}

// NewCollector creates a collector resolving mount points through exec and
// reading space through provider.
func NewCollector(exec host.Exec, provider Provider) *Collector {
	return &Collector{
		exec:     exec,
		provider: provider,
		log:      slog.Default().With("component", "diskusage"),
	}
}

// Collect resolves every directory to its mount point and queries space
// once per distinct mount point. Any failed resolution or lookup aborts
// the whole collection.
func (c *Collector) Collect(ctx context.Context, dirs []string) (*AvailSpace, error) {
	mountPoints := make(map[string]string, len(dirs))
	for _, dir := range dirs {
		mp, err := c.exec.MountPoint(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("resolve mount point of %s: %w", dir, err)
		}
		mountPoints[dir] = mp
	}

	diskUsage := make(map[string]Space, len(mountPoints))
	for _, mp := range mountPoints {
		if _, ok := diskUsage[mp]; ok {
			continue
		}
		space, err := c.provider.Usage(ctx, mp)
		if err != nil {
			return nil, fmt.Errorf("disk usage of %s: %w", mp, err)
		}
		diskUsage[mp] = space
	}

	c.log.Debug("collected disk usage",
		"directories", len(mountPoints), "mount_points", len(diskUsage))

	return &AvailSpace{
		MountPoints: mountPoints,
		DiskUsage:   diskUsage,
	}, nil
}
