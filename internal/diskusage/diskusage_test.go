package diskusage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/majerti/smbstats/internal/host"
)

type fakeExec struct {
	mounts map[string]string
}

func (f fakeExec) Run(ctx context.Context, command string, env []string) host.Result {
	return host.Result{}
}

func (f fakeExec) MountPoint(ctx context.Context, path string) (string, error) {
	mp, ok := f.mounts[path]
	if !ok {
		return "", fmt.Errorf("stat %s: No such file or directory", path)
	}
	return mp, nil
}

type fakeProvider struct {
	spaces map[string]Space
	calls  int
}

func (f *fakeProvider) Usage(ctx context.Context, mountPoint string) (Space, error) {
	f.calls++
	space, ok := f.spaces[mountPoint]
	if !ok {
		return Space{}, errors.New("unknown mount point")
	}
	return space, nil
}

func TestCollect(t *testing.T) {
	exec := fakeExec{mounts: map[string]string{
		"/mnt/samba/public": "/mnt/samba",
		"/srv/media":        "/srv",
	}}
	provider := &fakeProvider{spaces: map[string]Space{
		"/mnt/samba": {Used: 100, Available: 900, Total: 1000},
		"/srv":       {Used: 5, Available: 5, Total: 10},
	}}

	c := NewCollector(exec, provider)
	got, err := c.Collect(context.Background(), []string{"/mnt/samba/public", "/srv/media"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.MountPoints["/mnt/samba/public"] != "/mnt/samba" {
		t.Errorf("mount point of /mnt/samba/public = %q", got.MountPoints["/mnt/samba/public"])
	}
	if got.MountPoints["/srv/media"] != "/srv" {
		t.Errorf("mount point of /srv/media = %q", got.MountPoints["/srv/media"])
	}

	// Figures pass through unmodified.
	space := got.DiskUsage["/mnt/samba"]
	if space.Used != 100 || space.Available != 900 || space.Total != 1000 {
		t.Errorf("space = %+v, want {100 900 1000}", space)
	}
}

func TestCollect_DedupesMountPoints(t *testing.T) {
	exec := fakeExec{mounts: map[string]string{
		"/mnt/samba/public": "/mnt/samba",
		"/mnt/samba/homes":  "/mnt/samba",
	}}
	provider := &fakeProvider{spaces: map[string]Space{
		"/mnt/samba": {Used: 1, Available: 2, Total: 3},
	}}

	c := NewCollector(exec, provider)
	got, err := c.Collect(context.Background(), []string{"/mnt/samba/public", "/mnt/samba/homes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.MountPoints) != 2 {
		t.Errorf("expected 2 directory entries, got %d", len(got.MountPoints))
	}
	if len(got.DiskUsage) != 1 {
		t.Errorf("expected 1 disk usage entry for the shared mount point, got %d", len(got.DiskUsage))
	}
	if provider.calls != 1 {
		t.Errorf("provider queried %d times, want 1", provider.calls)
	}
}

func TestCollect_StatFailureAborts(t *testing.T) {
	exec := fakeExec{mounts: map[string]string{}}
	provider := &fakeProvider{}

	c := NewCollector(exec, provider)
	if _, err := c.Collect(context.Background(), []string{"/does/not/exist"}); err == nil {
		t.Error("expected error when mount point resolution fails")
	}
	if provider.calls != 0 {
		t.Errorf("provider should not be queried after a failed resolution, got %d calls", provider.calls)
	}
}

func TestCollect_UsageFailureAborts(t *testing.T) {
	exec := fakeExec{mounts: map[string]string{"/mnt/samba": "/mnt/samba"}}
	provider := &fakeProvider{spaces: map[string]Space{}} // nothing known

	c := NewCollector(exec, provider)
	if _, err := c.Collect(context.Background(), []string{"/mnt/samba"}); err == nil {
		t.Error("expected error when a mount point is missing from usage data")
	}
}
