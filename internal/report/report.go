// Package report assembles the per-share usage report from smbstatus
// output and disk usage data.
package report

import (
	"encoding/json"

	"github.com/majerti/smbstats/internal/diskusage"
	"github.com/majerti/smbstats/internal/smbstatus"
)

// ShareUsage groups everything observed about one share: connected
// machines and locked files, in original output order. Entries are created
// lazily on first reference and never removed within one report cycle.
type ShareUsage struct {
	Machines    []smbstatus.ShareConnection `json:"machines"`
	LockedFiles []smbstatus.FileLock        `json:"locked_files"`
}

func newShareUsage() *ShareUsage {
	return &ShareUsage{
		Machines:    []smbstatus.ShareConnection{},
		LockedFiles: []smbstatus.FileLock{},
	}
}

// Report is the full result of one collection cycle. When InError is set
// nothing else is populated; partial reports do not exist.
type Report struct {
	InError    bool                   `json:"in_error"`
	Status     map[string]*ShareUsage `json:"status"`
	AvailSpace *diskusage.AvailSpace  `json:"avail_space"`
}

// MarshalJSON keeps the two report shapes distinct: a failed report is
// exactly {"in_error":true}, a successful one always carries status and
// avail_space — an idle server with no connections and no locks still
// serializes status as {}.
func (r Report) MarshalJSON() ([]byte, error) {
	if r.InError {
		return json.Marshal(struct {
			InError bool `json:"in_error"`
		}{true})
	}

	status := r.Status
	if status == nil {
		status = map[string]*ShareUsage{}
	}
	return json.Marshal(struct {
		InError    bool                   `json:"in_error"`
		Status     map[string]*ShareUsage `json:"status"`
		AvailSpace *diskusage.AvailSpace  `json:"avail_space"`
	}{false, status, r.AvailSpace})
}
