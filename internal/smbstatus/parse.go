package smbstatus

import (
	"fmt"
	"log/slog"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Banner lines smbstatus mixes into its data output. A data row never
// starts with any of these.
var (
	sharesIgnoredPrefixes = []string{
		"Ignoring unknown parameter",
		"Unknown parameter encountered",
		"Processing section",
		"rlimit_max",
		"----------------",
	}

	locksIgnoredPrefixes = []string{
		"Locked files:",
		"----------------",
		"Pid",
		"No locked files",
	}
)

// Column header of `smbstatus --shares`.
var sharesHeader = []string{"Service", "pid", "machine", "Connected", "at"}

// datePattern matches the fixed date fields ending a lock line: weekday,
// month, day of month (optionally space padded), time, 4-digit year. The
// year match stops working in 2100; known limitation.
const datePattern = `(?P<dow>Mon|Tue|Wed|Thu|Fri|Sat|Sun) ` +
	`(?P<moy>Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec) ` +
	`(?P<dom> ?\d|[12]\d|3[01]) ` +
	`(?P<tod>\d\d:\d\d:\d\d) ` +
	`(?P<year>20\d\d)`

// lockLineRe matches a lock row after multi-space runs have been
// normalized to tabs.
var lockLineRe = regexp.MustCompile(
	`^(?P<pid>[0-9]+)\t+` +
		`(?P<uid>[0-9]+)\t+` +
		`(?P<denyMode>[A-Z_]+)\s+` +
		`(?P<access>[0-9xabcdef]+)\t+` +
		`(?P<rw>[A-Z]+)\t+` +
		`(?P<oplock>[A-Z_+]+)\t+` +
		`(?P<sharePath>[^\t]+)\t+` +
		`(?P<filename>.+)\t+` +
		datePattern)

// smbstatus pads columns with a variable number of spaces.
var multiSpaceRe = regexp.MustCompile(`  +`)

// ParseShareLine maps one line of `smbstatus --shares` output to a
// connection record. Banners, blank lines and the column header return
// (nil, nil). Anything else is assumed to be a data row; a data row that
// cannot be normalized is an error, not a line to skip.
func ParseShareLine(index int, line string) (*ShareConnection, error) {
	for _, prefix := range sharesIgnoredPrefixes {
		if strings.HasPrefix(line, prefix) {
			return nil, nil
		}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	if isSharesHeader(fields) {
		return nil, nil
	}

	if len(fields) < 4 {
		return nil, fmt.Errorf("share line %d: %d fields, want at least 4", index, len(fields))
	}

	date, err := normDate(strings.Join(fields[3:], " "))
	if err != nil {
		return nil, fmt.Errorf("share line %d: %w", index, err)
	}

	return &ShareConnection{
		Share: fields[0],
		// fields[1] is the pid; no downstream record uses it.
		Machine: fields[2],
		Date:    date,
	}, nil
}

func isSharesHeader(fields []string) bool {
	if len(fields) != len(sharesHeader) {
		return false
	}
	for i, want := range sharesHeader {
		if fields[i] != want {
			return false
		}
	}
	return true
}

// ParseLockLine maps one line of `smbstatus --locks` output to a lock
// record. Blank lines and rows that fail the lock pattern are logged and
// skipped; banners are skipped silently.
func ParseLockLine(index int, line string) (*FileLock, error) {
	if line == "" || line == "\n" {
		slog.Debug("blank lock line", "index", index)
		return nil, nil
	}
	for _, prefix := range locksIgnoredPrefixes {
		if strings.HasPrefix(line, prefix) {
			return nil, nil
		}
	}

	fixed := multiSpaceRe.ReplaceAllString(line, "\t")
	match := lockLineRe.FindStringSubmatch(fixed)
	if match == nil {
		slog.Debug("unparseable lock line", "index", index, "line", line)
		return nil, nil
	}

	groups := namedGroups(lockLineRe, match)

	date, err := normDate(strings.Join([]string{
		groups["dow"], groups["moy"], groups["dom"], groups["tod"], groups["year"],
	}, " "))
	if err != nil {
		return nil, fmt.Errorf("lock line %d: %w", index, err)
	}

	pid, err := strconv.Atoi(groups["pid"])
	if err != nil {
		return nil, fmt.Errorf("lock line %d: pid %q: %w", index, groups["pid"], err)
	}
	uid, err := strconv.Atoi(groups["uid"])
	if err != nil {
		return nil, fmt.Errorf("lock line %d: uid %q: %w", index, groups["uid"], err)
	}

	return &FileLock{
		Share:    path.Base(groups["sharePath"]),
		Pid:      pid,
		UID:      uid,
		DenyMode: groups["denyMode"],
		Access:   groups["access"],
		RW:       groups["rw"],
		Oplock:   groups["oplock"],
		Filename: groups["filename"],
		Date:     date,
	}, nil
}

func namedGroups(re *regexp.Regexp, match []string) map[string]string {
	groups := make(map[string]string, len(match))
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}
	return groups
}
