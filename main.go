// smbstats — Samba share usage collector
//
// A single binary that runs on a Samba file server and reports connected
// clients, file locks, and mount point disk usage as one JSON document.
//
// Usage:
//
//	smbstats stats            # collect and print a report
//	smbstats stats --test     # use sample.smbstatus.* fixtures
//	smbstats version          # print version and exit
package main

import "github.com/majerti/smbstats/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
