package smbstatus

// ShareConnection is one client connected to one share. The share name is
// carried separately from the marshaled payload; the report groups records
// under it.
type ShareConnection struct {
	Share   string `json:"-"`
	Machine string `json:"machine"`
	Date    string `json:"date"`
}

// FileLock is one open or locked file under a share.
type FileLock struct {
	Share    string `json:"-"`
	Pid      int    `json:"pid"`
	UID      int    `json:"uid"`
	DenyMode string `json:"denyMode"`
	Access   string `json:"access"`
	RW       string `json:"rw"`
	Oplock   string `json:"oplock"`
	Filename string `json:"filename"`
	Date     string `json:"date"`
}
