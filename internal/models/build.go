package models

import "fmt"

type BuildInformation struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInformation) VersionString() string {
	if b.Version != "latest" {
		return b.Version
	}
	const commitShortHashLength = 7
	if len(b.Commit) < commitShortHashLength {
		return "latest"
	}
	return b.Version + "-" + b.Commit[:commitShortHashLength]
}

func (b BuildInformation) String() string {
	return fmt.Sprintf("version %s built on %s from commit %s",
		b.VersionString(), b.Date, b.Commit)
}
