// Package mailris turns bibliographic metadata embedded in email bodies
// (RIS style "TAG - value" lines) into deduplicated publication records,
// grouped by DOI.
package mailris

const (
	AppName = "mailris"
	Version = "0.1.0"
)
