// Package audit stores and queries the append-only audit log.
//
// Repository appends events and answers two report queries: recent activity
// of a user and download history of a user, both newest first, bounded by a
// start time and a take count. Audit reads are never cached.
//
// Recorder is what services call after a domain mutation has committed. It
// appends on a context detached from the caller's cancellation, so a client
// that hangs up after its write succeeded does not lose the audit entry, and
// it only logs failures: an audit error never unwinds the committed mutation.
package audit
