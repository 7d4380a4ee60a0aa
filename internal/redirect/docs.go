// package redirect decides, for a response carrying a 3xx status,
// whether and how to transparently re-issue the request toward the new
// location: method downgrade, body retention, security-sensitive header
// stripping, cookie reattachment and connection disposition.
//
// The package performs no network I/O of its own. The transport, the
// connection pool and the cookie store are collaborators reached
// through the narrow interfaces declared here.
package redirect
