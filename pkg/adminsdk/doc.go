// Package adminsdk is the Go client for the admind administrative backend.
//
// It carries the wire request/response types shared with the server plus a
// thin HTTP client. Unauthenticated calls (register, login, refresh) hang
// off SDKClient; everything behind the bearer gate hangs off Session, which
// transparently refreshes its access token when it nears expiry.
package adminsdk
