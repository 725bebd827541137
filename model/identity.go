// model/identity.go
package model

// Identity is the resolved organizational identity of the logged-in user.
// It is immutable once resolved for a request and cached for the lifetime
// of the session.
type Identity struct {
	Domain  string `json:"domain"`
	Account string `json:"account"`
}

// SessionAuth carries the session identifier and the bearer token issued by
// the OAuth layer. Token exchange itself happens outside this service; only
// the result is forwarded here.
type SessionAuth struct {
	SessionID   string `json:"session_id"`
	AccessToken string `json:"-"`
}
