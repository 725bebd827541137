// model/policy.go
package model

// Policy is the transient in-memory copy of a project's IAM policy between
// fetch and write. The policy store owns the authoritative document; the
// etag travels with the copy so a concurrent writer is detected on write.
type Policy struct {
	Version  int64     `json:"version"`
	Etag     string    `json:"etag,omitempty"`
	Bindings []Binding `json:"bindings"`
}

// Binding associates a role with a set of principal strings, optionally
// gated by a condition.
type Binding struct {
	Role      string     `json:"role"`
	Members   []string   `json:"members"`
	Condition *Condition `json:"condition,omitempty"`
}

// Condition is a boolean expression gating a binding. For temporary grants
// the expression is a time comparison against an absolute expiry instant.
type Condition struct {
	Expression  string `json:"expression"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
