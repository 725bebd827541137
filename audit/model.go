// audit/model.go
package audit

import (
	"time"
)

// GrantLog is one audit record: a grant that was applied to a project
// policy, or a request that was rejected on the way there.
type GrantLog struct {
	Timestamp time.Time `json:"timestamp"`
	Requester string    `json:"requester"`
	Member    string    `json:"member,omitempty"`
	Project   string    `json:"project,omitempty"`
	Role      string    `json:"role,omitempty"`
	Expiry    string    `json:"expiry,omitempty"`
	Granted   bool      `json:"granted"`
	Detail    string    `json:"detail,omitempty"`
}
