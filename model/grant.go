// model/grant.go
package model

// GrantRequest is one submitted request for temporary access. It is consumed
// once and never persisted.
type GrantRequest struct {
	// Project is the raw form value: either a project ID or a console URL
	// carrying a project query parameter.
	Project       string `json:"project" form:"project" validate:"required"`
	Target        string `json:"target" form:"target" validate:"required"`
	Domain        string `json:"domain" form:"domain" validate:"required"`
	Role          string `json:"access" form:"access" validate:"required"`
	Period        int    `json:"period" form:"period" validate:"required,gt=0"`
	PrincipalType string `json:"principal_type" form:"principal_type" validate:"omitempty,oneof=user group"`
}

// GrantReceipt summarizes an applied grant.
type GrantReceipt struct {
	Project   string `json:"project"`
	Member    string `json:"member"`
	Role      string `json:"role"`
	Expiry    string `json:"expiry"`
	GrantedBy string `json:"granted_by"`
}
