package models

// Session is the per-request caller context: the opaque token forwarded to
// the backend services and the role the gateway resolved for the caller.
// It is passed explicitly through every layer instead of living in any
// ambient global.
type Session struct {
	Token  string `json:"-"`
	UserID string `json:"userId,omitempty"`
	Role   string `json:"role,omitempty"`
}
