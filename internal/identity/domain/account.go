// Package domain defines the identity entities resolved from access tokens.
package domain

import "strings"

// AdminRole is the role allowed to perform administrative card operations.
const AdminRole = "ADMIN"

// AccountInfo is the caller identity resolved from an access token by the
// identity service. AccountID and UserID are always set for a valid token;
// Currency is the ISO code of the caller's account.
type AccountInfo struct {
	AccountID int64
	UserID    int64
	Role      string
	Currency  string
}

// IsAdmin reports whether the account carries the administrative role.
func (a *AccountInfo) IsAdmin() bool {
	return strings.EqualFold(a.Role, AdminRole)
}
