package entity

import (
	"strings"
	"time"
)

// RoleAdmin implicitly grants every page permission.
const RoleAdmin = "admin"

// User is one row of the login tab. Permissions holds page route ids
// ("orders", "lab-testing1", ...) split from the comma-joined sheet column.
type User struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// CanAccess reports whether the user may open a page. Admins pass
// unconditionally; everyone else needs the page id in their list.
func (u User) CanAccess(pageID string) bool {
	if strings.EqualFold(strings.TrimSpace(u.Role), RoleAdmin) {
		return true
	}
	for _, p := range u.Permissions {
		if strings.TrimSpace(p) == pageID {
			return true
		}
	}
	return false
}

// SplitPermissions tokenizes the comma-joined permission column.
func SplitPermissions(raw string) []string {
	var perms []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			perms = append(perms, tok)
		}
	}
	return perms
}

// Session is one issued login token.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}
