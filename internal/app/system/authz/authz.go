// internal/app/system/authz/authz.go

// Package authz answers role questions about the request-scoped session
// user. Club-scoped permission checks live in policy/clubpolicy because
// they require a database lookup.
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/auth"
)

// UserCtx returns the caller's UID, email, and role (lowercased), plus a
// found flag. ok=false means no authenticated user; callers must fail
// closed.
func UserCtx(r *http.Request) (uid, email, role string, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", "", "", false
	}
	return u.UID, u.Email, strings.ToLower(u.Role), true
}

// IsSuperAdmin reports whether the current request's user is a platform
// superadmin.
func IsSuperAdmin(r *http.Request) bool {
	_, _, role, ok := UserCtx(r)
	return ok && role == "superadmin"
}
