package utils

import (
	"net/http"

	"fitgrid/globals"
)

// GetUserIDFromRequest returns the authenticated user id stored in the
// request context, or "" when the request is anonymous.
func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

// HasRole reports whether the authenticated caller carries the given role.
func HasRole(r *http.Request, role string) bool {
	roles, ok := r.Context().Value(globals.RoleKey).([]string)
	return ok && Contains(roles, role)
}
