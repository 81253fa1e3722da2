// Package rbac holds the role gate: a pure decision table mapping roles
// to capabilities. The same table backs both the UI gating hints and
// the authoritative server-side checks.
package rbac

import (
	"strings"

	"go_backoffice/internal/model"
)

// Capability is a named permission checked by the role gate
type Capability string

const (
	ManageUsers    Capability = "manageUsers"
	ManageProducts Capability = "manageProducts"
	ManageOrders   Capability = "manageOrders"
	AccessSettings Capability = "accessSettings"
	ViewPresence   Capability = "viewPresence"
	ViewAudit      Capability = "viewAudit"
)

// grants maps each capability to the roles that hold it
var grants = map[Capability]map[string]bool{
	ManageUsers:    {model.RoleAdmin: true, model.RoleOwner: true},
	ManageProducts: {model.RoleAdmin: true, model.RoleOwner: true},
	ManageOrders:   {model.RoleAdmin: true, model.RoleOwner: true, model.RoleModerator: true},
	AccessSettings: {model.RoleAdmin: true, model.RoleOwner: true, model.RoleModerator: true},
	ViewPresence:   {model.RoleAdmin: true, model.RoleOwner: true},
	ViewAudit:      {model.RoleAdmin: true, model.RoleOwner: true},
}

// priorities orders roles for the dashboard recent-users sort; lower is
// more privileged
var priorities = map[string]int{
	model.RoleOwner:     0,
	model.RoleAdmin:     1,
	model.RoleModerator: 2,
	model.RoleManager:   3,
	model.RoleUser:      4,
}

// Normalize trims and lowercases a role string; anything outside the
// closed role set collapses to the least-privileged "user" role
func Normalize(role string) string {
	r := strings.ToLower(strings.TrimSpace(role))
	if _, ok := priorities[r]; !ok {
		return model.RoleUser
	}
	return r
}

// IsValidRole reports whether the trimmed, lowercased role is in the
// closed role set
func IsValidRole(role string) bool {
	_, ok := priorities[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// Allowed reports whether the role holds the capability. Pure function;
// unknown roles and capabilities fail closed.
func Allowed(role string, capability Capability) bool {
	holders, ok := grants[capability]
	if !ok {
		return false
	}
	return holders[Normalize(role)]
}

// RolePriority returns the sort priority for a role (owner first).
// Unknown roles rank as "user".
func RolePriority(role string) int {
	return priorities[Normalize(role)]
}
