package tenant

import "github.com/google/uuid"

// Role is the coarse access role of a session
type Role string

const (
	// RolePrivileged sees every tenant's records in aggregate
	RolePrivileged Role = "privileged"
	// RoleScoped sees only its own tenant's records
	RoleScoped Role = "scoped"
)

// Viewer is the identity context for one session. It is supplied by an
// external identity provider and immutable once assigned.
type Viewer struct {
	TenantID uuid.UUID
	Role     Role
}

// Privileged reports whether the viewer may read across all tenants
func (v Viewer) Privileged() bool {
	return v.Role == RolePrivileged
}
