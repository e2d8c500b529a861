// Package tenant models the owning business entities and the viewer
// identity consumed by the aggregation layer. The registry is maintained
// externally and consumed read-only.
package tenant

import (
	"github.com/google/uuid"

	"github.com/crm/backend/internal/domain/shared"
)

// Kind distinguishes the head entity from franchise entities
type Kind string

const (
	KindHead      Kind = "head"
	KindFranchise Kind = "franchise"
)

// Tenant is one owning business entity
type Tenant struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Kind   Kind      `json:"kind"`
	Active bool      `json:"active"`
}

// Registry exposes the externally maintained tenant list.
// All returns the head entity first, then franchises in registration order.
type Registry interface {
	All() []Tenant
	Lookup(id uuid.UUID) (Tenant, bool)
	Head() (Tenant, bool)
}

// StaticRegistry is a Registry over a fixed tenant list
type StaticRegistry struct {
	ordered []Tenant
	byID    map[uuid.UUID]Tenant
}

// NewStaticRegistry builds a registry from the given tenants. The head
// entity is moved to the front; franchises keep their given order.
func NewStaticRegistry(tenants []Tenant) (*StaticRegistry, error) {
	r := &StaticRegistry{
		byID: make(map[uuid.UUID]Tenant, len(tenants)),
	}
	var head *Tenant
	var franchises []Tenant
	for i := range tenants {
		t := tenants[i]
		if t.ID == uuid.Nil || t.Name == "" {
			return nil, shared.NewValidationError("tenant id/name")
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, shared.NewDomainError("DUPLICATE_TENANT", "Tenant registered twice: "+t.Name)
		}
		r.byID[t.ID] = t
		if t.Kind == KindHead {
			if head != nil {
				return nil, shared.NewDomainError("DUPLICATE_HEAD", "More than one head entity registered")
			}
			head = &t
			continue
		}
		franchises = append(franchises, t)
	}
	if head != nil {
		r.ordered = append(r.ordered, *head)
	}
	r.ordered = append(r.ordered, franchises...)
	return r, nil
}

// All returns every tenant, head first
func (r *StaticRegistry) All() []Tenant {
	out := make([]Tenant, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Lookup finds a tenant by id
func (r *StaticRegistry) Lookup(id uuid.UUID) (Tenant, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Head returns the head entity, if one is registered
func (r *StaticRegistry) Head() (Tenant, bool) {
	if len(r.ordered) > 0 && r.ordered[0].Kind == KindHead {
		return r.ordered[0], true
	}
	return Tenant{}, false
}

var _ Registry = (*StaticRegistry)(nil)
