package tenant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRegistryOrdersHeadFirst(t *testing.T) {
	head := Tenant{ID: uuid.New(), Name: "Head Office", Kind: KindHead, Active: true}
	f1 := Tenant{ID: uuid.New(), Name: "North Branch", Kind: KindFranchise, Active: true}
	f2 := Tenant{ID: uuid.New(), Name: "South Branch", Kind: KindFranchise, Active: true}

	// Head registered last still comes out first
	registry, err := NewStaticRegistry([]Tenant{f1, f2, head})
	require.NoError(t, err)

	all := registry.All()
	require.Len(t, all, 3)
	assert.Equal(t, head.ID, all[0].ID)
	assert.Equal(t, f1.ID, all[1].ID)
	assert.Equal(t, f2.ID, all[2].ID)

	got, ok := registry.Head()
	require.True(t, ok)
	assert.Equal(t, head.ID, got.ID)
}

func TestStaticRegistryLookup(t *testing.T) {
	f1 := Tenant{ID: uuid.New(), Name: "North Branch", Kind: KindFranchise, Active: true}
	registry, err := NewStaticRegistry([]Tenant{f1})
	require.NoError(t, err)

	got, ok := registry.Lookup(f1.ID)
	require.True(t, ok)
	assert.Equal(t, "North Branch", got.Name)

	_, ok = registry.Lookup(uuid.New())
	assert.False(t, ok)

	_, ok = registry.Head()
	assert.False(t, ok, "no head registered")
}

func TestStaticRegistryRejectsDuplicatesAndSecondHead(t *testing.T) {
	id := uuid.New()
	_, err := NewStaticRegistry([]Tenant{
		{ID: id, Name: "A", Kind: KindFranchise},
		{ID: id, Name: "B", Kind: KindFranchise},
	})
	require.Error(t, err)

	_, err = NewStaticRegistry([]Tenant{
		{ID: uuid.New(), Name: "H1", Kind: KindHead},
		{ID: uuid.New(), Name: "H2", Kind: KindHead},
	})
	require.Error(t, err)
}

func TestViewerPrivileged(t *testing.T) {
	assert.True(t, Viewer{TenantID: uuid.New(), Role: RolePrivileged}.Privileged())
	assert.False(t, Viewer{TenantID: uuid.New(), Role: RoleScoped}.Privileged())
}
