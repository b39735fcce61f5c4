package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleSetHasAny(t *testing.T) {
	set := RoleSet{RoleGroupAdmin, RoleCellLeader}

	assert.True(t, set.HasAny(RoleGroupAdmin))
	assert.True(t, set.HasAny(RoleDeveloper, RoleCellLeader))
	assert.False(t, set.HasAny(RoleDeveloper, RoleZonalAdmin))
	assert.False(t, RoleSet{}.HasAny(RoleDeveloper))
}

func TestRoleSetFromStringsKeepsUnknownNames(t *testing.T) {
	set := RoleSetFromStrings([]string{"Zonal Admin", "Retired Role"})

	assert.True(t, set.HasAny(RoleZonalAdmin))
	// An unknown name stays in the set but never matches a typed check.
	assert.Len(t, set, 2)
	assert.False(t, set.HasAny(RoleDeveloper))
}

func TestRoleSetStringsRoundTrip(t *testing.T) {
	set := RoleSet{RoleZonalFinanceManager, RoleGroupFinanceOfficer}
	names := set.Strings()

	assert.Equal(t, []string{"Zonal Finance Manager", "Group Finance Officer"}, names)
	assert.Equal(t, set, RoleSetFromStrings(names))
}
