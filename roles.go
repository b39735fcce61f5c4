package main

// Role is one entry of the fixed authorization vocabulary. Roles are
// granted per user through the user_roles table and carried in the
// session token; endpoints declare which roles may call them and the
// check is any-of, never all-of.
type Role string

const (
	RoleDeveloper                  Role = "Developer"
	RoleZonalAdmin                 Role = "Zonal Admin"
	RoleGroupAdmin                 Role = "Group Admin"
	RoleChapterAdmin               Role = "Chapter Admin"
	RoleZonalFinanceManager        Role = "Zonal Finance Manager"
	RoleGroupFinanceOfficer        Role = "Group Finance Officer"
	RoleZonalPFCCManager           Role = "Zonal PFCC Manager"
	RoleGroupPFCCOfficer           Role = "Group PFCC Officer"
	RoleChapterPFCCOfficer         Role = "Chapter PFCC Officer"
	RoleCellLeader                 Role = "Cell Leader"
	RoleCellAssistant              Role = "Cell Assistant"
	RoleZonalHealingStreamsManager Role = "Zonal Healing Streams Manager"
	RoleGroupHealingStreamsOfficer Role = "Group Healing Streams Officer"
	RoleZonalMaterialsManager      Role = "Zonal Ministry Materials Manager"
	RoleGroupMaterialsOfficer      Role = "Group Ministry Materials Officer"
)

// AllRoles is the seed list for the roles table.
var AllRoles = []Role{
	RoleDeveloper,
	RoleZonalAdmin,
	RoleGroupAdmin,
	RoleChapterAdmin,
	RoleZonalFinanceManager,
	RoleGroupFinanceOfficer,
	RoleZonalPFCCManager,
	RoleGroupPFCCOfficer,
	RoleChapterPFCCOfficer,
	RoleCellLeader,
	RoleCellAssistant,
	RoleZonalHealingStreamsManager,
	RoleGroupHealingStreamsOfficer,
	RoleZonalMaterialsManager,
	RoleGroupMaterialsOfficer,
}

// RoleSet is the role claim of an authenticated caller.
type RoleSet []Role

// HasAny reports whether the set shares at least one role with allowed.
func (s RoleSet) HasAny(allowed ...Role) bool {
	for _, have := range s {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Strings converts the set for the JWT claim payload.
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// RoleSetFromStrings rebuilds a set from stored role names. Unknown
// names are kept as-is so a token minted before a rename still carries
// its claim; they simply never match a typed requirement.
func RoleSetFromStrings(names []string) RoleSet {
	out := make(RoleSet, len(names))
	for i, n := range names {
		out[i] = Role(n)
	}
	return out
}
