package messaging

import "github.com/spec-kit/staff-service/internal/domain"

// RecipientRoles are the roles that may be picked as a message recipient, in
// display order.
var RecipientRoles = []domain.UserRole{
	domain.UserRoleAdmin,
	domain.UserRoleDoctor,
	domain.UserRoleNurse,
}

// CanReceive reports whether users with role may be sent messages.
func CanReceive(role domain.UserRole) bool {
	for _, r := range RecipientRoles {
		if r == role {
			return true
		}
	}
	return false
}

// RecipientGroup is one role section of the recipient selector.
type RecipientGroup struct {
	Role  domain.UserRole
	Users []domain.User
}

// RecipientCandidates groups users by RecipientRoles. Users with any other
// role are left out, as are empty groups. Input order is kept within a group.
func RecipientCandidates(users []domain.User) []RecipientGroup {
	byRole := make(map[domain.UserRole][]domain.User, len(RecipientRoles))
	for _, u := range users {
		byRole[u.Role] = append(byRole[u.Role], u)
	}
	groups := make([]RecipientGroup, 0, len(RecipientRoles))
	for _, role := range RecipientRoles {
		if members := byRole[role]; len(members) > 0 {
			groups = append(groups, RecipientGroup{Role: role, Users: members})
		}
	}
	return groups
}
