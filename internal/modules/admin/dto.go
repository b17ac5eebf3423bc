package admin

import (
	"aptbooking/internal/domain"
	"aptbooking/internal/modules/users"
)

// CreateUserRequest creates an account from the admin console. Role
// defaults to admin.
type CreateUserRequest struct {
	users.CreateUserRequest
	Role domain.UserRole `json:"role,omitempty" binding:"omitempty,user_role"`
}

func (r CreateUserRequest) role() domain.UserRole {
	if r.Role == "" {
		return domain.RoleAdmin
	}
	return r.Role
}
