package users

import "aptbooking/internal/domain"

type CreateUserRequest struct {
	Phone    string `json:"phone" binding:"required,e164"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UpdateProfileRequest is what a user may change about themselves.
type UpdateProfileRequest struct {
	Phone    *string `json:"phone,omitempty" binding:"omitempty,e164"`
	Name     *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6,max=72"`
}

// UpdateUserRequest is the admin variant; it may also change the role.
type UpdateUserRequest struct {
	Phone    *string          `json:"phone,omitempty" binding:"omitempty,e164"`
	Name     *string          `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Password *string          `json:"password,omitempty" binding:"omitempty,min=6,max=72"`
	Role     *domain.UserRole `json:"role,omitempty" binding:"omitempty,user_role"`
}

func (r UpdateProfileRequest) ToUpdate() UpdateUserRequest {
	return UpdateUserRequest{
		Phone:    r.Phone,
		Name:     r.Name,
		Password: r.Password,
	}
}

func (r UpdateUserRequest) empty() bool {
	return r.Phone == nil && r.Name == nil && r.Password == nil && r.Role == nil
}
