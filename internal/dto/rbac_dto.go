package dto

import "github.com/google/uuid"

type CreateRoleRequest struct {
	Name string `json:"name"`
}

type SetRolePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

type AssignRoleRequest struct {
	UserID uuid.UUID `json:"userId"`
	RoleID uuid.UUID `json:"roleId"`
}

type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions,omitempty"`
}
