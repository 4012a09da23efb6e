package user

import "errors"

// CreateUserDTO is the request payload for registering a roster entry.
type CreateUserDTO struct {
	EmployeeName string `json:"employeeName"`
	Role         string `json:"role"`
	ManagerID    *int64 `json:"managerId,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.EmployeeName == "" {
		return errors.New("employeeName is required")
	}
	if dto.Role == "" {
		return errors.New("role is required")
	}
	if !ValidRole(dto.Role) {
		return errors.New("role must be one of 'Admin', 'Manager' or 'Employee'")
	}
	if dto.ManagerID != nil && *dto.ManagerID <= 0 {
		return errors.New("managerId must be a positive integer")
	}
	return nil
}
