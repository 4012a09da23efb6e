package user

import "time"

// User is the persistence model for roster entries. ManagerID points at the
// supervising user and is the source of truth for approval scoping.
type User struct {
	ID           int64     `gorm:"primaryKey"`
	EmployeeName string    `gorm:"column:employee_name;uniqueIndex;not null"`
	Role         string    `gorm:"column:role;not null"`
	ManagerID    *int64    `gorm:"column:manager_id"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
