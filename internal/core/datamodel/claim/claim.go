package claim

import "time"

// Claim is the persistence model for expense claims.
type Claim struct {
	DocID         string    `gorm:"column:doc_id;primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null"`
	EmployeeName  string    `gorm:"column:employee_name;not null"`
	Date          time.Time `gorm:"column:date;type:date;not null"`
	Description   string    `gorm:"column:description;not null"`
	Category      string    `gorm:"column:category"`
	Amount        float64   `gorm:"column:amount;not null"`
	Currency      string    `gorm:"column:currency;not null"`
	Status        string    `gorm:"column:status;default:'Pending'"`
	USDEquivalent float64   `gorm:"column:usd_equivalent"`
	ApproverID    *int64    `gorm:"column:approver_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (Claim) TableName() string {
	return "expenses"
}
