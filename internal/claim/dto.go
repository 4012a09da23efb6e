package claim

import (
	"errors"
	"math"
)

// SubmitClaimDTO is the request payload for creating an expense claim.
// docId, status and usdEquivalent are derived server-side.
type SubmitClaimDTO struct {
	UserID       int64    `json:"userId"`
	EmployeeName string   `json:"employeeName"`
	Date         DateOnly `json:"date"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Amount       float64  `json:"amount"`
	Currency     string   `json:"currency"`
}

func (dto SubmitClaimDTO) Validate() error {
	if dto.UserID <= 0 {
		return errors.New("userId is required")
	}
	if dto.EmployeeName == "" {
		return errors.New("employeeName is required")
	}
	if dto.Date.IsZero() {
		return errors.New("date is required")
	}
	if dto.Description == "" {
		return errors.New("description is required")
	}
	if len(dto.Description) > 500 {
		return errors.New("description must be less than 500 characters")
	}
	if dto.Category == "" {
		return errors.New("category is required")
	}
	if math.IsNaN(dto.Amount) || math.IsInf(dto.Amount, 0) {
		return errors.New("amount must be a finite number")
	}
	if dto.Amount <= 0 {
		return errors.New("amount must be greater than 0")
	}
	if dto.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}

// DecideClaimDTO is the request payload for approving or rejecting a claim.
type DecideClaimDTO struct {
	Status     string `json:"status"`
	ApproverID int64  `json:"approverId"`
}

func (dto DecideClaimDTO) Validate() error {
	if dto.Status == "" {
		return errors.New("status is required")
	}
	if !ValidDecision(dto.Status) {
		return errors.New("status must be either 'Approved' or 'Rejected'")
	}
	if dto.ApproverID <= 0 {
		return errors.New("approverId is required")
	}
	return nil
}
