package claim

import (
	"encoding/json"
	"fmt"
	"time"

	claimDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/claim"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// DateOnly is a calendar date that marshals as "2006-01-02" on the wire.
type DateOnly struct {
	time.Time
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(time.DateOnly))
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return fmt.Errorf("date must be an ISO calendar date (YYYY-MM-DD): %w", err)
	}
	d.Time = parsed
	return nil
}

// Claim is an expense reimbursement request. USDEquivalent is derived once
// at submission from the amount and the rate table; it is never recomputed.
type Claim struct {
	DocID         string    `json:"docId"`
	UserID        int64     `json:"userId"`
	EmployeeName  string    `json:"employeeName"`
	Date          DateOnly  `json:"date"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	USDEquivalent float64   `json:"usdEquivalent"`
	ApproverID    *int64    `json:"approverId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsTerminal reports whether the claim reached a final status. Approved and
// Rejected claims can no longer transition.
func (c *Claim) IsTerminal() bool {
	return c.Status == StatusApproved || c.Status == StatusRejected
}

func ValidDecision(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

func ToDataModel(c *Claim) *claimDatamodel.Claim {
	return &claimDatamodel.Claim{
		DocID:         c.DocID,
		UserID:        c.UserID,
		EmployeeName:  c.EmployeeName,
		Date:          c.Date.Time,
		Description:   c.Description,
		Category:      c.Category,
		Amount:        c.Amount,
		Currency:      c.Currency,
		Status:        c.Status,
		USDEquivalent: c.USDEquivalent,
		ApproverID:    c.ApproverID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func FromDataModel(m *claimDatamodel.Claim) *Claim {
	return &Claim{
		DocID:         m.DocID,
		UserID:        m.UserID,
		EmployeeName:  m.EmployeeName,
		Date:          DateOnly{Time: m.Date},
		Description:   m.Description,
		Category:      m.Category,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Status:        m.Status,
		USDEquivalent: m.USDEquivalent,
		ApproverID:    m.ApproverID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromDataModelSlice(models []*claimDatamodel.Claim) []*Claim {
	result := make([]*Claim, len(models))
	for i, m := range models {
		result[i] = FromDataModel(m)
	}
	return result
}
