package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/expense-claims/internal"
	"github.com/frahmantamala/expense-claims/internal/claim"
	claimDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/claim"
)

// ClaimRepository implements the claim.Repository interface using GORM.
type ClaimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) claim.Repository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) Create(c *claim.Claim) error {
	m := claim.ToDataModel(c)
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*c = *claim.FromDataModel(m)
	return nil
}

func (r *ClaimRepository) GetByDocID(docID string) (*claim.Claim, error) {
	var m claimDatamodel.Claim
	err := r.db.Where("doc_id = ?", docID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrClaimNotFound
		}
		return nil, err
	}
	return claim.FromDataModel(&m), nil
}

// ListByUserID returns the user's claims ordered by date descending with a
// stable doc_id tie-break.
func (r *ClaimRepository) ListByUserID(userID int64) ([]*claim.Claim, error) {
	var models []*claimDatamodel.Claim
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC, doc_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return claim.FromDataModelSlice(models), nil
}

func (r *ClaimRepository) ListPendingByUserIDs(userIDs []int64) ([]*claim.Claim, error) {
	var models []*claimDatamodel.Claim
	err := r.db.Where("status = ? AND user_id IN ?", claim.StatusPending, userIDs).
		Order("date DESC, doc_id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return claim.FromDataModelSlice(models), nil
}

// UpdateDecision transitions status and approver_id in one conditional
// write. The status guard makes the pending -> terminal transition
// exactly-once under concurrent decisions.
func (r *ClaimRepository) UpdateDecision(docID, status string, approverID int64) (bool, error) {
	tx := r.db.Model(&claimDatamodel.Claim{}).
		Where("doc_id = ? AND status = ?", docID, claim.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approver_id": approverID,
			"updated_at":  time.Now(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *ClaimRepository) CountByUserID(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&claimDatamodel.Claim{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
