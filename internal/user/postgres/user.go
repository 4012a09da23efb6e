package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/expense-claims/internal"
	userDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/user"
	"github.com/frahmantamala/expense-claims/internal/user"
)

// UserRepository implements the user.Repository interface using GORM. It
// also backs the hierarchy resolver through TeamIDs.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var models []*userDatamodel.User
	if err := r.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(models), nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var m userDatamodel.User
	err := r.db.Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&m), nil
}

func (r *UserRepository) Create(u *user.User) error {
	m := user.ToDataModel(u)
	if err := r.db.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateEmployeeName
		}
		return err
	}
	*u = *user.FromDataModel(m)
	return nil
}

func (r *UserRepository) Delete(id int64) error {
	tx := r.db.Delete(&userDatamodel.User{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

// TeamIDs returns the ids of users whose manager_id matches managerID.
func (r *UserRepository) TeamIDs(managerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("manager_id = ?", managerID).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
