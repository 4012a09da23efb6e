package user

import (
	"log/slog"

	"github.com/frahmantamala/expense-claims/internal"
)

// Repository defines the store adapter calls for the user roster.
type Repository interface {
	GetAll() ([]*User, error)
	GetByID(id int64) (*User, error)
	Create(u *User) error
	Delete(id int64) error
	TeamIDs(managerID int64) ([]int64, error)
}

// ClaimCounter reports how many claims reference a user. Deletion is
// blocked while the count is non-zero.
type ClaimCounter interface {
	CountByUserID(userID int64) (int64, error)
}

type Service struct {
	repo   Repository
	claims ClaimCounter
	logger *slog.Logger
}

func NewService(repo Repository, claims ClaimCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		claims: claims,
		logger: logger,
	}
}

func (s *Service) ListUsers() ([]*User, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("could not list users", err)
	}
	if users == nil {
		users = []*User{}
	}
	return users, nil
}

// CreateUser registers a roster entry. Employee names are unique; a
// duplicate surfaces as a conflict without creating a second row. A
// managerId, when given, must reference a user with approval authority.
func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("user validation failed", "error", err)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if dto.ManagerID != nil {
		manager, err := s.repo.GetByID(*dto.ManagerID)
		if err != nil {
			if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
				s.logger.Warn("manager reference not found", "manager_id", *dto.ManagerID)
				return nil, internal.NewValidationError("managerId does not reference an existing user", internal.ErrCodeValidationFailed)
			}
			s.logger.Error("failed to look up manager", "error", err, "manager_id", *dto.ManagerID)
			return nil, internal.NewInternalError("could not look up manager", err)
		}
		if !manager.IsManager() {
			s.logger.Warn("manager reference lacks approval authority", "manager_id", manager.ID, "role", manager.Role)
			return nil, internal.NewValidationError("managerId must reference a manager", internal.ErrCodeInvalidRole)
		}
	}

	u := &User{
		EmployeeName: dto.EmployeeName,
		Role:         dto.Role,
		ManagerID:    dto.ManagerID,
	}

	if err := s.repo.Create(u); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			s.logger.Warn("user creation rejected", "error", appErr, "employee_name", dto.EmployeeName)
			return nil, appErr
		}
		s.logger.Error("failed to create user", "error", err, "employee_name", dto.EmployeeName)
		return nil, internal.NewInternalError("could not create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "employee_name", u.EmployeeName, "role", u.Role)

	return u, nil
}

// DeleteUser removes a roster entry. Users referenced by any claim cannot
// be deleted.
func (s *Service) DeleteUser(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to look up user for deletion", "error", err, "user_id", id)
		return internal.NewInternalError("could not look up user", err)
	}

	count, err := s.claims.CountByUserID(id)
	if err != nil {
		s.logger.Error("failed to count user claims", "error", err, "user_id", id)
		return internal.NewInternalError("could not check user claims", err)
	}
	if count > 0 {
		s.logger.Warn("user deletion blocked by existing claims", "user_id", id, "claim_count", count)
		return internal.ErrUserHasClaims
	}

	if err := s.repo.Delete(id); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return appErr
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewInternalError("could not delete user", err)
	}

	s.logger.Info("user deleted", "user_id", id)

	return nil
}
