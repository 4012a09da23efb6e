package claim

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/frahmantamala/expense-claims/internal"
	"github.com/frahmantamala/expense-claims/internal/core/events"
)

// Repository defines the store adapter calls the lifecycle engine requires.
type Repository interface {
	Create(c *Claim) error
	GetByDocID(docID string) (*Claim, error)
	ListByUserID(userID int64) ([]*Claim, error)
	ListPendingByUserIDs(userIDs []int64) ([]*Claim, error)
	// UpdateDecision transitions a claim only while it is still pending and
	// reports whether a row was actually updated.
	UpdateDecision(docID, status string, approverID int64) (bool, error)
	CountByUserID(userID int64) (int64, error)
}

// TeamResolver scopes manager visibility and approval authority.
type TeamResolver interface {
	TeamOf(managerID int64) ([]int64, error)
	Manages(managerID, employeeID int64) (bool, error)
}

// Normalizer derives the reference-currency equivalent of a claim amount.
type Normalizer interface {
	Normalize(amount float64, code string) float64
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service implements the claim lifecycle: submission, role-scoped listing
// and the pending -> approved/rejected transition.
type Service struct {
	repo       Repository
	teams      TeamResolver
	normalizer Normalizer
	bus        Publisher
	logger     *slog.Logger
}

func NewService(repo Repository, teams TeamResolver, normalizer Normalizer, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		teams:      teams,
		normalizer: normalizer,
		bus:        bus,
		logger:     logger,
	}
}

// Submit validates the payload, derives docId and usdEquivalent, stores the
// claim as Pending and returns the stored record.
func (s *Service) Submit(dto SubmitClaimDTO) (*Claim, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("claim validation failed", "error", err, "user_id", dto.UserID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	c := &Claim{
		DocID:         uuid.NewString(),
		UserID:        dto.UserID,
		EmployeeName:  dto.EmployeeName,
		Date:          dto.Date,
		Description:   dto.Description,
		Category:      dto.Category,
		Amount:        dto.Amount,
		Currency:      dto.Currency,
		Status:        StatusPending,
		USDEquivalent: s.normalizer.Normalize(dto.Amount, dto.Currency),
	}

	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to store claim", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("could not store expense claim", err)
	}

	// read-after-write so the caller sees store-side defaults
	stored, err := s.repo.GetByDocID(c.DocID)
	if err != nil {
		s.logger.Error("failed to read back stored claim", "error", err, "doc_id", c.DocID)
		return nil, internal.NewInternalError("could not read stored expense claim", err)
	}

	if err := s.bus.Publish(context.Background(), events.NewClaimSubmitted(stored.DocID, stored.UserID, stored.USDEquivalent)); err != nil {
		s.logger.Error("failed to publish claim submitted event", "error", err, "doc_id", stored.DocID)
	}

	s.logger.Info("claim submitted",
		"doc_id", stored.DocID,
		"user_id", stored.UserID,
		"amount", stored.Amount,
		"currency", stored.Currency,
		"usd_equivalent", stored.USDEquivalent)

	return stored, nil
}

// ListMine returns all claims owned by userID, most recent date first.
func (s *Service) ListMine(userID int64) ([]*Claim, error) {
	claims, err := s.repo.ListByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list claims", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("could not list expense claims", err)
	}
	if claims == nil {
		claims = []*Claim{}
	}
	return claims, nil
}

// ListPending returns the pending claims of the manager's direct reports.
// A manager with no team gets an empty result without touching the store.
func (s *Service) ListPending(managerID int64) ([]*Claim, error) {
	team, err := s.teams.TeamOf(managerID)
	if err != nil {
		s.logger.Error("failed to resolve team", "error", err, "manager_id", managerID)
		return nil, internal.NewInternalError("could not resolve manager team", err)
	}

	if len(team) == 0 {
		return []*Claim{}, nil
	}

	claims, err := s.repo.ListPendingByUserIDs(team)
	if err != nil {
		s.logger.Error("failed to list pending claims", "error", err, "manager_id", managerID)
		return nil, internal.NewInternalError("could not list pending expense claims", err)
	}
	if claims == nil {
		claims = []*Claim{}
	}
	return claims, nil
}

// Decide transitions a pending claim to Approved or Rejected. The approver
// must manage the claim's owner, and terminal claims cannot be re-decided.
func (s *Service) Decide(docID string, dto DecideClaimDTO) (*Claim, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("decision validation failed", "error", err, "doc_id", docID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidStatus)
	}

	c, err := s.repo.GetByDocID(docID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			s.logger.Warn("claim not found for decision", "error", err, "doc_id", docID)
			return nil, appErr
		}
		s.logger.Error("failed to load claim for decision", "error", err, "doc_id", docID)
		return nil, internal.NewInternalError("could not load expense claim", err)
	}

	manages, err := s.teams.Manages(dto.ApproverID, c.UserID)
	if err != nil {
		s.logger.Error("failed to check approver authority", "error", err, "doc_id", docID, "approver_id", dto.ApproverID)
		return nil, internal.NewInternalError("could not verify approver authority", err)
	}
	if !manages {
		s.logger.Warn("approver does not manage claim owner",
			"doc_id", docID,
			"approver_id", dto.ApproverID,
			"owner_id", c.UserID)
		return nil, internal.ErrNotTeamManager
	}

	if c.IsTerminal() {
		s.logger.Warn("claim already decided", "doc_id", docID, "status", c.Status)
		return nil, internal.ErrClaimNotPending
	}

	updated, err := s.repo.UpdateDecision(docID, dto.Status, dto.ApproverID)
	if err != nil {
		s.logger.Error("failed to update claim status", "error", err, "doc_id", docID)
		return nil, internal.NewInternalError("could not update expense claim", err)
	}
	if !updated {
		// lost a concurrent decision race: the claim left Pending between
		// the read above and the conditional update
		s.logger.Warn("claim decided concurrently", "doc_id", docID)
		return nil, internal.ErrClaimNotPending
	}

	decided, err := s.repo.GetByDocID(docID)
	if err != nil {
		s.logger.Error("failed to read back decided claim", "error", err, "doc_id", docID)
		return nil, internal.NewInternalError("could not read updated expense claim", err)
	}

	if err := s.bus.Publish(context.Background(), events.NewClaimDecided(docID, dto.Status, dto.ApproverID)); err != nil {
		s.logger.Error("failed to publish claim decided event", "error", err, "doc_id", docID)
	}

	s.logger.Info("claim decided",
		"doc_id", docID,
		"status", dto.Status,
		"approver_id", dto.ApproverID)

	return decided, nil
}
