package claim

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/expense-claims/internal/transport"
)

type ServiceAPI interface {
	Submit(dto SubmitClaimDTO) (*Claim, error)
	ListMine(userID int64) ([]*Claim, error)
	ListPending(managerID int64) ([]*Claim, error)
	Decide(docID string, dto DecideClaimDTO) (*Claim, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

// ListMyClaims handles GET /expenses/myclaims?userId=
func (h *Handler) ListMyClaims(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil {
		h.Logger.Warn("ListMyClaims: invalid userId", "userId", r.URL.Query().Get("userId"))
		h.WriteError(w, http.StatusBadRequest, "userId must be an integer")
		return
	}

	claims, err := h.Service.ListMine(userID)
	if err != nil {
		h.Logger.Error("ListMyClaims: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, claims)
}

// ListPendingClaims handles GET /expenses/pending?managerId=
func (h *Handler) ListPendingClaims(w http.ResponseWriter, r *http.Request) {
	managerID, err := strconv.ParseInt(r.URL.Query().Get("managerId"), 10, 64)
	if err != nil {
		h.Logger.Warn("ListPendingClaims: invalid managerId", "managerId", r.URL.Query().Get("managerId"))
		h.WriteError(w, http.StatusBadRequest, "managerId must be an integer")
		return
	}

	claims, err := h.Service.ListPending(managerID)
	if err != nil {
		h.Logger.Error("ListPendingClaims: service error", "error", err, "manager_id", managerID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, claims)
}

// SubmitClaim handles POST /expenses
func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	var dto SubmitClaimDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Warn("SubmitClaim: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Submit(dto)
	if err != nil {
		h.Logger.Error("SubmitClaim: service error", "error", err, "user_id", dto.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

// DecideClaim handles PATCH /expenses/{docId}
func (h *Handler) DecideClaim(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docId")
	if docID == "" {
		h.WriteError(w, http.StatusBadRequest, "docId is required")
		return
	}

	var dto DecideClaimDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Warn("DecideClaim: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Decide(docID, dto)
	if err != nil {
		h.Logger.Error("DecideClaim: service error", "error", err, "doc_id", docID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "status updated successfully",
		"expense": c,
	})
}
