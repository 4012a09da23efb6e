package claim_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/expense-claims/internal"
	"github.com/frahmantamala/expense-claims/internal/claim"
	claimPostgres "github.com/frahmantamala/expense-claims/internal/claim/postgres"
	claimDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/claim"
	userDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/user"
	"github.com/frahmantamala/expense-claims/internal/core/events"
	"github.com/frahmantamala/expense-claims/internal/currency"
	"github.com/frahmantamala/expense-claims/internal/hierarchy"
	"github.com/frahmantamala/expense-claims/internal/transport"
	"github.com/frahmantamala/expense-claims/internal/user"
	userPostgres "github.com/frahmantamala/expense-claims/internal/user/postgres"
)

var _ = Describe("Claim Handler", func() {
	var (
		db       *gorm.DB
		router   *chi.Mux
		managers map[string]int64
	)

	seedUser := func(name, role string, managerID *int64) int64 {
		m := &userDatamodel.User{EmployeeName: name, Role: role, ManagerID: managerID}
		Expect(db.Create(m).Error).To(Succeed())
		return m.ID
	}

	doRequest := func(method, target string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, target, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	submitClaim := func(userID int64, name, date string) claim.Claim {
		w := doRequest(http.MethodPost, "/expenses", map[string]interface{}{
			"userId":       userID,
			"employeeName": name,
			"date":         date,
			"description":  "Team lunch",
			"category":     "Meals",
			"amount":       45.50,
			"currency":     "USD",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))

		var c claim.Claim
		Expect(json.NewDecoder(w.Body).Decode(&c)).To(Succeed())
		return c
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &claimDatamodel.Claim{})).To(Succeed())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		userRepo := userPostgres.NewUserRepository(db)
		claimRepo := claimPostgres.NewClaimRepository(db)
		resolver := hierarchy.NewResolver(userRepo, logger)
		normalizer := currency.NewNormalizer(internal.CurrencyConfig{Reference: "USD"}, logger)
		bus := events.NewEventBus(logger)

		service := claim.NewService(claimRepo, resolver, normalizer, bus, logger)
		handler := claim.NewHandler(transport.NewBaseHandler(logger), service)

		router = chi.NewRouter()
		router.Route("/expenses", func(r chi.Router) {
			r.Get("/myclaims", handler.ListMyClaims)
			r.Get("/pending", handler.ListPendingClaims)
			r.Post("/", handler.SubmitClaim)
			r.Patch("/{docId}", handler.DecideClaim)
		})

		managers = make(map[string]int64)
		managers["jane"] = seedUser("Jane Smith", user.RoleManager, nil)
		managers["eleanor"] = seedUser("Eleanor Vance", user.RoleEmployee, ptr(managers["jane"]))
		managers["marcus"] = seedUser("Marcus Holloway", user.RoleEmployee, ptr(managers["jane"]))
		managers["priya"] = seedUser("Priya Raman", user.RoleAdmin, nil)
	})

	Describe("POST /expenses", func() {
		It("should store a pending claim and return it", func() {
			c := submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-30")

			Expect(c.DocID).NotTo(BeEmpty())
			Expect(c.Status).To(Equal(claim.StatusPending))
			Expect(c.USDEquivalent).To(Equal(45.50))
			Expect(c.ApproverID).To(BeNil())
		})

		It("should reject a non-positive amount", func() {
			w := doRequest(http.MethodPost, "/expenses", map[string]interface{}{
				"userId":       managers["eleanor"],
				"employeeName": "Eleanor Vance",
				"date":         "2024-09-30",
				"description":  "Team lunch",
				"category":     "Meals",
				"amount":       -10.00,
				"currency":     "USD",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/expenses", bytes.NewBufferString("{not json"))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /expenses/myclaims", func() {
		It("should list the user's claims most recent first", func() {
			submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-25")
			submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-30")
			submitClaim(managers["marcus"], "Marcus Holloway", "2024-09-28")

			w := doRequest(http.MethodGet, fmt.Sprintf("/expenses/myclaims?userId=%d", managers["eleanor"]), nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var claims []claim.Claim
			Expect(json.NewDecoder(w.Body).Decode(&claims)).To(Succeed())
			Expect(claims).To(HaveLen(2))
			Expect(claims[0].Date.After(claims[1].Date.Time)).To(BeTrue())
		})

		It("should return an empty array for a user without claims", func() {
			w := doRequest(http.MethodGet, "/expenses/myclaims?userId=9999", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON("[]"))
		})

		It("should reject a non-numeric userId", func() {
			w := doRequest(http.MethodGet, "/expenses/myclaims?userId=abc", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /expenses/pending", func() {
		It("should list pending claims of the manager's team", func() {
			submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-30")
			submitClaim(managers["marcus"], "Marcus Holloway", "2024-09-28")

			w := doRequest(http.MethodGet, fmt.Sprintf("/expenses/pending?managerId=%d", managers["jane"]), nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var claims []claim.Claim
			Expect(json.NewDecoder(w.Body).Decode(&claims)).To(Succeed())
			Expect(claims).To(HaveLen(2))
		})

		It("should return an empty array for a manager without reports", func() {
			submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-30")

			w := doRequest(http.MethodGet, fmt.Sprintf("/expenses/pending?managerId=%d", managers["priya"]), nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON("[]"))
		})
	})

	Describe("PATCH /expenses/{docId}", func() {
		It("should approve a pending claim", func() {
			c := submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-30")

			w := doRequest(http.MethodPatch, "/expenses/"+c.DocID, map[string]interface{}{
				"status":     claim.StatusApproved,
				"approverId": managers["jane"],
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp struct {
				Message string      `json:"message"`
				Expense claim.Claim `json:"expense"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("status updated successfully"))
			Expect(resp.Expense.Status).To(Equal(claim.StatusApproved))
			Expect(resp.Expense.ApproverID).To(HaveValue(Equal(managers["jane"])))
		})

		It("should refuse to re-decide a terminal claim", func() {
			c := submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-30")

			w := doRequest(http.MethodPatch, "/expenses/"+c.DocID, map[string]interface{}{
				"status":     claim.StatusApproved,
				"approverId": managers["jane"],
			})
			Expect(w.Code).To(Equal(http.StatusOK))

			w = doRequest(http.MethodPatch, "/expenses/"+c.DocID, map[string]interface{}{
				"status":     claim.StatusRejected,
				"approverId": managers["jane"],
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should forbid an approver outside the owner's chain", func() {
			c := submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-30")

			w := doRequest(http.MethodPatch, "/expenses/"+c.DocID, map[string]interface{}{
				"status":     claim.StatusApproved,
				"approverId": managers["priya"],
			})
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should return 404 for an unknown docId", func() {
			w := doRequest(http.MethodPatch, "/expenses/does-not-exist", map[string]interface{}{
				"status":     claim.StatusApproved,
				"approverId": managers["jane"],
			})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should reject an invalid status value", func() {
			c := submitClaim(managers["eleanor"], "Eleanor Vance", "2024-09-30")

			w := doRequest(http.MethodPatch, "/expenses/"+c.DocID, map[string]interface{}{
				"status":     "Escalated",
				"approverId": managers["jane"],
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})

func ptr(v int64) *int64 {
	return &v
}
