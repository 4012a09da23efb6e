package user_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	claimDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/claim"
	userDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/user"
	"github.com/frahmantamala/expense-claims/internal/transport"
	"github.com/frahmantamala/expense-claims/internal/user"
	userPostgres "github.com/frahmantamala/expense-claims/internal/user/postgres"
)

// claimCountStore adapts the expenses table for the deletion guard without
// pulling the whole claim package into this suite.
type claimCountStore struct {
	db *gorm.DB
}

func (s *claimCountStore) CountByUserID(userID int64) (int64, error) {
	var count int64
	err := s.db.Model(&claimDatamodel.Claim{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

var _ = Describe("User Handler", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

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

	createUser := func(name, role string) user.User {
		w := doRequest(http.MethodPost, "/users", map[string]interface{}{
			"employeeName": name,
			"role":         role,
		})
		Expect(w.Code).To(Equal(http.StatusCreated))

		var u user.User
		Expect(json.NewDecoder(w.Body).Decode(&u)).To(Succeed())
		return u
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

		repo := userPostgres.NewUserRepository(db)
		service := user.NewService(repo, &claimCountStore{db: db}, logger)
		handler := user.NewHandler(transport.NewBaseHandler(logger), service)

		router = chi.NewRouter()
		router.Route("/users", func(r chi.Router) {
			r.Get("/", handler.ListUsers)
			r.Post("/", handler.CreateUser)
			r.Delete("/{userId}", handler.DeleteUser)
		})
	})

	Describe("POST /users", func() {
		It("should create a roster entry", func() {
			u := createUser("Dana Whitfield", user.RoleManager)

			Expect(u.ID).NotTo(BeZero())
			Expect(u.EmployeeName).To(Equal("Dana Whitfield"))
			Expect(u.Role).To(Equal(user.RoleManager))
		})

		It("should return 409 for a duplicate employee name", func() {
			createUser("Dana Whitfield", user.RoleManager)

			w := doRequest(http.MethodPost, "/users", map[string]interface{}{
				"employeeName": "Dana Whitfield",
				"role":         user.RoleEmployee,
			})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("should return 400 for an invalid role", func() {
			w := doRequest(http.MethodPost, "/users", map[string]interface{}{
				"employeeName": "Dana Whitfield",
				"role":         "Contractor",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should accept a managerId reference", func() {
			manager := createUser("Dana Whitfield", user.RoleManager)

			w := doRequest(http.MethodPost, "/users", map[string]interface{}{
				"employeeName": "Omar Haddad",
				"role":         user.RoleEmployee,
				"managerId":    manager.ID,
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			var u user.User
			Expect(json.NewDecoder(w.Body).Decode(&u)).To(Succeed())
			Expect(u.ManagerID).To(HaveValue(Equal(manager.ID)))
		})

		It("should return 400 for a managerId without approval authority", func() {
			employee := createUser("Dana Whitfield", user.RoleEmployee)

			w := doRequest(http.MethodPost, "/users", map[string]interface{}{
				"employeeName": "Omar Haddad",
				"role":         user.RoleEmployee,
				"managerId":    employee.ID,
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /users", func() {
		It("should list the roster", func() {
			createUser("Dana Whitfield", user.RoleManager)
			createUser("Omar Haddad", user.RoleEmployee)

			w := doRequest(http.MethodGet, "/users", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var users []user.User
			Expect(json.NewDecoder(w.Body).Decode(&users)).To(Succeed())
			Expect(users).To(HaveLen(2))
		})

		It("should return an empty array for an empty roster", func() {
			w := doRequest(http.MethodGet, "/users", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON("[]"))
		})
	})

	Describe("DELETE /users/{userId}", func() {
		It("should delete a user without claims", func() {
			u := createUser("Dana Whitfield", user.RoleEmployee)

			w := doRequest(http.MethodDelete, fmt.Sprintf("/users/%d", u.ID), nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			w = doRequest(http.MethodGet, "/users", nil)
			var users []user.User
			Expect(json.NewDecoder(w.Body).Decode(&users)).To(Succeed())
			Expect(users).To(BeEmpty())
		})

		It("should return 403 when the user still has claims", func() {
			u := createUser("Dana Whitfield", user.RoleEmployee)
			Expect(db.Create(&claimDatamodel.Claim{
				DocID:        "doc-1",
				UserID:       u.ID,
				EmployeeName: u.EmployeeName,
				Date:         time.Now(),
				Description:  "Team lunch",
				Amount:       45.50,
				Currency:     "USD",
				Status:       "Pending",
			}).Error).To(Succeed())

			w := doRequest(http.MethodDelete, fmt.Sprintf("/users/%d", u.ID), nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("should return 404 for an unknown user", func() {
			w := doRequest(http.MethodDelete, "/users/999", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a non-numeric userId", func() {
			w := doRequest(http.MethodDelete, "/users/abc", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
