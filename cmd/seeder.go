package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	claimDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/claim"
	userDatamodel "github.com/frahmantamala/expense-claims/internal/core/datamodel/user"
	"github.com/frahmantamala/expense-claims/internal/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{
			TranslateError: true,
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to open gorm session: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM expenses").Error; err != nil {
				log.Fatalf("failed to clear expenses: %v", err)
			}
			if err := db.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		admin := seedUser(db, "Priya Raman", user.RoleAdmin, nil)
		manager := seedUser(db, "Jane Smith", user.RoleManager, nil)
		eleanor := seedUser(db, "Eleanor Vance", user.RoleEmployee, &manager.ID)
		marcus := seedUser(db, "Marcus Holloway", user.RoleEmployee, &manager.ID)

		fmt.Printf("Seeded users: admin=%d manager=%d employees=[%d %d]\n",
			admin.ID, manager.ID, eleanor.ID, marcus.ID)

		claims := []*claimDatamodel.Claim{
			{DocID: "e1", UserID: eleanor.ID, EmployeeName: eleanor.EmployeeName, Date: date("2024-09-25"), Description: "Client lunch", Category: "Meals", Amount: 45.50, Currency: "USD", Status: "Approved", USDEquivalent: 45.50, ApproverID: &manager.ID},
			{DocID: "e2", UserID: marcus.ID, EmployeeName: marcus.EmployeeName, Date: date("2024-09-28"), Description: "Train ticket to NYC", Category: "Travel", Amount: 120.00, Currency: "USD", Status: "Pending", USDEquivalent: 120.00},
			{DocID: "e3", UserID: eleanor.ID, EmployeeName: eleanor.EmployeeName, Date: date("2024-09-30"), Description: "New keyboard & mouse", Category: "Office Supplies", Amount: 89.99, Currency: "GBP", Status: "Pending", USDEquivalent: 112.49},
			{DocID: "e4", UserID: manager.ID, EmployeeName: manager.EmployeeName, Date: date("2024-10-01"), Description: "Annual SaaS subscription", Category: "Software", Amount: 199.99, Currency: "USD", Status: "Approved", USDEquivalent: 199.99, ApproverID: &admin.ID},
			{DocID: "e5", UserID: marcus.ID, EmployeeName: marcus.EmployeeName, Date: date("2024-10-03"), Description: "Coffee for team celebration", Category: "Meals", Amount: 15.00, Currency: "USD", Status: "Rejected", USDEquivalent: 15.00, ApproverID: &manager.ID},
		}

		for _, c := range claims {
			var existing claimDatamodel.Claim
			err := db.Where("doc_id = ?", c.DocID).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Fatalf("failed to check claim %s: %v", c.DocID, err)
			}
			if err := db.Create(c).Error; err != nil {
				log.Fatalf("failed to insert claim %s: %v", c.DocID, err)
			}
		}

		fmt.Println("Seeded sample expense claims")
	},
}

func seedUser(db *gorm.DB, name, role string, managerID *int64) *userDatamodel.User {
	var existing userDatamodel.User
	err := db.Where("employee_name = ?", name).First(&existing).Error
	if err == nil {
		return &existing
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to check user %s: %v", name, err)
	}

	u := &userDatamodel.User{
		EmployeeName: name,
		Role:         role,
		ManagerID:    managerID,
	}
	if err := db.Create(u).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", name, err)
	}
	return u
}

func date(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		log.Fatalf("invalid seed date %s: %v", value, err)
	}
	return t
}
