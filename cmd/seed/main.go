// Seed resets the database and loads the demo dataset: one owner account,
// three tenant accounts, the full bundled property catalog and two sample
// screening requests on the first KL listing.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"rentalhub/internal/config"
	"rentalhub/internal/database"
	"rentalhub/internal/domain"
	"rentalhub/internal/repository"
	"rentalhub/internal/seed"
)

const demoPassword = "password123"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// Child tables first.
	for _, table := range []string{"messages", "conversations", "booking_requests", "properties", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("clear %s: %v", table, err)
		}
	}

	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	requests := repository.NewRequestRepository(db)

	owner := createUser(ctx, users, "owner@rentalhub.my", "Property Owner", domain.RoleOwner)
	createUser(ctx, users, "ahmad@rentalhub.my", "Ahmad bin Razak", domain.RoleTenant)
	sarah := createUser(ctx, users, "sarah@rentalhub.my", "Sarah Lee", domain.RoleTenant)
	john := createUser(ctx, users, "john@rentalhub.my", "John Doe", domain.RoleTenant)

	catalog, err := seed.Properties(owner.ID)
	if err != nil {
		log.Fatal(err)
	}
	for i := range catalog {
		if err := properties.Create(ctx, &catalog[i]); err != nil {
			log.Fatalf("insert property %s: %v", catalog[i].ID, err)
		}
	}
	log.Printf("seeded %d properties", len(catalog))

	first, err := properties.GetByID(ctx, "kl_1")
	if err != nil || first == nil {
		log.Fatalf("seed property kl_1 missing: %v", err)
	}

	sample := []domain.BookingRequest{
		{
			ID:          uuid.NewString(),
			PropertyID:  first.ID,
			TenantID:    sarah.ID,
			Profile:     demoProfile("Sarah Lee", "Chinese", "Malaysian", "Marketing Manager", 5500),
			Status:      domain.RequestPending,
			RentAtTime:  first.Price,
			AIScore:     85,
			AIReasoning: "Strong income-to-rent ratio. Stable employment in reputable industry.",
			CreatedAt:   time.Now().UTC().Add(-24 * time.Hour),
		},
		{
			ID:          uuid.NewString(),
			PropertyID:  first.ID,
			TenantID:    john.ID,
			Profile:     demoProfile("John Doe", "", "UK", "Freelancer", 4000),
			Status:      domain.RequestRejected,
			RentAtTime:  first.Price,
			AIScore:     45,
			AIReasoning: "Income is borderline for this rental price. Freelance status poses higher risk.",
			CreatedAt:   time.Now().UTC().Add(-44 * time.Hour),
		},
	}
	for i := range sample {
		if err := requests.Create(ctx, &sample[i]); err != nil {
			log.Fatalf("insert request: %v", err)
		}
	}
	log.Printf("seeded %d sample requests on %s", len(sample), first.ID)

	log.Printf("demo accounts ready (password %q): owner@rentalhub.my, ahmad@rentalhub.my, sarah@rentalhub.my, john@rentalhub.my", demoPassword)
}

func createUser(ctx context.Context, users *repository.UserRepository, email, name string, role domain.UserRole) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("create user %s: %v", email, err)
	}
	return u
}

func demoProfile(fullName, race, nationality, occupation string, income int) domain.TenantProfile {
	return domain.TenantProfile{
		FullName:       fullName,
		NricOrPassport: "950101-14-XXXX",
		Gender:         "Male",
		Nationality:    nationality,
		Race:           race,
		Occupation:     occupation,
		CompanyName:    "Grab Malaysia",
		OfficeLocation: "First Avenue, Bandar Utama",
		MonthlyIncome:  income,
		PaxAdults:      2,
		PaxKids:        0,
		MoveInDate:     "2023-11-01",
		ContractPeriod: 12,
		DepositAgreed:  true,
		Bio:            "Quiet professional couple, clean and responsible.",
	}
}
