package main

import (
	"context"
	"flag"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/andriiBychkovskiy/proshop/internal/catalog"
	"github.com/andriiBychkovskiy/proshop/internal/config"
	"github.com/andriiBychkovskiy/proshop/internal/db"
	"github.com/andriiBychkovskiy/proshop/internal/user"
)

// seed loads a handful of accounts and products for local development.
// Run with -d to wipe the seeded tables instead.
func main() {
	destroy := flag.Bool("d", false, "destroy all data instead of seeding")
	flag.Parse()

	cfg := config.Load()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags)

	if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
		logger.Fatalf("run migrations: %v", err)
	}

	database := db.MustOpen(cfg.DatabaseDSN)
	defer database.Close()

	ctx := context.Background()

	if *destroy {
		for _, table := range []string{"order_items", "orders", "reviews", "products", "users", "event_sequences"} {
			if _, err := database.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				logger.Fatalf("clear %s: %v", table, err)
			}
		}
		logger.Printf("data destroyed")
		return
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("open pgx pool: %v", err)
	}
	defer pool.Close()

	users := user.NewRepository(database)
	products := catalog.NewPostgresRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalf("hash password: %v", err)
	}

	accounts := []user.User{
		{Name: "Admin User", Email: "admin@email.com", PasswordHash: string(hash), IsAdmin: true},
		{Name: "John Doe", Email: "john@email.com", PasswordHash: string(hash)},
		{Name: "Jane Doe", Email: "jane@email.com", PasswordHash: string(hash)},
	}
	for i := range accounts {
		if err := users.Create(ctx, &accounts[i]); err != nil {
			logger.Fatalf("create user %s: %v", accounts[i].Email, err)
		}
	}

	samples := []catalog.Product{
		{
			Name:        "Airpods Wireless Bluetooth Headphones",
			Image:       "/images/airpods.jpg",
			Brand:       "Apple",
			Category:    "Electronics",
			Description: "Bluetooth technology lets you connect it with compatible devices wirelessly.",
			Price:       89.99, CountInStock: 10,
		},
		{
			Name:        "iPhone 13 Pro 256GB Memory",
			Image:       "/images/phone.jpg",
			Brand:       "Apple",
			Category:    "Electronics",
			Description: "Introducing the iPhone 13 Pro. A transformative triple-camera system.",
			Price:       599.99, CountInStock: 7,
		},
		{
			Name:        "Cannon EOS 80D DSLR Camera",
			Image:       "/images/camera.jpg",
			Brand:       "Cannon",
			Category:    "Electronics",
			Description: "Characterized by versatile imaging specs with robust focusing systems.",
			Price:       929.99, CountInStock: 5,
		},
		{
			Name:        "Sony Playstation 5",
			Image:       "/images/playstation.jpg",
			Brand:       "Sony",
			Category:    "Electronics",
			Description: "The ultimate home entertainment center starts with PlayStation.",
			Price:       399.99, CountInStock: 11,
		},
		{
			Name:        "Logitech G-Series Gaming Mouse",
			Image:       "/images/mouse.jpg",
			Brand:       "Logitech",
			Category:    "Electronics",
			Description: "Get a better handle on your games with this Logitech gaming mouse.",
			Price:       49.99, CountInStock: 7,
		},
		{
			Name:        "Amazon Echo Dot 3rd Generation",
			Image:       "/images/alexa.jpg",
			Brand:       "Amazon",
			Category:    "Electronics",
			Description: "Meet Echo Dot, our most popular smart speaker with a fabric design.",
			Price:       29.99, CountInStock: 0,
		},
	}
	for i := range samples {
		if err := products.Create(ctx, &samples[i]); err != nil {
			logger.Fatalf("create product %s: %v", samples[i].Name, err)
		}
	}

	logger.Printf("seeded %d users and %d products", len(accounts), len(samples))
}
