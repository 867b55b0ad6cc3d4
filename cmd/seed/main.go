// Command seed provisions the sample loan portfolio used by the mobile
// client demo: five customers and a handful of historic payments.
package main

import (
	"log"
	"time"

	"emi-collect/internal/config"
	"emi-collect/pkg/database/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

type seedCustomer struct {
	accountNumber string
	issueDate     string
	interestRate  string
	tenure        int
	emiDue        string
}

type seedPayment struct {
	accountNumber string
	amount        string
	paymentDate   string
	status        string
}

var customers = []seedCustomer{
	{"ACC001", "2024-01-15", "8.50", 24, "4500.00"},
	{"ACC002", "2024-02-20", "9.00", 36, "3200.00"},
	{"ACC003", "2024-03-10", "7.75", 12, "8500.00"},
	{"ACC004", "2024-04-05", "8.25", 48, "2800.00"},
	{"ACC005", "2024-05-18", "9.50", 24, "5200.00"},
}

var payments = []seedPayment{
	{"ACC001", "4500.00", "2024-06-01 10:30:00", "completed"},
	{"ACC001", "4500.00", "2024-07-01 11:15:00", "completed"},
	{"ACC002", "3200.00", "2024-06-15 14:20:00", "completed"},
	{"ACC003", "8500.00", "2024-06-10 09:45:00", "completed"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env or defaults")
	}

	cfg := config.Load()

	db, err := postgres.NewPostgresConnection(postgres.ConnectionInfo{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		Username: cfg.Postgres.User,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
		Password: cfg.Postgres.Password,
	})
	if err != nil {
		log.Fatalf("postgres init error: %v", err)
	}
	defer postgres.Close(db)

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("begin tx error: %v", err)
	}
	defer tx.Rollback()

	for _, c := range customers {
		_, err := tx.Exec(`
			INSERT INTO customers (account_number, issue_date, interest_rate, tenure, emi_due)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (account_number) DO NOTHING`,
			c.accountNumber, c.issueDate, c.interestRate, c.tenure, c.emiDue,
		)
		if err != nil {
			log.Fatalf("insert customer %s: %v", c.accountNumber, err)
		}
	}

	for _, p := range payments {
		paymentDate, err := time.Parse("2006-01-02 15:04:05", p.paymentDate)
		if err != nil {
			log.Fatalf("parse payment date %q: %v", p.paymentDate, err)
		}

		_, err = tx.Exec(`
			INSERT INTO payments (customer_id, account_number, payment_amount, payment_date, status)
			SELECT id, account_number, $2, $3, $4 FROM customers WHERE account_number = $1`,
			p.accountNumber, p.amount, paymentDate, p.status,
		)
		if err != nil {
			log.Fatalf("insert payment for %s: %v", p.accountNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("commit error: %v", err)
	}

	log.Printf("seeded %d customers and %d payments", len(customers), len(payments))
}
