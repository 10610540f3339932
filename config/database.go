package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			name VARCHAR(255) NOT NULL,
			totp_secret VARCHAR(255),
			totp_enabled BOOLEAN DEFAULT FALSE,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) UNIQUE NOT NULL,
			description TEXT,
			icon VARCHAR(50)
		)`,

		`CREATE TABLE IF NOT EXISTS merchants (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			category_id UUID REFERENCES categories(id) NOT NULL,
			mcc_code VARCHAR(10),
			logo_url TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS credit_cards (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			bank VARCHAR(255) NOT NULL,
			card_type VARCHAR(50) NOT NULL,
			annual_fee DOUBLE PRECISION DEFAULT 0,
			minimum_income DOUBLE PRECISION,
			description TEXT,
			image_url TEXT,
			is_active BOOLEAN DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		// A rule is scoped to a category, a merchant, or neither — never both
		`CREATE TABLE IF NOT EXISTS card_rewards (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			credit_card_id UUID REFERENCES credit_cards(id) ON DELETE CASCADE NOT NULL,
			category_id UUID REFERENCES categories(id),
			merchant_id UUID REFERENCES merchants(id),
			reward_type VARCHAR(50) NOT NULL,
			reward_rate DOUBLE PRECISION NOT NULL,
			minimum_spend DOUBLE PRECISION DEFAULT 0,
			maximum_spend DOUBLE PRECISION,
			conditions TEXT,
			is_active BOOLEAN DEFAULT TRUE,
			CHECK (category_id IS NULL OR merchant_id IS NULL)
		)`,

		`CREATE TABLE IF NOT EXISTS user_cards (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE NOT NULL,
			credit_card_id UUID REFERENCES credit_cards(id) ON DELETE CASCADE NOT NULL,
			added_at TIMESTAMP DEFAULT NOW(),
			is_active BOOLEAN DEFAULT TRUE
		)`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE NOT NULL,
			merchant_id UUID REFERENCES merchants(id) NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			description TEXT,
			expense_date TIMESTAMP NOT NULL,
			credit_card_id UUID REFERENCES credit_cards(id),
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS recommendations (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE NOT NULL,
			recommended_cards JSONB NOT NULL,
			projected_savings DOUBLE PRECISION NOT NULL,
			analysis_period VARCHAR(10) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_merchants_category_id ON merchants(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_card_rewards_card_id ON card_rewards(credit_card_id)`,
		`CREATE INDEX IF NOT EXISTS idx_user_cards_user_id ON user_cards(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_expense_date ON expenses(expense_date)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_user_id ON recommendations(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
