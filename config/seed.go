package config

import (
	"database/sql"
	"fmt"
	"log"
)

type seedReward struct {
	Category     string // empty = general rule
	RewardType   string
	RewardRate   float64
	MaximumSpend float64 // 0 = no monthly cap
	Conditions   string
}

type seedCard struct {
	Name          string
	Bank          string
	CardType      string
	AnnualFee     float64
	MinimumIncome float64
	Description   string
	Rewards       []seedReward
}

var seedCategories = []struct {
	Name        string
	Description string
	Icon        string
}{
	{"Dining", "Restaurant and food expenses", "🍽️"},
	{"Groceries", "Supermarket and grocery shopping", "🛒"},
	{"Petrol", "Fuel and petrol stations", "⛽"},
	{"E-commerce", "Online shopping platforms", "🛍️"},
	{"Transportation", "Grab, taxi, public transport", "🚗"},
	{"Entertainment", "Movies, streaming, gaming", "🎬"},
	{"Bills & Utilities", "Electricity, water, telco bills", "📄"},
	{"Healthcare", "Medical, pharmacy, wellness", "🏥"},
	{"Shopping", "Retail stores and malls", "🏬"},
	{"Travel", "Airlines, hotels, booking", "✈️"},
	{"General", "All other purchases", "💳"},
}

var seedCards = []seedCard{
	{
		Name: "Maybank 2 Cards", Bank: "Maybank", CardType: "cashback",
		AnnualFee: 0, MinimumIncome: 24000,
		Description: "5% cashback on weekend dining, 2% on groceries and petrol",
		Rewards: []seedReward{
			{Category: "Dining", RewardType: "cashback", RewardRate: 0.05, Conditions: "Weekends only"},
			{Category: "Groceries", RewardType: "cashback", RewardRate: 0.02, MaximumSpend: 300},
			{Category: "Petrol", RewardType: "cashback", RewardRate: 0.02, MaximumSpend: 300},
			{RewardType: "cashback", RewardRate: 0.005},
		},
	},
	{
		Name: "CIMB Cash Rebate Platinum", Bank: "CIMB", CardType: "cashback",
		AnnualFee: 0, MinimumIncome: 36000,
		Description: "8% cashback on petrol, 0.2% on other purchases",
		Rewards: []seedReward{
			{Category: "Petrol", RewardType: "cashback", RewardRate: 0.08, MaximumSpend: 500},
			{RewardType: "cashback", RewardRate: 0.002},
		},
	},
	{
		Name: "Public Bank Quantum Visa", Bank: "Public Bank", CardType: "cashback",
		AnnualFee: 0, MinimumIncome: 24000,
		Description: "5% cashback on petrol, 1% on other purchases",
		Rewards: []seedReward{
			{Category: "Petrol", RewardType: "cashback", RewardRate: 0.05, MaximumSpend: 300},
			{RewardType: "cashback", RewardRate: 0.01},
		},
	},
	{
		Name: "RHB Easy Visa", Bank: "RHB", CardType: "cashback",
		AnnualFee: 0, MinimumIncome: 24000,
		Description: "5% cashback on groceries and petrol",
		Rewards: []seedReward{
			{Category: "Groceries", RewardType: "cashback", RewardRate: 0.05, MaximumSpend: 500},
			{Category: "Petrol", RewardType: "cashback", RewardRate: 0.05, MaximumSpend: 500},
			{RewardType: "cashback", RewardRate: 0.005},
		},
	},
	{
		Name: "Hong Leong Wise Platinum", Bank: "Hong Leong", CardType: "cashback",
		AnnualFee: 0, MinimumIncome: 36000,
		Description: "5% cashback on petrol and groceries",
		Rewards: []seedReward{
			{Category: "Petrol", RewardType: "cashback", RewardRate: 0.05, MaximumSpend: 400},
			{Category: "Groceries", RewardType: "cashback", RewardRate: 0.05, MaximumSpend: 400},
			{RewardType: "cashback", RewardRate: 0.005},
		},
	},
	{
		Name: "AmBank True Cash Back", Bank: "AmBank", CardType: "cashback",
		AnnualFee: 0, MinimumIncome: 30000,
		Description: "5% cashback on petrol, 1% on other purchases",
		Rewards: []seedReward{
			{Category: "Petrol", RewardType: "cashback", RewardRate: 0.05, MaximumSpend: 200},
			{RewardType: "cashback", RewardRate: 0.01},
		},
	},
	{
		Name: "Maybank Treats General Card", Bank: "Maybank", CardType: "points",
		AnnualFee: 150, MinimumIncome: 36000,
		Description: "Earn TreatsPoints for dining, shopping and travel",
		Rewards: []seedReward{
			{Category: "Dining", RewardType: "points", RewardRate: 5.0},
			{Category: "Shopping", RewardType: "points", RewardRate: 3.0},
			{Category: "Travel", RewardType: "points", RewardRate: 3.0},
			{RewardType: "points", RewardRate: 1.0},
		},
	},
	{
		Name: "Standard Chartered Platinum", Bank: "Standard Chartered", CardType: "points",
		AnnualFee: 150, MinimumIncome: 42000,
		Description: "Earn points on dining and shopping",
		Rewards: []seedReward{
			{Category: "Dining", RewardType: "points", RewardRate: 4.0},
			{Category: "Shopping", RewardType: "points", RewardRate: 2.0},
			{RewardType: "points", RewardRate: 1.0},
		},
	},
}

var seedMerchants = map[string][]string{
	"Dining": {
		"McDonald's", "KFC", "Pizza Hut", "Burger King", "Subway",
		"Starbucks", "Old Town White Coffee", "Secret Recipe",
		"Sushi King", "Sakae Sushi", "Local Restaurant", "Mamak Stall",
	},
	"Groceries": {
		"AEON", "Tesco", "Giant", "Jaya Grocer", "Cold Storage",
		"Village Grocer", "Mercato", "Ben's Independent Grocer",
		"NSK Trade City", "Econsave", "99 Speedmart",
	},
	"Petrol": {
		"Shell", "Petronas", "BHP", "Caltex", "Esso",
	},
	"E-commerce": {
		"Shopee", "Lazada", "Zalora", "PG Mall", "11street",
		"Hermo", "FashionValet", "Mudah.my",
	},
	"Transportation": {
		"Grab", "Touch 'n Go", "MyRapid", "KTM", "MRT",
		"LRT", "Taxi", "Bus",
	},
	"Entertainment": {
		"GSC", "TGV", "MBO", "Netflix", "Spotify",
		"Disney+", "Astro", "Gaming",
	},
	"Bills & Utilities": {
		"TNB", "Syabas", "Indah Water", "Maxis",
		"Celcom", "Digi", "U Mobile", "TIME", "Unifi",
	},
	"Healthcare": {
		"Guardian", "Watsons", "Caring", "Hospital",
		"Clinic", "Pharmacy",
	},
	"Shopping": {
		"Pavilion KL", "KLCC", "Mid Valley", "1 Utama",
		"Sunway Pyramid", "IOI City Mall", "The Gardens",
	},
	"Travel": {
		"AirAsia", "Malaysia Airlines", "Agoda", "Booking.com",
		"Hotels.com", "Airbnb", "Hotel",
	},
}

// SeedCatalog loads the Malaysian categories, credit cards and merchants on
// first boot. Idempotent: it does nothing once any card exists.
func SeedCatalog(db *sql.DB) error {
	var cardCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM credit_cards`).Scan(&cardCount); err != nil {
		return fmt.Errorf("count credit cards: %w", err)
	}
	if cardCount > 0 {
		log.Printf("📇 Card catalog already initialized (%d cards)", cardCount)
		return nil
	}

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, cat := range seedCategories {
		var id string
		err := db.QueryRow(`
			INSERT INTO categories (name, description, icon)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
			RETURNING id
		`, cat.Name, cat.Description, cat.Icon).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", cat.Name, err)
		}
		categoryIDs[cat.Name] = id
	}

	for _, card := range seedCards {
		var cardID string
		err := db.QueryRow(`
			INSERT INTO credit_cards (name, bank, card_type, annual_fee, minimum_income, description)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, card.Name, card.Bank, card.CardType, card.AnnualFee, card.MinimumIncome, card.Description).Scan(&cardID)
		if err != nil {
			return fmt.Errorf("seed card %q: %w", card.Name, err)
		}

		for _, reward := range card.Rewards {
			var categoryID, conditions sql.NullString
			var maxSpend sql.NullFloat64
			if reward.Category != "" {
				categoryID = sql.NullString{String: categoryIDs[reward.Category], Valid: true}
			}
			if reward.MaximumSpend > 0 {
				maxSpend = sql.NullFloat64{Float64: reward.MaximumSpend, Valid: true}
			}
			if reward.Conditions != "" {
				conditions = sql.NullString{String: reward.Conditions, Valid: true}
			}

			_, err := db.Exec(`
				INSERT INTO card_rewards (credit_card_id, category_id, reward_type, reward_rate, maximum_spend, conditions)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, cardID, categoryID, reward.RewardType, reward.RewardRate, maxSpend, conditions)
			if err != nil {
				return fmt.Errorf("seed reward for %q: %w", card.Name, err)
			}
		}
	}

	totalMerchants := 0
	for categoryName, merchants := range seedMerchants {
		categoryID, ok := categoryIDs[categoryName]
		if !ok {
			continue
		}
		for _, merchantName := range merchants {
			if _, err := db.Exec(`
				INSERT INTO merchants (name, category_id)
				VALUES ($1, $2)
			`, merchantName, categoryID); err != nil {
				return fmt.Errorf("seed merchant %q: %w", merchantName, err)
			}
			totalMerchants++
		}
	}

	log.Printf("📇 Seeded %d Malaysian credit cards and %d merchants", len(seedCards), totalMerchants)
	return nil
}
