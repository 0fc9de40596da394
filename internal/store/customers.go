package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"franchise-service/internal/models"
)

// CreateCustomer inserts a new customer row
func (s *Store) CreateCustomer(ctx context.Context, c *models.CustomerProfile) error {
	query := `
		INSERT INTO customers
			(id, name, phone, email, favorite_item, birthday, signup_date,
			 total_visits, total_spent, loyalty_points, last_visit, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Phone, c.Email, c.FavoriteItem, c.Birthday, c.SignupDate,
		c.TotalVisits, c.TotalSpent, c.LoyaltyPoints, c.LastVisit, c.Status)
	return err
}

// UpdateCustomer updates the mutable stats of a customer row
func (s *Store) UpdateCustomer(ctx context.Context, c *models.CustomerProfile) error {
	query := `
		UPDATE customers
		SET total_visits = $1, total_spent = $2, loyalty_points = $3,
		    last_visit = $4, status = $5
		WHERE id = $6`

	_, err := s.db.ExecContext(ctx, query,
		c.TotalVisits, c.TotalSpent, c.LoyaltyPoints, c.LastVisit, c.Status, c.ID)
	return err
}

// GetCustomer retrieves a customer by ID
func (s *Store) GetCustomer(ctx context.Context, id string) (*models.CustomerProfile, error) {
	var c models.CustomerProfile
	err := s.db.GetContext(ctx, &c, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// InactiveCustomers retrieves active customers with no visit in the given window
func (s *Store) InactiveCustomers(ctx context.Context, days int) ([]models.CustomerProfile, error) {
	var customers []models.CustomerProfile
	err := s.db.SelectContext(ctx, &customers, `
		SELECT * FROM customers
		WHERE status = $1
		  AND last_visit IS NOT NULL
		  AND last_visit < NOW() - make_interval(days => $2)
		ORDER BY last_visit`,
		models.CustomerStatusActive, days)
	return customers, err
}

// BirthdayCustomers retrieves customers whose birthday falls on the given day
func (s *Store) BirthdayCustomers(ctx context.Context, day time.Time) ([]models.CustomerProfile, error) {
	var customers []models.CustomerProfile
	err := s.db.SelectContext(ctx, &customers, `
		SELECT * FROM customers
		WHERE birthday IS NOT NULL
		  AND EXTRACT(MONTH FROM birthday) = $1
		  AND EXTRACT(DAY FROM birthday) = $2
		ORDER BY id`,
		int(day.Month()), day.Day())
	return customers, err
}

// RecentCustomers retrieves customers who visited within the given window
func (s *Store) RecentCustomers(ctx context.Context, days int) ([]models.CustomerProfile, error) {
	var customers []models.CustomerProfile
	err := s.db.SelectContext(ctx, &customers, `
		SELECT * FROM customers
		WHERE last_visit IS NOT NULL
		  AND last_visit >= NOW() - make_interval(days => $1)
		ORDER BY last_visit DESC`,
		days)
	return customers, err
}
