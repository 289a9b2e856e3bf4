package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate of all repositories
type Repository struct {
	db *gorm.DB

	User         UserRepository
	TravelOrder  TravelOrderRepository
	Notification NotificationRepository
}

// NewRepository creates the aggregate over db
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		TravelOrder:  NewTravelOrderRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

// Transaction runs fn against a Repository bound to a single transaction.
// fn returning an error (or panicking) rolls everything back.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
