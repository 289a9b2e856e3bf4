package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/leandrovr13/onfly/internal/model"
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
)

// TravelOrderFilters list filters, combined with AND; zero values are ignored.
// StartDate and EndDate are applied only when both are set.
type TravelOrderFilters struct {
	UserID      string
	ID          *int64
	Status      model.TravelOrderStatus
	Destination string
	StartDate   *model.Date
	EndDate     *model.Date
}

// HasDateRange reports whether the overlap filter applies
func (f *TravelOrderFilters) HasDateRange() bool {
	return f.StartDate != nil && f.EndDate != nil
}

// Matches evaluates the filters in memory, mirroring the SQL built by apply
func (f *TravelOrderFilters) Matches(o *model.TravelOrder) bool {
	if f.UserID != "" && o.UserID != f.UserID {
		return false
	}
	if f.ID != nil && o.ID != *f.ID {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.Destination != "" && !strings.Contains(strings.ToLower(o.Destination), strings.ToLower(f.Destination)) {
		return false
	}
	if f.HasDateRange() && !o.Overlaps(*f.StartDate, *f.EndDate) {
		return false
	}
	return true
}

func (f *TravelOrderFilters) apply(db *gorm.DB) *gorm.DB {
	if f.UserID != "" {
		db = db.Where("travel_orders.user_id = ?", f.UserID)
	}
	if f.ID != nil {
		db = db.Where("travel_orders.id = ?", *f.ID)
	}
	if f.Status != "" {
		db = db.Where("travel_orders.status = ?", f.Status)
	}
	if f.Destination != "" {
		db = db.Where("travel_orders.destination ILIKE ? ESCAPE '\\'", "%"+escapeLike(f.Destination)+"%")
	}
	if f.HasDateRange() {
		db = db.Where("travel_orders.departure_date <= ? AND travel_orders.return_date >= ?",
			f.EndDate.String(), f.StartDate.String())
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// TravelOrderRepository travel order data access
type TravelOrderRepository interface {
	Create(ctx context.Context, order *model.TravelOrder) error
	GetByID(ctx context.Context, id int64) (*model.TravelOrder, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (*model.TravelOrder, error)
	// UpdateStatus compare-and-set on the status the caller read; ErrOptimisticLock when it moved
	UpdateStatus(ctx context.Context, order *model.TravelOrder, status model.TravelOrderStatus, updatedBy string) error
	List(ctx context.Context, filters *TravelOrderFilters, offset, limit int) ([]model.TravelOrder, int64, error)
}

type travelOrderRepo struct {
	db *gorm.DB
}

// NewTravelOrderRepo creates a TravelOrderRepository
func NewTravelOrderRepo(db *gorm.DB) TravelOrderRepository {
	return &travelOrderRepo{db: db}
}

func (r *travelOrderRepo) Create(ctx context.Context, order *model.TravelOrder) error {
	return r.db.WithContext(ctx).Omit("User").Create(order).Error
}

func (r *travelOrderRepo) GetByID(ctx context.Context, id int64) (*model.TravelOrder, error) {
	var order model.TravelOrder
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *travelOrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.TravelOrder, error) {
	var order model.TravelOrder
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	var owner model.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", order.UserID).First(&owner).Error; err != nil {
		return nil, err
	}
	order.User = &owner
	return &order, nil
}

func (r *travelOrderRepo) UpdateStatus(ctx context.Context, order *model.TravelOrder, status model.TravelOrderStatus, updatedBy string) error {
	oldStatus := order.Status
	now := r.db.NowFunc()

	result := r.db.WithContext(ctx).
		Model(&model.TravelOrder{}).
		Where("id = ? AND status = ?", order.ID, oldStatus).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}

	order.Status = status
	order.UpdatedBy = &updatedBy
	order.UpdatedAt = now
	return nil
}

func (r *travelOrderRepo) List(ctx context.Context, filters *TravelOrderFilters, offset, limit int) ([]model.TravelOrder, int64, error) {
	var orders []model.TravelOrder
	var total int64

	db := filters.apply(r.db.WithContext(ctx).Model(&model.TravelOrder{}))

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []model.TravelOrder{}, 0, nil
	}

	if err := db.Preload("User").
		Order("travel_orders.created_at DESC").
		Order("travel_orders.id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
