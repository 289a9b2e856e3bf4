package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/internal/repository"
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock TravelOrderRepository ──

type mockTravelOrderRepo struct {
	orders map[int64]*model.TravelOrder
	users  *mockUserRepo
	nextID int64
	epoch  time.Time

	// onLock runs after GetByIDForUpdate read the row, simulating a concurrent writer
	onLock  func(stored *model.TravelOrder)
	listErr error
}

func newMockTravelOrderRepo(users *mockUserRepo) *mockTravelOrderRepo {
	return &mockTravelOrderRepo{
		orders: make(map[int64]*model.TravelOrder),
		users:  users,
		epoch:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockTravelOrderRepo) Create(_ context.Context, order *model.TravelOrder) error {
	m.nextID++
	order.ID = m.nextID
	// strictly increasing creation times keep newest-first ordering deterministic
	order.CreatedAt = m.epoch.Add(time.Duration(m.nextID) * time.Minute)
	order.UpdatedAt = order.CreatedAt
	stored := *order
	stored.User = nil
	m.orders[order.ID] = &stored
	return nil
}

func (m *mockTravelOrderRepo) load(id int64) (*model.TravelOrder, error) {
	stored, ok := m.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *stored
	if u, ok := m.users.users[stored.UserID]; ok {
		out.User = u
	}
	return &out, nil
}

func (m *mockTravelOrderRepo) GetByID(_ context.Context, id int64) (*model.TravelOrder, error) {
	return m.load(id)
}

func (m *mockTravelOrderRepo) GetByIDForUpdate(_ context.Context, id int64) (*model.TravelOrder, error) {
	out, err := m.load(id)
	if err != nil {
		return nil, err
	}
	if m.onLock != nil {
		m.onLock(m.orders[id])
	}
	return out, nil
}

func (m *mockTravelOrderRepo) UpdateStatus(_ context.Context, order *model.TravelOrder, status model.TravelOrderStatus, updatedBy string) error {
	stored, ok := m.orders[order.ID]
	if !ok || stored.Status != order.Status {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Status = status
	stored.UpdatedBy = &updatedBy
	order.Status = status
	order.UpdatedBy = &updatedBy
	return nil
}

func (m *mockTravelOrderRepo) List(_ context.Context, filters *repository.TravelOrderFilters, offset, limit int) ([]model.TravelOrder, int64, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}

	var matched []model.TravelOrder
	for id := range m.orders {
		o, _ := m.load(id)
		if filters.Matches(o) {
			matched = append(matched, *o)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return []model.TravelOrder{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	items     []*model.Notification
	createErr error
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	m.items = append(m.items, n)
	return nil
}

func (m *mockNotificationRepo) forUser(userID string) []*model.Notification {
	var out []*model.Notification
	for _, n := range m.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, offset, limit int) ([]model.Notification, int64, error) {
	mine := m.forUser(userID)
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })

	total := int64(len(mine))
	var page []model.Notification
	for i := offset; i < len(mine) && i < offset+limit; i++ {
		page = append(page, *mine[i])
	}
	return page, total, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, item := range m.forUser(userID) {
		if item.ReadAt == nil {
			n++
		}
	}
	return n, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, userID, id string) error {
	for _, item := range m.forUser(userID) {
		if item.NotificationID == id {
			if item.ReadAt == nil {
				now := time.Now()
				item.ReadAt = &now
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var updated int64
	now := time.Now()
	for _, item := range m.forUser(userID) {
		if item.ReadAt == nil {
			item.ReadAt = &now
			updated++
		}
	}
	return updated, nil
}

func (m *mockNotificationRepo) DeleteReadBefore(_ context.Context, before time.Time) (int64, error) {
	var kept []*model.Notification
	var deleted int64
	for _, item := range m.items {
		if item.ReadAt != nil && item.ReadAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, item)
	}
	m.items = kept
	return deleted, nil
}

// ── fixtures ──

type mockRepos struct {
	users         *mockUserRepo
	orders        *mockTravelOrderRepo
	notifications *mockNotificationRepo
	repo          *repository.Repository

	commits   int
	rollbacks int
}

// Transaction snapshots orders and notifications and restores them when fn fails,
// mirroring a database rollback
func (r *mockRepos) Transaction(_ context.Context, fn func(txRepo *repository.Repository) error) error {
	orders := make(map[int64]*model.TravelOrder, len(r.orders.orders))
	for id, o := range r.orders.orders {
		cp := *o
		orders[id] = &cp
	}
	items := append([]*model.Notification(nil), r.notifications.items...)

	if err := fn(r.repo); err != nil {
		r.orders.orders = orders
		r.notifications.items = items
		r.rollbacks++
		return err
	}
	r.commits++
	return nil
}

func newMockRepos() *mockRepos {
	users := newMockUserRepo()
	orders := newMockTravelOrderRepo(users)
	notifications := newMockNotificationRepo()
	return &mockRepos{
		users:         users,
		orders:        orders,
		notifications: notifications,
		repo: &repository.Repository{
			User:         users,
			TravelOrder:  orders,
			Notification: notifications,
		},
	}
}

func (r *mockRepos) addUser(id, name, role string) *model.User {
	u := &model.User{UserID: id, Name: name, Email: id + "@example.com", Role: role}
	_ = r.users.Create(context.Background(), u)
	return u
}

func (r *mockRepos) addOrder(userID, destination string, dep, ret model.Date, status model.TravelOrderStatus) *model.TravelOrder {
	o := &model.TravelOrder{
		UserID:        userID,
		Destination:   destination,
		DepartureDate: dep,
		ReturnDate:    ret,
		Status:        status,
	}
	_ = r.orders.Create(context.Background(), o)
	return o
}
