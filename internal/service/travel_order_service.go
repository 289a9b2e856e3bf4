package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/leandrovr13/onfly/config"
	"github.com/leandrovr13/onfly/internal/dto"
	"github.com/leandrovr13/onfly/internal/model"
	"github.com/leandrovr13/onfly/internal/repository"
	pkgerrors "github.com/leandrovr13/onfly/pkg/errors"
)

const instrumentationName = "github.com/leandrovr13/onfly/internal/service"

// TravelOrderService travel order use cases. Every call acts on behalf of an explicit principal.
type TravelOrderService interface {
	Create(ctx context.Context, p model.Principal, req *dto.CreateTravelOrderRequest) (*dto.TravelOrderResponse, error)
	Get(ctx context.Context, p model.Principal, id int64) (*dto.TravelOrderResponse, error)
	List(ctx context.Context, p model.Principal, req *dto.TravelOrderListRequest) ([]dto.TravelOrderResponse, int64, error)
	UpdateStatus(ctx context.Context, p model.Principal, id int64, req *dto.UpdateTravelOrderStatusRequest) (*dto.TravelOrderResponse, error)
}

// Transactor runs fn atomically over a transaction-bound Repository
type Transactor interface {
	Transaction(ctx context.Context, fn func(txRepo *repository.Repository) error) error
}

type travelOrderService struct {
	cfg        *config.TravelConfig
	repo       *repository.Repository
	tx         Transactor
	now        func() time.Time
	newEmitter func(repository.NotificationRepository) StatusChangeEmitter
	logger     *zap.Logger

	tracer      trace.Tracer
	transitions metric.Int64Counter
}

// NewTravelOrderService creates a TravelOrderService; now is the clock used for the departure check
func NewTravelOrderService(cfg *config.TravelConfig, repo *repository.Repository, now func() time.Time, logger *zap.Logger) TravelOrderService {
	return newTravelOrderService(cfg, repo, repo, now, logger)
}

func newTravelOrderService(cfg *config.TravelConfig, repo *repository.Repository, tx Transactor, now func() time.Time, logger *zap.Logger) *travelOrderService {
	transitions, err := otel.Meter(instrumentationName).Int64Counter(
		"travel_orders.status_transitions",
		metric.WithDescription("Number of applied travel order status changes"),
	)
	if err != nil {
		logger.Warn("failed to create status transition counter", zap.Error(err))
	}

	return &travelOrderService{
		cfg:         cfg,
		repo:        repo,
		tx:          tx,
		now:         now,
		newEmitter:  NewNotificationEmitter,
		logger:      logger,
		tracer:      otel.Tracer(instrumentationName),
		transitions: transitions,
	}
}

// ────────────────────── Create ──────────────────────

func (s *travelOrderService) Create(ctx context.Context, p model.Principal, req *dto.CreateTravelOrderRequest) (*dto.TravelOrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "TravelOrderService.Create")
	defer span.End()

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, pkgerrors.NewValidationError("destination", "the destination field is required")
	}
	if utf8.RuneCountInString(destination) > model.DestinationMaxLen {
		return nil, pkgerrors.NewValidationError("destination", "the destination must not be greater than 255 characters")
	}

	departure, err := parseRequiredDate("departure_date", req.DepartureDate)
	if err != nil {
		return nil, err
	}
	ret, err := parseRequiredDate("return_date", req.ReturnDate)
	if err != nil {
		return nil, err
	}

	if ret.Before(departure) {
		return nil, pkgerrors.NewValidationError("return_date", "the return date must be a date after or equal to the departure date")
	}
	if s.cfg.EnforceFutureDeparture && departure.Before(model.DateOf(s.now())) {
		return nil, pkgerrors.NewValidationError("departure_date", "the departure date must be today or later")
	}

	order := &model.TravelOrder{
		UserID:        p.ID,
		Destination:   destination,
		DepartureDate: departure,
		ReturnDate:    ret,
		Status:        model.StatusRequested,
	}
	if err := s.repo.TravelOrder.Create(ctx, order); err != nil {
		s.logger.Error("failed to create travel order", zap.String("user_id", p.ID), zap.Error(err))
		return nil, s.fail(span, pkgerrors.Storage("create travel order", err))
	}

	created, err := s.repo.TravelOrder.GetByID(ctx, order.ID)
	if err != nil {
		s.logger.Error("failed to reload travel order", zap.Int64("id", order.ID), zap.Error(err))
		return nil, s.fail(span, pkgerrors.Storage("get travel order", err))
	}

	span.SetAttributes(attribute.Int64("travel_order.id", created.ID))
	s.logger.Info("travel order created",
		zap.Int64("id", created.ID),
		zap.String("user_id", p.ID),
	)

	resp := toTravelOrderResponse(created)
	return &resp, nil
}

// ────────────────────── Get ──────────────────────

func (s *travelOrderService) Get(ctx context.Context, p model.Principal, id int64) (*dto.TravelOrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "TravelOrderService.Get", trace.WithAttributes(attribute.Int64("travel_order.id", id)))
	defer span.End()

	order, err := s.repo.TravelOrder.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTravelOrderNotFound
		}
		s.logger.Error("failed to get travel order", zap.Int64("id", id), zap.Error(err))
		return nil, s.fail(span, pkgerrors.Storage("get travel order", err))
	}

	if !p.CanView(order.UserID) {
		return nil, pkgerrors.ErrForbidden
	}

	resp := toTravelOrderResponse(order)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *travelOrderService) List(ctx context.Context, p model.Principal, req *dto.TravelOrderListRequest) ([]dto.TravelOrderResponse, int64, error) {
	ctx, span := s.tracer.Start(ctx, "TravelOrderService.List", trace.WithAttributes(attribute.Bool("principal.admin", p.IsAdmin)))
	defer span.End()

	filters, err := BuildTravelOrderFilters(p, req)
	if err != nil {
		return nil, 0, err
	}

	orders, total, err := s.repo.TravelOrder.List(ctx, filters, req.GetOffset(model.TravelOrderPageSize), model.TravelOrderPageSize)
	if err != nil {
		s.logger.Error("failed to list travel orders", zap.Error(err))
		return nil, 0, s.fail(span, pkgerrors.Storage("list travel orders", err))
	}

	list := make([]dto.TravelOrderResponse, 0, len(orders))
	for i := range orders {
		list = append(list, toTravelOrderResponse(&orders[i]))
	}
	return list, total, nil
}

// BuildTravelOrderFilters turns list parameters into repository filters.
// Non-admins are always narrowed to their own orders; the date range applies
// only when both bounds are present.
func BuildTravelOrderFilters(p model.Principal, req *dto.TravelOrderListRequest) (*repository.TravelOrderFilters, error) {
	filters := &repository.TravelOrderFilters{
		ID:          req.ID,
		Destination: strings.TrimSpace(req.Destination),
	}

	if p.IsAdmin {
		filters.UserID = req.UserID
	} else {
		filters.UserID = p.ID
	}

	if req.Status != "" {
		status := model.TravelOrderStatus(req.Status)
		if !status.Valid() {
			return nil, pkgerrors.NewValidationError("status", "status must be one of: requested, approved, cancelled")
		}
		filters.Status = status
	}

	if req.StartDate != "" && req.EndDate != "" {
		start, err := model.ParseDate(req.StartDate)
		if err != nil {
			return nil, pkgerrors.NewValidationError("start_date", "the start date must be a valid date (YYYY-MM-DD)")
		}
		end, err := model.ParseDate(req.EndDate)
		if err != nil {
			return nil, pkgerrors.NewValidationError("end_date", "the end date must be a valid date (YYYY-MM-DD)")
		}
		if start.After(end) {
			return nil, pkgerrors.NewValidationError("end_date", "the end date must be a date after or equal to the start date")
		}
		filters.StartDate = &start
		filters.EndDate = &end
	}

	return filters, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *travelOrderService) UpdateStatus(ctx context.Context, p model.Principal, id int64, req *dto.UpdateTravelOrderStatusRequest) (*dto.TravelOrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "TravelOrderService.UpdateStatus", trace.WithAttributes(
		attribute.Int64("travel_order.id", id),
		attribute.String("travel_order.requested_status", req.Status),
	))
	defer span.End()

	if !p.IsAdmin {
		return nil, pkgerrors.ErrForbidden
	}

	next := model.TravelOrderStatus(strings.TrimSpace(req.Status))
	if !next.IsTarget() {
		return nil, model.ErrInvalidStatus
	}

	var (
		order     *model.TravelOrder
		oldStatus model.TravelOrderStatus
	)
	err := s.tx.Transaction(ctx, func(txRepo *repository.Repository) error {
		var err error
		order, err = txRepo.TravelOrder.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTravelOrderNotFound
			}
			s.logger.Error("failed to lock travel order", zap.Int64("id", id), zap.Error(err))
			return pkgerrors.Storage("get travel order", err)
		}

		oldStatus = order.Status
		if err := oldStatus.CanTransitionTo(next); err != nil {
			return err
		}

		if err := txRepo.TravelOrder.UpdateStatus(ctx, order, next, p.ID); err != nil {
			if errors.Is(err, pkgerrors.ErrOptimisticLock) {
				return err
			}
			s.logger.Error("failed to update travel order status", zap.Int64("id", id), zap.Error(err))
			return pkgerrors.Storage("update travel order status", err)
		}

		// same transaction: a failed append undoes the status write
		if err := s.newEmitter(txRepo.Notification).EmitStatusChanged(ctx, order, oldStatus, next); err != nil {
			s.logger.Error("failed to emit status notification", zap.Int64("id", id), zap.Error(err))
			return pkgerrors.Storage("emit status notification", err)
		}
		return nil
	})
	if err != nil {
		if !isDomainError(err) {
			// begin or commit failed outside fn
			s.logger.Error("travel order status transaction failed", zap.Int64("id", id), zap.Error(err))
			err = pkgerrors.Storage("status transaction", err)
		}
		if errors.Is(err, pkgerrors.ErrStorage) {
			s.fail(span, err)
		}
		return nil, err
	}

	if oldStatus == next {
		s.logger.Debug("travel order status unchanged",
			zap.Int64("id", id),
			zap.String("status", string(next)),
		)
	} else {
		if s.transitions != nil {
			s.transitions.Add(ctx, 1, metric.WithAttributes(
				attribute.String("from", string(oldStatus)),
				attribute.String("to", string(next)),
			))
		}
		s.logger.Info("travel order status updated",
			zap.Int64("id", id),
			zap.String("from", string(oldStatus)),
			zap.String("to", string(next)),
			zap.String("updated_by", p.ID),
		)
	}

	resp := toTravelOrderResponse(order)
	return &resp, nil
}

func (s *travelOrderService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// isDomainError reports errors already classified by UpdateStatus
func isDomainError(err error) bool {
	return errors.Is(err, pkgerrors.ErrStorage) ||
		errors.Is(err, pkgerrors.ErrValidation) ||
		errors.Is(err, pkgerrors.ErrNotFound) ||
		errors.Is(err, pkgerrors.ErrIllegalTransition) ||
		errors.Is(err, pkgerrors.ErrOptimisticLock)
}

func parseRequiredDate(field, value string) (model.Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return model.Date{}, pkgerrors.NewValidationError(field, "the "+strings.ReplaceAll(field, "_", " ")+" field is required")
	}
	d, err := model.ParseDate(value)
	if err != nil {
		return model.Date{}, pkgerrors.NewValidationError(field, "the "+strings.ReplaceAll(field, "_", " ")+" must be a valid date (YYYY-MM-DD)")
	}
	return d, nil
}
