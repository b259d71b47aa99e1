package market

import (
	"errors"
	"sync"
	"time"

	"github.com/filswan/go-swan-lib/logs"
	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/google/uuid"
)

type orderHandle struct {
	mu    sync.Mutex
	order *models.RentalOrder
}

// OrderManager drives the rental state machine and performs the atomic
// device claim by composing the registry and the pricing model.
type OrderManager struct {
	mu       sync.RWMutex
	orders   map[string]*orderHandle
	registry *DeviceRegistry
	store    *Store
	now      func() time.Time
}

func NewOrderManager(registry *DeviceRegistry, store *Store) (*OrderManager, error) {
	m := &OrderManager{
		orders:   make(map[string]*orderHandle),
		registry: registry,
		store:    store,
		now:      time.Now,
	}
	persisted, err := store.ListOrders()
	if err != nil {
		return nil, err
	}
	for _, order := range persisted {
		m.orders[order.Id] = &orderHandle{order: order}
	}
	return m, nil
}

// Rent claims the device, prices the rental at the claimed device's current
// rate and creates the order already ACTIVE. If pricing fails after the
// claim, the claim is rolled back so no RENTED device is left without an
// order.
func (m *OrderManager) Rent(deviceId, renterId string, durationHours int) (*models.RentalOrder, error) {
	if durationHours <= 0 {
		return nil, ErrInvalidDuration
	}

	// A device already referenced by an ACTIVE order cannot be rented again,
	// even when an administrative pull-and-relist has made it AVAILABLE.
	if m.activeOrderOnDevice(deviceId) {
		return nil, ErrDeviceNotAvailable
	}

	device, err := m.registry.TryClaim(deviceId)
	if err != nil {
		return nil, err
	}

	cost, err := TotalCost(device, durationHours)
	if err != nil {
		if _, rbErr := m.registry.Release(deviceId, 0); rbErr != nil {
			logs.GetLogger().Errorf("failed rollback claim, device: %s, error: %+v", deviceId, rbErr)
		}
		return nil, err
	}

	now := m.now()
	order := &models.RentalOrder{
		Id:            uuid.NewString(),
		RenterId:      renterId,
		DeviceId:      deviceId,
		Status:        models.OrderStatusActive,
		StartTime:     now,
		DurationHours: durationHours,
		TotalCost:     cost,
		CreatedAt:     now,
	}

	if err := m.store.PutOrder(order); err != nil {
		if _, rbErr := m.registry.Release(deviceId, 0); rbErr != nil {
			logs.GetLogger().Errorf("failed rollback claim, device: %s, error: %+v", deviceId, rbErr)
		}
		return nil, err
	}

	m.mu.Lock()
	m.orders[order.Id] = &orderHandle{order: order}
	m.mu.Unlock()

	return order.Clone(), nil
}

func (m *OrderManager) activeOrderOnDevice(deviceId string) bool {
	m.mu.RLock()
	handles := make([]*orderHandle, 0, len(m.orders))
	for _, h := range m.orders {
		handles = append(handles, h)
	}
	m.mu.RUnlock()

	for _, h := range handles {
		h.mu.Lock()
		active := h.order.DeviceId == deviceId && h.order.Status == models.OrderStatusActive
		h.mu.Unlock()
		if active {
			return true
		}
	}
	return false
}

// releaseDevice returns the order's device to the market. A device pulled
// OFFLINE or into MAINTENANCE mid-rental is no longer RENTED; the order still
// finalizes, the device keeps its administrative status.
func (m *OrderManager) releaseDevice(order *models.RentalOrder, rentedHours int) error {
	_, err := m.registry.Release(order.DeviceId, rentedHours)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidStateTransition) {
		logs.GetLogger().Warnf("device no longer rented, finalizing order without release, order: %s, device: %s",
			order.Id, order.DeviceId)
		return nil
	}
	return err
}

func (m *OrderManager) handle(orderId string) (*orderHandle, error) {
	m.mu.RLock()
	h, ok := m.orders[orderId]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrOrderNotFound
	}
	return h, nil
}

func (m *OrderManager) Get(orderId string) (*models.RentalOrder, error) {
	h, err := m.handle(orderId)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.order.Clone(), nil
}

// Complete closes an ACTIVE order, returns the device to AVAILABLE and
// credits the order's full duration to the device's cumulative hours.
func (m *OrderManager) Complete(orderId string) (*models.RentalOrder, error) {
	h, err := m.handle(orderId)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	order := h.order
	if order.Status != models.OrderStatusActive {
		return nil, ErrInvalidOrderState
	}
	if err := m.releaseDevice(order, order.DurationHours); err != nil {
		return nil, err
	}

	end := m.now()
	order.Status = models.OrderStatusCompleted
	order.EndTime = &end
	if err := m.store.PutOrder(order); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

// Cancel aborts an ACTIVE (or imported PENDING) order. TotalCost is left as
// computed; refund policy belongs to the billing layer.
func (m *OrderManager) Cancel(orderId string) (*models.RentalOrder, error) {
	h, err := m.handle(orderId)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	order := h.order
	if order.Status != models.OrderStatusActive && order.Status != models.OrderStatusPending {
		return nil, ErrInvalidOrderState
	}
	if order.Status == models.OrderStatusActive {
		if err := m.releaseDevice(order, 0); err != nil {
			return nil, err
		}
	}

	end := m.now()
	order.Status = models.OrderStatusCancelled
	order.EndTime = &end
	if err := m.store.PutOrder(order); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

// AttachTemplate records a deployment on an ACTIVE order. The caller must
// present a passing compatibility result; attaching the same template twice
// is a no-op.
func (m *OrderManager) AttachTemplate(orderId, templateId string, compat CompatResult) (*models.RentalOrder, error) {
	if !compat.Compatible {
		return nil, ErrIncompatibleTemplate
	}

	h, err := m.handle(orderId)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	order := h.order
	if order.Status != models.OrderStatusActive {
		return nil, ErrInvalidOrderState
	}
	if order.HasTemplate(templateId) {
		return order.Clone(), nil
	}
	order.TemplateIds = append(order.TemplateIds, templateId)
	if err := m.store.PutOrder(order); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

// Rerate recomputes an ACTIVE order's cost at the device's current rate.
// Nothing else ever touches a stored cost.
func (m *OrderManager) Rerate(orderId string) (*models.RentalOrder, error) {
	h, err := m.handle(orderId)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	order := h.order
	if order.Status != models.OrderStatusActive {
		return nil, ErrInvalidOrderState
	}
	device, err := m.registry.Get(order.DeviceId)
	if err != nil {
		return nil, err
	}
	cost, err := TotalCost(device, order.DurationHours)
	if err != nil {
		return nil, err
	}
	order.TotalCost = cost
	if err := m.store.PutOrder(order); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}

// List returns order snapshots, optionally filtered by renter.
func (m *OrderManager) List(renterId string) []*models.RentalOrder {
	m.mu.RLock()
	handles := make([]*orderHandle, 0, len(m.orders))
	for _, h := range m.orders {
		handles = append(handles, h)
	}
	m.mu.RUnlock()

	var orders []*models.RentalOrder
	for _, h := range handles {
		h.mu.Lock()
		order := h.order.Clone()
		h.mu.Unlock()
		if renterId != "" && order.RenterId != renterId {
			continue
		}
		orders = append(orders, order)
	}
	return orders
}

// TemplateAttachedToActiveOrder guards catalog deletion: a template still
// deployed on a running rental cannot be removed.
func (m *OrderManager) TemplateAttachedToActiveOrder(templateId string) bool {
	for _, order := range m.List("") {
		if order.Status == models.OrderStatusActive && order.HasTemplate(templateId) {
			return true
		}
	}
	return false
}

// ExpireOverdue completes every ACTIVE order whose rental window has passed.
// Returns the ids it closed.
func (m *OrderManager) ExpireOverdue(now time.Time) []string {
	var expired []string
	for _, order := range m.List("") {
		if order.Status != models.OrderStatusActive {
			continue
		}
		deadline := order.StartTime.Add(time.Duration(order.DurationHours) * time.Hour)
		if now.Before(deadline) {
			continue
		}
		if _, err := m.Complete(order.Id); err != nil {
			logs.GetLogger().Errorf("failed complete expired order: %s, error: %+v", order.Id, err)
			continue
		}
		expired = append(expired, order.Id)
	}
	return expired
}
