package market

import "github.com/flexicompute/go-rental-provider/internal/models"

// billStatus derives a bill's state from its order: a running rental is owed,
// a finished one is settled, a cancelled one is void.
func billStatus(order *models.RentalOrder) models.BillStatus {
	switch order.Status {
	case models.OrderStatusCompleted:
		return models.BillStatusPaid
	case models.OrderStatusCancelled:
		return models.BillStatusVoid
	default:
		return models.BillStatusPending
	}
}

// BillingAggregator folds order records into bills and spend summaries. It is
// read-only over the order manager's data.
type BillingAggregator struct {
	orders *OrderManager
}

func NewBillingAggregator(orders *OrderManager) *BillingAggregator {
	return &BillingAggregator{orders: orders}
}

// Bills derives one bill per order for the renter.
func (b *BillingAggregator) Bills(renterId string) []*models.Bill {
	var bills []*models.Bill
	for _, order := range b.orders.List(renterId) {
		bills = append(bills, &models.Bill{
			OrderId:   order.Id,
			RenterId:  order.RenterId,
			DeviceId:  order.DeviceId,
			Amount:    order.TotalCost,
			Status:    billStatus(order),
			CreatedAt: order.CreatedAt,
		})
	}
	return bills
}

// Summarize folds the renter's bills: pending (ACTIVE orders) plus paid
// (COMPLETED) make up total spend, void bills only count toward BillCount.
func (b *BillingAggregator) Summarize(renterId string) *models.BillingSummary {
	summary := &models.BillingSummary{RenterId: renterId}
	for _, bill := range b.Bills(renterId) {
		summary.BillCount++
		switch bill.Status {
		case models.BillStatusPending:
			summary.PendingAmount += bill.Amount
			summary.TotalSpent += bill.Amount
		case models.BillStatusPaid:
			summary.TotalSpent += bill.Amount
		}
	}
	return summary
}

// Stats computes the admin market snapshot over all devices and orders.
func Stats(registry *DeviceRegistry, orders *OrderManager) *models.MarketStats {
	stats := &models.MarketStats{}
	devices := registry.List(nil)
	stats.TotalDevices = len(devices)
	var rented int
	for _, device := range devices {
		switch device.Status {
		case models.DeviceStatusAvailable:
			stats.AvailableDevices++
		case models.DeviceStatusRented:
			rented++
		}
	}
	for _, order := range orders.List("") {
		switch order.Status {
		case models.OrderStatusActive:
			stats.ActiveRentals++
			stats.TotalRevenue += order.TotalCost
		case models.OrderStatusCompleted:
			stats.CompletedRentals++
			stats.TotalRevenue += order.TotalCost
		}
	}
	if stats.TotalDevices > 0 {
		stats.UtilizationRate = float64(rented) / float64(stats.TotalDevices)
	}
	return stats
}
