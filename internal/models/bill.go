package models

import "time"

type BillStatus string

const (
	BillStatusPending BillStatus = "PENDING"
	BillStatusPaid    BillStatus = "PAID"
	BillStatusVoid    BillStatus = "VOID"
)

// Bill is derived per order, never persisted on its own.
type Bill struct {
	OrderId   string     `json:"order_id"`
	RenterId  string     `json:"renter_id"`
	DeviceId  string     `json:"device_id"`
	Amount    float64    `json:"amount"`
	Status    BillStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

type BillingSummary struct {
	RenterId      string  `json:"renter_id"`
	TotalSpent    float64 `json:"total_spent"`
	PendingAmount float64 `json:"pending_amount"`
	BillCount     int     `json:"bill_count"`
}

// MarketStats is the admin snapshot over all devices and orders.
type MarketStats struct {
	TotalDevices     int     `json:"total_devices"`
	AvailableDevices int     `json:"available_devices"`
	ActiveRentals    int     `json:"active_rentals"`
	CompletedRentals int     `json:"completed_rentals"`
	TotalRevenue     float64 `json:"total_revenue"`
	UtilizationRate  float64 `json:"utilization_rate"`
}
