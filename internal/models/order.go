package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// RentalOrder is a renter's lease on a device for a fixed duration. TotalCost
// is frozen at claim time; later price changes on the device never touch it.
type RentalOrder struct {
	Id       string `json:"id"`
	RenterId string `json:"renter_id"`
	DeviceId string `json:"device_id"`

	Status OrderStatus `json:"status"`

	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	DurationHours int        `json:"duration_hours"`

	TotalCost float64 `json:"total_cost"`

	TemplateIds []string `json:"template_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (o *RentalOrder) Clone() *RentalOrder {
	out := *o
	if o.EndTime != nil {
		end := *o.EndTime
		out.EndTime = &end
	}
	out.TemplateIds = append([]string(nil), o.TemplateIds...)
	return &out
}

// HasTemplate reports whether templateId is already attached.
func (o *RentalOrder) HasTemplate(templateId string) bool {
	for _, id := range o.TemplateIds {
		if id == templateId {
			return true
		}
	}
	return false
}

type RentDeviceReq struct {
	DeviceId      string `json:"device_id"`
	RenterId      string `json:"renter_id"`
	DurationHours int    `json:"duration_hours"`
}

type DeployTemplateReq struct {
	OrderId    string `json:"order_id"`
	TemplateId string `json:"template_id"`
}
