package api

import (
	"context"
	"fmt"
	"net/url"
)

// Booking is a scheduled vehicle delivery with box/weight expectations.
type Booking struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	VehicleReg    string  `json:"vehicle_reg"`
	SupplierName  string  `json:"supplier_name"`
	ExpectedBoxes float64 `json:"expected_boxes"`
	ExpectedTons  float64 `json:"expected_tons"`
	ReceivedBoxes float64 `json:"received_boxes"`
	ReceivedTons  float64 `json:"received_tons"`
	Status        string  `json:"status"`
}

// BookingRequest schedules a vehicle for a date. The backend enforces the
// daily capacity limit (and the override policy) authoritatively.
type BookingRequest struct {
	Date          string  `json:"date"`
	VehicleReg    string  `json:"vehicle_reg"`
	SupplierID    int64   `json:"supplier_id,omitempty"`
	ExpectedBoxes float64 `json:"expected_boxes"`
	ExpectedTons  float64 `json:"expected_tons"`
}

// ReceiveRequest records what a vehicle actually delivered; it can exceed or
// undershoot the booking.
type ReceiveRequest struct {
	ActualBoxes float64 `json:"actual_boxes"`
	ActualTons  float64 `json:"actual_tons"`
}

// ListBookings returns one date's vehicle bookings.
func (c *Client) ListBookings(ctx context.Context, date string) ([]Booking, error) {
	var out []Booking
	err := c.get(ctx, "/fish-purchase-vehicles", url.Values{"date": {date}}, &out)
	return out, err
}

// CreateBooking schedules a vehicle.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (Booking, error) {
	var out Booking
	err := c.post(ctx, "/fish-purchase-vehicles", req, &out)
	return out, err
}

// ReceiveVehicle records actual delivered quantities for a booking.
func (c *Client) ReceiveVehicle(ctx context.Context, bookingID int64, req ReceiveRequest) (Booking, error) {
	var out Booking
	err := c.post(ctx, fmt.Sprintf("/fish-purchase-vehicles/%d/receive", bookingID), req, &out)
	return out, err
}

// CompleteOffloading closes a received booking.
func (c *Client) CompleteOffloading(ctx context.Context, bookingID int64) (Booking, error) {
	var out Booking
	err := c.post(ctx, fmt.Sprintf("/fish-purchase-vehicles/%d/complete-offloading", bookingID), nil, &out)
	return out, err
}
