package reservation

// CreateHoldRequest is the payload for POST /reservations/hold
type CreateHoldRequest struct {
	ShowID  string   `json:"show_id" binding:"required,uuid"`
	SeatIDs []string `json:"seat_ids" binding:"required,dive,uuid"`
}

// ConfirmRequest is the payload for POST /reservations/:id/confirm
type ConfirmRequest struct {
	PaymentMethod    string `json:"payment_method" binding:"required,paymentmethod"`
	PaymentReference string `json:"payment_reference" binding:"required,min=1,max=100"`
}

// BookingListQuery filters and paginates booking listings
type BookingListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=HOLD CONFIRMED CANCELLED EXPIRED"`
}
