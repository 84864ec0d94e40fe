package models

// FreeSlotsRequest asks for the free slots of a single date.
type FreeSlotsRequest struct {
	Date     string `json:"date" binding:"required"`
	Timezone string `json:"timezone"`
}

// NextFreeRequest asks for the next N free slots from today onward.
type NextFreeRequest struct {
	Count    int    `json:"count"`
	Timezone string `json:"timezone"`
}

// AvailabilityRequest asks whether one specific slot is still free.
type AvailabilityRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Timezone string `json:"timezone"`
}

// BookingRequest books a single slot for the named attendee.
type BookingRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Timezone string `json:"timezone"`
}

// DeleteRequest removes a booking, either directly by event id or by the
// slot it occupies.
type DeleteRequest struct {
	EventID  string `json:"event_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

// BookingConfirmation is the authoritative "booking succeeded" answer.
type BookingConfirmation struct {
	Status  string `json:"status"`
	EventID string `json:"event_id"`
}
