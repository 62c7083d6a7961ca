package booking

import "time"

// Status is the reservation lifecycle state. There is no pending or
// completed state in this domain.
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

// Reservation is a committed booking. CourtName is denormalized for display
// and ledger descriptions. Price is a snapshot taken when the reservation is
// created or updated; later pricing changes never touch it.
type Reservation struct {
	ID          string    `json:"id" db:"id"`
	CourtID     string    `json:"courtId" db:"court_id"`
	CourtName   string    `json:"courtName" db:"court_name"`
	Date        string    `json:"date" db:"date"`
	StartTime   string    `json:"startTime" db:"start_time"`
	EndTime     string    `json:"endTime" db:"end_time"`
	UserName    string    `json:"userName" db:"user_name"`
	UserContact string    `json:"userContact" db:"user_contact"`
	UserEmail   string    `json:"userEmail,omitempty" db:"user_email"`
	Status      Status    `json:"status" db:"status"`
	Price       int64     `json:"price" db:"price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
