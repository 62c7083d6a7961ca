// Package store persists courts, operating hours, reservations and
// cash-register movements in SQLite. It implements the ports the booking
// manager depends on; the reservation writes commit the reservation row and
// its projected ledger movement in one transaction.
package store

import (
	"github.com/AgustinBaezRep/reservar-engine/internal/db"
)

type Store struct {
	db *db.DB
}

func New(database *db.DB) *Store {
	return &Store{db: database}
}
