package models

import (
	"time"

	"github.com/lib/pq"
)

// Payment is an append-only ledger entry for a completed charge.
type Payment struct {
	ID            string         `db:"id" json:"id"`
	Email         string         `db:"email" json:"email"`
	Price         float64        `db:"price" json:"price"`
	TransactionID string         `db:"transaction_id" json:"transaction_id"`
	ClassIDs      pq.StringArray `db:"class_ids" json:"class_ids,omitempty"`
	PaidAt        time.Time      `db:"paid_at" json:"date"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}
