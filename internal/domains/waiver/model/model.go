package model

import (
	"sitterhub/shared/model"
	"time"
)

const (
	TableName  = "waivers"
	EntityName = "waiver"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldSignedAt  = "signed_at"
)

// Waiver is a signed liability document for a booking. The file itself lives in object storage.
type Waiver struct {
	ID          string    `db:"id"`
	BookingID   string    `db:"booking_id"`
	SignerName  string    `db:"signer_name"`
	ObjectKey   string    `db:"object_key"`
	FileName    string    `db:"file_name"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	SignedAt    time.Time `db:"signed_at"`
	model.Metadata
}
