package sales

import (
	"fmt"

	"github.com/google/uuid"
)

// DocumentType discriminates the per-company counters. Orders are the only
// document type issued by this service today; quotations and invoices get
// their own counters when they become first-class documents.
type DocumentType int

const (
	DocumentTypeOrder DocumentType = 1
)

// Sequence is a per (company, document type) monotonic counter used to issue
// human-facing document codes. Rows are read under a pessimistic write lock
// inside the creating transaction; LastCode never decreases.
type Sequence struct {
	CompanyID    uuid.UUID    `gorm:"type:uuid;primaryKey"`
	DocumentType DocumentType `gorm:"primaryKey"`
	LastCode     int          `gorm:"not null"`
}

func (Sequence) TableName() string { return "sal_sequence" }

// FormatCode renders a sequence value the way it appears on documents.
func FormatCode(code int) string {
	return fmt.Sprintf("%06d", code)
}
