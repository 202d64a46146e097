package persistence

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/sales/backend/internal/domain/sales"
	"github.com/sales/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceRepository allocates per-company document codes.
// NextCode must run inside the same transaction that persists the
// document so that a rollback releases the allocated code.
type GormSequenceRepository struct{}

// NewGormSequenceRepository creates a new sequence repository
func NewGormSequenceRepository() *GormSequenceRepository {
	return &GormSequenceRepository{}
}

// NextCode returns the next code for the given company and document type,
// taking a row-level lock on the sequence row. The first allocation for a
// company creates the row with code 1.
func (r *GormSequenceRepository) NextCode(tx *gorm.DB, companyID uuid.UUID, docType sales.DocumentType) (int, error) {
	var seq sales.Sequence
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("company_id = ? AND document_type = ?", companyID, docType).
		First(&seq).Error

	switch {
	case err == nil:
		seq.LastCode++
		if err := tx.Model(&sales.Sequence{}).
			Where("company_id = ? AND document_type = ?", companyID, docType).
			Update("last_code", seq.LastCode).Error; err != nil {
			return 0, translateLockError(err)
		}
		return seq.LastCode, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		// ON CONFLICT DO NOTHING keeps the transaction usable when another
		// creator wins the race; a plain failed INSERT would abort it.
		seq = sales.Sequence{CompanyID: companyID, DocumentType: docType, LastCode: 1}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq)
		if res.Error != nil {
			return 0, translateLockError(res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race; the row exists now, take the lock and increment.
			return r.NextCode(tx, companyID, docType)
		}
		return seq.LastCode, nil

	default:
		return 0, translateLockError(err)
	}
}

// translateLockError maps lock acquisition failures to a contention error
func translateLockError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "lock timeout") ||
		strings.Contains(msg, "could not obtain lock") ||
		strings.Contains(msg, "deadlock") {
		return shared.NewDomainError("CONTENTION", "could not lock sequence row")
	}
	return err
}