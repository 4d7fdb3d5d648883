package entities

import (
	"gorm.io/gorm"
)

type AttemptStatus string

const (
	// AttemptStatusTentative - the bill was created with the provider, payment outstanding
	AttemptStatusTentative AttemptStatus = "tentative"
	// AttemptStatusConfirmed - the provider reported the bill as paid and the order was confirmed
	AttemptStatusConfirmed AttemptStatus = "confirmed"
	// AttemptStatusCancelled - recorded for a due callback when the cancelled order policy says so
	AttemptStatusCancelled AttemptStatus = "cancelled"
)

func (s AttemptStatus) IsValid() bool {
	switch s {
	case AttemptStatusTentative, AttemptStatusConfirmed, AttemptStatusCancelled:
		return true
	}

	return false
}

// PaymentAttempt is one row of the payment attempt ledger. Every bill created
// with the provider gets a tentative row; the callback flow transitions it
// exactly once, which is what makes duplicate callbacks harmless.
type PaymentAttempt struct {
	gorm.Model
	OrderCode  string        `gorm:"index;type:varchar(80) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	BillID     string        `gorm:"uniqueIndex:idx_uq_bill;type:varchar(80) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	MethodCode string        `gorm:"type:varchar(32) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	Status     AttemptStatus `gorm:"type:enum('tentative', 'confirmed', 'cancelled')"`
	Amount     Amount        `gorm:"embedded"`
	Comment    string        `gorm:"type:text CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"`
}

type Amount struct {
	ISOCurrency string `gorm:"type:varchar(3) CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci;NOT NULL"`
	GrossCent   int64
}
