package domain

import "time"

// Financial entry types
const (
	EntryTypeIncome  = "receita"
	EntryTypeExpense = "despesa"
)

// FinancialEntry a receivable or payable tied to a process (financial_entries table).
// Amounts are stored as integer cents to avoid floating-point drift.
type FinancialEntry struct {
	ID          string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Description string     `gorm:"column:description;size:500" json:"description"`
	AmountCents int64      `gorm:"column:amount_cents" json:"amount_cents"`
	Type        string     `gorm:"column:type;size:10;index" json:"type"` // "receita" or "despesa"
	DueDate     time.Time  `gorm:"column:due_date" json:"due_date"`
	PaymentDate *time.Time `gorm:"column:payment_date" json:"payment_date,omitempty"`
	Paid        bool       `gorm:"column:paid;default:false" json:"paid"`

	ProcessID string   `gorm:"column:process_id;type:uuid;index" json:"process_id"`
	Process   *Process `gorm:"foreignKey:ProcessID" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (FinancialEntry) TableName() string {
	return "financial_entries"
}

// CreateEntryRequest create/update payload for financial entries
type CreateEntryRequest struct {
	Description string     `json:"description" binding:"required"`
	AmountCents int64      `json:"amount_cents" binding:"required,gt=0"`
	Type        string     `json:"type" binding:"required,oneof=receita despesa"`
	DueDate     time.Time  `json:"due_date" binding:"required"`
	PaymentDate *time.Time `json:"payment_date"`
	Paid        bool       `json:"paid"`
	ProcessID   string     `json:"process_id" binding:"required"`
}

// MarkAsPaidRequest payload for marking an entry as paid
type MarkAsPaidRequest struct {
	PaymentDate time.Time `json:"payment_date" binding:"required"`
}

// EntryResponse represents a financial entry in API responses
type EntryResponse struct {
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	AmountCents   int64      `json:"amount_cents"`
	Type          string     `json:"type"`
	DueDate       time.Time  `json:"due_date"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`
	Paid          bool       `json:"paid"`
	ProcessID     string     `json:"process_id"`
	ProcessNumber string     `json:"process_number,omitempty"`
	ProcessTitle  string     `json:"process_title,omitempty"`
}

// ToResponse converts FinancialEntry to EntryResponse
func (e *FinancialEntry) ToResponse() *EntryResponse {
	resp := &EntryResponse{
		ID:          e.ID,
		Description: e.Description,
		AmountCents: e.AmountCents,
		Type:        e.Type,
		DueDate:     e.DueDate,
		PaymentDate: e.PaymentDate,
		Paid:        e.Paid,
		ProcessID:   e.ProcessID,
	}
	if e.Process != nil {
		resp.ProcessNumber = e.Process.Number
		resp.ProcessTitle = e.Process.Title
	}
	return resp
}
