// Package ledger persists the session's financial history: one row per
// simulated day plus a row per player transaction. The simulation core writes
// through the Recorder interface and never touches SQL directly.
package ledger

import "time"

type TransactionKind string

const (
	TxBuy             TransactionKind = "buy"
	TxSell            TransactionKind = "sell"
	TxRenovationStart TransactionKind = "renovation_start"
	TxLoanTaken       TransactionKind = "loan_taken"
	TxLoanRepaid      TransactionKind = "loan_repaid"
	TxSkillUpgrade    TransactionKind = "skill_upgrade"
)

// DayRecord summarizes the economy after one advanced day.
type DayRecord struct {
	Day          int       `json:"day"`
	Cash         int       `json:"cash"`
	Loan         int       `json:"loan"`
	InterestPaid int       `json:"interest_paid"`
	TaxesPaid    int       `json:"taxes_paid"`
	WagesPaid    int       `json:"wages_paid"`
	NetWorth     int       `json:"net_worth"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// TransactionRecord is one player-triggered cash movement.
type TransactionRecord struct {
	Day        int             `json:"day"`
	Kind       TransactionKind `json:"kind"`
	PropertyID string          `json:"property_id,omitempty"`
	Amount     int             `json:"amount"`
	Detail     string          `json:"detail,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Recorder is what the simulation writes history through. Implementations
// must tolerate being called once per day for the life of a session.
type Recorder interface {
	RecordDay(rec DayRecord) error
	RecordTransaction(rec TransactionRecord) error
}
