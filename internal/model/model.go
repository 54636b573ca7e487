package model

import (
	"time"
)

type MemberStatus string

const (
	MemberActive  MemberStatus = "Active"
	MemberBlocked MemberStatus = "Blocked"
)

type Member struct {
	ID       int          `json:"id" db:"id"`
	Email    string       `json:"email" db:"email"`
	FullName string       `json:"fullName" db:"full_name"`
	Status   MemberStatus `json:"status" db:"status"`
}

// Book carries the title metadata read by this service. AvailableCopies is
// derived from item statuses at read time, never stored.
type Book struct {
	ID              int    `json:"id" db:"id"`
	Title           string `json:"title" db:"title"`
	Author          string `json:"author" db:"author"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies"`
}

type ItemStatus string

const (
	ItemAvailable ItemStatus = "Available"
	ItemBorrowed  ItemStatus = "Borrowed"
	ItemReserved  ItemStatus = "Reserved"
	ItemLost      ItemStatus = "Lost"
	ItemDamaged   ItemStatus = "Damaged"
)

type BookItem struct {
	Barcode      string     `json:"barcode" db:"barcode"`
	BookID       int        `json:"bookId" db:"book_id"`
	Status       ItemStatus `json:"status" db:"status"`
	DateAcquired time.Time  `json:"dateAcquired" db:"date_acquired"`
}

type Condition string

const (
	ConditionGood    Condition = "Good"
	ConditionWorn    Condition = "Worn"
	ConditionDamaged Condition = "Damaged"
	ConditionLost    Condition = "Lost"
)

type Loan struct {
	ID                int        `json:"-" db:"id"`
	LoanUID           string     `json:"loanUid" db:"loan_uid"`
	Barcode           string     `json:"barcode" db:"barcode"`
	MemberID          int        `json:"memberId" db:"member_id"`
	IssueDate         time.Time  `json:"issueDate" db:"issue_date"`
	DueDate           time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate        *time.Time `json:"returnDate,omitempty" db:"return_date"`
	RenewalCount      int        `json:"renewalCount" db:"renewal_count"`
	ConditionOnReturn *Condition `json:"conditionOnReturn,omitempty" db:"condition_on_return"`
}

// Active reports whether the loan is still open.
func (l Loan) Active() bool {
	return l.ReturnDate == nil
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "Pending"
	ReservationFulfilled ReservationStatus = "Fulfilled"
	ReservationCollected ReservationStatus = "Collected"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationExpired   ReservationStatus = "Expired"
)

// Terminal reports whether the reservation no longer occupies a queue slot.
func (s ReservationStatus) Terminal() bool {
	switch s {
	case ReservationCollected, ReservationCancelled, ReservationExpired:
		return true
	}
	return false
}

type Reservation struct {
	ID              int               `json:"-" db:"id"`
	ReservationUID  string            `json:"reservationUid" db:"reservation_uid"`
	BookID          int               `json:"bookId" db:"book_id"`
	MemberID        int               `json:"memberId" db:"member_id"`
	Status          ReservationStatus `json:"status" db:"status"`
	ReservationDate time.Time         `json:"reservationDate" db:"reservation_date"`
	FulfilledAt     *time.Time        `json:"fulfilledAt,omitempty" db:"fulfilled_at"`

	// QueuePosition is the 1-indexed rank among Pending reservations for the
	// same title, computed at read time. Zero for non-Pending entries.
	QueuePosition int `json:"queuePosition" db:"queue_position"`
}

type FineReason string

const (
	FineOverdue FineReason = "Overdue"
	FineDamaged FineReason = "Damaged"
	FineLost    FineReason = "Lost"
)

type FineStatus string

const (
	FineUnpaid        FineStatus = "Unpaid"
	FinePartiallyPaid FineStatus = "PartiallyPaid"
	FinePaid          FineStatus = "Paid"
)

type Fine struct {
	ID         int        `json:"id" db:"id"`
	LoanID     int        `json:"-" db:"loan_id"`
	LoanUID    string     `json:"loanUid" db:"loan_uid"`
	MemberID   int        `json:"memberId" db:"member_id"`
	Amount     float64    `json:"amount" db:"amount"`
	AmountPaid float64    `json:"amountPaid" db:"amount_paid"`
	Reason     FineReason `json:"reason" db:"reason"`
	Status     FineStatus `json:"status" db:"status"`
}

// Outstanding is the unpaid remainder of the fine.
func (f Fine) Outstanding() float64 {
	return f.Amount - f.AmountPaid
}

type CirculationEvent struct {
	ID             int       `json:"id" db:"id"`
	Type           string    `json:"type" db:"type"`
	MemberID       int       `json:"memberId" db:"member_id"`
	BookID         int       `json:"bookId" db:"book_id"`
	Barcode        string    `json:"barcode" db:"barcode"`
	LoanUID        string    `json:"loanUid" db:"loan_uid"`
	ReservationUID string    `json:"reservationUid" db:"reservation_uid"`
	Amount         float64   `json:"amount" db:"amount"`
	OccurredAt     time.Time `json:"occurredAt" db:"occurred_at"`
}
