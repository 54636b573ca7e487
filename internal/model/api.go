package model

type IssueLoanRequest struct {
	MemberID int    `json:"memberId" validate:"required,gt=0"`
	Barcode  string `json:"barcode" validate:"required"`
	Days     int    `json:"days" validate:"omitempty,gt=0"`
}

type ReturnItemRequest struct {
	Barcode   string    `json:"barcode" validate:"required"`
	Condition Condition `json:"condition" validate:"required,oneof=Good Worn Damaged"`
}

// ReturnResult describes the outcome of a return: the closed loan, any
// fines assessed by it, and whether the item was earmarked for the next
// member in the reservation queue.
type ReturnResult struct {
	Loan          Loan   `json:"loan"`
	Fines         []Fine `json:"fines,omitempty"`
	HeldForMember *int   `json:"heldForMemberId,omitempty"`
}

type CreateReservationRequest struct {
	BookID   int `json:"bookId" validate:"required,gt=0"`
	MemberID int `json:"memberId" validate:"required,gt=0"`
}

type MarkLostRequest struct {
	ReplacementFee float64 `json:"replacementFee" validate:"required,gt=0"`
}

type PayFineRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type AddItemRequest struct {
	Barcode string `json:"barcode" validate:"required"`
}

type DeclareItemStatusRequest struct {
	Status ItemStatus `json:"status" validate:"required,oneof=Available Lost Damaged"`
}

type MemberStatusUpdateRequest struct {
	Status MemberStatus `json:"status" validate:"required,oneof=Active Blocked"`
}

type LoanHistory struct {
	ActiveLoans []Loan `json:"activeLoans"`
	PastLoans   []Loan `json:"pastLoans"`
}

type ItemDetails struct {
	Item            BookItem     `json:"item"`
	ActiveLoan      *Loan        `json:"activeLoan,omitempty"`
	HeldFor         *Reservation `json:"heldFor,omitempty"`
	AvailableCopies int          `json:"availableCopies"`
}

type OverdueReportItem struct {
	LoanUID     string `json:"loanUid" db:"loan_uid"`
	Barcode     string `json:"barcode" db:"barcode"`
	MemberID    int    `json:"memberId" db:"member_id"`
	DueDate     string `json:"dueDate" db:"due_date"`
	DaysOverdue int    `json:"daysOverdue" db:"days_overdue"`
}

// SweepSummary reports what one pass of the background sweep changed.
type SweepSummary struct {
	FinesAccrued int `json:"finesAccrued"`
	HoldsExpired int `json:"holdsExpired"`
}

type DashboardStats struct {
	TotalMembers        int     `json:"totalMembers" db:"total_members"`
	TotalTitles         int     `json:"totalTitles" db:"total_titles"`
	TotalItems          int     `json:"totalItems" db:"total_items"`
	AvailableItems      int     `json:"availableItems" db:"available_items"`
	BorrowedItems       int     `json:"borrowedItems" db:"borrowed_items"`
	ReservedItems       int     `json:"reservedItems" db:"reserved_items"`
	ActiveLoans         int     `json:"activeLoans" db:"active_loans"`
	PendingReservations int     `json:"pendingReservations" db:"pending_reservations"`
	OutstandingFines    float64 `json:"outstandingFines" db:"outstanding_fines"`
}
