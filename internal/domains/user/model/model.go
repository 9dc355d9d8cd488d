package model

import (
	"condotel/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID     = "id"
	FieldEmail  = "email"
	FieldRole   = "role"
	FieldActive = "active"
)

// User is the narrow slice of the account record this core depends on: the
// contact address for notifications, the role (upgraded when a host plan
// activates), the on-file refund destination, and the host's voucher
// auto-issuance policy.
type User struct {
	ID       int64  `db:"id" generated:"true"`
	Email    string `db:"email"`
	FullName string `db:"full_name"`
	Phone    string `db:"phone"`
	Role     string `db:"role"`
	Active   bool   `db:"active"`

	AutoIssueVouchers      bool `db:"auto_issue_vouchers"`
	VoucherDiscountPercent int  `db:"voucher_discount_percent"`
	VoucherValidDays       int  `db:"voucher_valid_days"`
	VoucherUsageLimit      int  `db:"voucher_usage_limit"`

	BankCode          string `db:"bank_code"`
	BankAccountNumber string `db:"bank_account_number"`
	BankAccountHolder string `db:"bank_account_holder"`

	model.Metadata
}
