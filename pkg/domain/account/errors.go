package account

import "errors"

// Construction-time validation errors. Build aborts entirely when one of
// these is returned; no partially-built account exists.
var (
	// ErrInvalidAccountNumber is returned when an account number is not exactly 16 digits.
	ErrInvalidAccountNumber = errors.New("account number must be exactly 16 digits")

	// ErrWeakPassword is returned when a password is shorter than 6 characters
	// or does not contain both letters and digits.
	ErrWeakPassword = errors.New("password must be at least 6 characters and contain letters and digits")

	// ErrInvalidOwnerName is returned when an owner name is shorter than 2 characters.
	ErrInvalidOwnerName = errors.New("owner name must be at least 2 characters")

	// ErrNegativeInitialBalance is returned when an account is created with a negative balance.
	ErrNegativeInitialBalance = errors.New("initial balance cannot be negative")
)

// Operational rejections. These are advisory: the account is left
// completely unmutated and callers must check the result before assuming
// funds moved.
var (
	// ErrAccountInactive is returned when a money-moving operation hits a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrUnsupportedCurrency is returned when the account holds no balance in the given currency.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrAmountNotPositive is returned when an operation amount is zero or negative.
	ErrAmountNotPositive = errors.New("amount must be positive")

	// ErrBelowMinimumDeposit is returned when a deposit is under the minimum threshold.
	ErrBelowMinimumDeposit = errors.New("deposit below minimum amount")

	// ErrInsufficientFunds is returned when a balance cannot cover a withdrawal or exchange.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDailyLimitExceeded is returned when a withdrawal would push the day's
	// base-currency total over the daily limit.
	ErrDailyLimitExceeded = errors.New("daily withdrawal limit exceeded")

	// ErrSameAccountTransfer is returned when source and target of a transfer are the same account.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

	// ErrNilAccount is returned when a transfer is given a nil account.
	ErrNilAccount = errors.New("nil account")

	// ErrWrongPassword is returned when the old password does not verify on a password change.
	ErrWrongPassword = errors.New("wrong password")

	// ErrDailyLimitTooLow is returned when setting a daily limit under the minimum.
	ErrDailyLimitTooLow = errors.New("daily limit below minimum")
)

// ErrCompensationFailed is returned when the deposit leg of a transfer
// failed and the compensating re-deposit onto the source failed too: money
// has been debited from the source and credited nowhere. This is the known
// weakness of the best-effort transfer design and is logged distinctly.
var ErrCompensationFailed = errors.New("transfer compensation failed: funds debited but not credited")
