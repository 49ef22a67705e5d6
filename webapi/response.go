package webapi

import (
	"errors"

	"github.com/bancamd/corebank/pkg/domain/account"
	"github.com/bancamd/corebank/pkg/exchange"
	"github.com/bancamd/corebank/pkg/money"
	"github.com/bancamd/corebank/pkg/repository"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Response is the standard success envelope.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessJSON writes a success envelope.
func SuccessJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ProblemJSON writes an RFC 9457 problem response.
func ProblemJSON(c *fiber.Ctx, status int, title string, detail any) error {
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Instance: c.OriginalURL(),
	}
	switch d := detail.(type) {
	case nil:
	case string:
		pd.Detail = d
	case error:
		pd.Detail = d.Error()
	default:
		pd.Errors = d
	}
	return c.Status(status).JSON(pd, "application/problem+json")
}

// DomainErrorJSON maps a ledger error to a problem response with the
// matching HTTP status.
func DomainErrorJSON(c *fiber.Ctx, title string, err error) error {
	return ProblemJSON(c, errorToStatus(err), title, err)
}

func errorToStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, repository.ErrAccountExists):
		return fiber.StatusConflict
	case errors.Is(err, account.ErrWrongPassword):
		return fiber.StatusUnauthorized
	case errors.Is(err, account.ErrInvalidAccountNumber),
		errors.Is(err, account.ErrWeakPassword),
		errors.Is(err, account.ErrInvalidOwnerName),
		errors.Is(err, account.ErrNegativeInitialBalance),
		errors.Is(err, account.ErrAmountNotPositive),
		errors.Is(err, account.ErrDailyLimitTooLow),
		errors.Is(err, money.ErrInvalidCurrencyCode),
		errors.Is(err, money.ErrInvalidAmount):
		return fiber.StatusBadRequest
	case errors.Is(err, account.ErrAccountInactive),
		errors.Is(err, account.ErrUnsupportedCurrency),
		errors.Is(err, account.ErrBelowMinimumDeposit),
		errors.Is(err, account.ErrInsufficientFunds),
		errors.Is(err, account.ErrDailyLimitExceeded),
		errors.Is(err, account.ErrSameAccountTransfer),
		errors.Is(err, exchange.ErrSameCurrency),
		errors.Is(err, exchange.ErrNonPositiveAmount),
		errors.Is(err, exchange.ErrRateNotFound):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body into T and validates it. On
// failure it writes the problem response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemJSON(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := validate.Struct(&input); err != nil {
		return nil, ProblemJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
