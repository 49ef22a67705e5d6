package webapi

import (
	"github.com/bancamd/corebank/pkg/currency"
	"github.com/bancamd/corebank/pkg/provider"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GetRates lists the current base-currency rates.
func GetRates(rates *provider.Static) fiber.Handler {
	return func(c *fiber.Ctx) error {
		table, err := rates.Rates(c.Context())
		if err != nil {
			return ProblemJSON(c, fiber.StatusInternalServerError, "Rates unavailable", err)
		}
		out := make(map[string]float64, len(table))
		for code, rate := range table {
			f, _ := rate.Float64()
			out[string(code)] = f
		}
		return SuccessJSON(c, fiber.StatusOK, "Exchange rates (MDL)", out)
	}
}

// UpdateRate sets one currency's MDL rate. Back-office operation.
func UpdateRate(rates *provider.Static) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := currency.Code(c.Params("code"))
		if !currency.IsSupported(code) || code == currency.Base {
			return ProblemJSON(c, fiber.StatusUnprocessableEntity, "Unsupported currency", string(code))
		}
		input, err := BindAndValidate[UpdateRateRequest](c)
		if input == nil {
			return err
		}
		if err := rates.UpdateRate(code, decimal.NewFromFloat(input.Rate)); err != nil {
			return ProblemJSON(c, fiber.StatusBadRequest, "Rate update failed", err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Rate updated", nil)
	}
}
