package handler

import (
	"strconv"

	"github.com/fadilmartias/bgv-backend/internal/util"
	"github.com/gofiber/fiber/v2"
)

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, util.ErrInvalidRequestID
	}
	return uint(id), nil
}

// bindBody parses and validates the JSON body into req.
func bindBody(c *fiber.Ctx, v *util.Validator, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return v.Validate(req)
}

func bindQuery(c *fiber.Ctx, v *util.Validator, req any) error {
	if err := c.QueryParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}
	return v.Validate(req)
}
