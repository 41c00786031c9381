package forward

import (
	"context"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"

	"github.com/crudkit-go/crudkit/val"
)

type useCaseMethod[T_Req any, T_Resp any] func(context.Context, T_Req) (T_Resp, error)

// ToUseCase adapts a use case method into a fiber handler. The request is
// decoded from the body, query string and path parameters in that order,
// validated, and the use case result is written back as JSON.
func ToUseCase[T_Req any, T_Resp any](uc useCaseMethod[T_Req, T_Resp]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := newRequest[T_Req]()
		if err != nil {
			return errx.Wrap(err)
		}

		if err := decodeRequest(c, req); err != nil {
			return errx.Wrap(err)
		}

		if err := val.ValidateSchema(req); err != nil {
			return errx.Wrap(err)
		}

		resp, err := uc(c.UserContext(), req)
		if err != nil {
			return errx.Wrap(err)
		}

		return errx.Wrap(c.JSON(resp))
	}
}
