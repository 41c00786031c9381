package forward

import (
	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

// decodeRequest fills req from the JSON body, the query string and the path
// parameters, in that order.
func decodeRequest[T_Req any](c *fiber.Ctx, req T_Req) error {
	if err := decodeBody(c, req); err != nil {
		return err
	}
	if err := decodeQuery(c, req); err != nil {
		return err
	}
	return decodePath(c, req)
}

func decodeBody[T_Req any](c *fiber.Ctx, req T_Req) error {
	if !isJSONMethod(c.Method()) || len(c.Body()) == 0 {
		return nil
	}

	if c.Get(fiber.HeaderContentType) != fiber.MIMEApplicationJSON {
		return errx.New(
			"only application/json content type is supported for POST, PUT, PATCH methods when using ToUseCase forwarder",
			errx.WithType(errx.T_Validation),
			errx.WithCode(codeInvalidContentType),
		)
	}

	return asDecodeError(c.BodyParser(req), codeInvalidJSONBody)
}

func decodeQuery[T_Req any](c *fiber.Ctx, req T_Req) error {
	if len(c.Queries()) == 0 {
		return nil
	}
	return asDecodeError(c.QueryParser(req), codeInvalidQueryParams)
}

func decodePath[T_Req any](c *fiber.Ctx, req T_Req) error {
	if len(c.Route().Params) == 0 {
		return nil
	}
	return asDecodeError(c.ParamsParser(req), codeInvalidPathParams)
}

func asDecodeError(err error, code string) error {
	if err == nil {
		return nil
	}
	return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(code))
}
