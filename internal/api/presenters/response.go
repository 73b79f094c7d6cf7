package presenters

import (
	"errors"
	"net/url"
	"strconv"

	"foodgram/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	Response struct {
		Status  bool              `json:"status"`
		Message string            `json:"message"`
		Data    any               `json:"data,omitempty"`
		Error   string            `json:"error,omitempty"`
		Errors  map[string]string `json:"errors,omitempty"`
	}

	PageResponse[T any] struct {
		Count    int64   `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
)

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
		if domainErr, ok := domain.AsError(err); ok && domainErr.Field != "" {
			res.Errors = map[string]string{domainErr.Field: domainErr.Message}
		}
	}
	return c.Status(statusCode).JSON(res)
}

// ErrorFromDomain answers err with the status of its domain code. Errors
// without a domain code are server faults: they are logged and their text
// is not sent to the client.
func ErrorFromDomain(c *fiber.Ctx, message string, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw(message, "method", c.Method(), "path", c.Path(), "error", err)
		return ErrorResponse(c, status, message, errors.New(domain.MessageFailedProcessRequest))
	}
	return ErrorResponse(c, status, message, err)
}

func StatusFor(err error) int {
	domainErr, ok := domain.AsError(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch domainErr.Code {
	case domain.CodeValidation, domain.CodeDuplicateRelation, domain.CodeRelationNotFound, domain.CodeSelfReference:
		return fiber.StatusBadRequest
	case domain.CodeNotFound:
		return fiber.StatusNotFound
	case domain.CodePermissionDenied:
		return fiber.StatusForbidden
	case domain.CodeUnauthorized:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// Paginated renders page with absolute next and previous links that keep
// every other query parameter of the current request.
func Paginated[T any](c *fiber.Ctx, page domain.Page[T], message string) error {
	results := page.Results
	if results == nil {
		results = []T{}
	}
	res := PageResponse[T]{
		Count:   page.Count,
		Results: results,
	}
	if page.HasNext() {
		res.Next = pageURL(c, page.Page+1)
	}
	if page.HasPrevious() {
		res.Previous = pageURL(c, page.Page-1)
	}
	return SuccessResponse(c, res, fiber.StatusOK, message)
}

func pageURL(c *fiber.Ctx, page int) *string {
	u, err := url.Parse(c.BaseURL() + c.OriginalURL())
	if err != nil {
		return nil
	}
	q := u.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	link := u.String()
	return &link
}

// ErrorHandler is the fiber-level fallback for errors no handler rendered.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ErrorResponse(c, fiberErr.Code, fiberErr.Message, nil)
	}
	return ErrorFromDomain(c, domain.MessageFailedProcessRequest, err)
}
