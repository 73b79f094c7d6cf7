package domain

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedTokenInvalid   = "invalid or missing token"

	ErrTokenNotFound = NewError(CodeUnauthorized, "", "authentication credentials were not provided")
	ErrTokenInvalid  = NewError(CodeUnauthorized, "", "token is invalid")
	ErrTokenExpired  = NewError(CodeUnauthorized, "", "token has expired")
	ErrNotAuthor     = NewPermissionDeniedError("only the author can modify this recipe")
)

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

type (
	Pagination struct {
		Page  int
		Limit int
	}

	Page[T any] struct {
		Count   int64
		Page    int
		Limit   int
		Results []T
	}
)

// Normalize clamps page and limit into their valid ranges.
func (p Pagination) Normalize(defaultLimit int) Pagination {
	if defaultLimit < 1 {
		defaultLimit = DefaultPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

func (p Page[T]) HasNext() bool {
	return int64(p.Page*p.Limit) < p.Count
}

func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}
