package values

type contextKey string

const (
	Success          = "success"
	Created          = "created"
	Error            = "error"
	SystemErr        = "system_error"
	BadRequestBody   = "bad_request_body"
	Unprocessable    = "unprocessable"
	Conflict         = "conflict"
	NotFound         = "not_found"
	NotAllowed       = "not_allowed"
	MethodNotAllowed = "method_not_allowed"
	PayloadTooLarge  = "payload_too_large"
	TooManyRequests  = "too_many_requests"
	NotAuthorised    = "not_authorised"
)

const (
	HeaderRequestSource = "X-Request-Source"
	HeaderRequestID     = "X-Request-ID"

	// DefaultRequestSource is assumed for browser requests that don't identify themselves.
	DefaultRequestSource = "web"
)

const ContextTracingKey contextKey = "tracing"
