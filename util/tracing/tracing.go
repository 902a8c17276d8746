package tracing

import (
	"context"

	"github.com/rfwilliams11/pool-table-finder/util/values"
)

// Context identifies a single inbound request across log lines.
type Context struct {
	RequestID     string
	RequestSource string
}

func (c Context) String() string {
	return c.RequestSource + "/" + c.RequestID
}

// FromContext returns the tracing context stored by RequestTracing.
// The zero value is returned when the middleware did not run.
func FromContext(ctx context.Context) Context {
	tc, _ := ctx.Value(values.ContextTracingKey).(Context)
	return tc
}

func WithContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, values.ContextTracingKey, tc)
}
