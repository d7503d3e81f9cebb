package trace

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// traceIDCtxKey 同时也是日志中的 attr key
const traceIDCtxKey = "trace_id"

type ctxKey struct{}

func GetCtxKey() string {
	return traceIDCtxKey
}

func GenerateTraceID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func Set(ctx context.Context, traceId string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceId)
}

func Get(ctx context.Context) string {
	tid, _ := ctx.Value(ctxKey{}).(string)
	return tid
}
