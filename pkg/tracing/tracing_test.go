package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel"
)

func TestExtractTraceIDEmptyContext(t *testing.T) {
	// 没有Span的Context应该返回空字符串，而不是panic
	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))
}

func TestStartSpanBuildsHierarchy(t *testing.T) {
	// 使用本地TracerProvider，不需要真实的Collector
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, root := StartSpan(context.Background(), "bookhub-test", "RootOp")
	defer root.End()

	rootTraceID := ExtractTraceID(ctx)
	assert.NotEmpty(t, rootTraceID)

	childCtx, child := StartSpan(ctx, "bookhub-test", "ChildOp")
	defer child.End()

	// 子Span与根Span共享TraceID，但SpanID不同
	assert.Equal(t, rootTraceID, ExtractTraceID(childCtx))
	assert.NotEqual(t, ExtractSpanID(ctx), ExtractSpanID(childCtx))
}
