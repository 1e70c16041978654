package telemetry_test

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sitecache/internal/adapters/telemetry"
	"go.trai.ch/sitecache/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func bridgedProvider(t *testing.T, bridge *telemetry.Bridge) *sdktrace.TracerProvider {
	t.Helper()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp
}

func hasPrefix(prefix string) gomock.Matcher {
	return gomock.Cond(func(msg string) bool { return strings.HasPrefix(msg, prefix) })
}

func TestBridge_LogsRootCompletion(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	tp := bridgedProvider(t, telemetry.NewBridge(logger))

	logger.EXPECT().Info(hasPrefix("sitecache.build finished in ")).Times(1)

	ctx, root := tp.Tracer("test").Start(context.Background(), "sitecache.build")
	_, child := tp.Tracer("test").Start(ctx, "loader.source")
	child.End()
	root.End()
}

func TestBridge_LogsRootFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	tp := bridgedProvider(t, telemetry.NewBridge(logger))

	logger.EXPECT().Warn(hasPrefix("sitecache.build failed after ")).Times(1)

	ctx, root := tp.Tracer("test").Start(context.Background(), "sitecache.build")
	_, child := tp.Tracer("test").Start(ctx, "loader.source")
	child.SetStatus(codes.Error, "unreadable")
	child.End()
	root.SetStatus(codes.Error, "build failed")
	root.End()
}

func TestBridge_NilLogger(_ *testing.T) {
	bridge := telemetry.NewBridge(nil)
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(bridge))

	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	span.End()
	_ = tp.Shutdown(context.Background())
}

func TestBridge_FlushAndShutdown(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	if err := bridge.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush() should not return error, got: %v", err)
	}
	if err := bridge.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() should not return error, got: %v", err)
	}
}
