package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestFrom(t *testing.T) {
	t.Run("get logger from context with logger", func(t *testing.T) {
		logger := slog.Default()
		ctx := logging.With(context.Background(), logger)
		gt.V(t, logging.From(ctx)).Equal(logger)
	})

	t.Run("get default logger from context without logger", func(t *testing.T) {
		retrieved := logging.From(context.Background())
		gt.V(t, retrieved.Handler()).Equal(logging.Default().Handler())
	})
}

func TestWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))
	ctx = logging.WithAttrs(ctx, "run_id", "abc")

	logging.From(ctx).Info("hello")
	gt.True(t, strings.Contains(buf.String(), `"run_id":"abc"`))
}

func TestCtxRequestID(t *testing.T) {
	t.Run("get new request ID from context", func(t *testing.T) {
		reqID, newCtx := logging.CtxRequestID(context.Background())
		gt.V(t, reqID).NotEqual("")

		retrievedID, _ := logging.CtxRequestID(newCtx)
		gt.V(t, retrievedID).Equal(reqID)
	})
}

func TestCtxWithTime(t *testing.T) {
	t.Run("current time without time function", func(t *testing.T) {
		gt.False(t, logging.CtxTime(context.Background()).IsZero())
	})

	t.Run("set and get custom time from context", func(t *testing.T) {
		ctx := logging.CtxWithTime(context.Background(), func() time.Time {
			return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		})
		gt.V(t, logging.CtxTime(ctx).Year()).Equal(2024)
	})
}
