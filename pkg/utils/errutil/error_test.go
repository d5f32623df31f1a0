package errutil_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/devpost/pkg/domain/types"
	"github.com/m-mizutani/devpost/pkg/utils/errutil"
	"github.com/m-mizutani/devpost/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandleError(t *testing.T) {
	t.Run("log error with its stage", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		err := goerr.Wrap(types.ErrRateLimited, "failed to list repositories",
			types.StageSource.Tag(),
			goerr.V("user", "alice"),
		)
		errutil.HandleError(ctx, "run failed", err)

		gt.True(t, strings.Contains(buf.String(), `"stage":"source"`))
		gt.True(t, strings.Contains(buf.String(), "run failed"))
	})

	t.Run("handle nil error", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := logging.With(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

		errutil.HandleError(ctx, "test message", nil)
		gt.V(t, buf.Len()).Equal(0)
	})
}
