package sink

import (
	"context"
	"encoding/json"
	"io"

	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
	"github.com/m-mizutani/devpost/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// JSON writes the run report as one JSON document
type JSON struct {
	w      io.Writer
	indent bool
}

var _ interfaces.ContentSink = (*JSON)(nil)

func NewJSON(w io.Writer, indent bool) *JSON {
	return &JSON{w: w, indent: indent}
}

func (x *JSON) Publish(ctx context.Context, result *model.RunResult) error {
	enc := json.NewEncoder(x.w)
	if x.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(model.NewRunReport(result, nil)); err != nil {
		return goerr.Wrap(err, "failed to encode run report")
	}
	return nil
}
