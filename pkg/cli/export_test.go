package cli

import (
	"io"

	"github.com/m-mizutani/devpost/pkg/domain/interfaces"
)

var (
	ParseRemoteOwnerForTest = parseRemoteOwner
	RunGenerateForTest      = runGenerate
)

func OpenOutputForTest(format, path string, noColor bool) (interfaces.ContentSink, io.Closer, error) {
	out := &output{format: format, path: path, noColor: noColor}
	return out.open()
}
