package types

import "github.com/m-mizutani/goerr/v2"

// Stage identifies the pipeline step an error originated from.
type Stage string

const (
	StageSource     Stage = "source"
	StageResolve    Stage = "resolve"
	StageDiscussion Stage = "discussion"
	StageAssemble   Stage = "assemble"
	StageGenerate   Stage = "generate"
	StagePublish    Stage = "publish"
	StageUnknown    Stage = "unknown"
)

var (
	tagSource     = goerr.NewTag("stage_source")
	tagResolve    = goerr.NewTag("stage_resolve")
	tagDiscussion = goerr.NewTag("stage_discussion")
	tagAssemble   = goerr.NewTag("stage_assemble")
	tagGenerate   = goerr.NewTag("stage_generate")
	tagPublish    = goerr.NewTag("stage_publish")
)

// Tag returns goerr option to mark an error with the stage
func (x Stage) Tag() goerr.Option {
	switch x {
	case StageSource:
		return goerr.T(tagSource)
	case StageResolve:
		return goerr.T(tagResolve)
	case StageDiscussion:
		return goerr.T(tagDiscussion)
	case StageAssemble:
		return goerr.T(tagAssemble)
	case StageGenerate:
		return goerr.T(tagGenerate)
	case StagePublish:
		return goerr.T(tagPublish)
	default:
		return goerr.V("stage", string(x))
	}
}

// StageOf returns the stage an error is tagged with. When several tags are present, the earliest stage in the pipeline order is reported. StageUnknown is returned for untagged errors.
func StageOf(err error) Stage {
	switch {
	case err == nil:
		return StageUnknown
	case goerr.HasTag(err, tagSource):
		return StageSource
	case goerr.HasTag(err, tagResolve):
		return StageResolve
	case goerr.HasTag(err, tagDiscussion):
		return StageDiscussion
	case goerr.HasTag(err, tagAssemble):
		return StageAssemble
	case goerr.HasTag(err, tagGenerate):
		return StageGenerate
	case goerr.HasTag(err, tagPublish):
		return StagePublish
	default:
		return StageUnknown
	}
}
