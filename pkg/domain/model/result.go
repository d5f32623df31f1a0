package model

type RunStatus string

const (
	RunStatusGenerated  RunStatus = "generated"
	RunStatusPartial    RunStatus = "partial"
	RunStatusNoActivity RunStatus = "no_activity"
)

// RunResult is the terminal state of one GeneratePosts run
type RunResult struct {
	Status   RunStatus
	User     string
	Activity *ResolvedActivity
	Insight  *ReviewInsight
	Context  *GenerationContext
	Content  *GeneratedContent
}
