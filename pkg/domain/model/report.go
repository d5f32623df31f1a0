package model

import "time"

// RunReport is the JSON view of a RunResult shared by the HTTP API and the JSON sink
type RunReport struct {
	Status   RunStatus         `json:"status"`
	User     string            `json:"user"`
	Activity *ActivityReport   `json:"activity,omitempty"`
	Insight  *InsightReport    `json:"insight,omitempty"`
	Content  *GeneratedContent `json:"content,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type ActivityReport struct {
	Kind       ActivityKind `json:"kind"`
	Repository string       `json:"repository,omitempty"`
	Title      string       `json:"title,omitempty"`
	Reference  string       `json:"reference,omitempty"`
	URL        string       `json:"url,omitempty"`
	At         *time.Time   `json:"at,omitempty"`
	Scanned    int          `json:"scanned"`
}

type InsightReport struct {
	Source        string   `json:"source,omitempty"`
	Highlights    []string `json:"highlights"`
	TotalInsights int      `json:"total_insights"`
}

// NewRunReport builds the report. err is the non fatal error of a partial run, if any.
func NewRunReport(result *RunResult, err error) *RunReport {
	report := &RunReport{
		Status:  result.Status,
		User:    result.User,
		Content: result.Content,
	}
	if err != nil {
		report.Error = err.Error()
	}

	if a := result.Activity; a != nil {
		report.Activity = &ActivityReport{
			Kind:    a.Kind,
			Scanned: len(a.Scanned),
		}
		if a.Repository != nil {
			report.Activity.Repository = a.Repository.FullName()
		}
		if at := a.Timestamp(); !at.IsZero() {
			report.Activity.At = &at
		}
	}

	if gc := result.Context; gc != nil {
		if report.Activity != nil {
			report.Activity.Title = gc.Subject.Title
			report.Activity.Reference = gc.Subject.Reference
			report.Activity.URL = gc.Subject.URL
		}
		if gc.HasInsight() {
			report.Insight = &InsightReport{
				Source:        gc.InsightSource,
				Highlights:    gc.Highlights,
				TotalInsights: gc.TotalInsights,
			}
		}
	}

	return report
}
