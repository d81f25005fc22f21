package models

import "encoding/json"

type EventType string

const (
	EventProgress EventType = "progress"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// Stage is the state of a batch as it moves through the pipeline.
type Stage string

const (
	StageReceived         Stage = "received"
	StageExtracting       Stage = "extraction"
	StageScoring          Stage = "ai_analysis"
	StageReportGenerating Stage = "report_generation"
	StageComplete         Stage = "complete"
	StageFailed           Stage = "failed"
)

// ProgressEvent is one status update pushed to the client while a batch runs.
type ProgressEvent struct {
	Type        EventType
	Processed   int
	Total       int
	CurrentFile string
	Stage       Stage
	RedirectURL string
	Message     string
}

func NewProgressEvent(processed, total int, currentFile string, stage Stage) ProgressEvent {
	return ProgressEvent{
		Type:        EventProgress,
		Processed:   processed,
		Total:       total,
		CurrentFile: currentFile,
		Stage:       stage,
	}
}

func NewCompleteEvent(redirectURL string) ProgressEvent {
	return ProgressEvent{Type: EventComplete, RedirectURL: redirectURL}
}

func NewErrorEvent(message string) ProgressEvent {
	return ProgressEvent{Type: EventError, Message: message}
}

// MarshalJSON emits only the fields that belong to the event type.
func (e ProgressEvent) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventProgress:
		return json.Marshal(struct {
			Type        EventType `json:"type"`
			Processed   int       `json:"processed"`
			Total       int       `json:"total"`
			CurrentFile string    `json:"current_file"`
			Stage       Stage     `json:"stage"`
		}{e.Type, e.Processed, e.Total, e.CurrentFile, e.Stage})
	case EventComplete:
		return json.Marshal(struct {
			Type        EventType `json:"type"`
			RedirectURL string    `json:"redirect_url"`
		}{e.Type, e.RedirectURL})
	default:
		return json.Marshal(struct {
			Type    EventType `json:"type"`
			Message string    `json:"message"`
		}{EventError, e.Message})
	}
}
