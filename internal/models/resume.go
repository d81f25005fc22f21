package models

// ResumeDocument is the extracted text of one uploaded file.
type ResumeDocument struct {
	Filename        string `json:"filename"`
	Text            string `json:"text"`
	SourcePath      string `json:"source_path"`
	ExtractionError string `json:"extraction_error,omitempty"`
}

// ScoreResult is the scored outcome for one ResumeDocument. Score is always
// within [0, 10]; failed results carry Error and a zero score.
type ScoreResult struct {
	Filename    string  `json:"filename"`
	Score       float64 `json:"score"`
	Snippet     string  `json:"snippet"`
	FullContent string  `json:"full_content"`
	Feedback    string  `json:"ai_feedback,omitempty"`
	Error       string  `json:"error,omitempty"`
}

func (r ScoreResult) Failed() bool {
	return r.Error != ""
}
