package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeScoringPrompt embeds the job description and resume text verbatim.
func (pb *PromptBuilder) BuildResumeScoringPrompt(jobDescription, resumeText string) string {
	return fmt.Sprintf(`You are a smart recruiter assistant.

Given this job description:
"""%s"""

Evaluate the following resume:
"""%s"""

How well does it match the job description? Give a score out of 10 and explain briefly.`,
		jobDescription, resumeText)
}
