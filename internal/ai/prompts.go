package ai

import (
	"fmt"

	"resuscan/internal/config"
)

// Operation names, shared with config and metrics.
const (
	OperationRewrite = "rewrite"
	OperationOCR     = "ocr"
)

// SystemPrompts contains the system-level instructions per operation
type SystemPrompts struct {
	RewriteBullet string
	RecognizeText string
}

// UserPrompts contains user prompt templates per operation. The rewrite
// template takes the role as %[1]s and the bullet as %[2]s.
type UserPrompts struct {
	RewriteBullet string
	RecognizeText string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	RewriteBullet: `You are an experienced technical recruiter and resume writer.
You rewrite single resume bullet points so they read well to both applicant tracking systems and hiring managers.
Never invent employers, tools or numbers that the original bullet does not support; when a metric is missing, describe the impact instead.`,

	RecognizeText: `You are a document transcription engine.
You read scanned or photographed resumes and return their text exactly as written, in reading order.`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	RewriteBullet: `Improve this bullet point for a %[1]s resume.

Original: %[2]s

Write ONLY the improved bullet point. Do not include:
- Explanations
- Numbered lists
- Markdown formatting
- "Improved version" text
- Multiple bullet points

The improved bullet point should:
- Start with a strong action verb
- Include quantifiable metrics if possible
- Show impact and results
- Use relevant keywords for %[1]s
- Be 1-2 sentences maximum

Return only the single improved bullet point text.`,

	RecognizeText: `Transcribe all of the text in this resume image.

Keep the original line breaks and section order. Put each bullet point on its own line starting with "• ".
Return plain text only: no commentary, no markdown and no code fences.`,
}

// resolvePrompt picks the first non-empty prompt: file content, inline
// config, then the built-in default.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}

// promptSet resolves the prompts of one operation against its config.
type promptSet struct {
	loaded config.LoadedPrompts
	custom config.PromptConfig
}

func (p promptSet) rewrite(bullet, role string) (string, string) {
	system := resolvePrompt(p.loaded.SystemPrompts.RewriteBullet,
		p.custom.SystemPrompts.RewriteBullet, DefaultSystemPrompts.RewriteBullet)
	user := resolvePrompt(p.loaded.UserPrompts.RewriteBullet,
		p.custom.UserPrompts.RewriteBullet, DefaultUserPrompts.RewriteBullet)
	return system, fmt.Sprintf(user, role, bullet)
}

func (p promptSet) recognize() (string, string) {
	system := resolvePrompt(p.loaded.SystemPrompts.RecognizeText,
		p.custom.SystemPrompts.RecognizeText, DefaultSystemPrompts.RecognizeText)
	user := resolvePrompt(p.loaded.UserPrompts.RecognizeText,
		p.custom.UserPrompts.RecognizeText, DefaultUserPrompts.RecognizeText)
	return system, user
}
