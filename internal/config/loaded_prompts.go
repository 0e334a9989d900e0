package config

// LoadedPrompts holds prompt content read from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	RewriteBullet string
	RecognizeText string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	RewriteBullet string
	RecognizeText string
}

// AllLoadedPrompts holds loaded prompts for every operation
type AllLoadedPrompts struct {
	Global  LoadedPrompts
	Rewrite LoadedPrompts
	OCR     LoadedPrompts
}

// PromptsForOperation returns the loaded prompts for "rewrite" or "ocr".
// Operation content wins over global content field by field.
func (c *Config) PromptsForOperation(operation string) LoadedPrompts {
	global := c.prompts.Global
	var op LoadedPrompts
	switch operation {
	case "rewrite":
		op = c.prompts.Rewrite
	case "ocr":
		op = c.prompts.OCR
	default:
		return global
	}

	return LoadedPrompts{
		SystemPrompts: LoadedSystemPrompts{
			RewriteBullet: firstNonEmpty(op.SystemPrompts.RewriteBullet, global.SystemPrompts.RewriteBullet),
			RecognizeText: firstNonEmpty(op.SystemPrompts.RecognizeText, global.SystemPrompts.RecognizeText),
		},
		UserPrompts: LoadedUserPrompts{
			RewriteBullet: firstNonEmpty(op.UserPrompts.RewriteBullet, global.UserPrompts.RewriteBullet),
			RecognizeText: firstNonEmpty(op.UserPrompts.RecognizeText, global.UserPrompts.RecognizeText),
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
