package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// promptFile names one configurable prompt file and where its content goes
type promptFile struct {
	path   string
	kind   string // "system" or "user"
	name   string
	target *string
}

func (c *Config) promptFiles() []promptFile {
	g, r, o := &c.AI.CustomPrompts, &c.AI.Rewrite.CustomPrompts, &c.AI.OCR.CustomPrompts
	return []promptFile{
		{g.SystemPrompts.RewriteBulletFile, "system", "rewriteBullet", &c.prompts.Global.SystemPrompts.RewriteBullet},
		{g.SystemPrompts.RecognizeTextFile, "system", "recognizeText", &c.prompts.Global.SystemPrompts.RecognizeText},
		{g.UserPrompts.RewriteBulletFile, "user", "rewriteBullet", &c.prompts.Global.UserPrompts.RewriteBullet},
		{g.UserPrompts.RecognizeTextFile, "user", "recognizeText", &c.prompts.Global.UserPrompts.RecognizeText},
		{r.SystemPrompts.RewriteBulletFile, "rewrite system", "rewriteBullet", &c.prompts.Rewrite.SystemPrompts.RewriteBullet},
		{r.UserPrompts.RewriteBulletFile, "rewrite user", "rewriteBullet", &c.prompts.Rewrite.UserPrompts.RewriteBullet},
		{o.SystemPrompts.RecognizeTextFile, "ocr system", "recognizeText", &c.prompts.OCR.SystemPrompts.RecognizeText},
		{o.UserPrompts.RecognizeTextFile, "ocr user", "recognizeText", &c.prompts.OCR.UserPrompts.RecognizeText},
	}
}

// loadPromptsFromFiles loads custom prompts from external files if file
// paths are specified. Inline prompts are copied first so a file overrides
// them.
func (c *Config) loadPromptsFromFiles() error {
	c.prompts = AllLoadedPrompts{
		Global: inlinePrompts(c.AI.CustomPrompts),
		Rewrite: LoadedPrompts{
			SystemPrompts: LoadedSystemPrompts{RewriteBullet: c.AI.Rewrite.CustomPrompts.SystemPrompts.RewriteBullet},
			UserPrompts:   LoadedUserPrompts{RewriteBullet: c.AI.Rewrite.CustomPrompts.UserPrompts.RewriteBullet},
		},
		OCR: LoadedPrompts{
			SystemPrompts: LoadedSystemPrompts{RecognizeText: c.AI.OCR.CustomPrompts.SystemPrompts.RecognizeText},
			UserPrompts:   LoadedUserPrompts{RecognizeText: c.AI.OCR.CustomPrompts.UserPrompts.RecognizeText},
		},
	}

	loaded := 0
	for _, pf := range c.promptFiles() {
		if pf.path == "" {
			continue
		}
		content, err := loadPromptFromFile(pf.path, pf.kind, pf.name)
		if err != nil {
			return err
		}
		*pf.target = content
		loaded++
	}

	if loaded > 0 {
		log.Printf("[CONFIG] Total custom prompts loaded from files: %d", loaded)
	}
	return nil
}

func inlinePrompts(p PromptConfig) LoadedPrompts {
	return LoadedPrompts{
		SystemPrompts: LoadedSystemPrompts{
			RewriteBullet: p.SystemPrompts.RewriteBullet,
			RecognizeText: p.SystemPrompts.RecognizeText,
		},
		UserPrompts: LoadedUserPrompts{
			RewriteBullet: p.UserPrompts.RewriteBullet,
			RecognizeText: p.UserPrompts.RecognizeText,
		},
	}
}

// loadPromptFromFile reads a prompt file and rejects empty content
func loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
		}
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}
	return trimmed, nil
}

// validatePromptFiles checks every configured prompt file exists before any is loaded
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, pf := range c.promptFiles() {
		if pf.path == "" {
			continue
		}
		absPath, err := filepath.Abs(pf.path)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", pf.kind, pf.name, pf.path))
			continue
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", pf.kind, pf.name, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}
	return nil
}
