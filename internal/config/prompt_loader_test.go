package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrompt(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPromptsFromFiles(t *testing.T) {
	dir := t.TempDir()
	system := writePrompt(t, dir, "system.rewrite.md", "  You rewrite resume bullets.\n")
	user := writePrompt(t, dir, "user.rewrite.md", "Rewrite for %s: %s")

	config := &Config{AI: AIConfig{
		CustomPrompts: PromptConfig{UserPrompts: UserPrompts{RecognizeText: "inline global ocr"}},
		Rewrite: OperationAIConfig{CustomPrompts: PromptConfig{
			SystemPrompts: SystemPrompts{RewriteBulletFile: system},
			UserPrompts:   UserPrompts{RewriteBulletFile: user},
		}},
	}}

	require.NoError(t, config.validatePromptFiles())
	require.NoError(t, config.loadPromptsFromFiles())

	rewrite := config.PromptsForOperation("rewrite")
	assert.Equal(t, "You rewrite resume bullets.", rewrite.SystemPrompts.RewriteBullet)
	assert.Equal(t, "Rewrite for %s: %s", rewrite.UserPrompts.RewriteBullet)

	ocr := config.PromptsForOperation("ocr")
	assert.Equal(t, "inline global ocr", ocr.UserPrompts.RecognizeText)
	assert.Empty(t, ocr.SystemPrompts.RewriteBullet, "rewrite files do not apply to ocr")

	assert.Equal(t, system, config.AI.Rewrite.CustomPrompts.SystemPrompts.RewriteBulletFile, "file paths are preserved")
}

func TestOperationPromptOverridesGlobal(t *testing.T) {
	dir := t.TempDir()
	global := writePrompt(t, dir, "global.md", "global system")
	op := writePrompt(t, dir, "ocr.md", "ocr system")

	config := &Config{AI: AIConfig{
		CustomPrompts: PromptConfig{SystemPrompts: SystemPrompts{RecognizeTextFile: global}},
		OCR:           OperationAIConfig{CustomPrompts: PromptConfig{SystemPrompts: SystemPrompts{RecognizeTextFile: op}}},
	}}
	require.NoError(t, config.loadPromptsFromFiles())

	assert.Equal(t, "ocr system", config.PromptsForOperation("ocr").SystemPrompts.RecognizeText)
	assert.Equal(t, "global system", config.PromptsForOperation("rewrite").SystemPrompts.RecognizeText)
	assert.Equal(t, "global system", config.PromptsForOperation("unknown").SystemPrompts.RecognizeText)
}

func TestValidatePromptFiles(t *testing.T) {
	dir := t.TempDir()
	valid := writePrompt(t, dir, "valid.md", "Valid content")

	t.Run("existing files pass", func(t *testing.T) {
		config := &Config{AI: AIConfig{CustomPrompts: PromptConfig{SystemPrompts: SystemPrompts{RewriteBulletFile: valid}}}}
		assert.NoError(t, config.validatePromptFiles())
	})

	t.Run("missing files are all reported", func(t *testing.T) {
		config := &Config{AI: AIConfig{
			CustomPrompts: PromptConfig{SystemPrompts: SystemPrompts{RewriteBulletFile: filepath.Join(dir, "a.md")}},
			OCR:           OperationAIConfig{CustomPrompts: PromptConfig{UserPrompts: UserPrompts{RecognizeTextFile: filepath.Join(dir, "b.md")}}},
		}}
		err := config.validatePromptFiles()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a.md")
		assert.Contains(t, err.Error(), "b.md")
	})

	t.Run("no files configured", func(t *testing.T) {
		assert.NoError(t, (&Config{}).validatePromptFiles())
	})
}

func TestLoadPromptFromFileRejectsEmpty(t *testing.T) {
	empty := writePrompt(t, t.TempDir(), "empty.md", "   \n\t\n")

	_, err := loadPromptFromFile(empty, "system", "rewriteBullet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")

	_, err = loadPromptFromFile(filepath.Join(t.TempDir(), "missing.md"), "user", "recognizeText")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
