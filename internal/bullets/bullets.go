// Package bullets finds achievement bullets in resume text, cleans up
// generated rewrites and improves bullets in parallel through a Rewriter.
package bullets

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxBullets caps how many bullets Extract returns.
const MaxBullets = 10

var numberedLine = regexp.MustCompile(`^\d+\.`)

// Extract returns up to MaxBullets bullet lines. Glyph bullets (•, -, *)
// lose their marker; numbered lines are kept whole.
func Extract(text string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "•"), strings.HasPrefix(line, "-"), strings.HasPrefix(line, "*"):
			_, size := utf8.DecodeRuneInString(line)
			out = append(out, strings.TrimSpace(line[size:]))
		case numberedLine.MatchString(line):
			out = append(out, line)
		}
		if len(out) == MaxBullets {
			break
		}
	}
	return out
}

var rejectedPrefixes = []string{
	"•", "-", "1.", "2.", "3.", "4.", "5.",
	"This improved", "Here's an improved", "Starts with", "Includes", "Shows",
	"Uses", "Be concise", "Return only", "Programming Languages", "**", "*",
}

const minLineLength = 10

// Clean strips markdown, list markers and explanatory chatter from a
// generated rewrite, leaving only substantial lines.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer("**", "", "*", "", "•", "", "-", "").Replace(s)

	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = strings.TrimSpace(s[i+1:])
	}
	if strings.HasPrefix(s, "Improved") {
		s = strings.ReplaceAll(s, "Improved Version:", "")
		s = strings.TrimSpace(strings.ReplaceAll(s, "Improved version:", ""))
	}

	kept := make([]string, 0)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minLineLength || hasRejectedPrefix(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func hasRejectedPrefix(line string) bool {
	for _, p := range rejectedPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
