package profanity

import (
	"embed"
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"sync"
)

var (
	// Global instance for reuse (thread-safe)
	defaultFilter *Filter
	once          sync.Once
)

//go:embed words.json
var jsonData embed.FS

func loadBannedWords() []string {
	data, err := jsonData.ReadFile("words.json")
	if err != nil {
		log.Fatalf("Failed to read embedded file: %s", err)
	}

	var bannedWords []string
	if err := json.Unmarshal(data, &bannedWords); err != nil {
		log.Fatalf("Failed to unmarshal JSON: %s", err)
	}
	return bannedWords
}

type Filter struct {
	regex *regexp.Regexp
}

func NewFilter() *Filter {
	once.Do(func() {
		defaultFilter = &Filter{
			regex: buildMasterRegex(),
		}
	})

	return defaultFilter
}

func buildMasterRegex() *regexp.Regexp {
	words := loadBannedWords()

	escaped := make([]string, 0, len(words))
	for _, w := range words {
		escaped = append(escaped, regexp.QuoteMeta(strings.ToLower(w)))
	}

	pattern := `(?i)\b(` + strings.Join(escaped, "|") + `)\b`
	return regexp.MustCompile(pattern)
}

func (f *Filter) Contains(text string) bool {
	return text != "" && f.regex.MatchString(text)
}

// Mask replaces each banned word with asterisks of the same length.
func (f *Filter) Mask(text string) string {
	if text == "" {
		return text
	}

	return f.regex.ReplaceAllStringFunc(text, func(match string) string {
		return strings.Repeat("*", len(match))
	})
}
