// Package prompts holds the advisory prompt templates. They live in a JSON
// file embedded at compile time so prompt wording can be reviewed and edited
// without touching Go code.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed advisory.json
var advisoryFile []byte

var (
	loadOnce sync.Once
	loaded   map[string]string
	loadErr  error
)

// Get retrieves an advisory prompt template by key ("rerank", "explain").
func Get(key string) (string, error) {
	loadOnce.Do(func() {
		loadErr = json.Unmarshal(advisoryFile, &loaded)
	})
	if loadErr != nil {
		return "", fmt.Errorf("failed to parse advisory prompt file: %w", loadErr)
	}
	prompt, ok := loaded[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// MustGet retrieves a prompt by key, panicking if it is missing. Use for
// prompts required at initialization time.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces placeholders in the form {{.Key}} with values from data.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
