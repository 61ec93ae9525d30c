package domain

import (
	"regexp"
)

// Плейсхолдеры вида {@variable} и {#variable} внутри текста промпта
var placeholderRe = regexp.MustCompile(`\{[@#]([A-Za-z0-9_]+)\}`)

// RenderPrompt подставляет значения переменных в текст промпта.
// Плейсхолдеры без значения остаются в тексте как есть.
func RenderPrompt(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}

	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if value, ok := data[name]; ok {
			return value
		}
		return match
	})
}

// PromptVariables возвращает имена переменных, встречающихся в тексте промпта
func PromptVariables(template string) []string {
	seen := make(map[string]bool)
	vars := make([]string, 0)

	for _, match := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			vars = append(vars, match[1])
		}
	}

	return vars
}
