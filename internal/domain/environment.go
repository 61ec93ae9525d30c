package domain

import "fmt"

type Environment string

const (
	EnvironmentPreview Environment = "preview"
	EnvironmentRelease Environment = "release"
)

// ParseEnvironment разбирает значение окружения из запроса
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvironmentPreview:
		return EnvironmentPreview, nil
	case EnvironmentRelease:
		return EnvironmentRelease, nil
	}
	return "", fmt.Errorf("unknown environment: %q", s)
}

// SlotColumn возвращает колонку шаблона, на которую указывает окружение.
// Фиксированный switch вместо динамического имени поля, чтобы набор
// окружений проверялся на этапе компиляции.
func (e Environment) SlotColumn() (string, error) {
	switch e {
	case EnvironmentPreview:
		return "preview_version_id", nil
	case EnvironmentRelease:
		return "release_version_id", nil
	}
	return "", fmt.Errorf("unknown environment: %q", e)
}
