package domain

import "errors"

var (
	// ErrNotFound возвращается, когда запись не существует или принадлежит
	// другому пользователю. Снаружи эти случаи неразличимы.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized возвращается при отсутствии аутентифицированного пользователя
	ErrUnauthorized = errors.New("unauthorized")
)
