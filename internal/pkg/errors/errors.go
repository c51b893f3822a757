package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния
	// (например, повторное назначение той же пары образец/судья).
	ErrConflict = errors.New("resource state conflict")

	// ErrInvalidTransition используется при попытке недопустимого перехода
	// статуса образца. Состояние образца при этом не меняется.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDirectorActive используется, когда директор пытается создать второй
	// конкурс, пока его текущий конкурс ещё активен по датам.
	ErrDirectorActive = errors.New("director already has an active contest")

	// ErrExpiredToken используется, когда токен истек.
	ErrExpiredToken = errors.New("token is expired")
)
