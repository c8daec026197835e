package blocks

import "errors"

var (
	// ErrBlockNotFound возвращается, когда временной блок не найден
	ErrBlockNotFound = errors.New("time block not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrProfessionalNotFound возвращается, когда мастер не работает в бизнесе
	ErrProfessionalNotFound = errors.New("professional not found in business")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
