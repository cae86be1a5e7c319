package errvalues

import "errors"

var (
	// ErrNoProfile — у пользователя нет настроенного профиля
	ErrNoProfile = errors.New("профиль не настроен")
	// ErrInvalidInput — некорректный аргумент команды или ответ в диалоге
	ErrInvalidInput = errors.New("некорректный ввод")
	// ErrNotFound — внешний сервис не нашёл совпадений
	ErrNotFound = errors.New("ничего не найдено")
	// ErrUpstream — внешний сервис недоступен или ответил с ошибкой
	ErrUpstream = errors.New("внешний сервис недоступен")
)
