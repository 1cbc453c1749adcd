package smtp

import "io"

// Client — сессия с SMTP сервером после авторизации.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Dialer открывает авторизованные SMTP сессии от имени одного отправителя.
type Dialer interface {
	Dial() (Client, error)
	// From адрес отправителя для заголовка и команды MAIL FROM.
	From() string
}

var _ Dialer = (*Transport)(nil)
