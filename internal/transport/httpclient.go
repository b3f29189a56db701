package transport

import (
	"net/http"
	"time"
)

// NewHTTPClient возвращает http.Client для исходящих запросов к модели.
// Транспорт — копия стандартного (прокси из окружения, HTTP/2, стандартные
// таймауты dial/TLS). timeout == 0 означает отсутствие общего ограничения.
func NewHTTPClient(timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConnsPerHost = 8

	return &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}
}
