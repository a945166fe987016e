// =============================
// File: internal/jupiter/errors.go
// =============================
package jupiter

import "fmt"

// RemoteServiceError — агрегатор ответил неуспешным HTTP-статусом либо
// телом, в котором нет обязательных полей. Тело ответа сохраняется
// целиком для диагностики.
type RemoteServiceError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("jupiter %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// NetworkError — транспортная ошибка (таймаут, обрыв соединения) до
// получения HTTP-ответа.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("jupiter %s request failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
