// Package model содержит доменные сущности сервиса проверки национальных кодов.
package model

// Verdict описывает результат проверки одного национального кода.
type Verdict struct {
	Input string `json:"input"`
	// Code пуст, если после очистки осталось не 8-10 цифр.
	Code  string `json:"code,omitempty"`
	Valid bool   `json:"valid"`
}

// Result возвращает метку результата для метрик и логов.
func (v Verdict) Result() string {
	if v.Valid {
		return ResultValid
	}
	return ResultInvalid
}

const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)
