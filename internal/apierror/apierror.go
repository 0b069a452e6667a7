// Package apierror define o envelope de erro devolvido pela API. Todo
// 4xx/5xx passa por aqui; mensagens internas (erros de banco, stack)
// nunca chegam ao cliente.
package apierror

import "fmt"

// APIError é o corpo padrão de qualquer resposta de erro.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Newf formata a mensagem antes de envelopar.
func Newf(format string, args ...any) *APIError {
	return &APIError{Detail: fmt.Sprintf(format, args...)}
}

// ValidationError agrega erros por campo de um payload rejeitado.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Erro de validacao", Fields: fields}
}
