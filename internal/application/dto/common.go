package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError detalle de un campo inválido (errores de validación).
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
