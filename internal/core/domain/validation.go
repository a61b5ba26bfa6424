package domain

import (
	"fmt"
	"math"
	"strings"
)

// FieldError describes a single rejected form field.
type FieldError struct {
	// Field is the JSON name of the field.
	Field string `json:"field"`

	// Message is the user-facing reason, in Portuguese.
	Message string `json:"message"`
}

// ValidationError collects every field that failed the form checks.
// It unwraps to ErrInvalidInput.
type ValidationError struct {
	Fields []FieldError
}

// Error implements error.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(msgs, "; "))
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Message returns the message for a field, or "" if the field passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Validate applies the creation form's required-field checks.
// The store itself never calls this; presentation code does before Create.
func (in *ContractInput) Validate() error {
	var fields []FieldError
	add := func(field, msg string) {
		fields = append(fields, FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(in.ContractCode) == "" {
		add("contractCode", "Código do contrato é obrigatório")
	}
	if strings.TrimSpace(in.ClientName) == "" {
		add("clientName", "Nome do cliente é obrigatório")
	}
	if strings.TrimSpace(in.SessionDate) == "" {
		add("sessionDate", "Data do ensaio é obrigatória")
	}
	if in.ContractedPhotos < 1 {
		add("contractedPhotos", "Mínimo de 1 foto")
	}
	if in.AdditionalPhotos < 0 {
		add("additionalPhotos", "Não pode ser negativo")
	}
	if strings.TrimSpace(string(in.Status)) == "" {
		add("status", "Status é obrigatório")
	}
	if strings.TrimSpace(string(in.Location)) == "" {
		add("location", "Local é obrigatório")
	}
	switch {
	case math.IsNaN(in.ContractValue) || math.IsInf(in.ContractValue, 0):
		add("contractValue", "Valor inválido")
	case in.ContractValue < 0:
		add("contractValue", "Valor não pode ser negativo")
	}
	if strings.TrimSpace(string(in.PaymentStatus)) == "" {
		add("paymentStatus", "Status do pagamento é obrigatório")
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
