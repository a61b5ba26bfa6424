package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() ContractInput {
	return ContractInput{
		ContractCode:     "ABC-01",
		ClientName:       "Maria Silva",
		SessionDate:      "2025-02-14",
		ContractedPhotos: 10,
		Status:           StatusScheduled,
		Location:         LocationStudio,
		ContractValue:    1200,
		PaymentStatus:    PaymentPending,
	}
}

func TestContractInput_Validate_Valid(t *testing.T) {
	in := validInput()
	assert.NoError(t, in.Validate())
}

func TestContractInput_Validate_ZeroValueAllowed(t *testing.T) {
	in := validInput()
	in.ContractValue = 0
	in.AdditionalPhotos = 0
	assert.NoError(t, in.Validate())
}

func TestContractInput_Validate_UnknownEnumsAccepted(t *testing.T) {
	// Required-field checks only; enumerations are not enforced.
	in := validInput()
	in.Status = "qualquer"
	in.Location = "praia"
	in.PaymentStatus = "fiado"
	assert.NoError(t, in.Validate())
}

func TestContractInput_Validate_Empty(t *testing.T) {
	var in ContractInput
	err := in.Validate()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Código do contrato é obrigatório", verr.Message("contractCode"))
	assert.Equal(t, "Nome do cliente é obrigatório", verr.Message("clientName"))
	assert.Equal(t, "Data do ensaio é obrigatória", verr.Message("sessionDate"))
	assert.Equal(t, "Mínimo de 1 foto", verr.Message("contractedPhotos"))
	assert.Equal(t, "Status é obrigatório", verr.Message("status"))
	assert.Equal(t, "Local é obrigatório", verr.Message("location"))
	assert.Equal(t, "Status do pagamento é obrigatório", verr.Message("paymentStatus"))
	assert.Empty(t, verr.Message("additionalPhotos"))
	assert.Empty(t, verr.Message("contractValue"))
}

func TestContractInput_Validate_Negatives(t *testing.T) {
	in := validInput()
	in.AdditionalPhotos = -1
	in.ContractValue = -10

	err := in.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Equal(t, "Não pode ser negativo", verr.Message("additionalPhotos"))
	assert.Equal(t, "Valor não pode ser negativo", verr.Message("contractValue"))
}

func TestContractInput_Validate_WhitespaceIsEmpty(t *testing.T) {
	in := validInput()
	in.ClientName = "   "

	err := in.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Message("clientName"))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "clientName", Message: "Nome do cliente é obrigatório"},
		{Field: "status", Message: "Status é obrigatório"},
	}}

	assert.Equal(t,
		"invalid input: clientName: Nome do cliente é obrigatório; status: Status é obrigatório",
		err.Error())
}

func TestContractInput_Validate_NonFiniteValue(t *testing.T) {
	for name, v := range map[string]float64{
		"nan":  math.NaN(),
		"+inf": math.Inf(1),
		"-inf": math.Inf(-1),
	} {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			in.ContractValue = v

			var verr *ValidationError
			require.ErrorAs(t, in.Validate(), &verr)
			assert.Equal(t, "Valor inválido", verr.Message("contractValue"))
			assert.Len(t, verr.Fields, 1)
		})
	}
}
