package format

import (
	"strings"

	"github.com/custodia-labs/ensaio/internal/core/domain"
)

// Field labels shared by the grid, forms and prompts.
const (
	LabelContractCode     = "Código do Contrato"
	LabelClientName       = "Nome do Cliente"
	LabelSessionDate      = "Data do Ensaio"
	LabelContractedPhotos = "Fotos Contratadas"
	LabelAdditionalPhotos = "Fotos Adicionais"
	LabelTotalPhotos      = "Total de Fotos"
	LabelStatus           = "Status do Pedido"
	LabelLocation         = "Local do Ensaio"
	LabelAddOns           = "Produtos Extras"
	LabelAlbum            = "Álbum"
	LabelSignatureBook    = "Livro de Assinatura"
	LabelRetrospective    = "Retrospectiva"
	LabelContractValue    = "Valor do Contrato"
	LabelPaymentStatus    = "Status do Pagamento"
	LabelFinishedAt       = "Finalizado em"
	LabelCreatedAt        = "Criado em"
	LabelUpdatedAt        = "Atualizado em"
)

var statusLabels = map[domain.ContractStatus]string{
	domain.StatusScheduled:   "Agendado",
	domain.StatusSessionDone: "Ensaio Realizado",
	domain.StatusTreatment:   "Em Tratamento",
	domain.StatusApproval:    "Em Aprovação",
	domain.StatusApproved:    "Aprovado",
	domain.StatusFinished:    "Finalizado",
}

var locationLabels = map[domain.Location]string{
	domain.LocationStudio:   "Estúdio",
	domain.LocationExternal: "Externo",
}

var paymentLabels = map[domain.PaymentStatus]string{
	domain.PaymentPending: "Pendente",
	domain.PaymentPartial: "Parcialmente Pago",
	domain.PaymentPaid:    "Pago",
}

// StatusLabel returns the Portuguese label, or the raw code if unknown.
func StatusLabel(s domain.ContractStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// LocationLabel returns the Portuguese label, or the raw code if unknown.
func LocationLabel(l domain.Location) string {
	if label, ok := locationLabels[l]; ok {
		return label
	}
	return string(l)
}

// PaymentLabel returns the Portuguese label, or the raw code if unknown.
func PaymentLabel(p domain.PaymentStatus) string {
	if label, ok := paymentLabels[p]; ok {
		return label
	}
	return string(p)
}

// YesNo renders a flag.
func YesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// AddOns lists the contracted add-on products, or "-" when there are none.
func AddOns(c *domain.Contract) string {
	var parts []string
	if c.HasAlbum {
		parts = append(parts, LabelAlbum)
	}
	if c.HasSignatureBook {
		parts = append(parts, LabelSignatureBook)
	}
	if c.HasRetrospective {
		parts = append(parts, LabelRetrospective)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
