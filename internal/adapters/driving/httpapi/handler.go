package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/ensaio/internal/core/domain"
	"github.com/custodia-labs/ensaio/internal/core/ports/driving"
)

// ListResponse is the body of GET /api/contracts.
type ListResponse struct {
	Contracts []domain.Contract `json:"contracts"`
	Count     int               `json:"count"`
}

// DeleteResponse is the body of DELETE /api/contracts/:id.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

type errorResponse struct {
	Error     string              `json:"error"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// ContractHandler serves the contract endpoints.
type ContractHandler struct {
	contracts driving.ContractService
}

// NewContractHandler creates a handler over the contract service.
func NewContractHandler(contracts driving.ContractService) *ContractHandler {
	return &ContractHandler{contracts: contracts}
}

// List handles GET /api/contracts. The q, status and payment query
// parameters narrow the result; when several are given all must match.
// A present but empty status or payment matches contracts whose field is empty.
func (h *ContractHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	query, hasQuery := c.GetQuery("q")
	status, hasStatus := c.GetQuery("status")
	payment, hasPayment := c.GetQuery("payment")

	var sets [][]domain.Contract
	add := func(contracts []domain.Contract, err error) error {
		if err == nil {
			sets = append(sets, contracts)
		}
		return err
	}

	var err error
	if hasQuery {
		err = add(h.contracts.Search(ctx, query))
	}
	if err == nil && hasStatus {
		err = add(h.contracts.FilterByStatus(ctx, domain.ContractStatus(status)))
	}
	if err == nil && hasPayment {
		err = add(h.contracts.FilterByPaymentStatus(ctx, domain.PaymentStatus(payment)))
	}
	if err == nil && len(sets) == 0 {
		err = add(h.contracts.List(ctx))
	}
	if err != nil {
		writeError(c, err)
		return
	}

	result := domain.Intersect(sets...)
	c.JSON(http.StatusOK, ListResponse{Contracts: result, Count: len(result)})
}

// Get handles GET /api/contracts/:id.
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contracts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Create handles POST /api/contracts. The form's required-field checks apply.
func (h *ContractHandler) Create(c *gin.Context) {
	var input domain.ContractInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeError(c, errors.Join(domain.ErrInvalidInput, err))
		return
	}
	if err := input.Validate(); err != nil {
		writeError(c, err)
		return
	}

	contract, err := h.contracts.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", "/api/contracts/"+contract.ID)
	c.JSON(http.StatusCreated, contract)
}

// Update handles PATCH /api/contracts/:id.
func (h *ContractHandler) Update(c *gin.Context) {
	var patch domain.ContractPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeError(c, errors.Join(domain.ErrInvalidInput, err))
		return
	}

	contract, err := h.contracts.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Delete handles DELETE /api/contracts/:id. Deleting a missing contract is not an error.
func (h *ContractHandler) Delete(c *gin.Context) {
	removed, err := h.contracts.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, DeleteResponse{Deleted: removed})
}

func writeError(c *gin.Context, err error) {
	resp := errorResponse{Error: err.Error(), RequestID: GetRequestID(c)}
	status := http.StatusInternalServerError

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		resp.Fields = verr.Fields
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		resp.Error = "contract not found"
	case errors.Is(err, domain.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNotImplemented):
		status = http.StatusNotImplemented
	}

	c.AbortWithStatusJSON(status, resp)
}
