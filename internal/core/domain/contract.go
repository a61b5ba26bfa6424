package domain

import "time"

// ContractStatus is the workflow stage of a contract.
// Values are stored as-is; the store never rejects an unknown status.
type ContractStatus string

// Known contract statuses.
const (
	StatusScheduled   ContractStatus = "agendado"
	StatusSessionDone ContractStatus = "realizado"
	StatusTreatment   ContractStatus = "tratamento"
	StatusApproval    ContractStatus = "aprovacao"
	StatusApproved    ContractStatus = "aprovado"
	StatusFinished    ContractStatus = "finalizado"
)

// ContractStatuses lists the known statuses in workflow order.
func ContractStatuses() []ContractStatus {
	return []ContractStatus{
		StatusScheduled,
		StatusSessionDone,
		StatusTreatment,
		StatusApproval,
		StatusApproved,
		StatusFinished,
	}
}

// IsKnown reports whether the status belongs to the fixed set.
func (s ContractStatus) IsKnown() bool {
	for _, known := range ContractStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Location is where the session takes place.
type Location string

// Known session locations.
const (
	LocationStudio   Location = "estudio"
	LocationExternal Location = "externo"
)

// Locations lists the known session locations.
func Locations() []Location {
	return []Location{LocationStudio, LocationExternal}
}

// IsKnown reports whether the location belongs to the fixed set.
func (l Location) IsKnown() bool {
	return l == LocationStudio || l == LocationExternal
}

// PaymentStatus tracks how much of the contract value has been paid.
type PaymentStatus string

// Known payment statuses.
const (
	PaymentPending PaymentStatus = "pendente"
	PaymentPartial PaymentStatus = "parcial"
	PaymentPaid    PaymentStatus = "pago"
)

// PaymentStatuses lists the known payment statuses.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPending, PaymentPartial, PaymentPaid}
}

// IsKnown reports whether the payment status belongs to the fixed set.
func (p PaymentStatus) IsKnown() bool {
	switch p {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return true
	default:
		return false
	}
}

// Contract is a single photography engagement tracked by the studio.
type Contract struct {
	// ID is assigned by the store at creation and never changes.
	ID string `json:"id"`

	// ContractCode is the user-supplied short code. Not unique.
	ContractCode string `json:"contractCode"`

	// ClientName is free text.
	ClientName string `json:"clientName"`

	// SessionDate is the session's calendar date, kept as entered.
	SessionDate string `json:"sessionDate"`

	ContractedPhotos int `json:"contractedPhotos"`
	AdditionalPhotos int `json:"additionalPhotos"`

	Status   ContractStatus `json:"status"`
	Location Location       `json:"location"`

	// Add-on products.
	HasAlbum         bool `json:"hasAlbum"`
	HasSignatureBook bool `json:"hasSignatureBook"`
	HasRetrospective bool `json:"hasRetrospective"`

	// ContractValue is a currency-agnostic amount.
	ContractValue float64       `json:"contractValue"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`

	// FinishedAt is only ever set by the caller.
	FinishedAt *time.Time `json:"finishedAt,omitempty"`

	// CreatedAt and UpdatedAt are stamped by the store.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TotalPhotos returns contracted plus additional photos.
// The total is derived for display and never stored.
func (c *Contract) TotalPhotos() int {
	return c.ContractedPhotos + c.AdditionalPhotos
}

// Clone returns a copy that shares no memory with c.
func (c *Contract) Clone() Contract {
	out := *c
	if c.FinishedAt != nil {
		finished := *c.FinishedAt
		out.FinishedAt = &finished
	}
	return out
}

// ContractInput is the payload for creating a contract.
// It carries every attribute except the ones the store assigns.
type ContractInput struct {
	ContractCode     string         `json:"contractCode"`
	ClientName       string         `json:"clientName"`
	SessionDate      string         `json:"sessionDate"`
	ContractedPhotos int            `json:"contractedPhotos"`
	AdditionalPhotos int            `json:"additionalPhotos"`
	Status           ContractStatus `json:"status"`
	Location         Location       `json:"location"`
	HasAlbum         bool           `json:"hasAlbum"`
	HasSignatureBook bool           `json:"hasSignatureBook"`
	HasRetrospective bool           `json:"hasRetrospective"`
	ContractValue    float64        `json:"contractValue"`
	PaymentStatus    PaymentStatus  `json:"paymentStatus"`
	FinishedAt       *time.Time     `json:"finishedAt,omitempty"`
}

// NewContract builds a contract from the input with the store-assigned fields.
func (in *ContractInput) NewContract(id string, now time.Time) Contract {
	c := Contract{
		ID:               id,
		ContractCode:     in.ContractCode,
		ClientName:       in.ClientName,
		SessionDate:      in.SessionDate,
		ContractedPhotos: in.ContractedPhotos,
		AdditionalPhotos: in.AdditionalPhotos,
		Status:           in.Status,
		Location:         in.Location,
		HasAlbum:         in.HasAlbum,
		HasSignatureBook: in.HasSignatureBook,
		HasRetrospective: in.HasRetrospective,
		ContractValue:    in.ContractValue,
		PaymentStatus:    in.PaymentStatus,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if in.FinishedAt != nil {
		finished := *in.FinishedAt
		c.FinishedAt = &finished
	}
	return c
}

// ContractPatch is a partial update. Nil fields are left untouched.
// ID, CreatedAt and UpdatedAt cannot be patched.
type ContractPatch struct {
	ContractCode     *string         `json:"contractCode,omitempty"`
	ClientName       *string         `json:"clientName,omitempty"`
	SessionDate      *string         `json:"sessionDate,omitempty"`
	ContractedPhotos *int            `json:"contractedPhotos,omitempty"`
	AdditionalPhotos *int            `json:"additionalPhotos,omitempty"`
	Status           *ContractStatus `json:"status,omitempty"`
	Location         *Location       `json:"location,omitempty"`
	HasAlbum         *bool           `json:"hasAlbum,omitempty"`
	HasSignatureBook *bool           `json:"hasSignatureBook,omitempty"`
	HasRetrospective *bool           `json:"hasRetrospective,omitempty"`
	ContractValue    *float64        `json:"contractValue,omitempty"`
	PaymentStatus    *PaymentStatus  `json:"paymentStatus,omitempty"`
	FinishedAt       *time.Time      `json:"finishedAt,omitempty"`
}

// IsEmpty reports whether the patch supplies no fields.
func (p *ContractPatch) IsEmpty() bool {
	return *p == ContractPatch{}
}

// ApplyTo shallow-merges the supplied fields over c.
//
//nolint:gocyclo // one branch per patchable field
func (p *ContractPatch) ApplyTo(c *Contract) {
	if p.ContractCode != nil {
		c.ContractCode = *p.ContractCode
	}
	if p.ClientName != nil {
		c.ClientName = *p.ClientName
	}
	if p.SessionDate != nil {
		c.SessionDate = *p.SessionDate
	}
	if p.ContractedPhotos != nil {
		c.ContractedPhotos = *p.ContractedPhotos
	}
	if p.AdditionalPhotos != nil {
		c.AdditionalPhotos = *p.AdditionalPhotos
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.HasAlbum != nil {
		c.HasAlbum = *p.HasAlbum
	}
	if p.HasSignatureBook != nil {
		c.HasSignatureBook = *p.HasSignatureBook
	}
	if p.HasRetrospective != nil {
		c.HasRetrospective = *p.HasRetrospective
	}
	if p.ContractValue != nil {
		c.ContractValue = *p.ContractValue
	}
	if p.PaymentStatus != nil {
		c.PaymentStatus = *p.PaymentStatus
	}
	if p.FinishedAt != nil {
		finished := *p.FinishedAt
		c.FinishedAt = &finished
	}
}

// Intersect keeps the contracts present in every set, in the order of the
// first. It never returns nil.
func Intersect(sets ...[]Contract) []Contract {
	if len(sets) == 0 {
		return []Contract{}
	}
	result := sets[0]
	for _, other := range sets[1:] {
		ids := make(map[string]struct{}, len(other))
		for i := range other {
			ids[other[i].ID] = struct{}{}
		}
		kept := make([]Contract, 0, len(result))
		for i := range result {
			if _, ok := ids[result[i].ID]; ok {
				kept = append(kept, result[i])
			}
		}
		result = kept
	}
	if result == nil {
		return []Contract{}
	}
	return result
}
