package models

// AdjustmentType selects how a manual correction is applied.
type AdjustmentType string

const (
	AdjustmentIncrease AdjustmentType = "increase"
	AdjustmentDecrease AdjustmentType = "decrease"
	AdjustmentSet      AdjustmentType = "set"
)

func (t AdjustmentType) Valid() bool {
	switch t {
	case AdjustmentIncrease, AdjustmentDecrease, AdjustmentSet:
		return true
	}
	return false
}

// AdjustmentReason is the closed set of reason codes attached to manual
// corrections and workflow-driven receipts.
type AdjustmentReason string

const (
	ReasonDamage          AdjustmentReason = "damage"
	ReasonTheft           AdjustmentReason = "theft"
	ReasonRecount         AdjustmentReason = "recount"
	ReasonExpired         AdjustmentReason = "expired"
	ReasonFound           AdjustmentReason = "found"
	ReasonCorrection      AdjustmentReason = "correction"
	ReasonPurchaseReceipt AdjustmentReason = "purchase_receipt"
)

func (r AdjustmentReason) Valid() bool {
	switch r {
	case ReasonDamage, ReasonTheft, ReasonRecount, ReasonExpired,
		ReasonFound, ReasonCorrection, ReasonPurchaseReceipt:
		return true
	}
	return false
}
