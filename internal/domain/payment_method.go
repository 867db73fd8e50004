package domain

import "fmt"

type PaymentMethodKind string

const (
	MethodCash     PaymentMethodKind = "cash"
	MethodTransfer PaymentMethodKind = "transfer"
	MethodCheck    PaymentMethodKind = "check"
	MethodCard     PaymentMethodKind = "card"
	MethodOther    PaymentMethodKind = "other"
)

// PaymentMethod is a tagged union: Kind selects which of the detail fields
// are meaningful. Unused fields stay empty and are omitted from JSON.
type PaymentMethod struct {
	Kind PaymentMethodKind `json:"kind"`

	// check
	CheckNumber string `json:"checkNumber,omitempty"`
	CheckBank   string `json:"checkBank,omitempty"`

	// transfer
	TransferReference string `json:"transferReference,omitempty"`

	// card
	CardLast4 string `json:"cardLast4,omitempty"`

	// other
	Details string `json:"details,omitempty"`
}

func CashPayment() PaymentMethod {
	return PaymentMethod{Kind: MethodCash}
}

func (m PaymentMethod) Validate() error {
	switch m.Kind {
	case MethodCash, MethodOther:
		return nil
	case MethodTransfer:
		return nil
	case MethodCheck:
		if m.CheckNumber == "" {
			return fmt.Errorf("%w: check number is required", ErrValidation)
		}
		return nil
	case MethodCard:
		if len(m.CardLast4) != 0 && len(m.CardLast4) != 4 {
			return fmt.Errorf("%w: card last-4 must be four digits", ErrValidation)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, m.Kind)
	}
}
