package models

// PaymentOption is the user's current payment selection. It is a closed set
// of variants; handlers must switch exhaustively over the three concrete
// types.
type PaymentOption interface {
	// Valid reports whether the option can currently be used to pay
	Valid() bool

	isPaymentOption()
}

// NoOption means nothing has been selected yet
type NoOption struct{}

func (NoOption) Valid() bool { return false }
func (NoOption) isPaymentOption() {}

// NewCard means the user is entering a new card into the capture widget.
// IsValid mirrors the widget's latest form validation state and must be
// recomputed whenever the widget reports a validation change while this
// option is selected.
type NewCard struct {
	IsValid bool
}

func (c NewCard) Valid() bool { return c.IsValid }
func (NewCard) isPaymentOption() {}

// ExistingCard means the user selected a stored instrument. Card may be nil
// when the selection has not resolved to an instrument.
type ExistingCard struct {
	Card *CreditCard
}

func (c ExistingCard) Valid() bool { return c.Card != nil }
func (ExistingCard) isPaymentOption() {}
