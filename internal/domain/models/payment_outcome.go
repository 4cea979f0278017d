package models

// PaymentOutcome is the terminal result of one orchestration run. Once a run
// reaches Success or Failure it never transitions again; submission code
// checks for NoOutcome before attempting another payment.
type PaymentOutcome interface {
	isPaymentOutcome()
}

// NoOutcome is the initial state of a run
type NoOutcome struct{}

func (NoOutcome) isPaymentOutcome() {}

// Success means the payment was approved
type Success struct{}

func (Success) isPaymentOutcome() {}

// Failure means the payment terminally failed
type Failure struct {
	Reason string
}

func (Failure) isPaymentOutcome() {}

// IsTerminal reports whether the outcome ends the run
func IsTerminal(o PaymentOutcome) bool {
	switch o.(type) {
	case Success, Failure:
		return true
	default:
		return false
	}
}
