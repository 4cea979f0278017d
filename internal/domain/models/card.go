package models

// InstrumentStatus represents the lifecycle state of a stored instrument
type InstrumentStatus string

const (
	InstrumentCreated  InstrumentStatus = "CREATED"
	InstrumentVerified InstrumentStatus = "VERIFIED"
	InstrumentFailed   InstrumentStatus = "FAILED"
	InstrumentExpired  InstrumentStatus = "EXPIRED"
)

// StepUp describes an additional cardholder challenge required before an
// instrument can be charged
type StepUp struct {
	Mandatory bool   `json:"mandatory"`
	Type      string `json:"type"`
	URL       string `json:"url"`
}

// CreditCard is a stored, tokenized payment instrument sourced from the
// customer API. Never mutated locally; deleting it via the API invalidates
// the local copy.
type CreditCard struct {
	PaymentInstrumentID string           `json:"paymentInstrumentId"`
	PaymentToken        string           `json:"paymentToken"`
	Scheme              string           `json:"scheme"`
	CardSuffix          string           `json:"cardSuffix"`
	ExpiryMonth         string           `json:"expiryMonth"`
	ExpiryYear          string           `json:"expiryYear"`
	CVVValidated        bool             `json:"cvvValidated"`
	Expired             bool             `json:"expired"`
	Primary             bool             `json:"primary"`
	Status              InstrumentStatus `json:"status"`
	StepUp              *StepUp          `json:"stepUp,omitempty"`
}
