package domain

import "encoding/json"

// Exchange envelope codes. Every gateway response carries {code, msg, data};
// "0" is the sole success discriminator. "-1" marks failures produced on our
// side (transport, serialization) so callers see one uniform shape.
const (
	CodeOK    = "0"
	CodeLocal = "-1"
)

// Envelope is the uniform response shape of every gateway call.
type Envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

// IsOK reports whether the gateway accepted the request.
func (e *Envelope) IsOK() bool {
	return e.Code == CodeOK
}

// OrderRows decodes Data as order result rows. Returns nil when Data is
// absent or shaped differently.
func (e *Envelope) OrderRows() []OrderRow {
	if len(e.Data) == 0 {
		return nil
	}
	var rows []OrderRow
	if err := json.Unmarshal(e.Data, &rows); err != nil {
		return nil
	}
	return rows
}

// Fail builds a local failure envelope from an error.
func Fail(err error) *Envelope {
	return &Envelope{Code: CodeLocal, Msg: err.Error()}
}

// InstrumentRows decodes Data as instrument metadata rows. Returns nil when
// Data is absent or shaped differently.
func (e *Envelope) InstrumentRows() []InstrumentRow {
	if len(e.Data) == 0 {
		return nil
	}
	var rows []InstrumentRow
	if err := json.Unmarshal(e.Data, &rows); err != nil {
		return nil
	}
	return rows
}

// InstrumentRow is the subset of exchange instrument metadata consumed at
// sync time.
type InstrumentRow struct {
	InstID   string `json:"instId"`
	InstType string `json:"instType"`
	BaseCcy  string `json:"baseCcy"`
	QuoteCcy string `json:"quoteCcy"`
	State    string `json:"state"`
}

// OrderRow is the subset of an exchange order record this application consumes.
type OrderRow struct {
	OrdID   string `json:"ordId"`
	ClOrdID string `json:"clOrdId,omitempty"`
	State   string `json:"state,omitempty"`
	AvgPx   string `json:"avgPx,omitempty"`
	SCode   string `json:"sCode,omitempty"`
	SMsg    string `json:"sMsg,omitempty"`
}

// PlaceOrderRequest carries the parameters of a new order submission.
// Px is only forwarded for limit orders, ClOrdID only when supplied.
type PlaceOrderRequest struct {
	InstID  string `json:"instId"`
	TdMode  string `json:"tdMode"`
	Side    string `json:"side"`
	OrdType string `json:"ordType"`
	Sz      string `json:"sz"`
	Px      string `json:"px,omitempty"`
	ClOrdID string `json:"clOrdId,omitempty"`
}
