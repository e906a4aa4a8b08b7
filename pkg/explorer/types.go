package explorer

import (
	"encoding/json"
	"strconv"
	"time"
)

// Transaction is one entry of the explorer's txlist result. Only the fields the
// tracker reads are decoded; the full object is kept in Raw.
type Transaction struct {
	Hash        string      `json:"hash"`
	BlockNumber string      `json:"blockNumber"`
	TimeStamp   json.Number `json:"timeStamp"`
	From        string      `json:"from"`
	To          string      `json:"to"`
	Value       string      `json:"value"`
	IsError     string      `json:"isError"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON accepts any JSON object. Known fields may be strings or
// numbers; other types leave the field empty instead of failing the record.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*tx = Transaction{
		Hash:        scalar(fields["hash"]),
		BlockNumber: scalar(fields["blockNumber"]),
		TimeStamp:   json.Number(scalar(fields["timeStamp"])),
		From:        scalar(fields["from"]),
		To:          scalar(fields["to"]),
		Value:       scalar(fields["value"]),
		IsError:     scalar(fields["isError"]),
		Raw:         append(json.RawMessage(nil), data...),
	}
	return nil
}

// scalar returns a JSON string's value or a JSON number's literal text, and
// "" for anything else.
func scalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func (tx Transaction) MarshalJSON() ([]byte, error) {
	if len(tx.Raw) > 0 {
		return tx.Raw, nil
	}
	type plain Transaction
	return json.Marshal(plain(tx))
}

// Succeeded reports whether the explorer flagged the transaction as executed
// without error. Any isError value other than "0" counts as failed.
func (tx Transaction) Succeeded() bool {
	return tx.IsError == "0"
}

// Time returns the block time of the transaction.
func (tx Transaction) Time() (time.Time, error) {
	sec, err := strconv.ParseInt(tx.TimeStamp.String(), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0), nil
}

// Outcome classifies a fetch for logs and metrics. It never changes the
// returned list: every outcome other than OutcomeOK yields an empty list.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeEmpty          Outcome = "empty"
	OutcomeAPIError       Outcome = "api_error"
	OutcomeTransportError Outcome = "transport_error"
)

type txListResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}
