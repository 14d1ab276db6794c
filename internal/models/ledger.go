package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMalformedLedger is returned when a persisted payload is not a JSON object
var ErrMalformedLedger = errors.New("malformed ledger payload")

// Ledger maps each medication to the epoch-millisecond timestamp of its last
// dose. A nil entry means no dose has been recorded.
type Ledger map[Medication]*int64

// NewLedger returns a ledger with no dose recorded for any medication
func NewLedger() Ledger {
	l := make(Ledger, len(medications))
	for _, m := range medications {
		l[m] = nil
	}
	return l
}

// Clone returns a deep copy restricted to the known medications
func (l Ledger) Clone() Ledger {
	out := NewLedger()
	for _, m := range medications {
		if ts := l[m]; ts != nil {
			v := *ts
			out[m] = &v
		}
	}
	return out
}

// Equal reports whether both ledgers hold the same timestamps
func (l Ledger) Equal(other Ledger) bool {
	for _, m := range medications {
		a, b := l[m], other[m]
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

// LastDose returns the time of the last recorded dose of m
func (l Ledger) LastDose(m Medication) (time.Time, bool) {
	ts := l[m]
	if ts == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*ts), true
}

// RecordDose returns a copy of l with m's last dose set to at
func RecordDose(l Ledger, m Medication, at time.Time) Ledger {
	out := l.Clone()
	ms := at.UnixMilli()
	out[m] = &ms
	return out
}

// ResetDose returns a copy of l with m's last dose cleared
func ResetDose(l Ledger, m Medication) Ledger {
	out := l.Clone()
	out[m] = nil
	return out
}

// MarshalJSON encodes exactly the known medications, each as an integer or null
func (l Ledger) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range medications {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(m))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if ts := l[m]; ts != nil {
			fmt.Fprintf(&buf, "%d", *ts)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalLedger decodes a persisted ledger. Unknown keys are dropped and
// missing keys default to nil. An entry whose value is neither an integer nor
// null is treated as absent. Payloads that are not a JSON object are rejected.
func UnmarshalLedger(data []byte) (Ledger, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLedger, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an object", ErrMalformedLedger)
	}

	l := NewLedger()
	for _, m := range medications {
		value, ok := raw[string(m)]
		if !ok {
			continue
		}
		var ts *int64
		if err := json.Unmarshal(value, &ts); err != nil {
			continue
		}
		l[m] = ts
	}
	return l, nil
}
