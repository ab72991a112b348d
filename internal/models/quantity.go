package models

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// QuantityKind discriminates Quantity values.
type QuantityKind string

const (
	QuantityCount    QuantityKind = "count"
	QuantityDuration QuantityKind = "duration"
)

// Quantity is either a plain count ("5" sets) or a free-text amount such as
// "10 min", "Max" or "8-10 reps".
type Quantity struct {
	Kind  QuantityKind `json:"kind"`
	N     int          `json:"n,omitempty"`
	Label string       `json:"label,omitempty"`
}

// Count returns a counted quantity.
func Count(n int) Quantity {
	return Quantity{Kind: QuantityCount, N: n}
}

// Text returns a free-text quantity.
func Text(label string) Quantity {
	return Quantity{Kind: QuantityDuration, Label: label}
}

func (q Quantity) String() string {
	if q.Kind == QuantityCount {
		return strconv.Itoa(q.N)
	}
	return q.Label
}

// IsZero reports whether q carries no value.
func (q Quantity) IsZero() bool {
	return q.Kind == "" && q.N == 0 && q.Label == ""
}

// UnmarshalJSON accepts the tagged object as well as a bare number or string.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*q = Quantity{}
		return nil
	}
	switch data[0] {
	case '{':
		type raw Quantity
		var r raw
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		switch r.Kind {
		case QuantityCount, QuantityDuration:
		case "":
			if r.N != 0 || r.Label != "" {
				return fmt.Errorf("quantity kind missing")
			}
		default:
			return fmt.Errorf("unknown quantity kind %q", r.Kind)
		}
		*q = Quantity(r)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = parseScalar(s)
		return nil
	default:
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		*q = Count(n)
		return nil
	}
}

// UnmarshalYAML decodes a bare scalar: integers become counts, anything else
// is kept as text.
func (q *Quantity) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: quantity must be a scalar", value.Line)
	}
	if value.Tag == "!!int" {
		n, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*q = Count(n)
		return nil
	}
	*q = Text(value.Value)
	return nil
}

func parseScalar(s string) Quantity {
	if n, err := strconv.Atoi(s); err == nil {
		return Count(n)
	}
	return Text(s)
}
