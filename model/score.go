package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Score is an analysis number such as risk_score or confidence. Numeric
// strings are accepted; any other non-number decodes as unknown.
type Score struct {
	Value float64
	Valid bool
}

func NewScore(v float64) Score {
	return Score{Value: v, Valid: true}
}

func (s *Score) UnmarshalJSON(data []byte) error {
	*s = Score{}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*s = NewScore(f)
	return nil
}

func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Ptr returns the value, or nil when unknown.
func (s Score) Ptr() *float64 {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}
