package model

import (
	"encoding/json"

	"github.com/yeehaw32/tpot-analysis/normalize"
)

// StringList is a multi-valued field the API may send as null, a single
// scalar, or an array. It always decodes to a (possibly empty) list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = normalize.Strings(v)
	return nil
}
