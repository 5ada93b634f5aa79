package handlers

import (
	"encoding/json"
	"fmt"
)

// FlexString accepts either a JSON string or a JSON number, preserving the
// literal text. Amounts arrive both quoted ("15.99") and bare (15.99) from
// existing clients.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f *FlexString) stringPtr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}
