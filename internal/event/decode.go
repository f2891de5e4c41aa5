package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload converts an event payload into T. In-process publishers hand
// over T or *T directly. Payloads read back from the dead-letter file arrive
// as raw JSON or as generic maps and are decoded through JSON.
func DecodePayload[T any](input any) (T, error) {
	var result T
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return result, fmt.Errorf(ErrFmtNilPayload, result)
		}
		return *v, nil
	case json.RawMessage:
		return result, json.Unmarshal(v, &result)
	case []byte:
		return result, json.Unmarshal(v, &result)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
