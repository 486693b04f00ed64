package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process payloads are already T
// (or *T); anything else, such as a payload read back from the dead-letter
// file, goes through a JSON round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}
