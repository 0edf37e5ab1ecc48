package entities

import (
	"encoding/json"
	"fmt"
)

// marshalEnumString and unmarshalEnumString back every enum type's
// MarshalJSON/UnmarshalJSON so enums always serialize as their string
// name on disk (§6: "enums serialized as their string names"), never as
// raw ints.
func marshalEnumString(s string) ([]byte, error) {
	return json.Marshal(s)
}

func unmarshalEnumString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

func unknownEnumError(typeName, value string) error {
	return fmt.Errorf("%s: unknown value %q", typeName, value)
}

func errRequired(field string) error {
	return fmt.Errorf("%s is required", field)
}

func errPositive(field string, got int64) error {
	return fmt.Errorf("%s must be positive, got %d", field, got)
}
