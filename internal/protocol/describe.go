package protocol

import (
	"encoding/json"
	"fmt"
)

// Describe renders m as a flat JSON object tagged with its kind.
func Describe(m Message) ([]byte, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("protocol: describe %s: %w", m.Kind(), err)
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("protocol: describe %s: %w", m.Kind(), err)
	}
	fields["type"] = m.Kind().String()
	if s, ok := m.(State); ok {
		fields["valid"] = s.Cube != nil
	}
	return json.Marshal(fields)
}
