package flowoapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DecodeRecord unwraps one record from a response that may arrive as
// {data: {...}}, {data: [{...}]} (first element wins) or a bare object.
func DecodeRecord(raw []byte, out any) error {
	payload := extractData(raw)

	trimmed := strings.TrimSpace(string(payload))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return fmt.Errorf("decode record list: %w", err)
		}
		if len(items) == 0 {
			return fmt.Errorf("empty record list in response")
		}
		payload = items[0]
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// DecodeList unwraps a slice from {data: [...]} or a bare array.
func DecodeList(raw []byte, out any) error {
	payload := extractData(raw)
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	return nil
}

func extractData(raw []byte) json.RawMessage {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return raw
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return raw
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return raw
	}
	return env.Data
}
