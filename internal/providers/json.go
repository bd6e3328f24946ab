package providers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// StripCodeFence trims whitespace and a surrounding markdown code block from a model reply.
func StripCodeFence(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}

// DecodeJSON unmarshals a model reply into v. Code fences are removed first and
// syntactically broken JSON is passed through jsonrepair before a second attempt.
func DecodeJSON(raw string, v any) error {
	data := StripCodeFence(raw)
	if data == "" {
		return fmt.Errorf("empty response")
	}

	err := json.Unmarshal([]byte(data), v)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return err
	}

	fixed, rerr := jsonrepair.JSONRepair(data)
	if rerr != nil {
		return fmt.Errorf("failed to repair JSON response: %w", rerr)
	}
	return json.Unmarshal([]byte(fixed), v)
}
