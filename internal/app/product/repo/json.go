package repo

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeJSON decodes raw into out keeping numbers as json.Number, so stored
// caller data never passes through float64.
func decodeJSON(raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

// reencodeJSON converts an already decoded JSON value into out.
func reencodeJSON(v any, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode json column: %w", err)
	}
	return decodeJSON(raw, out)
}
