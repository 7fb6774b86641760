package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteNDJSON serializes the documents as newline-delimited JSON: one
// self-contained object per line, in collection order, no enclosing array.
// Non-ASCII text is written as-is so city and athlete names survive a
// round-trip unescaped.
func WriteNDJSON(w io.Writer, docs []Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range docs {
		if err := enc.Encode(&docs[i]); err != nil {
			return fmt.Errorf("encode document %d: %w", i, err)
		}
	}
	return nil
}
