package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ParseError describes why sidecar bytes could not become a document.
// Line and Column locate the problem in the original bytes (1-based).
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parse decodes sidecar bytes into a document. Anything other than a
// single well-formed JSON object is a *ParseError: syntax errors,
// non-object documents, and trailing content after the object.
func Parse(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var raw any
	if err := dec.Decode(&raw); err != nil {
		line, col := positionOf(data, decodeOffset(err))
		return nil, &ParseError{Line: line, Column: col, Msg: err.Error()}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Line: 1, Column: 1, Msg: "sidecar must be a JSON object"}
	}

	if dec.More() {
		line, col := positionOf(data, dec.InputOffset())
		return nil, &ParseError{Line: line, Column: col, Msg: "unexpected content after JSON object"}
	}

	return obj, nil
}

// decodeOffset extracts the byte offset from the decoder errors that
// carry one. Errors without a position map to offset 0.
func decodeOffset(err error) int64 {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Offset
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Offset
	}
	return 0
}

// positionOf converts a byte offset into a 1-based line and column.
func positionOf(data []byte, offset int64) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}

	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
