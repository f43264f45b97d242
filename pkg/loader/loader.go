// Package loader reads line-delimited JSON into an ordered document.
//
// Each non-blank line is one independent JSON value. Object members keep the
// order they were written in, which encoding/json's map decoding would lose,
// so values are walked with jsonparser after a strict validity check, or with
// encoding/json's tokenizer for the few valid texts jsonparser rejects.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/buger/jsonparser"

	"github.com/oakwood-commons/jv/pkg/document"
)

// MaxLineBytes bounds a single input line.
const MaxLineBytes = 64 << 20

// ErrInvalidJSON is wrapped by every LineError caused by malformed input.
var ErrInvalidJSON = errors.New("invalid JSON")

// LineError reports the 1-based input line that failed to parse.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// LoadFile reads and parses the JSONL file at path.
func LoadFile(path string) (document.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return document.Document{}, fmt.Errorf("%s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// Parse reads records from r until EOF. Blank lines are skipped; an input
// without any record yields an empty document and no error.
func Parse(r io.Reader) (document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	var doc document.Document
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		v, err := ParseValue(line)
		if err != nil {
			return document.Document{}, &LineError{Line: lineNo, Err: err}
		}
		doc.Records = append(doc.Records, v)
	}
	if err := scanner.Err(); err != nil {
		return document.Document{}, fmt.Errorf("read input: %w", err)
	}
	return doc, nil
}

// ParseValue parses one complete JSON text.
func ParseValue(data []byte) (document.Value, error) {
	if !json.Valid(data) {
		return document.Value{}, fmt.Errorf("%w: %s", ErrInvalidJSON, describeSyntaxError(data))
	}
	raw, typ, _, err := jsonparser.Get(data)
	if err == nil {
		var v document.Value
		if v, err = decode(raw, typ); err == nil {
			return v, nil
		}
	}
	// jsonparser rejects some valid text, such as lone surrogate escapes.
	return decodeTokens(data)
}

// decodeTokens walks data with encoding/json's tokenizer, which keeps member
// order and replaces invalid surrogates with U+FFFD. data must be valid JSON.
func decodeTokens(data []byte) (document.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeToken(dec)
	if err != nil {
		return document.Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return v, nil
}

func decodeToken(dec *json.Decoder) (document.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return document.Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		if t == '{' {
			obj := document.Value{Kind: document.Object}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return document.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return document.Value{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				child, err := decodeToken(dec)
				if err != nil {
					return document.Value{}, err
				}
				obj.Members = append(obj.Members, document.Member{Key: key, Value: child})
			}
			_, err = dec.Token()
			return obj, err
		}
		arr := document.Value{Kind: document.Array}
		for dec.More() {
			child, err := decodeToken(dec)
			if err != nil {
				return document.Value{}, err
			}
			arr.Items = append(arr.Items, child)
		}
		_, err = dec.Token()
		return arr, err
	case string:
		return document.StringValue(t), nil
	case json.Number:
		return document.NumberValue(t.String()), nil
	case bool:
		return document.BoolValue(t), nil
	case nil:
		return document.NullValue(), nil
	default:
		return document.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// describeSyntaxError returns encoding/json's description of why data is not valid.
func describeSyntaxError(data []byte) string {
	var discard any
	if err := json.Unmarshal(data, &discard); err != nil {
		return err.Error()
	}
	return "malformed value"
}

func decode(raw []byte, typ jsonparser.ValueType) (document.Value, error) {
	switch typ {
	case jsonparser.Object:
		return decodeObject(raw)
	case jsonparser.Array:
		return decodeArray(raw)
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return document.Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return document.StringValue(s), nil
	case jsonparser.Number:
		return document.NumberValue(string(raw)), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return document.Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return document.BoolValue(b), nil
	case jsonparser.Null:
		return document.NullValue(), nil
	default:
		return document.Value{}, fmt.Errorf("%w: unexpected value type %s", ErrInvalidJSON, typ)
	}
}

func decodeObject(raw []byte) (document.Value, error) {
	obj := document.Value{Kind: document.Object}
	err := jsonparser.ObjectEach(raw, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		child, err := decode(value, typ)
		if err != nil {
			return err
		}
		obj.Members = append(obj.Members, document.Member{Key: string(key), Value: child})
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidJSON) {
			return document.Value{}, err
		}
		return document.Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return obj, nil
}

func decodeArray(raw []byte) (document.Value, error) {
	arr := document.Value{Kind: document.Array}
	var decodeErr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, typ jsonparser.ValueType, _ int, err error) {
		if decodeErr != nil {
			return
		}
		if err != nil {
			decodeErr = fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			return
		}
		child, err := decode(value, typ)
		if err != nil {
			decodeErr = err
			return
		}
		arr.Items = append(arr.Items, child)
	})
	if decodeErr != nil {
		return document.Value{}, decodeErr
	}
	if err != nil {
		return document.Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return arr, nil
}
