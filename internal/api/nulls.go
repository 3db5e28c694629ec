package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StripNestedNulls removes object members whose value is null, except on
// the outermost object. A root field that resolved to null stays visible
// while absent optional task fields disappear. Member order is preserved.
func StripNestedNulls(raw json.RawMessage) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if err := writeValue(dec, &buf, tok, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeValue writes tok and, for containers, everything up to the matching
// close delimiter. depth counts the objects enclosing tok.
func writeValue(dec *json.Decoder, buf *bytes.Buffer, tok json.Token, depth int) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return writeObject(dec, buf, depth)
		case '[':
			return writeArray(dec, buf, depth)
		default:
			return fmt.Errorf("unexpected delimiter %q", v)
		}
	case nil:
		buf.WriteString("null")
	case json.Number:
		buf.WriteString(v.String())
	case bool, string:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}
	return nil
}

func writeObject(dec *json.Decoder, buf *bytes.Buffer, depth int) error {
	buf.WriteByte('{')
	first := true
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %T", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		if valTok == nil && depth > 0 {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false

		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if err := writeValue(dec, buf, valTok, depth+1); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	buf.WriteByte('}')
	return nil
}

func writeArray(dec *json.Decoder, buf *bytes.Buffer, depth int) error {
	buf.WriteByte('[')
	first := true
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeValue(dec, buf, tok, depth); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	buf.WriteByte(']')
	return nil
}
