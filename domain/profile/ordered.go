package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ColumnProfiles serializes as a JSON object keyed by column name, in table
// order. Go maps would lose that order, and downstream consumers rely on it.
type ColumnProfiles []ColumnProfile

// ColumnTypes serializes as a JSON object of column name to kind, in table order
type ColumnTypes []ColumnType

func (cp ColumnProfiles) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(cp), func(i int) (string, interface{}) {
		return cp[i].Name, cp[i]
	})
}

func (cp *ColumnProfiles) UnmarshalJSON(data []byte) error {
	out := ColumnProfiles{}
	err := unmarshalOrdered(data, func(key string, dec *json.Decoder) error {
		var p ColumnProfile
		if err := dec.Decode(&p); err != nil {
			return err
		}
		p.Name = key
		out = append(out, p)
		return nil
	})
	if err != nil {
		return err
	}
	*cp = out
	return nil
}

func (ct ColumnTypes) MarshalJSON() ([]byte, error) {
	return marshalOrdered(len(ct), func(i int) (string, interface{}) {
		return ct[i].Name, ct[i].Kind
	})
}

func (ct *ColumnTypes) UnmarshalJSON(data []byte) error {
	out := ColumnTypes{}
	err := unmarshalOrdered(data, func(key string, dec *json.Decoder) error {
		var k ColumnKind
		if err := dec.Decode(&k); err != nil {
			return err
		}
		out = append(out, ColumnType{Name: key, Kind: k})
		return nil
	})
	if err != nil {
		return err
	}
	*ct = out
	return nil
}

func marshalOrdered(n int, entry func(i int) (string, interface{})) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		key, val := entry(i)
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("marshal %q: %w", key, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalOrdered(data []byte, entry func(key string, dec *json.Decoder) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := entry(key, dec); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
	}
	_, err = dec.Token()
	return err
}
