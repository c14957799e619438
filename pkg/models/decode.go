package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// fieldDecoder reads record fields from a JSON object one key at a time,
// so missing keys and bad enum values can be reported by name.
type fieldDecoder struct {
	record string
	raw    map[string]json.RawMessage
	err    error
}

func newFieldDecoder(record string, data []byte) (*fieldDecoder, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", record, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: expected a JSON object", record)
	}
	return &fieldDecoder{record: record, raw: raw}, nil
}

// lookup treats an explicit null the same as an absent key
func (d *fieldDecoder) lookup(key string) (json.RawMessage, bool) {
	v, ok := d.raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func (d *fieldDecoder) required(key string, dst any) {
	if d.err != nil {
		return
	}
	v, ok := d.lookup(key)
	if !ok {
		d.err = &MissingFieldError{Record: d.record, Field: key}
		return
	}
	d.decode(key, v, dst)
}

// optional leaves dst untouched when the key is absent
func (d *fieldDecoder) optional(key string, dst any) {
	if d.err != nil {
		return
	}
	if v, ok := d.lookup(key); ok {
		d.decode(key, v, dst)
	}
}

func (d *fieldDecoder) decode(key string, v json.RawMessage, dst any) {
	err := json.Unmarshal(v, dst)
	if err == nil {
		return
	}

	var enumErr *InvalidEnumValueError
	if errors.As(err, &enumErr) && enumErr.Field == "" {
		enumErr.Field = key
		d.err = enumErr
		return
	}

	d.err = fmt.Errorf("%s.%s: %w", d.record, key, err)
}
