package storage

import "encoding/json"

// ReadCollection decodes the JSON sequence stored under key. An absent
// key or a corrupt value decodes to the empty sequence, never an error:
// the store is corrupt-tolerant by contract.
func ReadCollection[T any](s Store, key string) []T {
	raw := s.Read(key)
	if len(raw) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// WriteCollection replaces the whole collection under key.
func WriteCollection[T any](s Store, key string, items []T) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	s.Write(key, raw)
}

// ReadValue decodes a single optional value (e.g. the session user).
func ReadValue[T any](s Store, key string) (T, bool) {
	var value T
	raw := s.Read(key)
	if len(raw) == 0 {
		return value, false
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false
	}
	return value, true
}

// WriteValue stores a single value under key.
func WriteValue[T any](s Store, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.Write(key, raw)
}
