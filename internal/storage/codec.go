package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"pos-service/internal/model"
)

// CurrentVersion is the envelope version written by Encode
const CurrentVersion = 1

// DefaultKey is the slot name the catalog is stored under
const DefaultKey = "grso-pos-storage"

var ErrUnsupportedVersion = errors.New("unsupported storage version")

// envelope is the document kept in a slot
type envelope struct {
	State   model.State `json:"state"`
	Version int         `json:"version"`
}

// Encode wraps state in a versioned envelope
func Encode(state model.State) ([]byte, error) {
	data, err := json.Marshal(envelope{State: state.Normalize(), Version: CurrentVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog state: %w", err)
	}
	return data, nil
}

// Decode unwraps an envelope. Empty input is an empty slot and yields an
// empty state. Version 0 documents are read as-is.
func Decode(data []byte) (model.State, error) {
	if len(data) == 0 {
		return model.State{}.Normalize(), nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return model.State{}, fmt.Errorf("failed to decode catalog state: %w", err)
	}
	if env.Version < 0 || env.Version > CurrentVersion {
		return model.State{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	return env.State.Normalize(), nil
}
