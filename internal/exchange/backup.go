package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"pos-service/internal/model"
)

var backupKeys = []string{"products", "transactions", "categories"}

// ExportBackup renders the full state as an indented JSON document with the
// keys products, transactions and categories
func ExportBackup(state model.State) ([]byte, error) {
	data, err := json.MarshalIndent(state.Normalize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// ParseBackup reads a backup document. All three keys must be present and
// non-null; empty arrays are accepted. Inner shapes are decoded as-is.
func ParseBackup(data []byte) (model.State, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	var missing []string
	for _, key := range backupKeys {
		raw, ok := doc[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return model.State{}, fmt.Errorf("%w: missing %s", ErrInvalidBackup, strings.Join(missing, ", "))
	}

	var state model.State
	if err := json.Unmarshal(doc["products"], &state.Products); err != nil {
		return model.State{}, fmt.Errorf("%w: products: %v", ErrInvalidBackup, err)
	}
	if err := json.Unmarshal(doc["transactions"], &state.Transactions); err != nil {
		return model.State{}, fmt.Errorf("%w: transactions: %v", ErrInvalidBackup, err)
	}
	if err := json.Unmarshal(doc["categories"], &state.Categories); err != nil {
		return model.State{}, fmt.Errorf("%w: categories: %v", ErrInvalidBackup, err)
	}
	return state.Normalize(), nil
}
