//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Edit changes one field of a request body before it is sent.
type Edit func(m map[string]any)

// Body round-trips a request DTO through JSON so tests can send variants the
// typed struct cannot express.
func Body(t *testing.T, dto any, edits ...Edit) map[string]any {
	t.Helper()

	raw, err := json.Marshal(dto)
	require.NoError(t, err)
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, e := range edits {
		e(m)
	}
	return m
}

func Set(key string, value any) Edit {
	return func(m map[string]any) { m[key] = value }
}

func Without(key string) Edit {
	return func(m map[string]any) { delete(m, key) }
}
