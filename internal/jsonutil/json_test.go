package jsonutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Status string `json:"status"`
	N      uint64 `json:"n"`
}

func TestEncodePretty(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, EncodePretty(&b, doc{Status: "TRUE", N: 15}))
	assert.Equal(t, "{\n  \"status\": \"TRUE\",\n  \"n\": 15\n}\n", b.String())
}

func TestDecode_Strict(t *testing.T) {
	var d doc
	require.NoError(t, Decode([]byte(`{"status":"FALSE","n":3}`), &d))
	assert.Equal(t, doc{Status: "FALSE", N: 3}, d)

	assert.Error(t, Decode([]byte(`{"status":"FALSE","extra":1}`), &d))
}
