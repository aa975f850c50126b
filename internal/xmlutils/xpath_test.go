package xmlutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBytes(t *testing.T) {
	root, err := ParseBytes([]byte("<root><child>value</child></root>"))
	require.NoError(t, err)
	assert.NotNil(t, root)

	_, err = ParseBytes([]byte("<root><unclosed>"))
	assert.Error(t, err)
}

func TestExtractFromXML(t *testing.T) {
	root, err := ParseBytes([]byte("<root><item>a</item><item>b</item></root>"))
	require.NoError(t, err)

	values, err := ExtractFromXML(root, "//item")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values)

	values, err = ExtractFromXML(root, "//missing")
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestGetOrEmpty(t *testing.T) {
	values := []string{"a", "b"}
	assert.Equal(t, "a", GetOrEmpty(values, 0))
	assert.Equal(t, "b", GetOrEmpty(values, 1))
	assert.Equal(t, "", GetOrEmpty(values, 2))
	assert.Equal(t, "", GetOrEmpty(nil, 0))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Collapses whitespace", "  payment   for\tinvoice\n42  ", "payment for invoice 42"},
		{"Strips remittance prefix", "Remittance Info: invoice 42", "invoice 42"},
		{"Strips long remittance prefix", "Remittance Information: invoice 42", "invoice 42"},
		{"Masks IBAN", "transfer to CH9300762011623852957 savings", "transfer to IBAN savings"},
		{"Plain text untouched", "Coffee beans order 42", "Coffee beans order 42"},
		{"Empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CleanText(tc.input))
		})
	}
}
