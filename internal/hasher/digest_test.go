package hasher

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestDigestPayload_IgnoresFieldOrder(t *testing.T) {
	first := decodeJSON(t, `{"a":1,"b":{"c":2,"d":[1,2,3]}}`)
	second := decodeJSON(t, `{"b":{"d":[1,2,3],"c":2},"a":1}`)

	firstDigest, err := DigestPayload(first)
	require.NoError(t, err)
	secondDigest, err := DigestPayload(second)
	require.NoError(t, err)

	assert.Equal(t, firstDigest, secondDigest)
	assert.Len(t, firstDigest, 32)
}

func TestDigestPayload_SensitiveToValues(t *testing.T) {
	first, err := DigestPayload(decodeJSON(t, `{"a":1}`))
	require.NoError(t, err)
	second, err := DigestPayload(decodeJSON(t, `{"a":2}`))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestStripTookFields(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		stripped string
	}{
		{
			name:     "top level",
			raw:      `{"took":0.003,"a":1}`,
			stripped: `{"a":1}`,
		},
		{
			name:     "nested in object",
			raw:      `{"a":{"took":1,"b":2}}`,
			stripped: `{"a":{"b":2}}`,
		},
		{
			name:     "nested in list",
			raw:      `{"items":[{"took":1,"id":7},{"id":8}]}`,
			stripped: `{"items":[{"id":7},{"id":8}]}`,
		},
		{
			name:     "scalar passthrough",
			raw:      `[1,"took",true,null]`,
			stripped: `[1,"took",true,null]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DigestPayload(StripTookFields(decodeJSON(t, tt.raw)))
			require.NoError(t, err)
			want, err := DigestPayload(decodeJSON(t, tt.stripped))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestDigestPayload_TookPresenceDoesNotAffectHash(t *testing.T) {
	withTook := StripTookFields(decodeJSON(t, `{"a":1,"nested":{"took":9}}`))
	withoutTook := StripTookFields(decodeJSON(t, `{"a":1,"nested":{}}`))

	first, err := DigestPayload(withTook)
	require.NoError(t, err)
	second, err := DigestPayload(withoutTook)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCombineHashes_DeterministicAndOrderSensitive(t *testing.T) {
	hashes := []string{"aaaa", "bbbb", "cccc"}

	combined := CombineHashes(hashes)
	assert.Equal(t, combined, CombineHashes([]string{"aaaa", "bbbb", "cccc"}))
	assert.Len(t, combined, 32)

	swapped := CombineHashes([]string{"bbbb", "aaaa", "cccc"})
	assert.NotEqual(t, combined, swapped)
}
