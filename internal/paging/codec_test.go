package paging

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	states := []map[string]int64{
		{},
		{KeyContact: 1},
		{KeyAdministrator: 9007199254740993, KeyTemplate: 4},
	}
	for _, s := range states {
		token, err := codec.Encode(s)
		require.NoError(t, err)
		assert.Equal(t, s, codec.Decode(token))
	}
}

func TestCodecEncodeIsDeterministic(t *testing.T) {
	codec := NewCodec("test-secret")
	a, err := codec.Encode(map[string]int64{KeyContact: 7, KeyTemplate: 3})
	require.NoError(t, err)
	b, err := codec.Encode(map[string]int64{KeyTemplate: 3, KeyContact: 7})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCodecDecodeFailsOpen(t *testing.T) {
	codec := NewCodec("test-secret")

	for _, token := range []string{"", "   ", NoToken, "not-a-valid-token", "a.b.c"} {
		assert.Empty(t, codec.Decode(token), "token %q", token)
	}
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	forged, err := NewCodec("other-secret").Encode(map[string]int64{KeyContact: 100})
	require.NoError(t, err)

	assert.Empty(t, NewCodec("test-secret").Decode(forged))
}

func TestCodecRejectsTamperedPayload(t *testing.T) {
	codec := NewCodec("test-secret")
	token, err := codec.Encode(map[string]int64{KeyContact: 5})
	require.NoError(t, err)

	other, err := codec.Encode(map[string]int64{KeyContact: 500})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	otherParts := strings.Split(other, ".")
	tampered := parts[0] + "." + otherParts[1] + "." + parts[2]

	assert.Empty(t, codec.Decode(tampered))
}

func TestCodecRejectsUnsignedToken(t *testing.T) {
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{KeyContact: 3}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Empty(t, NewCodec("test-secret").Decode(unsigned))
}

func TestCodecDropsNonIntegerClaims(t *testing.T) {
	codec := NewCodec("test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		KeyContact: 12,
		"name":     "alice",
		"ratio":    1.5,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{KeyContact: 12}, codec.Decode(token))
}

func TestCursorParse(t *testing.T) {
	codec := NewCodec("test-secret")

	cur := codec.NewCursor()
	_, ok := cur.Get(KeyContact)
	assert.False(t, ok)
	assert.Equal(t, int64(0), cur.GetOr(KeyContact, 0))

	cur.Set(KeyContact, 41)
	cur.Set(KeyContact, 42)
	token, err := cur.Token()
	require.NoError(t, err)

	parsed := codec.Parse(token)
	v, ok := parsed.Get(KeyContact)
	assert.True(t, ok)
	assert.Equal(t, int64(42), v)

	_, ok = parsed.Get(KeyTemplate)
	assert.False(t, ok, "cursor keys are independent namespaces")
}

func TestNewCodecEmptySecretStillSigns(t *testing.T) {
	codec := NewCodec("")
	token, err := codec.Encode(map[string]int64{KeyTemplate: 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{KeyTemplate: 2}, codec.Decode(token))
}
