package solana

import (
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"11111111111111111111111111111111", true},
		{MetaplexProgramID, true},
		{"6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P", true},
		{"", false},
		{"not-base58-0OIl", false},
		{"abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidAddress(tt.addr))
		})
	}
}

func TestDecodeAddress_WrongLength(t *testing.T) {
	_, err := DecodeAddress(base58.Encode([]byte{1, 2, 3}))
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestFindProgramAddress(t *testing.T) {
	mint := "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"

	pda1, err := MetadataAddress(mint)
	require.NoError(t, err)
	pda2, err := MetadataAddress(mint)
	require.NoError(t, err)

	assert.Equal(t, pda1, pda2, "derivation must be deterministic")
	assert.True(t, IsValidAddress(pda1))

	raw, err := DecodeAddress(pda1)
	require.NoError(t, err)
	assert.False(t, isOnCurve(raw), "PDA must be off curve")

	other, err := MetadataAddress("11111111111111111111111111111111")
	require.NoError(t, err)
	assert.NotEqual(t, pda1, other)
}

func TestFindProgramAddress_InvalidProgram(t *testing.T) {
	_, _, err := FindProgramAddress([][]byte{[]byte("x")}, "bad")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

// encodeMetaplex builds a MetadataV1 account body.
func encodeMetaplex(name, symbol, uri string) string {
	buf := []byte{4}
	buf = append(buf, make([]byte, 64)...)
	for _, s := range []string{name, symbol, uri} {
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(s)))
		buf = append(buf, l[:]...)
		buf = append(buf, s...)
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func TestParseMetaplexData(t *testing.T) {
	meta, err := ParseMetaplexData(encodeMetaplex("Anubis\x00\x00\x00", "ANB\x00", "https://example.com/a.json"))
	require.NoError(t, err)
	assert.Equal(t, "Anubis", meta.Name)
	assert.Equal(t, "ANB", meta.Symbol)
	assert.Equal(t, "https://example.com/a.json", meta.URI)
}

func TestParseMetaplexData_Invalid(t *testing.T) {
	_, err := ParseMetaplexData("!!!")
	assert.Error(t, err)

	_, err = ParseMetaplexData(base64.StdEncoding.EncodeToString([]byte{4, 1, 2}))
	assert.Error(t, err)

	wrongKey := []byte{1}
	wrongKey = append(wrongKey, make([]byte, 80)...)
	_, err = ParseMetaplexData(base64.StdEncoding.EncodeToString(wrongKey))
	assert.Error(t, err)
}
