package solana

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
)

// MetaplexProgramID is the Metaplex Token Metadata program.
const MetaplexProgramID = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"

// TokenMetadata holds the name and symbol of a token from its Metaplex account.
type TokenMetadata struct {
	Name   string
	Symbol string
	URI    string
}

// MetadataFetcher reads Metaplex token metadata through an RPCClient.
type MetadataFetcher struct {
	rpc RPCClient
}

// NewMetadataFetcher creates a new MetadataFetcher.
func NewMetadataFetcher(rpc RPCClient) *MetadataFetcher {
	return &MetadataFetcher{rpc: rpc}
}

// MetadataAddress derives the Metaplex metadata PDA for a mint.
// Seeds: ["metadata", metaplex_program_id, mint]
func MetadataAddress(mint string) (string, error) {
	mintBytes, err := DecodeAddress(mint)
	if err != nil {
		return "", err
	}
	programBytes, err := DecodeAddress(MetaplexProgramID)
	if err != nil {
		return "", err
	}

	pda, _, err := FindProgramAddress([][]byte{[]byte("metadata"), programBytes, mintBytes}, MetaplexProgramID)
	return pda, err
}

// Fetch returns the token metadata for a mint.
// Returns nil, nil if the metadata account does not exist.
func (f *MetadataFetcher) Fetch(ctx context.Context, mint string) (*TokenMetadata, error) {
	pda, err := MetadataAddress(mint)
	if err != nil {
		return nil, fmt.Errorf("derive metadata address: %w", err)
	}

	info, err := f.rpc.GetAccountInfo(ctx, pda)
	if err != nil {
		return nil, fmt.Errorf("get metadata account %s: %w", pda, err)
	}
	if info == nil {
		return nil, nil
	}

	return ParseMetaplexData(info.Data)
}

// ParseMetaplexData parses base64 Metaplex Token Metadata account data.
// Layout:
// - key: u8 (4 for MetadataV1)
// - updateAuthority: Pubkey (32 bytes)
// - mint: Pubkey (32 bytes)
// - name, symbol, uri: borsh strings (u32 length + bytes), NUL padded
func ParseMetaplexData(data string) (*TokenMetadata, error) {
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if len(decoded) < 1+2*PublicKeyLength {
		return nil, fmt.Errorf("metadata too short: %d bytes", len(decoded))
	}
	if decoded[0] != 4 {
		return nil, fmt.Errorf("unexpected metadata key %d", decoded[0])
	}

	r := borshReader{buf: decoded, off: 1 + 2*PublicKeyLength}
	meta := &TokenMetadata{}
	if meta.Name, err = r.string(64); err != nil {
		return nil, fmt.Errorf("read name: %w", err)
	}
	if meta.Symbol, err = r.string(16); err != nil {
		return nil, fmt.Errorf("read symbol: %w", err)
	}
	if meta.URI, err = r.string(256); err != nil {
		return nil, fmt.Errorf("read uri: %w", err)
	}
	return meta, nil
}

type borshReader struct {
	buf []byte
	off int
}

// string reads a length-prefixed string, rejecting lengths above max.
func (r *borshReader) string(max int) (string, error) {
	if r.off+4 > len(r.buf) {
		return "", fmt.Errorf("truncated length at offset %d", r.off)
	}
	n := int(binary.LittleEndian.Uint32(r.buf[r.off:]))
	r.off += 4
	if n > max || r.off+n > len(r.buf) {
		return "", fmt.Errorf("invalid length %d at offset %d", n, r.off)
	}
	s := strings.TrimRight(string(r.buf[r.off:r.off+n]), "\x00")
	r.off += n
	return s, nil
}
