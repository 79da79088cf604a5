package solana

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRPCServer serves JSON-RPC responses built by result for each decoded request.
func newRPCServer(t *testing.T, result func(req rpcRequest) interface{}) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result(req),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPClient_GetTransaction(t *testing.T) {
	server := newRPCServer(t, func(req rpcRequest) interface{} {
		assert.Equal(t, "getTransaction", req.Method)
		return map[string]interface{}{
			"slot":      int64(123456),
			"blockTime": int64(1700000000),
			"meta": map[string]interface{}{
				"err":          nil,
				"logMessages":  []string{"Program log: Instruction: Create"},
				"preBalances":  []uint64{5_000_000_000, 0, 0, 1},
				"postBalances": []uint64{3_500_000_000, 0, 0, 1},
				"loadedAddresses": map[string]interface{}{
					"writable": []string{"loadedW"},
					"readonly": []string{"loadedR"},
				},
			},
			"transaction": map[string]interface{}{
				"message": map[string]interface{}{
					"accountKeys": []string{"payer", "mintSigner", "bondingCurve", "program"},
					"header": map[string]interface{}{
						"numRequiredSignatures":       2,
						"numReadonlySignedAccounts":   0,
						"numReadonlyUnsignedAccounts": 1,
					},
				},
			},
		}
	})

	client := NewHTTPClient(server.URL)
	tx, err := client.GetTransaction(context.Background(), "testsig123")
	require.NoError(t, err)
	require.NotNil(t, tx)

	assert.Equal(t, int64(123456), tx.Slot)
	require.NotNil(t, tx.BlockTime)
	assert.Equal(t, int64(1700000000), *tx.BlockTime)
	assert.False(t, tx.Failed())
	assert.Equal(t, []string{"Program log: Instruction: Create"}, tx.LogMessages())
	assert.Equal(t, []uint64{5_000_000_000, 0, 0, 1}, tx.Meta.PreBalances)
	assert.Equal(t, uint64(3_500_000_000), tx.Meta.PostBalances[0])

	require.NotNil(t, tx.Message)
	assert.Equal(t, []AccountKey{
		{Pubkey: "payer", Signer: true, Writable: true},
		{Pubkey: "mintSigner", Signer: true, Writable: true},
		{Pubkey: "bondingCurve", Writable: true},
		{Pubkey: "program"},
		{Pubkey: "loadedW", Writable: true},
		{Pubkey: "loadedR"},
	}, tx.Message.AccountKeys)
}

func TestHTTPClient_GetTransaction_NotFound(t *testing.T) {
	server := newRPCServer(t, func(rpcRequest) interface{} { return nil })

	client := NewHTTPClient(server.URL)
	tx, err := client.GetTransaction(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestHTTPClient_GetTransaction_Failed(t *testing.T) {
	server := newRPCServer(t, func(rpcRequest) interface{} {
		return map[string]interface{}{
			"slot": int64(1),
			"meta": map[string]interface{}{
				"err": map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}},
			},
		}
	})

	client := NewHTTPClient(server.URL)
	tx, err := client.GetTransaction(context.Background(), "failed")
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.True(t, tx.Failed())
	assert.Nil(t, tx.BlockTime)
	assert.Nil(t, tx.Message)
}

func TestHTTPClient_GetSignaturesForAddress(t *testing.T) {
	var gotParams []interface{}
	server := newRPCServer(t, func(req rpcRequest) interface{} {
		assert.Equal(t, "getSignaturesForAddress", req.Method)
		gotParams = req.Params
		return []map[string]interface{}{
			{"signature": "sig2", "slot": int64(101), "blockTime": int64(1700000100), "err": nil},
			{"signature": "sig1", "slot": int64(100), "blockTime": nil, "err": map[string]interface{}{"x": 1}},
		}
	})

	client := NewHTTPClient(server.URL)
	sigs, err := client.GetSignaturesForAddress(context.Background(), "program", &SignaturesOpts{Before: "sig3", Limit: 2})
	require.NoError(t, err)
	require.Len(t, sigs, 2)

	assert.Equal(t, "sig2", sigs[0].Signature)
	require.NotNil(t, sigs[0].BlockTime)
	assert.Equal(t, int64(1700000100), *sigs[0].BlockTime)
	assert.Nil(t, sigs[1].BlockTime)
	assert.NotNil(t, sigs[1].Err)

	require.Len(t, gotParams, 2)
	assert.Equal(t, "program", gotParams[0])
	cfg, ok := gotParams[1].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "sig3", cfg["before"])
	assert.Equal(t, float64(2), cfg["limit"])
}

func TestHTTPClient_Retry(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  []interface{}{},
		})
	}))
	defer server.Close()

	var observed []string
	client := NewHTTPClient(server.URL,
		WithRetryDelay(10*time.Millisecond),
		WithMaxRetries(3),
		WithObserver(func(method string, _ time.Duration, err error) {
			assert.NoError(t, err)
			observed = append(observed, method)
		}),
	)

	sigs, err := client.GetSignaturesForAddress(context.Background(), "program", nil)
	require.NoError(t, err)
	assert.Empty(t, sigs)
	assert.Equal(t, int32(3), attempts.Load())
	assert.Equal(t, []string{"getSignaturesForAddress"}, observed)
}

func TestHTTPClient_RPCError(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"error":   map[string]interface{}{"code": -32602, "message": "Invalid params"},
		})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, WithRetryDelay(time.Millisecond))
	_, err := client.GetTransaction(context.Background(), "sig")
	require.Error(t, err)

	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, -32602, rpcErr.Code)
	assert.Equal(t, int32(1), attempts.Load(), "RPC errors are not retried")
}

func TestHTTPClient_GetAccountInfo(t *testing.T) {
	server := newRPCServer(t, func(req rpcRequest) interface{} {
		assert.Equal(t, "getAccountInfo", req.Method)
		if req.Params[0] == "missing" {
			return map[string]interface{}{"value": nil}
		}
		return map[string]interface{}{
			"value": map[string]interface{}{
				"lamports":   uint64(1461600),
				"owner":      MetaplexProgramID,
				"data":       []string{"BAAA", "base64"},
				"executable": false,
				"rentEpoch":  uint64(361),
			},
		}
	})

	client := NewHTTPClient(server.URL)

	info, err := client.GetAccountInfo(context.Background(), "account")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, uint64(1461600), info.Lamports)
	assert.Equal(t, MetaplexProgramID, info.Owner)
	assert.Equal(t, "BAAA", info.Data)

	info, err = client.GetAccountInfo(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestHTTPClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, WithRetryDelay(time.Second), WithMaxRetries(5))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetSignaturesForAddress(ctx, "program", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLamportsToSOL(t *testing.T) {
	assert.Equal(t, 1.5, LamportsToSOL(1_500_000_000))
	assert.Equal(t, 0.0, LamportsToSOL(0))
}
