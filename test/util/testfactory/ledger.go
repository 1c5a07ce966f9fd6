package testfactory

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
)

// TokenAccountSize is the size of a token program account.
const TokenAccountSize = 165

type ledgerAccount struct {
	owner solana.PublicKey
	data  []byte
}

// Ledger is a JSON-RPC endpoint answering getAccountInfo from an in-memory
// account set.
type Ledger struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]ledgerAccount
}

// NewLedger starts a Ledger that is closed when t finishes.
func NewLedger(t testing.TB) *Ledger {
	l := &Ledger{accounts: make(map[string]ledgerAccount)}
	l.Server = httptest.NewServer(http.HandlerFunc(l.serveRPC))
	t.Cleanup(l.Close)
	return l
}

// SetAccount stores data owned by owner at address.
func (l *Ledger) SetAccount(address, owner solana.PublicKey, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[address.String()] = ledgerAccount{owner: owner, data: data}
}

// SetTokenAccount stores a token program account at address.
func (l *Ledger) SetTokenAccount(address, owner, mint solana.PublicKey, amount uint64) {
	l.SetAccount(address, solana.TokenProgramID, TokenAccountData(mint, owner, amount))
}

// SetVaultHolding stores a token account at the associated token address of
// (owner, mint) and returns that address.
func (l *Ledger) SetVaultHolding(owner, mint solana.PublicKey, amount uint64) solana.PublicKey {
	address, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		panic(err)
	}
	l.SetTokenAccount(address, owner, mint, amount)
	return address
}

func (l *Ledger) serveRPC(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var address string
	if req.Method != "getAccountInfo" || len(req.Params) == 0 || json.Unmarshal(req.Params[0], &address) != nil {
		http.Error(w, "unsupported request", http.StatusBadRequest)
		return
	}

	l.mu.Lock()
	account, ok := l.accounts[address]
	l.mu.Unlock()

	var value any
	if ok {
		value = map[string]any{
			"data":       []string{base64.StdEncoding.EncodeToString(account.data), "base64"},
			"executable": false,
			"lamports":   2039280,
			"owner":      account.owner.String(),
			"rentEpoch":  0,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      req.ID,
		"result": map[string]any{
			"context": map[string]any{"slot": 1},
			"value":   value,
		},
	})
}

// TokenAccountData encodes the token program account layout.
func TokenAccountData(mint, owner solana.PublicKey, amount uint64) []byte {
	data := make([]byte, TokenAccountSize)
	copy(data[0:32], mint[:])
	copy(data[32:64], owner[:])
	binary.LittleEndian.PutUint64(data[64:72], amount)
	data[108] = 1 // initialized
	return data
}
