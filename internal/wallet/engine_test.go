package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"

	"seamless_wallet/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore simulates an unavailable storage layer
type failingStore struct{}

var errStorageDown = errors.New("storage down")

func (failingStore) Read(ctx context.Context) (int64, error)                  { return 0, errStorageDown }
func (failingStore) ApplyDelta(ctx context.Context, delta int64) (int64, error) { return 0, errStorageDown }
func (failingStore) DebitIf(ctx context.Context, amount int64) (int64, error)   { return 0, errStorageDown }
func (failingStore) Reset(ctx context.Context) (int64, error)                 { return 0, errStorageDown }

func TestEngine_GetBalance(t *testing.T) {
	engine := NewEngine(store.NewMemoryStore(1000000))

	res, err := engine.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CodeOK, res.Code)
	assert.Equal(t, int64(1000000), res.Balance)
	assert.Empty(t, res.Message)

	// Reading twice with no intervening mutation returns the same value
	again, err := engine.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res.Balance, again.Balance)
}

func TestEngine_Cancel(t *testing.T) {
	engine := NewEngine(store.NewMemoryStore(555))

	// Cancel is a pure balance query: same result as getBalance, no mutation
	res, err := engine.Cancel(context.Background())
	require.NoError(t, err)
	assert.Equal(t, CodeOK, res.Code)
	assert.Equal(t, int64(555), res.Balance)

	after, err := engine.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(555), after.Balance)
}

func TestEngine_Bet(t *testing.T) {
	tests := []struct {
		name        string
		seed        int64
		amount      int64
		wantCode    int
		wantBalance int64
		wantMessage string
	}{
		{name: "valid bet debits balance", seed: 1000000, amount: 200, wantCode: CodeOK, wantBalance: 999800},
		{name: "bet of entire balance", seed: 500, amount: 500, wantCode: CodeOK, wantBalance: 0},
		{name: "zero amount rejected", seed: 1000, amount: 0, wantCode: CodeValidationError, wantBalance: 1000, wantMessage: MsgInvalidBet},
		{name: "negative amount rejected", seed: 1000, amount: -50, wantCode: CodeValidationError, wantBalance: 1000, wantMessage: MsgInvalidBet},
		{name: "amount above balance rejected", seed: 1000, amount: 1001, wantCode: CodeValidationError, wantBalance: 1000, wantMessage: MsgInvalidBet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemoryStore(tt.seed)
			engine := NewEngine(st)

			res, err := engine.Bet(context.Background(), tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantBalance, res.Balance)
			assert.Equal(t, tt.wantMessage, res.Message)

			// The stored balance must agree with the reported one
			stored, err := st.Read(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, stored)
		})
	}
}

func TestEngine_Settlement(t *testing.T) {
	tests := []struct {
		name        string
		seed        int64
		amount      int64
		wantCode    int
		wantBalance int64
		wantMessage string
	}{
		{name: "valid settlement credits balance", seed: 999800, amount: 500, wantCode: CodeOK, wantBalance: 1000300},
		{name: "no upper bound on credit", seed: 0, amount: 10000000, wantCode: CodeOK, wantBalance: 10000000},
		{name: "zero amount rejected", seed: 1000, amount: 0, wantCode: CodeValidationError, wantBalance: 1000, wantMessage: MsgInvalidSettlement},
		{name: "negative amount rejected", seed: 1000, amount: -5, wantCode: CodeValidationError, wantBalance: 1000, wantMessage: MsgInvalidSettlement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemoryStore(tt.seed)
			engine := NewEngine(st)

			res, err := engine.Settlement(context.Background(), tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, res.Code)
			assert.Equal(t, tt.wantBalance, res.Balance)
			assert.Equal(t, tt.wantMessage, res.Message)

			stored, err := st.Read(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, stored)
		})
	}
}

func TestEngine_Scenario(t *testing.T) {
	// Seed 1,000,000 -> bet 200 -> settlement 500 -> oversized bet rejected
	engine := NewEngine(store.NewMemoryStore(1000000))

	res, err := engine.Bet(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, CodeOK, res.Code)
	assert.Equal(t, int64(999800), res.Balance)

	res, err = engine.Settlement(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, CodeOK, res.Code)
	assert.Equal(t, int64(1000300), res.Balance)

	res, err = engine.Bet(context.Background(), 2000000)
	require.NoError(t, err)
	assert.Equal(t, CodeValidationError, res.Code)
	assert.Equal(t, MsgInvalidBet, res.Message)
	assert.Equal(t, int64(1000300), res.Balance)
}

func TestEngine_StorageFailure(t *testing.T) {
	engine := NewEngine(failingStore{})

	_, err := engine.GetBalance(context.Background())
	assert.ErrorIs(t, err, errStorageDown)

	_, err = engine.Bet(context.Background(), 100)
	assert.ErrorIs(t, err, errStorageDown)

	_, err = engine.Settlement(context.Background(), 100)
	assert.ErrorIs(t, err, errStorageDown)
}

func TestEngine_ConcurrentBets(t *testing.T) {
	// N concurrent valid bets summing to exactly the seed: every bet must
	// win once and the final balance must be zero
	const workers = 50
	const amount = 20
	st := store.NewMemoryStore(workers * amount)
	engine := NewEngine(st)

	var wg sync.WaitGroup
	balances := make([]int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := engine.Bet(context.Background(), amount)
			assert.NoError(t, err)
			assert.Equal(t, CodeOK, res.Code)
			balances[i] = res.Balance
		}(i)
	}
	wg.Wait()

	final, err := st.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), final)

	// Every reported balance must sit on the linearized order of debits:
	// each is a distinct multiple of the bet amount below the seed
	seen := make(map[int64]bool)
	for _, b := range balances {
		assert.GreaterOrEqual(t, b, int64(0))
		assert.Zero(t, b%amount)
		assert.False(t, seen[b], "two bets reported the same post-debit balance")
		seen[b] = true
	}
}

func TestEngine_ConcurrentBetsNeverOverdraw(t *testing.T) {
	// More bets than the balance can cover: the losers get code 1 and the
	// balance never goes negative
	const workers = 40
	const amount = 10
	st := store.NewMemoryStore(100) // Covers only 10 of the 40 bets
	engine := NewEngine(st)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var won int
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := engine.Bet(context.Background(), amount)
			assert.NoError(t, err)
			if res.Code == CodeOK {
				mu.Lock()
				won++
				mu.Unlock()
			} else {
				assert.Equal(t, MsgInvalidBet, res.Message)
			}
		}()
	}
	wg.Wait()

	final, err := st.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, won)
	assert.Equal(t, int64(0), final)
}
