package wallet

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// tracked operation names, passed to Options.OnChange
const (
	OpClaim    = "claim"
	OpBalance  = "balance"
	OpTransfer = "transfer"
	OpSupply   = "supply"
	OpToken    = "token"
	OpHistory  = "history"
)

// ErrNoAccount is returned when no account was given and none is configured.
var ErrNoAccount = errors.New("no account address given")

// Options configures a Manager
type Options struct {
	// Account is the address whose balance is shown and refreshed after
	// claims and transfers.
	Account string
	// ResultPath locates numeric values in query responses.
	ResultPath string
	Logger     *zap.SugaredLogger
	// OnChange observes every state transition of every tracked operation.
	OnChange func(op string, state api.State)
}

// TokenInfo summarises the deployed token
type TokenInfo struct {
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	TotalSupply decimal.Decimal `json:"total_supply"`
}

// Manager holds the state a user sees: their balance and the total number of
// tokens claimed. It chains the follow-up refreshes the airdrop flow needs.
type Manager struct {
	contract   *api.Contract
	log        *zap.SugaredLogger
	resultPath string

	mu      sync.RWMutex
	account string
	balance decimal.Decimal
	supply  decimal.Decimal

	trackers map[string]*api.Tracker
}

// NewManager creates a new wallet manager
func NewManager(contract *api.Contract, opts Options) *Manager {
	if opts.ResultPath == "" {
		opts.ResultPath = api.DefaultResultPath
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}

	m := &Manager{
		contract:   contract,
		log:        opts.Logger,
		resultPath: opts.ResultPath,
		account:    opts.Account,
		trackers:   make(map[string]*api.Tracker),
	}
	for _, op := range []string{OpClaim, OpBalance, OpTransfer, OpSupply, OpToken, OpHistory} {
		op := op
		var onChange func(api.State)
		if opts.OnChange != nil {
			onChange = func(s api.State) { opts.OnChange(op, s) }
		}
		m.trackers[op] = api.NewTracker(onChange)
	}
	return m
}

// Account returns the address whose balance is displayed
func (m *Manager) Account() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.account
}

// SetAccount changes the displayed account and resets its balance.
func (m *Manager) SetAccount(account string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if account != m.account {
		m.balance = decimal.Zero
	}
	m.account = account
}

// Balance returns the last applied balance
func (m *Manager) Balance() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balance
}

// TotalSupply returns the last applied total supply
func (m *Manager) TotalSupply() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.supply
}

// State returns the status of a tracked operation.
func (m *Manager) State(op string) api.State {
	if t, ok := m.trackers[op]; ok {
		return t.State()
	}
	return api.State{}
}

// Loading reports whether any gateway call is in flight.
func (m *Manager) Loading() bool {
	return m.contract.Client().Loading()
}

// Config returns the gateway configuration of the underlying client.
func (m *Manager) Config() api.Config {
	return m.contract.Client().Config()
}

// IsTestnet returns true if the gateway client targets testnet
func (m *Manager) IsTestnet() bool {
	return m.Config().Network == api.NetworkTestnet
}

// GetCurrentNetwork returns the network the gateway client targets
func (m *Manager) GetCurrentNetwork() string {
	return m.Config().Network
}

func (m *Manager) resolve(account string) (string, error) {
	if account == "" {
		account = m.Account()
	}
	if account == "" {
		return "", ErrNoAccount
	}
	return account, nil
}

// RefreshBalance queries the balance of account (the configured account when
// empty). The queried value is always returned; it is only published as the
// displayed balance when no newer balance was applied meanwhile.
func (m *Manager) RefreshBalance(ctx context.Context, account string) (decimal.Decimal, error) {
	account, err := m.resolve(account)
	if err != nil {
		return decimal.Zero, err
	}

	var value decimal.Decimal
	_, applied, err := m.trackers[OpBalance].Do(ctx,
		func(ctx context.Context) (*api.Response, error) {
			resp, err := m.contract.BalanceOf(ctx, account)
			if err != nil {
				return nil, err
			}
			if value, err = resp.Decimal(m.resultPath); err != nil {
				return resp, fmt.Errorf("failed to read balance: %w", err)
			}
			return resp, nil
		},
		func(*api.Response) error {
			m.mu.Lock()
			m.account = account
			m.balance = value
			m.mu.Unlock()
			return nil
		},
	)
	if err != nil {
		return decimal.Zero, err
	}
	if !applied {
		m.log.Debugw("stale balance response not displayed", "account", account, "balance", value)
	}
	return value, nil
}

// RefreshSupply queries the total supply. Like RefreshBalance it returns its
// own result and publishes it only when no newer value was applied.
func (m *Manager) RefreshSupply(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.Decimal
	_, applied, err := m.trackers[OpSupply].Do(ctx,
		func(ctx context.Context) (*api.Response, error) {
			resp, err := m.contract.TotalSupply(ctx)
			if err != nil {
				return nil, err
			}
			if value, err = resp.Decimal(m.resultPath); err != nil {
				return resp, fmt.Errorf("failed to read total supply: %w", err)
			}
			return resp, nil
		},
		func(*api.Response) error {
			m.mu.Lock()
			m.supply = value
			m.mu.Unlock()
			return nil
		},
	)
	if err != nil {
		return decimal.Zero, err
	}
	if !applied {
		m.log.Debugw("stale total supply response not displayed", "supply", value)
	}
	return value, nil
}

// Claim requests the airdrop for address (the configured account when empty),
// then refreshes the total supply and the claimer's balance. Refresh failures
// are logged and kept in their operation state; they do not fail the claim.
func (m *Manager) Claim(ctx context.Context, address string) (*api.Response, error) {
	address, err := m.resolve(address)
	if err != nil {
		return nil, err
	}

	resp, _, err := m.trackers[OpClaim].Do(ctx,
		func(ctx context.Context) (*api.Response, error) {
			return m.contract.Claim(ctx, address)
		}, nil)
	if err != nil {
		return nil, err
	}

	if _, err := m.RefreshSupply(ctx); err != nil {
		m.log.Warnw("total supply refresh after claim failed", "error", err)
	}
	if _, err := m.RefreshBalance(ctx, address); err != nil {
		m.log.Warnw("balance refresh after claim failed", "account", address, "error", err)
	}
	return resp, nil
}

// Transfer moves value tokens from one account to another and, on success,
// refreshes the displayed balance (of the configured account, or of from when
// none is set).
func (m *Manager) Transfer(ctx context.Context, from, to string, value int64) (*api.Response, error) {
	resp, _, err := m.trackers[OpTransfer].Do(ctx,
		func(ctx context.Context) (*api.Response, error) {
			return m.contract.TransferFrom(ctx, from, to, value)
		}, nil)
	if err != nil {
		return nil, err
	}

	account := m.Account()
	if account == "" {
		account = from
	}
	if _, err := m.RefreshBalance(ctx, account); err != nil {
		m.log.Warnw("balance refresh after transfer failed", "account", account, "error", err)
	}
	return resp, nil
}

// TokenInfo fetches the token name, symbol and total supply in parallel.
func (m *Manager) TokenInfo(ctx context.Context) (*TokenInfo, error) {
	seq := m.trackers[OpToken].Begin()

	var (
		wg                 sync.WaitGroup
		info               TokenInfo
		nameErr, symbolErr error
		supplyErr          error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		resp, err := m.contract.Name(ctx)
		if err == nil {
			info.Name, err = resp.String(m.resultPath)
		}
		nameErr = err
	}()
	go func() {
		defer wg.Done()
		resp, err := m.contract.Symbol(ctx)
		if err == nil {
			info.Symbol, err = resp.String(m.resultPath)
		}
		symbolErr = err
	}()
	go func() {
		defer wg.Done()
		info.TotalSupply, supplyErr = m.RefreshSupply(ctx)
	}()
	wg.Wait()

	err := errors.Join(
		wrapErr("name", nameErr),
		wrapErr("symbol", symbolErr),
		wrapErr("total supply", supplyErr),
	)
	if _, err := m.trackers[OpToken].Finish(seq, nil, err, nil); err != nil {
		return &info, err
	}
	return &info, nil
}

// History returns the transaction history of address (the configured account
// when empty), newest first.
func (m *Manager) History(ctx context.Context, address string) ([]api.Transaction, error) {
	address, err := m.resolve(address)
	if err != nil {
		return nil, err
	}

	var txs []api.Transaction
	_, _, err = m.trackers[OpHistory].Do(ctx,
		func(ctx context.Context) (*api.Response, error) {
			return m.contract.TransactionHistory(ctx, address)
		},
		func(resp *api.Response) error {
			err := resp.Decode(m.resultPath, &txs)
			// an address without history comes back as null
			if errors.Is(err, api.ErrFieldNotFound) {
				return nil
			}
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Time > txs[j].Time })
	return txs, nil
}

func wrapErr(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to fetch %s: %w", what, err)
}
