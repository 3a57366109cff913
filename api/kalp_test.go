package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testContract = "contract123"

func newTestContract(t *testing.T, body string) (*Contract, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{}
	server := newTestServer(t, gw, http.StatusOK, body)
	cfg := testConfig(server.URL)
	cfg.ContractID = testContract
	return NewContract(NewClient(cfg)), gw
}

func TestClaim(t *testing.T) {
	contract, gw := newTestContract(t, `{"status":"ok"}`)

	resp, err := contract.Claim(context.Background(), "addr1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Body))

	rec := gw.all()[0]
	assert.Equal(t, "/v1/contract/kalp/invoke/"+testContract+"/Claim", rec.Path)
	assert.Equal(t, map[string]any{"amount": float64(100), "address": "addr1"}, rec.Body.Args)
}

func TestBalanceOf(t *testing.T) {
	contract, gw := newTestContract(t, `{"result":{"result":42}}`)

	resp, err := contract.BalanceOf(context.Background(), "addr1")
	require.NoError(t, err)

	rec := gw.all()[0]
	assert.Equal(t, "/v1/contract/kalp/query/"+testContract+"/BalanceOf", rec.Path)
	assert.Equal(t, map[string]any{"account": "addr1"}, rec.Body.Args)

	balance, err := resp.Decimal(DefaultResultPath)
	require.NoError(t, err)
	assert.Equal(t, "42", balance.String())
}

func TestTransferFrom(t *testing.T) {
	contract, gw := newTestContract(t, `{}`)

	_, err := contract.TransferFrom(context.Background(), "a", "b", 10)
	require.NoError(t, err)

	rec := gw.all()[0]
	assert.Equal(t, "/v1/contract/kalp/invoke/"+testContract+"/TransferFrom", rec.Path)
	assert.Equal(t, map[string]any{"from": "a", "to": "b", "value": float64(10)}, rec.Body.Args)
}

func TestTransferFromDoesNotValidate(t *testing.T) {
	contract, gw := newTestContract(t, `{}`)

	_, err := contract.TransferFrom(context.Background(), "", "", -5)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"from": "", "to": "", "value": float64(-5)}, gw.all()[0].Body.Args)
}

func TestTotalSupply(t *testing.T) {
	contract, gw := newTestContract(t, `{"result":{"result":300}}`)

	_, err := contract.TotalSupply(context.Background())
	require.NoError(t, err)

	rec := gw.all()[0]
	assert.Equal(t, "/v1/contract/kalp/query/"+testContract+"/TotalSupply", rec.Path)
	assert.Equal(t, map[string]any{}, rec.Body.Args)
}

func TestTotalSupplyConcurrentCallsAreNotDeduplicated(t *testing.T) {
	const calls = 5

	var (
		mu      sync.Mutex
		arrived int
	)
	allArrived := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		arrived++
		if arrived == calls {
			close(allArrived)
		}
		mu.Unlock()
		// every request is held until all of them are in flight
		<-allArrived
		io.WriteString(w, `{"result":{"result":1}}`)
	}))
	defer server.Close()

	contract := NewContract(NewClient(testConfig(server.URL)))

	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := contract.TotalSupply(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, calls, arrived)
}

func TestReadOnlyQueries(t *testing.T) {
	contract, gw := newTestContract(t, `{"result":{"result":"KalpDrop"}}`)
	ctx := context.Background()

	resp, err := contract.Name(ctx)
	require.NoError(t, err)
	name, err := resp.String(DefaultResultPath)
	require.NoError(t, err)
	assert.Equal(t, "KalpDrop", name)

	_, err = contract.Symbol(ctx)
	require.NoError(t, err)
	_, err = contract.TransactionHistory(ctx, "addr1")
	require.NoError(t, err)

	reqs := gw.all()
	require.Len(t, reqs, 3)
	assert.Equal(t, "/v1/contract/kalp/query/"+testContract+"/Name", reqs[0].Path)
	assert.Equal(t, "/v1/contract/kalp/query/"+testContract+"/Symbol", reqs[1].Path)
	assert.Equal(t, "/v1/contract/kalp/query/"+testContract+"/GetTransactionHistory", reqs[2].Path)
	assert.Equal(t, map[string]any{"address": "addr1"}, reqs[2].Body.Args)
}

func TestFacadePropagatesErrors(t *testing.T) {
	gw := &fakeGateway{}
	server := newTestServer(t, gw, http.StatusUnauthorized, `{"message":"invalid api key"}`)
	contract := NewContract(NewClient(testConfig(server.URL)))

	_, err := contract.Claim(context.Background(), "addr1")
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnauthorized, remote.StatusCode)
	assert.Equal(t, "invalid api key", remote.Message)
}
