package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is what a fake gateway saw
type recordedRequest struct {
	Path   string
	Header http.Header
	Body   Envelope
}

type fakeGateway struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (g *fakeGateway) record(t *testing.T, r *http.Request) recordedRequest {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.Unmarshal(raw, &env))

	rec := recordedRequest{Path: r.URL.Path, Header: r.Header.Clone(), Body: env}
	g.mu.Lock()
	g.requests = append(g.requests, rec)
	g.mu.Unlock()
	return rec
}

func (g *fakeGateway) all() []recordedRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]recordedRequest(nil), g.requests...)
}

func newTestServer(t *testing.T, gw *fakeGateway, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gw.record(t, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIKey = func() string { return "test-key" }
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestCallEnvelope(t *testing.T) {
	gw := &fakeGateway{}
	server := newTestServer(t, gw, http.StatusOK, `{"result":{"result":1}}`)
	client := NewClient(testConfig(server.URL))

	cases := []map[string]any{
		{},
		{"account": "addr1"},
		{"from": "a", "to": "b", "value": float64(10)},
		{"nested": map[string]any{"list": []any{"x", float64(2), true}}},
	}
	for _, args := range cases {
		_, err := client.Call(context.Background(), server.URL+"/v1/contract/kalp/query/c/M", args)
		require.NoError(t, err)
	}

	reqs := gw.all()
	require.Len(t, reqs, len(cases))
	for i, rec := range reqs {
		assert.Equal(t, NetworkTestnet, rec.Body.Network)
		assert.Equal(t, DefaultBlockchain, rec.Body.Blockchain)
		assert.Equal(t, DefaultWalletAddress, rec.Body.WalletAddress)
		assert.Equal(t, cases[i], rec.Body.Args)
		assert.Equal(t, "application/json", rec.Header.Get("Content-Type"))
		assert.Equal(t, "test-key", rec.Header.Get(DefaultAPIKeyHeader))
	}
}

func TestCallNilArgsSentAsEmptyObject(t *testing.T) {
	var raw []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Call(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"args":{}`)
}

func TestCallInjectedIdentity(t *testing.T) {
	gw := &fakeGateway{}
	server := newTestServer(t, gw, http.StatusOK, `{}`)

	cfg := testConfig(server.URL)
	cfg.Network = NetworkMainnet
	cfg.Blockchain = "KALP2"
	cfg.WalletAddress = "deadbeef"
	cfg.APIKeyHeader = "auth"
	_, err := NewClient(cfg).Call(context.Background(), server.URL, map[string]any{})
	require.NoError(t, err)

	rec := gw.all()[0]
	assert.Equal(t, NetworkMainnet, rec.Body.Network)
	assert.Equal(t, "KALP2", rec.Body.Blockchain)
	assert.Equal(t, "deadbeef", rec.Body.WalletAddress)
	assert.Equal(t, "test-key", rec.Header.Get("auth"))
	assert.Empty(t, rec.Header.Get(DefaultAPIKeyHeader))
}

func TestCallReadsAPIKeyPerCall(t *testing.T) {
	gw := &fakeGateway{}
	server := newTestServer(t, gw, http.StatusOK, `{}`)

	key := "first"
	cfg := testConfig(server.URL)
	cfg.APIKey = func() string { return key }
	client := NewClient(cfg)

	_, err := client.Call(context.Background(), server.URL, nil)
	require.NoError(t, err)
	key = ""
	_, err = client.Call(context.Background(), server.URL, nil)
	require.NoError(t, err, "an empty key is sent as-is")

	reqs := gw.all()
	assert.Equal(t, "first", reqs[0].Header.Get(DefaultAPIKeyHeader))
	assert.Equal(t, "", reqs[1].Header.Get(DefaultAPIKeyHeader))
}

func TestCallSuccessReturnsBodyUnchanged(t *testing.T) {
	body := `{"status":200,"result":{"result":42,"extra":["a"]}}`
	server := newTestServer(t, &fakeGateway{}, http.StatusOK, body)

	resp, err := NewClient(testConfig(server.URL)).Call(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, body, string(resp.Body))
}

func TestCallRemoteErrorWithMessage(t *testing.T) {
	server := newTestServer(t, &fakeGateway{}, http.StatusBadRequest, `{"message":"insufficient funds"}`)

	_, err := NewClient(testConfig(server.URL)).Call(context.Background(), server.URL, nil)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Equal(t, "insufficient funds", remote.Message)
	assert.Equal(t, "insufficient funds", err.Error())
}

func TestCallRemoteErrorWithoutMessage(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":""}`, `{"error":"x"}`, `[1,2]`, `"oops"`} {
		server := newTestServer(t, &fakeGateway{}, http.StatusInternalServerError, body)

		_, err := NewClient(testConfig(server.URL)).Call(context.Background(), server.URL, nil)
		var remote *RemoteError
		require.ErrorAs(t, err, &remote, body)
		assert.Equal(t, GenericErrorMessage, remote.Message, body)
		assert.NotEmpty(t, err.Error())
	}
}

func TestCallMalformedResponse(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadGateway} {
		server := newTestServer(t, &fakeGateway{}, status, `<html>bad gateway</html>`)

		_, err := NewClient(testConfig(server.URL)).Call(context.Background(), server.URL, nil)
		var malformed *MalformedResponseError
		require.ErrorAs(t, err, &malformed)
		assert.Equal(t, status, malformed.StatusCode)
	}
}

func TestCallEmptyBodyIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL)).Call(context.Background(), server.URL, nil)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestCallNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(testConfig(url))
	_, err := client.Call(context.Background(), url, nil)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, url, netErr.Endpoint)
	assert.False(t, client.Loading())
}

func TestCallTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	cfg := testConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond
	client := NewClient(cfg)

	_, err := client.Call(context.Background(), server.URL, nil)
	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, client.Loading())
}

func TestCallCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// a drained body lets the server notice the client going away
		io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := NewClient(testConfig(server.URL)).Call(ctx, server.URL, nil)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallInvalidEndpoint(t *testing.T) {
	client := NewClient(testConfig("http://unused"))
	for _, endpoint := range []string{"", "/v1/contract/kalp/query/c/M", "not a url", "http://"} {
		_, err := client.Call(context.Background(), endpoint, nil)
		assert.True(t, errors.Is(err, ErrInvalidEndpoint), endpoint)
	}
	assert.False(t, client.Loading())
}

func TestLoadingDuringCall(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusInternalServerError} {
		entered := make(chan struct{})
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
			w.WriteHeader(status)
			io.WriteString(w, `{"message":"boom"}`)
		}))

		client := NewClient(testConfig(server.URL))
		assert.False(t, client.Loading())

		done := make(chan error, 1)
		go func() {
			_, err := client.Call(context.Background(), server.URL, nil)
			done <- err
		}()

		<-entered
		assert.True(t, client.Loading(), "loading while in flight")
		close(release)
		err := <-done
		assert.False(t, client.Loading(), "loading cleared after completion")
		if status == http.StatusOK {
			assert.NoError(t, err)
		} else {
			assert.Error(t, err)
		}
		server.Close()
	}
}

func TestEndpoint(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://gw.example", ContractID: "abc"})
	assert.Equal(t, "https://gw.example/v1/contract/kalp/invoke/abc/Claim", client.Endpoint(OpClaim))
	assert.Equal(t, "https://gw.example/v1/contract/kalp/query/abc/BalanceOf", client.Endpoint(OpBalanceOf))
}

func TestConfigDefaults(t *testing.T) {
	cfg := NewClient(Config{}).Config()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultContractID, cfg.ContractID)
	assert.Equal(t, NetworkTestnet, cfg.Network)
	assert.Equal(t, DefaultBlockchain, cfg.Blockchain)
	assert.Equal(t, DefaultWalletAddress, cfg.WalletAddress)
	assert.Equal(t, DefaultAPIKeyHeader, cfg.APIKeyHeader)
	assert.NotNil(t, cfg.APIKey)
}

func TestEnvAPIKeySource(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvPublicAPIKey, "public")
	assert.Equal(t, "public", EnvAPIKeySource())

	t.Setenv(EnvAPIKey, "primary")
	assert.Equal(t, "primary", EnvAPIKeySource())
}
