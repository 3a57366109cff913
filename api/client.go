package api

// API Client-
//
// Files:
//   config.go    - gateway defaults and the Config injected into a Client
//   types.go     - Envelope, Operation, Transaction and the error taxonomy
//   base.go      - Request Client (Client, NewClient, Call, in-flight tracking)
//   response.go  - Response and path helpers (result.result extraction)
//   kalp.go      - Operation facade (Contract: Claim, BalanceOf, TransferFrom, ...)
//   state.go     - per-operation call state and response fencing (Tracker)
//
// Usage:
//   client := api.NewClient(api.DefaultConfig())
//   contract := api.NewContract(client)
//   resp, err := contract.BalanceOf(ctx, "c7c7894e...")
//   balance, err := resp.Decimal(api.DefaultResultPath)
