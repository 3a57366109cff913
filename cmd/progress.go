package cmd

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/Spydiecy/KalpDrop/api"
	"github.com/Spydiecy/KalpDrop/wallet"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

var spinnerLabels = map[string]string{
	wallet.OpClaim:    "[cyan]Claiming airdrop...[reset]",
	wallet.OpBalance:  "[cyan]Fetching balance...[reset]",
	wallet.OpTransfer: "[cyan]Sending transfer...[reset]",
	wallet.OpSupply:   "[cyan]Fetching total supply...[reset]",
	wallet.OpToken:    "[cyan]Fetching token info...[reset]",
	wallet.OpHistory:  "[cyan]Loading transactions...[reset]",
}

// spinner shows an indeterminate progress bar while any tracked operation is
// pending
type spinner struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	pending map[string]bool
	bar     *progressbar.ProgressBar
	stop    chan struct{}
	done    chan struct{}
}

func newSpinner(disabled bool) *spinner {
	return &spinner{
		out:     os.Stderr,
		enabled: !disabled && term.IsTerminal(int(os.Stderr.Fd())),
		pending: make(map[string]bool),
	}
}

// observe is a wallet.Options.OnChange callback
func (s *spinner) observe(op string, state api.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state.Loading() {
		s.pending[op] = true
	} else {
		delete(s.pending, op)
	}

	if !s.enabled {
		return
	}
	switch {
	case len(s.pending) > 0 && s.bar == nil:
		s.start(spinnerLabels[op])
	case len(s.pending) > 0:
		s.bar.Describe(spinnerLabels[op])
	case s.bar != nil:
		s.halt()
	}
}

// Close stops the spinner if it is still running.
func (s *spinner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bar != nil {
		s.halt()
	}
}

func (s *spinner) start(label string) {
	s.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(s.out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription(label),
		progressbar.OptionClearOnFinish(),
	)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func(bar *progressbar.ProgressBar, stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(s.bar, s.stop, s.done)
}

func (s *spinner) halt() {
	close(s.stop)
	<-s.done
	_ = s.bar.Finish()
	s.bar = nil
}
