package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gymflow/gymflow/internal/domain/invoice"
	"github.com/gymflow/gymflow/internal/types"
)

var _ invoice.SequenceProvider = (*InMemorySequenceProvider)(nil)

// InMemorySequenceProvider hands out branch-scoped invoice numbers and counts
// every call, so tests can assert that resubmission never burns a second
// number.
type InMemorySequenceProvider struct {
	mu    sync.Mutex
	cfg   types.InvoiceNumberConfig
	last  map[string]int64
	calls int
}

func NewInMemorySequenceProvider() *InMemorySequenceProvider {
	return &InMemorySequenceProvider{
		cfg:  types.DefaultInvoiceNumberConfig(),
		last: make(map[string]int64),
	}
}

func (p *InMemorySequenceProvider) NextInvoiceNumber(ctx context.Context, branchID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++

	yearMonth := time.Now().UTC().Format(p.cfg.DateFormat)
	key := branchID + ":" + yearMonth

	if _, ok := p.last[key]; !ok {
		p.last[key] = p.cfg.StartSequence - 1
	}
	p.last[key]++

	parts := []string{
		p.cfg.Prefix,
		branchID,
		yearMonth,
		fmt.Sprintf("%0*d", p.cfg.SuffixLength, p.last[key]),
	}
	return strings.Join(parts, p.cfg.Separator), nil
}

// Calls returns how many numbers have been handed out
func (p *InMemorySequenceProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Clear resets all sequences and the call counter
func (p *InMemorySequenceProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = make(map[string]int64)
	p.calls = 0
}
