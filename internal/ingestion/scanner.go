// Package ingestion pages historical transactions out of Solana RPC.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/TraderofBozz/Anubis-Bot/internal/solana"
)

// Default scanner configuration.
const (
	DefaultPageSize       = 1000
	DefaultPageDelay      = 500 * time.Millisecond
	DefaultRetryDelay     = 2 * time.Second
	DefaultMaxRetryDelay  = 30 * time.Second
	DefaultMaxPageRetries = 5
)

// ErrRetriesExhausted is returned when a page keeps failing past MaxPageRetries.
var ErrRetriesExhausted = errors.New("page retries exhausted")

// VisitFunc receives each new transaction in the window, newest first.
// Returning an error aborts the scan.
type VisitFunc func(tx *solana.Transaction) error

// Options contains configuration for creating a Scanner.
type Options struct {
	PageSize      int           // signatures per page
	PageDelay     time.Duration // pause between pages
	RetryDelay    time.Duration // first backoff after a failed page
	MaxRetryDelay time.Duration
	// MaxPageRetries bounds retries of one cursor. Zero uses
	// DefaultMaxPageRetries, a negative value retries forever.
	MaxPageRetries int
	Logger         *log.Logger
	// Sleep waits for d or until ctx is done. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// ScanStats counts what a scan observed.
type ScanStats struct {
	Pages        int
	Signatures   int
	Duplicates   int
	FailedTx     int // signatures whose summary carries an error
	FetchErrors  int // getTransaction failures, skipped
	Missing      int // signatures the node returned no transaction for
	PageRetries  int
	Visited      int
	ReachedLimit bool // stopped at the cutoff rather than an empty page; in totals, any scan did
}

func (s *ScanStats) add(o ScanStats) {
	s.Pages += o.Pages
	s.Signatures += o.Signatures
	s.Duplicates += o.Duplicates
	s.FailedTx += o.FailedTx
	s.FetchErrors += o.FetchErrors
	s.Missing += o.Missing
	s.PageRetries += o.PageRetries
	s.Visited += o.Visited
	s.ReachedLimit = s.ReachedLimit || o.ReachedLimit
}

// Scanner walks a program's signature history backward until a cutoff.
// A Scanner owns its dedup set: a signature visited once is never visited
// again, across every program it scans.
type Scanner struct {
	rpc   solana.RPCClient
	opts  Options
	seen  map[string]struct{}
	total ScanStats
}

// NewScanner creates a new Scanner.
func NewScanner(rpc solana.RPCClient, opts Options) *Scanner {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PageDelay == 0 {
		opts.PageDelay = DefaultPageDelay
	}
	if opts.RetryDelay == 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.MaxRetryDelay == 0 {
		opts.MaxRetryDelay = DefaultMaxRetryDelay
	}
	if opts.MaxPageRetries == 0 {
		opts.MaxPageRetries = DefaultMaxPageRetries
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}

	return &Scanner{
		rpc:  rpc,
		opts: opts,
		seen: make(map[string]struct{}),
	}
}

// Seen reports whether a signature has already been visited.
func (s *Scanner) Seen(signature string) bool {
	_, ok := s.seen[signature]
	return ok
}

// Stats returns totals across every Scan call.
func (s *Scanner) Stats() ScanStats {
	return s.total
}

// Scan pages getSignaturesForAddress(program) from newest to oldest and
// calls visit for every unseen, successful transaction.
// The scan ends on an empty page or at the first signature older than cutoff,
// judged by the summary's block time or, when that is missing, the transaction's.
func (s *Scanner) Scan(ctx context.Context, program string, cutoff time.Time, visit VisitFunc) (ScanStats, error) {
	var stats ScanStats
	defer func() { s.total.add(stats) }()

	cutoffSec := cutoff.Unix()
	before := ""

	for {
		page, retries, err := s.fetchPage(ctx, program, before)
		stats.PageRetries += retries
		if err != nil {
			return stats, err
		}
		if len(page) == 0 {
			return stats, nil
		}
		stats.Pages++

		for _, sig := range page {
			if sig.BlockTime != nil && *sig.BlockTime < cutoffSec {
				stats.ReachedLimit = true
				return stats, nil
			}
			stats.Signatures++

			if s.Seen(sig.Signature) {
				stats.Duplicates++
				continue
			}
			s.seen[sig.Signature] = struct{}{}

			if sig.Err != nil {
				stats.FailedTx++
				continue
			}

			tx, err := s.rpc.GetTransaction(ctx, sig.Signature)
			if err != nil {
				if ctx.Err() != nil {
					return stats, ctx.Err()
				}
				stats.FetchErrors++
				s.opts.Logger.Printf("Skipping %s: get transaction: %v", sig.Signature, err)
				continue
			}
			if tx == nil {
				stats.Missing++
				continue
			}
			if tx.BlockTime == nil {
				tx.BlockTime = sig.BlockTime
			}
			if tx.BlockTime != nil && *tx.BlockTime < cutoffSec {
				stats.ReachedLimit = true
				return stats, nil
			}

			stats.Visited++
			if err := visit(tx); err != nil {
				return stats, err
			}
		}

		before = page[len(page)-1].Signature

		if err := s.opts.Sleep(ctx, s.opts.PageDelay); err != nil {
			return stats, err
		}
	}
}

// fetchPage retries the same cursor with exponential backoff until it
// succeeds, the retry bound is hit or ctx is done.
func (s *Scanner) fetchPage(ctx context.Context, program, before string) ([]solana.SignatureInfo, int, error) {
	delay := s.opts.RetryDelay
	retries := 0

	for {
		page, err := s.rpc.GetSignaturesForAddress(ctx, program, &solana.SignaturesOpts{
			Before: before,
			Limit:  s.opts.PageSize,
		})
		if err == nil {
			return page, retries, nil
		}
		if ctx.Err() != nil {
			return nil, retries, ctx.Err()
		}
		if s.opts.MaxPageRetries > 0 && retries >= s.opts.MaxPageRetries {
			return nil, retries, fmt.Errorf("%w: program %s before %q: %v", ErrRetriesExhausted, program, before, err)
		}

		retries++
		s.opts.Logger.Printf("Page fetch failed for %s (before=%q), retry %d in %v: %v", program, before, retries, delay, err)
		if err := s.opts.Sleep(ctx, delay); err != nil {
			return nil, retries, err
		}
		delay *= 2
		if delay > s.opts.MaxRetryDelay {
			delay = s.opts.MaxRetryDelay
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
