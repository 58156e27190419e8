// Package numerator provides bill number generation.
// Numbers have the form BILL<YYYYMMDD><NNNN>: the current calendar date plus
// a 4-digit per-day sequence.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"droppos/pkg/logger"
)

// Strategy defines how the per-day sequence is obtained.
type Strategy int

const (
	// StrategyAtomic allocates the sequence with a per-day UPSERT counter,
	// UPDATE ... RETURNING. Run inside the bill commit transaction it
	// row-locks the day's counter, so concurrent commits serialize and can
	// never produce a duplicate number.
	StrategyAtomic Strategy = iota

	// StrategyCounted derives the sequence as (count of bills created
	// today) + 1. Two concurrent callers can read the same count and
	// collide; kept for compatibility with deployments that expect gap-free
	// numbers after a bulk clear.
	StrategyCounted
)

// Config holds numbering configuration.
type Config struct {
	// Prefix added to all numbers.
	Prefix string

	// DateFormat renders the date component.
	DateFormat string

	// PadWidth is the sequence width (default 4).
	PadWidth int
}

// DefaultConfig returns the bill numbering defaults.
func DefaultConfig() Config {
	return Config{
		Prefix:     "BILL",
		DateFormat: "20060102",
		PadWidth:   4,
	}
}

// Querier interface for database operations. The transaction manager
// satisfies it, routing queries to the active transaction when one is in
// the context.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Service generates bill numbers.
type Service struct {
	querier  Querier
	cfg      Config
	strategy Strategy
}

// New creates a numerator service.
func New(querier Querier, cfg Config, strategy Strategy) *Service {
	if cfg.Prefix == "" {
		cfg = DefaultConfig()
	}
	return &Service{
		querier:  querier,
		cfg:      cfg,
		strategy: strategy,
	}
}

// Next generates the next bill number for the given instant. The date
// component is at's local calendar date.
func (s *Service) Next(ctx context.Context, at time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}

	var seq int64
	var err error

	switch s.strategy {
	case StrategyCounted:
		seq = s.nextCounted(ctx, at)
	case StrategyAtomic:
		fallthrough
	default:
		seq, err = s.nextAtomic(ctx, at)
	}

	if err != nil {
		return "", err
	}

	return s.format(at, seq), nil
}

// nextAtomic bumps the per-day counter with UPSERT + RETURNING.
func (s *Service) nextAtomic(ctx context.Context, at time.Time) (int64, error) {
	var seq int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO bill_sequences (day, current_val)
        VALUES ($1, 1)
        ON CONFLICT (day) DO UPDATE SET current_val = bill_sequences.current_val + 1
        RETURNING current_val
	`, at.Format("2006-01-02")).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("atomic next: %w", err)
	}
	return seq, nil
}

// nextCounted derives the sequence from the count of bills already created
// on at's calendar date. When the count query fails the sequence falls back
// to 1 rather than failing the caller; the unique constraint on bill_number
// is the final guard.
func (s *Service) nextCounted(ctx context.Context, at time.Time) int64 {
	var count int64
	err := s.querier.QueryRow(ctx, `
        SELECT COUNT(*) FROM bills
        WHERE created_at::date = $1
	`, at.Format("2006-01-02")).Scan(&count)
	if err != nil {
		logger.Warn(ctx, "bill count query failed, falling back to sequence 1",
			"error", err)
		return 1
	}
	return count + 1
}

// format renders the final number string.
func (s *Service) format(at time.Time, seq int64) string {
	padWidth := s.cfg.PadWidth
	if padWidth == 0 {
		padWidth = 4
	}
	return fmt.Sprintf("%s%s%0*d", s.cfg.Prefix, at.Format(s.cfg.DateFormat), padWidth, seq)
}

// ParseSequence extracts the numeric sequence suffix from a formatted bill
// number. Returns -1 if the number does not match the configured shape.
func ParseSequence(cfg Config, formatted string) int64 {
	if cfg.Prefix == "" {
		cfg = DefaultConfig()
	}
	rest, ok := strings.CutPrefix(formatted, cfg.Prefix)
	if !ok {
		return -1
	}
	dateLen := len(time.Now().Format(cfg.DateFormat))
	if len(rest) <= dateLen {
		return -1
	}
	seq, err := strconv.ParseInt(rest[dateLen:], 10, 64)
	if err != nil {
		return -1
	}
	return seq
}
