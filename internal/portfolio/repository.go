package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quantify701/quantify/internal/contracts"
)

// Repository handles position and scan persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new portfolio repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ contracts.PositionRepository = (*Repository)(nil)
var _ contracts.ScanRepository = (*Repository)(nil)

// CreatePosition inserts a new open position and records the entry trade.
func (r *Repository) CreatePosition(ctx context.Context, p *contracts.Position) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO positions (symbol, shares, entry_price, entry_date, strategy, open)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		p.Symbol, p.Shares, p.EntryPrice, p.EntryDate, p.Strategy,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}

	tradeQuery := `
		INSERT INTO trade_history (symbol, action, shares, price, executed_at, reason)
		VALUES ($1, 'BUY', $2, $3, $4, $5)
	`

	_, err = tx.Exec(ctx, tradeQuery, p.Symbol, p.Shares, p.EntryPrice, p.EntryDate, "Position opened")
	if err != nil {
		return fmt.Errorf("failed to record entry trade: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	p.Open = true
	return nil
}

// ClosePosition marks a position as closed with the realized exit price.
func (r *Repository) ClosePosition(ctx context.Context, id int64, exitPrice float64, closedAt time.Time) error {
	query := `
		UPDATE positions
		SET open = FALSE, exit_price = $2, closed_at = $3
		WHERE id = $1 AND open = TRUE
	`

	result, err := r.pool.Exec(ctx, query, id, exitPrice, closedAt)
	if err != nil {
		return fmt.Errorf("failed to close position: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("open position not found: %d", id)
	}

	return nil
}

// ListOpenPositions retrieves all open positions ordered by entry date.
func (r *Repository) ListOpenPositions(ctx context.Context) ([]contracts.Position, error) {
	query := `
		SELECT id, symbol, shares, entry_price, entry_date, strategy, open, closed_at, exit_price
		FROM positions
		WHERE open = TRUE
		ORDER BY entry_date
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make([]contracts.Position, 0)
	for rows.Next() {
		var p contracts.Position
		err := rows.Scan(
			&p.ID, &p.Symbol, &p.Shares, &p.EntryPrice, &p.EntryDate,
			&p.Strategy, &p.Open, &p.ClosedAt, &p.ExitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	return positions, rows.Err()
}

// RecordTrade appends one executed trade to the history log.
func (r *Repository) RecordTrade(ctx context.Context, t *contracts.Trade) error {
	query := `
		INSERT INTO trade_history (symbol, action, shares, price, executed_at, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		t.Symbol, t.Action, t.Shares, t.Price, t.ExecutedAt, t.Reason,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("failed to record trade: %w", err)
	}

	return nil
}

// ListTrades retrieves recent trades, newest first. An empty symbol
// returns trades across all symbols.
func (r *Repository) ListTrades(ctx context.Context, symbol string, limit int) ([]contracts.Trade, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, symbol, action, shares, price, executed_at, reason
		FROM trade_history
		WHERE ($1 = '' OR symbol = $1)
		ORDER BY executed_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := make([]contracts.Trade, 0)
	for rows.Next() {
		var t contracts.Trade
		err := rows.Scan(&t.ID, &t.Symbol, &t.Action, &t.Shares, &t.Price, &t.ExecutedAt, &t.Reason)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}

	return trades, rows.Err()
}

// SaveScan persists one screening snapshot. Entries for the same
// strategy and scan time replace any earlier snapshot of that moment.
func (r *Repository) SaveScan(ctx context.Context, entries []contracts.ScanEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"DELETE FROM scan_snapshots WHERE strategy = $1 AND scanned_at = $2",
		entries[0].Strategy, entries[0].ScannedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to delete old snapshot: %w", err)
	}

	query := `
		INSERT INTO scan_snapshots (symbol, score, price, buy_signal, reason, strategy, scanned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, e := range entries {
		_, err := tx.Exec(ctx, query,
			e.Symbol, e.Score, e.Price, e.BuySignal, e.Reason, e.Strategy, e.ScannedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert scan entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LatestScan retrieves the most recent snapshot for a strategy,
// ordered by score descending.
func (r *Repository) LatestScan(ctx context.Context, strategy string) ([]contracts.ScanEntry, error) {
	// MAX over an empty set is NULL, so scan through a pointer.
	var latest *time.Time
	err := r.pool.QueryRow(ctx,
		"SELECT MAX(scanned_at) FROM scan_snapshots WHERE strategy = $1",
		strategy,
	).Scan(&latest)
	if err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to find latest snapshot: %w", err)
	}
	if latest == nil {
		return []contracts.ScanEntry{}, nil
	}

	query := `
		SELECT symbol, score, price, buy_signal, reason, strategy, scanned_at
		FROM scan_snapshots
		WHERE strategy = $1 AND scanned_at = $2
		ORDER BY score DESC
	`

	rows, err := r.pool.Query(ctx, query, strategy, latest)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	entries := make([]contracts.ScanEntry, 0)
	for rows.Next() {
		var e contracts.ScanEntry
		err := rows.Scan(&e.Symbol, &e.Score, &e.Price, &e.BuySignal, &e.Reason, &e.Strategy, &e.ScannedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
