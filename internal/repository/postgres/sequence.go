package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gymflow/gymflow/internal/config"
	"github.com/gymflow/gymflow/internal/domain/invoice"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
)

type branchSequenceProvider struct {
	db     *postgres.DB
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewBranchSequenceProvider creates the postgres-backed invoice number
// provider. The increment happens in a single upsert so two concurrent first
// submissions in one branch can never draw the same value.
func NewBranchSequenceProvider(db *postgres.DB, cfg *config.Configuration, logger *logger.Logger) invoice.SequenceProvider {
	return &branchSequenceProvider{db: db, cfg: cfg, logger: logger}
}

func (p *branchSequenceProvider) NextInvoiceNumber(ctx context.Context, branchID string) (string, error) {
	numberCfg := p.cfg.Invoice.Number

	loc := time.UTC
	if numberCfg.Timezone != "" {
		if parsed, err := time.LoadLocation(numberCfg.Timezone); err == nil {
			loc = parsed
		}
	}
	yearMonth := time.Now().In(loc).Format(numberCfg.DateFormat)

	var branchCode string
	if err := p.db.GetQuerier(ctx).GetContext(ctx, &branchCode,
		`SELECT code FROM branches WHERE id = $1`, branchID); err != nil {
		return "", ierr.WithError(err).
			WithHintf("branch %s was not found", branchID).
			Mark(ierr.ErrNotFound)
	}

	// Atomic get-next-and-increment; RETURNING makes the read and bump one
	// statement.
	query := `
		INSERT INTO invoice_sequences (branch_id, year_month, last_value, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (branch_id, year_month) DO UPDATE
		SET last_value = invoice_sequences.last_value + 1,
			updated_at = CURRENT_TIMESTAMP
		RETURNING last_value`

	var lastValue int64
	if err := p.db.GetQuerier(ctx).QueryRowContext(ctx, query,
		branchID, yearMonth, numberCfg.StartSequence).Scan(&lastValue); err != nil {
		return "", ierr.WithError(err).
			WithHint("invoice number generation failed").
			Mark(ierr.ErrDatabase)
	}

	p.logger.Infow("generated invoice number",
		"branch_id", branchID,
		"year_month", yearMonth,
		"sequence", lastValue)

	parts := []string{numberCfg.Prefix, branchCode, yearMonth,
		fmt.Sprintf("%0*d", numberCfg.SuffixLength, lastValue)}
	return strings.Join(parts, numberCfg.Separator), nil
}
