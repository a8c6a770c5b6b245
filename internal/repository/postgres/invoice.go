package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gymflow/gymflow/internal/domain/invoice"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/gymflow/gymflow/internal/postgres"
	"github.com/gymflow/gymflow/internal/types"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

// NewInvoiceRepository creates a new postgres-backed invoice repository
func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

// invoiceRow mirrors the invoices table; nullable cancellation columns are
// folded into the domain model's Cancellation block
type invoiceRow struct {
	ID                 string          `db:"id"`
	InvoiceNumber      *string         `db:"invoice_number"`
	BranchID           string          `db:"branch_id"`
	MemberID           string          `db:"member_id"`
	SalesRepID         *string         `db:"sales_rep_id"`
	Kind               string          `db:"kind"`
	IsProForma         bool            `db:"is_pro_forma"`
	InvoiceStatus      string          `db:"invoice_status"`
	Subtotal           decimal.Decimal `db:"subtotal"`
	TaxTotal           decimal.Decimal `db:"tax_total"`
	Total              decimal.Decimal `db:"total"`
	PaidTotal          decimal.Decimal `db:"paid_total"`
	Pending            decimal.Decimal `db:"pending"`
	RoundingAdjustment decimal.Decimal `db:"rounding_adjustment"`
	DueDate            *time.Time      `db:"due_date"`
	SubmittedAt        *time.Time      `db:"submitted_at"`
	PaidAt             *time.Time      `db:"paid_at"`
	CancelReason       sql.NullString  `db:"cancel_reason"`
	CancelledBy        sql.NullString  `db:"cancelled_by"`
	CancelledAt        sql.NullTime    `db:"cancelled_at"`
	CustomerNote       string          `db:"customer_note"`
	InternalNote       string          `db:"internal_note"`
	DiscountReason     string          `db:"discount_reason"`
	Terms              string          `db:"terms"`
	Metadata           types.Metadata  `db:"metadata"`
	Version            int             `db:"version"`
	OrganizationID     string          `db:"organization_id"`
	Status             string          `db:"status"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
	CreatedBy          string          `db:"created_by"`
	UpdatedBy          string          `db:"updated_by"`
}

func (r invoiceRow) toDomain() *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:                 r.ID,
		InvoiceNumber:      r.InvoiceNumber,
		BranchID:           r.BranchID,
		MemberID:           r.MemberID,
		SalesRepID:         r.SalesRepID,
		Kind:               types.InvoiceKind(r.Kind),
		IsProForma:         r.IsProForma,
		InvoiceStatus:      types.InvoiceStatus(r.InvoiceStatus),
		Subtotal:           r.Subtotal,
		TaxTotal:           r.TaxTotal,
		Total:              r.Total,
		PaidTotal:          r.PaidTotal,
		Pending:            r.Pending,
		RoundingAdjustment: r.RoundingAdjustment,
		DueDate:            r.DueDate,
		SubmittedAt:        r.SubmittedAt,
		PaidAt:             r.PaidAt,
		CustomerNote:       r.CustomerNote,
		InternalNote:       r.InternalNote,
		DiscountReason:     r.DiscountReason,
		Terms:              r.Terms,
		Metadata:           r.Metadata,
		Version:            r.Version,
		BaseModel: types.BaseModel{
			OrganizationID: r.OrganizationID,
			Status:         types.Status(r.Status),
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
			CreatedBy:      r.CreatedBy,
			UpdatedBy:      r.UpdatedBy,
		},
	}
	if r.CancelReason.Valid {
		inv.Cancellation = &invoice.Cancellation{
			Reason:      r.CancelReason.String,
			CancelledBy: r.CancelledBy.String,
			CancelledAt: r.CancelledAt.Time,
		}
	}
	return inv
}

const insertInvoiceQuery = `
	INSERT INTO invoices (
		id, invoice_number, branch_id, member_id, sales_rep_id, kind,
		is_pro_forma, invoice_status, subtotal, tax_total, total, paid_total,
		pending, rounding_adjustment, due_date, submitted_at, paid_at,
		cancel_reason, cancelled_by, cancelled_at, customer_note,
		internal_note, discount_reason, terms, metadata, version,
		organization_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :invoice_number, :branch_id, :member_id, :sales_rep_id, :kind,
		:is_pro_forma, :invoice_status, :subtotal, :tax_total, :total, :paid_total,
		:pending, :rounding_adjustment, :due_date, :submitted_at, :paid_at,
		:cancel_reason, :cancelled_by, :cancelled_at, :customer_note,
		:internal_note, :discount_reason, :terms, :metadata, :version,
		:organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	row := r.toRow(inv)

	if _, err := r.db.GetQuerier(ctx).NamedExec(insertInvoiceQuery, row); err != nil {
		return ierr.WithError(err).
			WithHint("failed to create invoice").
			Mark(ierr.ErrDatabase)
	}

	if err := r.insertLineItems(ctx, inv); err != nil {
		return err
	}
	if err := r.insertPaymentModes(ctx, inv); err != nil {
		return err
	}

	r.logger.Debugw("created invoice", "invoice_id", inv.ID)
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var row invoiceRow
	err := r.db.GetQuerier(ctx).GetContext(ctx, &row,
		`SELECT * FROM invoices WHERE id = $1 AND status != 'deleted'`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.WithError(invoice.ErrInvoiceNotFound).
				WithHintf("invoice %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("failed to get invoice").
			Mark(ierr.ErrDatabase)
	}

	inv := row.toDomain()
	if err := r.loadChildren(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Update persists the full invoice snapshot using optimistic concurrency:
// the write only lands if the stored version still matches the snapshot's,
// so a concurrent edit can never silently drop a payment entry.
func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	oldVersion := inv.Version
	inv.Version = oldVersion + 1
	inv.UpdatedAt = time.Now().UTC()
	if userID := types.GetUserID(ctx); userID != "" {
		inv.UpdatedBy = userID
	}

	row := r.toRow(inv)
	result, err := r.db.GetQuerier(ctx).NamedExec(fmt.Sprintf(`
		UPDATE invoices SET
			invoice_number = :invoice_number,
			invoice_status = :invoice_status,
			is_pro_forma = :is_pro_forma,
			subtotal = :subtotal,
			tax_total = :tax_total,
			total = :total,
			paid_total = :paid_total,
			pending = :pending,
			rounding_adjustment = :rounding_adjustment,
			due_date = :due_date,
			submitted_at = :submitted_at,
			paid_at = :paid_at,
			cancel_reason = :cancel_reason,
			cancelled_by = :cancelled_by,
			cancelled_at = :cancelled_at,
			customer_note = :customer_note,
			internal_note = :internal_note,
			discount_reason = :discount_reason,
			terms = :terms,
			metadata = :metadata,
			version = :version,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id AND version = %d`, oldVersion), row)
	if err != nil {
		inv.Version = oldVersion
		return ierr.WithError(err).
			WithHint("failed to update invoice").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		inv.Version = oldVersion
		return ierr.WithError(err).
			WithHint("failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		inv.Version = oldVersion
		return ierr.NewError("invoice was modified concurrently").
			WithHint("The invoice changed while you were editing it; reload and retry").
			WithReportableDetails(map[string]any{
				"invoice_id": inv.ID,
				"version":    oldVersion,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	// Children are replaced wholesale; the enclosing transaction keeps the
	// swap atomic with the version check above.
	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`DELETE FROM invoice_line_items WHERE invoice_id = $1`, inv.ID); err != nil {
		return ierr.WithError(err).
			WithHint("failed to update invoice line items").
			Mark(ierr.ErrDatabase)
	}
	if _, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		`DELETE FROM invoice_payment_modes WHERE invoice_id = $1`, inv.ID); err != nil {
		return ierr.WithError(err).
			WithHint("failed to update invoice payment modes").
			Mark(ierr.ErrDatabase)
	}
	if err := r.insertLineItems(ctx, inv); err != nil {
		return err
	}
	if err := r.insertPaymentModes(ctx, inv); err != nil {
		return err
	}

	r.logger.Debugw("updated invoice", "invoice_id", inv.ID, "version", inv.Version)
	return nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	where, args := buildInvoiceWhere(filter)

	query := fmt.Sprintf(
		`SELECT * FROM invoices %s ORDER BY %s %s`,
		where, sortColumn(filter.GetSort()), sortOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.GetLimit(), filter.GetOffset())
	}

	var rows []invoiceRow
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	invoices := make([]*invoice.Invoice, len(rows))
	for i, row := range rows {
		inv := row.toDomain()
		if err := r.loadChildren(ctx, inv); err != nil {
			return nil, err
		}
		invoices[i] = inv
	}
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	where, args := buildInvoiceWhere(filter)

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM invoices %s`, where)
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *invoiceRepository) toRow(inv *invoice.Invoice) invoiceRow {
	row := invoiceRow{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		BranchID:           inv.BranchID,
		MemberID:           inv.MemberID,
		SalesRepID:         inv.SalesRepID,
		Kind:               inv.Kind.String(),
		IsProForma:         inv.IsProForma,
		InvoiceStatus:      inv.InvoiceStatus.String(),
		Subtotal:           inv.Subtotal,
		TaxTotal:           inv.TaxTotal,
		Total:              inv.Total,
		PaidTotal:          inv.PaidTotal,
		Pending:            inv.Pending,
		RoundingAdjustment: inv.RoundingAdjustment,
		DueDate:            inv.DueDate,
		SubmittedAt:        inv.SubmittedAt,
		PaidAt:             inv.PaidAt,
		CustomerNote:       inv.CustomerNote,
		InternalNote:       inv.InternalNote,
		DiscountReason:     inv.DiscountReason,
		Terms:              inv.Terms,
		Metadata:           inv.Metadata,
		Version:            inv.Version,
		OrganizationID:     inv.OrganizationID,
		Status:             inv.BaseModel.Status.String(),
		CreatedAt:          inv.CreatedAt,
		UpdatedAt:          inv.UpdatedAt,
		CreatedBy:          inv.CreatedBy,
		UpdatedBy:          inv.UpdatedBy,
	}
	if inv.Cancellation != nil {
		row.CancelReason = sql.NullString{String: inv.Cancellation.Reason, Valid: true}
		row.CancelledBy = sql.NullString{String: inv.Cancellation.CancelledBy, Valid: true}
		row.CancelledAt = sql.NullTime{Time: inv.Cancellation.CancelledAt, Valid: true}
	}
	return row
}

func (r *invoiceRepository) insertLineItems(ctx context.Context, inv *invoice.Invoice) error {
	for _, item := range inv.Items {
		item.InvoiceID = inv.ID
		if _, err := r.db.GetQuerier(ctx).NamedExec(`
			INSERT INTO invoice_line_items (
				id, invoice_id, description, service_id, quantity, unit_price,
				discount_type, discount_value, tax_rate, start_date, expiry_date,
				amount, discount_amount, tax_amount, total,
				organization_id, status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :invoice_id, :description, :service_id, :quantity, :unit_price,
				:discount_type, :discount_value, :tax_rate, :start_date, :expiry_date,
				:amount, :discount_amount, :tax_amount, :total,
				:organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
			)`, item); err != nil {
			return ierr.WithError(err).
				WithHint("failed to create invoice line item").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *invoiceRepository) insertPaymentModes(ctx context.Context, inv *invoice.Invoice) error {
	for i, pm := range inv.PaymentModes {
		pm.InvoiceID = inv.ID
		pm.Position = i
		if _, err := r.db.GetQuerier(ctx).NamedExec(`
			INSERT INTO invoice_payment_modes (
				id, invoice_id, method, amount, position, receipt_number,
				organization_id, status, created_at, updated_at, created_by, updated_by
			) VALUES (
				:id, :invoice_id, :method, :amount, :position, :receipt_number,
				:organization_id, :status, :created_at, :updated_at, :created_by, :updated_by
			)`, pm); err != nil {
			return ierr.WithError(err).
				WithHint("failed to create invoice payment mode").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *invoiceRepository) loadChildren(ctx context.Context, inv *invoice.Invoice) error {
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &inv.Items,
		`SELECT * FROM invoice_line_items WHERE invoice_id = $1 ORDER BY created_at, id`,
		inv.ID); err != nil {
		return ierr.WithError(err).
			WithHint("failed to load invoice line items").
			Mark(ierr.ErrDatabase)
	}
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &inv.PaymentModes,
		`SELECT * FROM invoice_payment_modes WHERE invoice_id = $1 ORDER BY position`,
		inv.ID); err != nil {
		return ierr.WithError(err).
			WithHint("failed to load invoice payment modes").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func buildInvoiceWhere(filter *types.InvoiceFilter) (string, []interface{}) {
	conditions := []string{"status != 'deleted'"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter == nil {
		return "WHERE " + strings.Join(conditions, " AND "), args
	}

	if len(filter.InvoiceIDs) > 0 {
		placeholders := make([]string, len(filter.InvoiceIDs))
		for i, id := range filter.InvoiceIDs {
			placeholders[i] = arg(id)
		}
		conditions = append(conditions, fmt.Sprintf("id IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.MemberID != "" {
		conditions = append(conditions, fmt.Sprintf("member_id = %s", arg(filter.MemberID)))
	}
	if filter.BranchID != "" {
		conditions = append(conditions, fmt.Sprintf("branch_id = %s", arg(filter.BranchID)))
	}
	if filter.InvoiceKind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = %s", arg(filter.InvoiceKind.String())))
	}
	if len(filter.InvoiceStatus) > 0 {
		placeholders := make([]string, len(filter.InvoiceStatus))
		for i, status := range filter.InvoiceStatus {
			placeholders[i] = arg(status.String())
		}
		conditions = append(conditions, fmt.Sprintf("invoice_status IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.IsProForma != nil {
		conditions = append(conditions, fmt.Sprintf("is_pro_forma = %s", arg(*filter.IsProForma)))
	}
	if filter.TimeRangeFilter != nil {
		// half-open window: start inclusive, end exclusive
		if filter.StartTime != nil {
			conditions = append(conditions, fmt.Sprintf("created_at >= %s", arg(*filter.StartTime)))
		}
		if filter.EndTime != nil {
			conditions = append(conditions, fmt.Sprintf("created_at < %s", arg(*filter.EndTime)))
		}
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// sortColumn whitelists sortable columns; anything else falls back to created_at
func sortColumn(sort string) string {
	switch sort {
	case "created_at", "updated_at", "total", "pending", "invoice_number", "due_date":
		return sort
	default:
		return "created_at"
	}
}

func sortOrder(order string) string {
	if strings.EqualFold(order, types.OrderAsc) {
		return "ASC"
	}
	return "DESC"
}
