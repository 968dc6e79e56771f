package journal

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/pos-terminal/model"
)

// JournalRepository keeps a local audit trail of checkout attempts. The backend stays
// the authority for transactions; the journal only records what this terminal sent
// and what came back.
type JournalRepository interface {
	InsertAttempt(ctx context.Context, entry *model.JournalEntry) (uint64, error)
	ListByCashier(ctx context.Context, cashierID uint64, limit int) ([]model.JournalEntry, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewJournalRepository(conn *sqlx.DB) JournalRepository {
	return &SQL{conn: conn}
}

const (
	insertAttemptQuery = `INSERT INTO checkout_journal (session_id, cashier_id, payment_method, total_amount, paid_amount, status, message, invoice_number, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`
	insertItemQuery    = `INSERT INTO checkout_journal_item (journal_id, product_id, quantity) VALUES (?, ?, ?)`
	listByCashierQuery = `SELECT id, session_id, cashier_id, payment_method, total_amount, paid_amount, status, message, invoice_number, created_at
FROM checkout_journal
WHERE cashier_id = ?
ORDER BY id DESC
LIMIT ?`
)

func (s *SQL) InsertAttempt(ctx context.Context, entry *model.JournalEntry) (uint64, error) {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, insertAttemptQuery,
		entry.SessionID, entry.CashierID, entry.PaymentMethod, entry.TotalAmount, entry.PaidAmount,
		entry.Status, entry.Message, entry.InvoiceNumber)
	if err != nil {
		return 0, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, item := range entry.Items {
		if _, err := tx.ExecContext(ctx, insertItemQuery, lastID, item.ProductID.String(), item.Quantity); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true

	entry.ID = uint64(lastID)
	return entry.ID, nil
}

func (s *SQL) ListByCashier(ctx context.Context, cashierID uint64, limit int) ([]model.JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	entries := make([]model.JournalEntry, 0)
	if err := s.conn.SelectContext(ctx, &entries, listByCashierQuery, cashierID, limit); err != nil {
		return nil, err
	}
	return entries, nil
}
