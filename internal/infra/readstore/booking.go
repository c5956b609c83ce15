package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"crafty-kid/internal/infra"
	"crafty-kid/internal/infra/db"
	"crafty-kid/internal/pkg/pgconv"
	"crafty-kid/internal/usecase/queries"
)

const bookingViewQuery = `
SELECT b.id, b.parent_id, b.status, b.amount_cents, b.payment_intent_id, b.receipt_url,
       c.id AS class_id, c.title AS class_title, i.display_name AS instructor_name,
       v.name AS venue_name, cs.starts_at, cs.ends_at, b.created_at, b.updated_at
FROM bookings b
JOIN class_schedules cs ON cs.id = b.schedule_id
JOIN classes c ON c.id = cs.class_id
JOIN instructors i ON i.id = c.instructor_id
JOIN venues v ON v.id = c.venue_id`

const findBookingByIDQuery = bookingViewQuery + `
WHERE b.id = $1`

const findBookingsByParentQuery = bookingViewQuery + `
WHERE b.parent_id = $1
ORDER BY b.created_at DESC, b.id DESC`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, findBookingByIDQuery, id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByParent(ctx context.Context, parentID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, findBookingsByParentQuery, parentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by parent", err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view            queries.BookingView
		paymentIntentID pgtype.Text
		receiptURL      pgtype.Text
	)
	err := row.Scan(
		&view.ID,
		&view.ParentID,
		&view.Status,
		&view.AmountCents,
		&paymentIntentID,
		&receiptURL,
		&view.ClassID,
		&view.ClassTitle,
		&view.InstructorName,
		&view.VenueName,
		&view.StartsAt,
		&view.EndsAt,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	view.PaymentIntentID = pgconv.StringPtrFromPgtype(paymentIntentID)
	view.ReceiptURL = pgconv.StringPtrFromPgtype(receiptURL)
	return &view, nil
}
