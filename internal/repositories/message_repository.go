package repositories

import (
	"context"

	"stitch-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	DB *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{DB: db}
}

const messageColumns = `id, order_id, sender_id, recipient_id, body,
	COALESCE(attachment_url, '') as attachment_url, read_at, created_at`

func (r *MessageRepository) Create(ctx context.Context, m *models.Message) error {
	query := `
		INSERT INTO messages (order_id, sender_id, recipient_id, body, attachment_url)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id, created_at
	`
	return r.DB.QueryRow(ctx, query,
		m.OrderID, m.SenderID, m.RecipientID, m.Body, m.AttachmentURL,
	).Scan(&m.ID, &m.CreatedAt)
}

// ListConversation returns messages between two users, oldest first.
func (r *MessageRepository) ListConversation(ctx context.Context, userA, userB int) ([]*models.Message, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT `+messageColumns+` FROM messages
		WHERE (sender_id=$1 AND recipient_id=$2) OR (sender_id=$2 AND recipient_id=$1)
		ORDER BY created_at ASC`,
		userA, userB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListByOrder returns an order's message thread, oldest first.
func (r *MessageRepository) ListByOrder(ctx context.Context, orderID int) ([]*models.Message, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE order_id=$1 ORDER BY created_at ASC`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *MessageRepository) MarkRead(ctx context.Context, id, recipientID int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE messages SET read_at=NOW() WHERE id=$1 AND recipient_id=$2 AND read_at IS NULL`,
		id, recipientID)
	return err
}

func scanMessages(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*models.Message, error) {
	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.OrderID, &m.SenderID, &m.RecipientID, &m.Body,
			&m.AttachmentURL, &m.ReadAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
