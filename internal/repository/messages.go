package repository

import (
	"context"
	"fmt"

	"github.com/mizusaki/kaiwa/backend/internal/model/chat"
)

// CreateMessage inserts a new message row.
func (s *Store) CreateMessage(ctx context.Context, msg chat.Message) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO messages (id, room_id, author, text, created_at) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.RoomID, msg.User, msg.Text, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// MessagesByRoom returns up to limit messages for a room, newest first.
func (s *Store) MessagesByRoom(ctx context.Context, roomID string, limit int) ([]chat.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, room_id, author, text, created_at
		 FROM messages WHERE room_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		roomID, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages by room: %w", err)
	}
	defer rows.Close()

	messages := []chat.Message{}
	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(&msg.ID, &msg.RoomID, &msg.User, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}
	return messages, nil
}

// RoomIDsByAuthor returns the room ids of up to limit messages authored by
// the given user, one entry per message. Deduplication is the caller's job.
func (s *Store) RoomIDsByAuthor(ctx context.Context, author string, limit int) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT room_id FROM messages WHERE author = $1 LIMIT $2`,
		author, limit)
	if err != nil {
		return nil, fmt.Errorf("query room ids by author: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan room id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read room ids: %w", err)
	}
	return ids, nil
}
