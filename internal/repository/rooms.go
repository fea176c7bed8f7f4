package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mizusaki/kaiwa/backend/internal/model/chat"
)

// CreateRoom inserts a new room row.
func (s *Store) CreateRoom(ctx context.Context, room chat.Room) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO rooms (id, name, owner, created_at) VALUES ($1, $2, $3, $4)`,
		room.ID, room.Name, room.Owner, room.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

// GetRoom fetches one room by id, ErrNotFound on miss.
func (s *Store) GetRoom(ctx context.Context, id string) (chat.Room, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, owner, created_at FROM rooms WHERE id = $1`, id)

	var room chat.Room
	if err := row.Scan(&room.ID, &room.Name, &room.Owner, &room.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat.Room{}, ErrNotFound
		}
		return chat.Room{}, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}

// RoomsByOwner returns all rooms owned by the given user.
func (s *Store) RoomsByOwner(ctx context.Context, owner string) ([]chat.Room, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, owner, created_at FROM rooms WHERE owner = $1`, owner)
	if err != nil {
		return nil, fmt.Errorf("query rooms by owner: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

// RoomsByIDs resolves a set of room ids in one batched lookup. Ids that no
// longer exist are simply absent from the result; no ordering is promised.
func (s *Store) RoomsByIDs(ctx context.Context, ids []string) ([]chat.Room, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, owner, created_at FROM rooms WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("batch get rooms: %w", err)
	}
	defer rows.Close()

	return scanRooms(rows)
}

func scanRooms(rows pgx.Rows) ([]chat.Room, error) {
	rooms := []chat.Room{}
	for rows.Next() {
		var room chat.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Owner, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rooms: %w", err)
	}
	return rooms, nil
}
