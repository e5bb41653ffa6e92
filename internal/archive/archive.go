// Package archive keeps an optional local transcript of a room session in
// SQLite. Every message applied by the reconciler is upserted here, so the
// transcript mirrors the backend's final word on each message (edits and
// delete flags included) rather than a keystroke log.
package archive

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/adamavenir/murmur/internal/types"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS murmur_messages (
  message_id TEXT NOT NULL,            -- backend-assigned id
  room_id TEXT NOT NULL,
  ts INTEGER NOT NULL,                 -- backend timestamp, unix millis
  sender TEXT NOT NULL,
  content TEXT,
  image_url TEXT,
  mentioned_users TEXT,                -- JSON array
  reply_to TEXT,
  deleted_by TEXT,                     -- JSON array
  deleted_for_everyone INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (room_id, message_id)
);

CREATE INDEX IF NOT EXISTS idx_murmur_messages_room_ts ON murmur_messages(room_id, ts);
`

// Store is a transcript archive for one or more rooms.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive database in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite", filepath.Join(dir, "murmur.db"))
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Store{db: conn}, nil
}

// Record upserts a message's current state into the transcript.
func (s *Store) Record(roomID string, msg types.Message) error {
	mentioned, err := json.Marshal(msg.MentionedUsers)
	if err != nil {
		return err
	}
	deletedBy, err := json.Marshal(msg.DeletedBy)
	if err != nil {
		return err
	}

	var replyTo any
	if msg.ReplyToMessageID != nil {
		replyTo = *msg.ReplyToMessageID
	}
	deletedForAll := 0
	if msg.DeletedForAll {
		deletedForAll = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO murmur_messages
			(message_id, room_id, ts, sender, content, image_url, mentioned_users, reply_to, deleted_by, deleted_for_everyone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (room_id, message_id) DO UPDATE SET
			ts = excluded.ts,
			sender = excluded.sender,
			content = excluded.content,
			image_url = excluded.image_url,
			mentioned_users = excluded.mentioned_users,
			reply_to = excluded.reply_to,
			deleted_by = excluded.deleted_by,
			deleted_for_everyone = excluded.deleted_for_everyone
	`, msg.MessageID, roomID, msg.TimeStamp, msg.Sender, msg.Content, msg.ImageURL,
		string(mentioned), replyTo, string(deletedBy), deletedForAll)
	return err
}

// Messages returns the archived messages for a room, oldest first.
func (s *Store) Messages(roomID string) ([]types.Message, error) {
	rows, err := s.db.Query(`
		SELECT message_id, ts, sender, content, image_url, mentioned_users, reply_to, deleted_by, deleted_for_everyone
		FROM murmur_messages
		WHERE room_id = ?
		ORDER BY ts, message_id
	`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Message
	for rows.Next() {
		var (
			msg           types.Message
			mentioned     string
			deletedBy     string
			replyTo       sql.NullString
			deletedForAll int
		)
		if err := rows.Scan(&msg.MessageID, &msg.TimeStamp, &msg.Sender, &msg.Content,
			&msg.ImageURL, &mentioned, &replyTo, &deletedBy, &deletedForAll); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(mentioned), &msg.MentionedUsers); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(deletedBy), &msg.DeletedBy); err != nil {
			return nil, err
		}
		if replyTo.Valid {
			value := replyTo.String
			msg.ReplyToMessageID = &value
		}
		msg.DeletedForAll = deletedForAll != 0
		out = append(out, msg)
	}
	return out, rows.Err()
}

// Close closes the archive database.
func (s *Store) Close() error {
	return s.db.Close()
}
