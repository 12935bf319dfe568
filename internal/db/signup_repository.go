package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Signup repository errors.
var (
	ErrSignupNotFound = errors.New("signup not found")
	ErrInvalidSignup  = errors.New("invalid signup")
)

// timeLayout is fixed-width so text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Signup delivery states.
const (
	SignupDelivered = "delivered"
	SignupFailed    = "failed"
)

// Signup is one stored waitlist submission.
type Signup struct {
	ID        string    `json:"id" yaml:"id"`
	Email     string    `json:"email" yaml:"email"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
	Status    string    `json:"status" yaml:"status"`
	MessageID string    `json:"messageId,omitempty" yaml:"messageId,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// SignupQuery filters List results.
type SignupQuery struct {
	Status string
	Since  *time.Time
	Limit  int
}

// SignupRepository handles signup persistence.
type SignupRepository struct {
	db *DB
}

// NewSignupRepository creates a new SignupRepository.
func NewSignupRepository(db *DB) *SignupRepository {
	return &SignupRepository{db: db}
}

// Create inserts a signup, assigning ID and CreatedAt when unset.
func (r *SignupRepository) Create(ctx context.Context, signup *Signup) error {
	if signup == nil || strings.TrimSpace(signup.Email) == "" || signup.Status == "" {
		return ErrInvalidSignup
	}
	if signup.ID == "" {
		signup.ID = uuid.New().String()
	}
	if signup.CreatedAt.IsZero() {
		signup.CreatedAt = time.Now().UTC()
	} else {
		signup.CreatedAt = signup.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO waitlist_signups (
			id, email, message, status, message_id, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		signup.ID,
		signup.Email,
		signup.Message,
		signup.Status,
		nullString(signup.MessageID),
		nullString(signup.Error),
		signup.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert signup: %w", err)
	}
	return nil
}

// Get returns a signup by ID.
func (r *SignupRepository) Get(ctx context.Context, id string) (*Signup, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, message, status, message_id, error, created_at
		FROM waitlist_signups WHERE id = ?
	`, id)
	signup, err := scanSignup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSignupNotFound
	}
	return signup, err
}

// List returns signups newest first.
func (r *SignupRepository) List(ctx context.Context, q SignupQuery) ([]*Signup, error) {
	query := `SELECT id, email, message, status, message_id, error, created_at FROM waitlist_signups`
	var conditions []string
	var args []any

	if q.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, q.Status)
	}
	if q.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, q.Since.UTC().Format(timeLayout))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups: %w", err)
	}
	defer rows.Close()

	var signups []*Signup
	for rows.Next() {
		signup, err := scanSignup(rows)
		if err != nil {
			return nil, err
		}
		signups = append(signups, signup)
	}
	return signups, rows.Err()
}

// CountByStatus returns the number of signups per status.
func (r *SignupRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM waitlist_signups GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count signups: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSignup(row rowScanner) (*Signup, error) {
	var signup Signup
	var messageID, errMsg sql.NullString
	var createdAt string

	if err := row.Scan(
		&signup.ID,
		&signup.Email,
		&signup.Message,
		&signup.Status,
		&messageID,
		&errMsg,
		&createdAt,
	); err != nil {
		return nil, err
	}

	signup.MessageID = messageID.String
	signup.Error = errMsg.String
	parsed, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	signup.CreatedAt = parsed
	return &signup, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
