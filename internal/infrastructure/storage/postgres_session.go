package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/rvc-001/planning-sub000/internal/domain/constants"
	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

// postgresSessionStore persists sessions so logins survive a restart.
type postgresSessionStore struct {
	db *sql.DB
}

func buildPostgresDSNFromEnv() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	user := strings.TrimSpace(os.Getenv("POSTGRES_USER"))
	password := os.Getenv("POSTGRES_PASSWORD")
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	port := strings.TrimSpace(os.Getenv("POSTGRES_PORT"))
	sslmode := strings.TrimSpace(os.Getenv("POSTGRES_SSLMODE"))

	if host == "" || user == "" || db == "" {
		return ""
	}
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	db = strings.TrimPrefix(db, "/")
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + db,
	}
	if password == "" {
		u.User = url.User(user)
	} else {
		u.User = url.UserPassword(user, password)
	}
	q := u.Query()
	q.Set("sslmode", sslmode)
	u.RawQuery = q.Encode()
	return u.String()
}

func newPostgresSessionStore(dsn string) (*postgresSessionStore, error) {
	db, err := openPostgresWithRetry(dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	schema := `
CREATE TABLE IF NOT EXISTS sessions (
	token TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	user_data JSONB NOT NULL,
	created_at TIMESTAMPTZ DEFAULT NOW()
);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &postgresSessionStore{db: db}, nil
}

func openPostgresWithRetry(dsn string) (*sql.DB, error) {
	const attempts = 3

	var db *sql.DB
	var err error
	for i := 0; i < attempts; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				return db, nil
			}
			db.Close()
		}
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	return nil, fmt.Errorf("postgres connect after %d attempts: %w", attempts, err)
}

func (p *postgresSessionStore) Save(ctx context.Context, session entity.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	userData, err := json.Marshal(session.User)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
	INSERT INTO sessions (token, username, user_data, created_at)
	VALUES ($1,$2,$3,$4)
	ON CONFLICT (token) DO UPDATE SET
		username=EXCLUDED.username,
		user_data=EXCLUDED.user_data,
		created_at=EXCLUDED.created_at
	`, session.Token, session.User.Username, userData, session.CreatedAt)
	return err
}

func (p *postgresSessionStore) Get(ctx context.Context, token string) (entity.Session, bool, error) {
	row := p.db.QueryRowContext(ctx, `
	SELECT token, user_data, created_at FROM sessions WHERE token=$1`, token)

	var session entity.Session
	var userData []byte
	err := row.Scan(&session.Token, &userData, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return entity.Session{}, false, nil
	}
	if err != nil {
		return entity.Session{}, false, err
	}
	if err := json.Unmarshal(userData, &session.User); err != nil {
		return entity.Session{}, false, err
	}
	return session, true, nil
}

func (p *postgresSessionStore) Delete(ctx context.Context, token string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE token=$1`, token)
	return err
}

func (p *postgresSessionStore) DeleteExpired(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-constants.SessionTimeoutHours * time.Hour)
	res, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return int(affected), nil
}

// NewSessionStoreFromEnv picks Postgres when a DSN is configured and falls
// back to memory otherwise, or when the connection cannot be established.
func NewSessionStoreFromEnv() repository.SessionStore {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		dsn = buildPostgresDSNFromEnv()
	}
	if dsn == "" {
		return NewMemorySessionStore()
	}
	store, err := newPostgresSessionStore(dsn)
	if err != nil {
		log.Printf("session store: Postgres unavailable, using in-memory store: %v", err)
		return NewMemorySessionStore()
	}
	return store
}
