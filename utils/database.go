package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/models"
)

// ErrEmailInUse is returned when registering an email that already has
// an account.
var ErrEmailInUse = errors.New("email already in use")

func OpenDB(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing DSN: %w", err)
	}

	config.MaxConns = 50
	config.MinConns = 2
	config.MaxConnIdleTime = 20 * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}

func CreateUser(db *pgxpool.Pool, email string, passwordHash string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
	}

	stmt := "INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) RETURNING created_at;"
	err := db.QueryRow(ctx, stmt, user.ID, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, ErrEmailInUse
		}
		return models.User{}, fmt.Errorf("error adding user: %w", err)
	}
	return user, nil
}

func GetUserByEmail(db *pgxpool.Pool, email string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	stmt := "SELECT id, email, password_hash, created_at FROM users WHERE email = $1;"
	row := db.QueryRow(ctx, stmt, email)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, errors.New("no user found with this email")
		}
		return models.User{}, fmt.Errorf("error looking up user: %w", err)
	}
	return user, nil
}

func GetUserByID(db *pgxpool.Pool, userID string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	stmt := "SELECT id, email, password_hash, created_at FROM users WHERE id = $1;"
	row := db.QueryRow(ctx, stmt, userID)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, errors.New("no user found with this id")
		}
		return models.User{}, fmt.Errorf("error looking up user: %w", err)
	}
	return user, nil
}

func EmailInUse(email string, db *pgxpool.Pool) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)"

	var exists bool
	if err := db.QueryRow(ctx, stmt, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("database error checking email: %w", err)
	}

	return exists, nil
}
