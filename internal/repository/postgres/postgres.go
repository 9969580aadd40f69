package postgres

import (
	"database/sql"

	"invite-warden/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AttributionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		AttributionRepository: NewAttributionRepository(db),
	}
}
