package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fitsuggest/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	Close()

	Queries() *Queries

	// Store exposes the reads and the transactional suggestion write.
	Store() *Store
}

type service struct {
	dbpool *pgxpool.Pool
	name   string
	store  *Store
}

func (s *service) Queries() *Queries {
	return s.store.Queries
}

func (s *service) Store() *Store {
	return s.store
}

// NewService opens the pool and verifies connectivity before returning.
// A failed check is returned to the caller, which is expected to exit.
func NewService(ctx context.Context, cfg config.Database) (Service, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var now time.Time
	if err := dbpool.QueryRow(pingCtx, "SELECT NOW()").Scan(&now); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	log.Info().Str("host", cfg.Host).Str("database", cfg.Name).Time("server_time", now).Msg("Database connection successful")

	if cfg.AutoMigrate {
		if err := EnsureSchema(ctx, dbpool); err != nil {
			dbpool.Close()
			return nil, err
		}
		log.Info().Msg("Database schema ensured")
	}

	return &service{
		dbpool: dbpool,
		name:   cfg.Name,
		store:  NewStore(dbpool),
	}, nil
}

// Health checks the health of the database connection.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.dbpool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Error().Err(err).Msg("db down")
		return stats
	}

	poolStats := s.dbpool.Stat()
	stats["status"] = "up"
	stats["total_conns"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_conns"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_conns"] = strconv.Itoa(int(poolStats.AcquiredConns()))
	stats["max_conns"] = strconv.Itoa(int(poolStats.MaxConns()))
	stats["acquire_count"] = strconv.FormatInt(poolStats.AcquireCount(), 10)
	stats["acquire_duration_ms"] = strconv.FormatInt(poolStats.AcquireDuration().Milliseconds(), 10)
	stats["empty_acquire_count"] = strconv.FormatInt(poolStats.EmptyAcquireCount(), 10)
	stats["canceled_acquire_count"] = strconv.FormatInt(poolStats.CanceledAcquireCount(), 10)

	if poolStats.AcquiredConns() > (poolStats.MaxConns() * 8 / 10) { // 80% capacity
		stats["message"] = "The database connection pool is experiencing heavy load."
	}
	if poolStats.EmptyAcquireCount() > 0 {
		stats["message"] = "The application has tried to acquire a connection from an empty pool. Consider increasing max connections."
	}

	return stats
}

// Close closes the database connection.
func (s *service) Close() {
	log.Info().Msgf("Disconnected from database: %s", s.name)
	s.dbpool.Close()
}
