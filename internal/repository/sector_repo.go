package repository

import (
	"context"
	"errors"
	"fmt"

	"qzone/internal/model"

	"github.com/jackc/pgx/v5"
)

// ErrInvalidRecord is returned when a record breaks the ranges the tables enforce
var ErrInvalidRecord = errors.New("record out of range")

// SectorRepository defines operations for per-sector metric data
type SectorRepository interface {
	InfectionHistory(ctx context.Context, sector string, limit int) ([]model.InfectionRecord, error)
	LatestResource(ctx context.Context, sector string) (*model.ResourceData, error)
	LatestActivity(ctx context.Context, sector string) (*model.SectorActivity, error)
	ReplaceInfectionHistory(ctx context.Context, records []model.InfectionRecord) (int64, error)
	ReplaceResources(ctx context.Context, resources []model.ResourceData, activity []model.SectorActivity) error
}

type sectorRepository struct {
	db DBTX
}

// NewSectorRepository creates a new SectorRepository
func NewSectorRepository(db DBTX) SectorRepository {
	return &sectorRepository{db: db}
}

// InfectionHistory returns the newest records whose sector contains the query, ignoring case
func (r *sectorRepository) InfectionHistory(ctx context.Context, sector string, limit int) ([]model.InfectionRecord, error) {
	sql := `SELECT id, sector, date, infection_rate, infected_count, created_at
            FROM infection_history WHERE sector ILIKE $1
            ORDER BY date DESC LIMIT $2`
	rows, err := r.db.Query(ctx, sql, containsPattern(sector), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query infection history: %w", err)
	}
	defer rows.Close()

	records := []model.InfectionRecord{}
	for rows.Next() {
		var rec model.InfectionRecord
		if err := rows.Scan(&rec.ID, &rec.Sector, &rec.Date, &rec.InfectionRate, &rec.InfectedCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan infection row: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating infection rows: %w", err)
	}
	return records, nil
}

// LatestResource returns the most recently updated resource record for the sector, or nil
func (r *sectorRepository) LatestResource(ctx context.Context, sector string) (*model.ResourceData, error) {
	sql := `SELECT id, sector, food, water, medicine, ammunition, updated_at
            FROM resource_data WHERE sector ILIKE $1
            ORDER BY updated_at DESC LIMIT 1`
	res := &model.ResourceData{}
	err := r.db.QueryRow(ctx, sql, containsPattern(sector)).Scan(
		&res.ID, &res.Sector, &res.Food, &res.Water, &res.Medicine, &res.Ammunition, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find resource data: %w", err)
	}
	return res, nil
}

// LatestActivity returns the most recently updated activity record for the sector, or nil
func (r *sectorRepository) LatestActivity(ctx context.Context, sector string) (*model.SectorActivity, error) {
	sql := `SELECT id, sector, activity_level, threat_level, population, last_event, updated_at
            FROM sector_activity WHERE sector ILIKE $1
            ORDER BY updated_at DESC LIMIT 1`
	a := &model.SectorActivity{}
	err := r.db.QueryRow(ctx, sql, containsPattern(sector)).Scan(
		&a.ID, &a.Sector, &a.ActivityLevel, &a.ThreatLevel, &a.Population, &a.LastEvent, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find sector activity: %w", err)
	}
	return a, nil
}

// ReplaceInfectionHistory wipes the table and bulk-loads records in one transaction
func (r *sectorRepository) ReplaceInfectionHistory(ctx context.Context, records []model.InfectionRecord) (int64, error) {
	for i := range records {
		if !records[i].Validate() {
			return 0, fmt.Errorf("infection record %d (%s): %w", i, records[i].Sector, ErrInvalidRecord)
		}
	}

	var n int64
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM infection_history`); err != nil {
			return fmt.Errorf("failed to clear infection history: %w", err)
		}
		var err error
		n, err = tx.CopyFrom(ctx,
			pgx.Identifier{"infection_history"},
			[]string{"sector", "date", "infection_rate", "infected_count", "created_at"},
			pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
				rec := records[i]
				return []any{rec.Sector, rec.Date, rec.InfectionRate, rec.InfectedCount, rec.CreatedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert infection history: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ReplaceResources wipes resource and activity data and loads the given rows in one transaction
func (r *sectorRepository) ReplaceResources(ctx context.Context, resources []model.ResourceData, activity []model.SectorActivity) error {
	for i := range resources {
		if !resources[i].Validate() {
			return fmt.Errorf("resource record %d (%s): %w", i, resources[i].Sector, ErrInvalidRecord)
		}
	}
	for i := range activity {
		if !activity[i].Validate() {
			return fmt.Errorf("activity record %d (%s): %w", i, activity[i].Sector, ErrInvalidRecord)
		}
	}

	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM resource_data`); err != nil {
			return fmt.Errorf("failed to clear resource data: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM sector_activity`); err != nil {
			return fmt.Errorf("failed to clear sector activity: %w", err)
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"resource_data"},
			[]string{"sector", "food", "water", "medicine", "ammunition", "updated_at"},
			pgx.CopyFromSlice(len(resources), func(i int) ([]any, error) {
				res := resources[i]
				return []any{res.Sector, res.Food, res.Water, res.Medicine, res.Ammunition, res.UpdatedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert resource data: %w", err)
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"sector_activity"},
			[]string{"sector", "activity_level", "threat_level", "population", "last_event", "updated_at"},
			pgx.CopyFromSlice(len(activity), func(i int) ([]any, error) {
				a := activity[i]
				return []any{a.Sector, a.ActivityLevel, a.ThreatLevel, a.Population, a.LastEvent, a.UpdatedAt}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("failed to insert sector activity: %w", err)
		}
		return nil
	})
}
