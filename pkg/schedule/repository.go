package schedule

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Get(ctx context.Context, businessId int) (WeeklySchedule, error)
	Replace(ctx context.Context, businessId int, s WeeklySchedule) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Get(ctx context.Context, businessId int) (WeeklySchedule, error) {
	query := `SELECT weekday, open_minute, close_minute
              FROM working_hours
              WHERE business_id = $1
              ORDER BY weekday`

	rows, err := r.db.Query(ctx, query, businessId)
	if err != nil {
		err := fmt.Errorf("could not query working hours: %w", err)
		log.Error(err)
		return WeeklySchedule{}, err
	}
	defer rows.Close()

	// Absent rows are closed days.
	var s WeeklySchedule
	for rows.Next() {
		var weekday, openMinute, closeMinute int
		if err := rows.Scan(&weekday, &openMinute, &closeMinute); err != nil {
			err := fmt.Errorf("could not scan working hours row: %w", err)
			log.Error(err)
			return WeeklySchedule{}, err
		}
		s[weekday] = DayWindow{Open: true, OpenMinute: openMinute, CloseMinute: closeMinute}
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return WeeklySchedule{}, err
	}

	return s, nil
}

// Replace swaps the whole weekly schedule in one transaction so readers never
// observe a half-written week.
func (r *RepositoryImpl) Replace(ctx context.Context, businessId int, s WeeklySchedule) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM working_hours WHERE business_id = $1`, businessId); err != nil {
		err := fmt.Errorf("could not clear working hours: %w", err)
		log.Error(err)
		return err
	}

	insert := `INSERT INTO working_hours (business_id, weekday, open_minute, close_minute) VALUES ($1, $2, $3, $4)`
	for weekday, day := range s {
		if !day.Open {
			continue
		}
		if _, err := tx.Exec(ctx, insert, businessId, weekday, day.OpenMinute, day.CloseMinute); err != nil {
			err := fmt.Errorf("could not insert working hours for weekday %d: %w", weekday, err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
