package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinTx(t *testing.T) {
	t.Parallel()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := repo.WithinTx(t.Context(), func(_ RouteTx) error { return nil })

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := repo.WithinTx(t.Context(), func(_ RouteTx) error { return assert.AnError })

		require.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the context is cancelled before commit", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)
		ctx, cancel := context.WithCancel(t.Context())

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := repo.WithinTx(ctx, func(_ RouteTx) error {
			cancel()
			return nil
		})

		require.ErrorIs(t, err, context.Canceled)
		require.ErrorContains(t, err, "transaction abandoned before commit")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin error", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectBegin().WillReturnError(assert.AnError)

		err := repo.WithinTx(t.Context(), func(_ RouteTx) error {
			t.Fatal("fn must not run without a transaction")
			return nil
		})

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to begin transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("commit error", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.WithinTx(t.Context(), func(_ RouteTx) error { return nil })

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to commit transaction")
	})
}

func TestTxRepository_PersistOptimization(t *testing.T) {
	t.Parallel()

	trip := models.Trip{DistanceMeters: 12000, DurationSeconds: 1500, Geometry: "_p~iF"}
	start := models.Coordinates{Latitude: 21.0, Longitude: 105.8}
	placements := []models.StopPlacement{
		{StopID: 10, Order: 2, Coordinates: models.Coordinates{Latitude: 21.1, Longitude: 105.9}},
		{StopID: 11, Order: 1, Coordinates: models.Coordinates{Latitude: 21.2, Longitude: 106.0}},
	}

	t.Run("writes trip and every placement in one transaction", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(advisoryLockQuery)).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(regexp.QuoteMeta(lockRouteQuery)).
			WithArgs(int64(3), int64(9)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "start_address", "route_status"}).
				AddRow(int64(3), int64(9), "Depot", models.RouteStatusPending))
		mock.ExpectQuery(regexp.QuoteMeta(listStopsQuery)).
			WithArgs(int64(3)).
			WillReturnRows(pgxmock.NewRows(stopColumns).
				AddRow(int64(10), int64(3), "B", nil, nil, nil, models.StopStatusPending).
				AddRow(int64(11), int64(3), "C", nil, nil, nil, models.StopStatusPending))
		mock.ExpectExec(regexp.QuoteMeta(updateRouteTripQuery)).
			WithArgs("_p~iF", 12000.0, 1500.0, 21.0, 105.8, int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(regexp.QuoteMeta(updateStopPlacementQuery)).
			WithArgs(2, 21.1, 105.9, int64(10), int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(regexp.QuoteMeta(updateStopPlacementQuery)).
			WithArgs(1, 21.2, 106.0, int64(11), int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err := repo.WithinTx(t.Context(), func(tx RouteTx) error {
			route, err := tx.LockRoute(t.Context(), 3, 9)
			if err != nil {
				return err
			}
			assert.Equal(t, "Depot", route.StartAddress)

			stops, err := tx.ListStops(t.Context(), 3)
			if err != nil {
				return err
			}
			assert.Len(t, stops, 2)

			if err = tx.UpdateRouteTrip(t.Context(), 3, trip, start); err != nil {
				return err
			}
			for _, placement := range placements {
				if err = tx.UpdateStopPlacement(t.Context(), 3, placement); err != nil {
					return err
				}
			}
			return nil
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed placement rolls everything back", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(updateRouteTripQuery)).
			WithArgs("_p~iF", 12000.0, 1500.0, 21.0, 105.8, int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(regexp.QuoteMeta(updateStopPlacementQuery)).
			WithArgs(2, 21.1, 105.9, int64(10), int64(3)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec(regexp.QuoteMeta(updateStopPlacementQuery)).
			WithArgs(1, 21.2, 106.0, int64(11), int64(3)).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.WithinTx(t.Context(), func(tx RouteTx) error {
			if err := tx.UpdateRouteTrip(t.Context(), 3, trip, start); err != nil {
				return err
			}
			for _, placement := range placements {
				if err := tx.UpdateStopPlacement(t.Context(), 3, placement); err != nil {
					return err
				}
			}
			return nil
		})

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to update stop 11")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTxRepository_LockRoute(t *testing.T) {
	t.Parallel()

	t.Run("foreign route", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(advisoryLockQuery)).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("SELECT", 1))
		mock.ExpectQuery(regexp.QuoteMeta(lockRouteQuery)).
			WithArgs(int64(3), int64(4)).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		err := repo.WithinTx(t.Context(), func(tx RouteTx) error {
			_, err := tx.LockRoute(t.Context(), 3, 4)
			return err
		})

		require.ErrorIs(t, err, ErrRouteNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("advisory lock error", func(t *testing.T) {
		t.Parallel()
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(advisoryLockQuery)).
			WithArgs(int64(3)).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.WithinTx(t.Context(), func(tx RouteTx) error {
			_, err := tx.LockRoute(t.Context(), 3, 4)
			return err
		})

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to acquire route lock")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTxRepository_UpdateStopPlacementRowCount(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepository(t)
	placement := models.StopPlacement{StopID: 99, Order: 1, Coordinates: models.Coordinates{Latitude: 1, Longitude: 2}}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(updateStopPlacementQuery)).
		WithArgs(1, 1.0, 2.0, int64(99), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.WithinTx(t.Context(), func(tx RouteTx) error {
		return tx.UpdateStopPlacement(t.Context(), 3, placement)
	})

	require.ErrorIs(t, err, ErrStopNotUpdated)
	assert.True(t, errors.Is(err, ErrStopNotUpdated))
	assert.NoError(t, mock.ExpectationsWereMet())
}
