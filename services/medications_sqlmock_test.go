package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"healthtrack-backend/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// mockPostgres swaps the global handle for a gorm Postgres session backed by sqlmock.
func mockPostgres(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		_ = conn.Close()
	})
	return mock
}

func TestListMedicationsPostgres(t *testing.T) {
	mock := mockPostgres(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "diseases" WHERE id = $1 AND user_id = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "medications" WHERE disease_id = $1`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "disease_id", "name", "dosage", "created_at", "updated_at"}).
			AddRow(1, 7, "Ibuprofen", "400mg", now, now).
			AddRow(2, 7, "Paracetamol", "1g", now, now))

	meds, err := ListMedications(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.Len(t, meds, 2)
	assert.Equal(t, "Ibuprofen", meds[0].Name)
	assert.Equal(t, uint(7), meds[1].DiseaseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMedicationsPostgresNotOwned(t *testing.T) {
	mock := mockPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "diseases"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := ListMedications(context.Background(), "intruder", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
