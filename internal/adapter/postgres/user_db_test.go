package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autolot/car-inventory-service/internal/core/domain"
)

func TestEmailExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("buyer@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = repo.CreateUser(context.Background(), &domain.User{
		Name:     "Jordan",
		Email:    "buyer@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("Jordan", "buyer@example.com", "secret1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	user, err := repo.CreateUser(context.Background(), &domain.User{
		Name:     "Jordan",
		Email:    "buyer@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}
