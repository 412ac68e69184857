package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticker_backend/internal/feature/alias/usecase"
)

func TestNewAliasRedis_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewAliasRedis(nil, "", 0)
	assert.Equal(t, "aliases", repo.prefix)
	assert.Equal(t, defaultTTL, repo.ttl)

	custom := NewAliasRedis(nil, "custom", time.Hour)
	assert.Equal(t, "custom", custom.prefix)
	assert.Equal(t, time.Hour, custom.ttl)
}

func TestAliasRedis_Get(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	repo := NewAliasRedis(client, "aliases", time.Hour)

	mock.ExpectHGet("aliases:s1", "apple inc.").SetVal("AAPL")

	got, err := repo.Get(context.Background(), "s1", "apple inc.")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasRedis_Get_NotFound(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	repo := NewAliasRedis(client, "aliases", time.Hour)

	mock.ExpectHGet("aliases:s1", "unknown").RedisNil()

	_, err := repo.Get(context.Background(), "s1", "unknown")
	assert.ErrorIs(t, err, usecase.ErrAliasNotFound)
}

func TestAliasRedis_Get_StoreError(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	repo := NewAliasRedis(client, "aliases", time.Hour)

	mock.ExpectHGet("aliases:s1", "apple inc.").SetErr(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), "s1", "apple inc.")
	require.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrAliasNotFound)
}

func TestAliasRedis_Put_RefreshesTTL(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	repo := NewAliasRedis(client, "aliases", time.Hour)

	mock.ExpectHSet("aliases:s1", "apple inc.", "AAPL").SetVal(1)
	mock.ExpectExpire("aliases:s1", time.Hour).SetVal(true)

	err := repo.Put(context.Background(), "s1", "apple inc.", "AAPL")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAliasRedis_Delete_AbsentIsSuccess(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	repo := NewAliasRedis(client, "aliases", time.Hour)

	mock.ExpectHDel("aliases:s1", "ghost").SetVal(0)

	err := repo.Delete(context.Background(), "s1", "ghost")
	assert.NoError(t, err)
}

func TestAliasRedis_List_Sorted(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	repo := NewAliasRedis(client, "aliases", time.Hour)

	mock.ExpectHGetAll("aliases:s1").SetVal(map[string]string{
		"toyota motor": "TM",
		"apple inc.":   "AAPL",
	})

	got, err := repo.List(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "apple inc.", got[0].Name)
	assert.Equal(t, "AAPL", got[0].Symbol)
	assert.Equal(t, "toyota motor", got[1].Name)
}
