package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charging-platform/oicp-emp-gateway/internal/config"
	"github.com/charging-platform/oicp-emp-gateway/internal/domain/oicp"
	"github.com/charging-platform/oicp-emp-gateway/internal/storage"
)

const (
	testSessionID = oicp.SessionID("b2688855-7f00-0002-6d8e-48d883f6abb6")
	testKey       = "emp:session:b2688855-7f00-0002-6d8e-48d883f6abb6"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestSession() *storage.Session {
	evseID := oicp.EVSEID("DE*ABC*E123456")
	operatorID := oicp.OperatorID("DE*ABC")
	empSessionID := oicp.EMPPartnerSessionID("emp-1")
	identification := oicp.NewRemoteIdentification("DE-GDF-C12345678-X")
	return &storage.Session{
		SessionID:           testSessionID,
		ProviderID:          "DE*GDF",
		OperatorID:          &operatorID,
		EvseID:              &evseID,
		Identification:      &identification,
		EMPPartnerSessionID: &empSessionID,
		Status:              storage.SessionStatusAuthorized,
	}
}

func newMockStore() (*storage.RedisSessionStore, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &storage.RedisSessionStore{
		Client: db,
		Prefix: storage.DefaultKeyPrefix,
		Clock:  func() time.Time { return fixedNow },
	}, mock
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestNewRedisSessionStore_Unreachable(t *testing.T) {
	cfg := config.RedisConfig{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
	}

	store, err := storage.NewRedisSessionStore(cfg)
	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestRedisSessionStore_SaveGetDelete(t *testing.T) {
	store, mock := newMockStore()
	ctx := context.Background()
	ttl := 48 * time.Hour

	session := newTestSession()
	expected := *session
	expected.CreatedAt = fixedNow
	expected.UpdatedAt = fixedNow

	mock.ExpectSet(testKey, mustJSON(t, &expected), ttl).SetVal("OK")
	require.NoError(t, store.SaveSession(ctx, session, ttl))
	assert.Equal(t, fixedNow, session.CreatedAt)

	mock.ExpectGet(testKey).SetVal(mustJSON(t, &expected))
	got, err := store.GetSession(ctx, testSessionID)
	require.NoError(t, err)
	assert.Equal(t, &expected, got)
	assert.True(t, got.Identification.Equal(*session.Identification))

	mock.ExpectGet(testKey).SetErr(redis.Nil)
	_, err = store.GetSession(ctx, testSessionID)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	mock.ExpectDel(testKey).SetVal(1)
	require.NoError(t, store.DeleteSession(ctx, testSessionID))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStore_UpdateStatus(t *testing.T) {
	store, mock := newMockStore()
	ctx := context.Background()
	ttl := time.Hour

	stored := *newTestSession()
	stored.CreatedAt = fixedNow.Add(-time.Hour)
	stored.UpdatedAt = fixedNow.Add(-time.Hour)

	updated := stored
	updated.Status = storage.SessionStatusCharging
	updated.UpdatedAt = fixedNow

	mock.ExpectGet(testKey).SetVal(mustJSON(t, &stored))
	mock.ExpectSet(testKey, mustJSON(t, &updated), ttl).SetVal("OK")
	require.NoError(t, store.UpdateStatus(ctx, testSessionID, storage.SessionStatusCharging, ttl))

	mock.ExpectGet(testKey).SetErr(redis.Nil)
	err := store.UpdateStatus(ctx, testSessionID, storage.SessionStatusEnded, ttl)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionStore_Errors(t *testing.T) {
	ctx := context.Background()
	expectedErr := errors.New("redis unavailable")

	tests := []struct {
		name   string
		expect func(mock redismock.ClientMock)
		call   func(store *storage.RedisSessionStore) error
	}{
		{
			name: "get",
			expect: func(mock redismock.ClientMock) {
				mock.ExpectGet(testKey).SetErr(expectedErr)
			},
			call: func(store *storage.RedisSessionStore) error {
				_, err := store.GetSession(ctx, testSessionID)
				return err
			},
		},
		{
			name: "delete",
			expect: func(mock redismock.ClientMock) {
				mock.ExpectDel(testKey).SetErr(expectedErr)
			},
			call: func(store *storage.RedisSessionStore) error {
				return store.DeleteSession(ctx, testSessionID)
			},
		},
		{
			name: "update reads first",
			expect: func(mock redismock.ClientMock) {
				mock.ExpectGet(testKey).SetErr(expectedErr)
			},
			call: func(store *storage.RedisSessionStore) error {
				return store.UpdateStatus(ctx, testSessionID, storage.SessionStatusEnded, time.Hour)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore()
			tt.expect(mock)
			err := tt.call(store)
			assert.ErrorIs(t, err, expectedErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRedisSessionStore_CorruptValue(t *testing.T) {
	store, mock := newMockStore()
	mock.ExpectGet(testKey).SetVal("{not json")

	_, err := store.GetSession(context.Background(), testSessionID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestRedisSessionStore_Close(t *testing.T) {
	store, mock := newMockStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
