package repository_test

import (
	"errors"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/techstore-cart/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// kvSuite holds the behaviour every backend must share. Backend suites embed
// it and set kv in SetupSuite.
type kvSuite struct {
	suite.Suite

	kv port.KeyValueStore
}

func (suite *kvSuite) TestSetAndGet() {
	tests := []struct {
		name      string
		key       string
		values    []string
		wantValue string
		wantError string
	}{
		{
			name:      "set then get: ok",
			key:       uuid.NewString(),
			values:    []string{`[{"id":1}]`},
			wantValue: `[{"id":1}]`,
		},
		{
			name:      "overwrite keeps last value: ok",
			key:       uuid.NewString(),
			values:    []string{"first", "second"},
			wantValue: "second",
		},
		{
			name:      "empty value: ok",
			key:       uuid.NewString(),
			values:    []string{""},
			wantValue: "",
		},
		{
			name:      "unicode value: ok",
			key:       uuid.NewString(),
			values:    []string{"Ультратонкий и мощный ноутбук"},
			wantValue: "Ультратонкий и мощный ноутбук",
		},
		{
			name:      "empty key: error",
			key:       "",
			values:    []string{gofakeit.Word()},
			wantError: "key is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			for _, value := range tt.values {
				err := suite.kv.Set(ctx, tt.key, value)
				if tt.wantError != "" {
					require.EqualError(t, err, tt.wantError)
					return
				}
				require.NoError(t, err)
			}

			value, found, err := suite.kv.Get(ctx, tt.key)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func (suite *kvSuite) TestGetMissing() {
	t := suite.T()

	value, found, err := suite.kv.Get(t.Context(), uuid.NewString())
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)

	_, _, err = suite.kv.Get(t.Context(), "")
	require.EqualError(t, err, "key is empty")
}

func (suite *kvSuite) TestUpdate() {
	errAbort := errors.New("abort")

	tests := []struct {
		name      string
		initial   *string
		fn        func(current string, found bool) (string, error)
		wantValue string
		wantFound bool
		wantError error
	}{
		{
			name: "missing key is created: ok",
			fn: func(current string, found bool) (string, error) {
				if found {
					return "", errors.New("unexpected existing value")
				}
				return "created", nil
			},
			wantValue: "created",
			wantFound: true,
		},
		{
			name:    "existing value is passed in: ok",
			initial: ptr("a"),
			fn: func(current string, found bool) (string, error) {
				return current + "b", nil
			},
			wantValue: "ab",
			wantFound: true,
		},
		{
			name:    "fn error leaves value untouched",
			initial: ptr("kept"),
			fn: func(string, bool) (string, error) {
				return "", errAbort
			},
			wantValue: "kept",
			wantFound: true,
			wantError: errAbort,
		},
		{
			name: "fn error on missing key writes nothing",
			fn: func(string, bool) (string, error) {
				return "", errAbort
			},
			wantFound: false,
			wantError: errAbort,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()
			key := uuid.NewString()

			if tt.initial != nil {
				require.NoError(t, suite.kv.Set(ctx, key, *tt.initial))
			}

			err := suite.kv.Update(ctx, key, tt.fn)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
			}

			value, found, err := suite.kv.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func (suite *kvSuite) TestConcurrentUpdates() {
	t := suite.T()
	ctx := t.Context()
	key := uuid.NewString()

	const writers = 5

	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- suite.kv.Update(ctx, key, func(current string, _ bool) (string, error) {
				return current + "x", nil
			})
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	value, found, err := suite.kv.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, strings.Repeat("x", writers), value)
}

func ptr[T any](v T) *T {
	return &v
}
