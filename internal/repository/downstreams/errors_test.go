package downstreams

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, body string, target interface{}) error {
	t.Helper()

	err := json.Unmarshal([]byte(body), target)
	require.Error(t, err)
	return err
}

func TestErrByStatus(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		status       int
		expectedKind ErrorKind
		expectNil    bool
	}{
		{
			name:      "successful call",
			status:    http.StatusOK,
			expectNil: true,
		},
		{
			name:      "created is still success",
			status:    http.StatusCreated,
			expectNil: true,
		},
		{
			name:         "transport error",
			err:          errors.New("connection refused"),
			expectedKind: ErrorKindNetwork,
		},
		{
			name:         "json syntax error in response body",
			err:          decodeError(t, `{"id":`, &struct{}{}),
			status:       http.StatusOK,
			expectedKind: ErrorKindMalformedResponse,
		},
		{
			name: "json type mismatch in response body",
			err: decodeError(t, `{"id": 42}`, &struct {
				ID string `json:"id"`
			}{}),
			status:       http.StatusOK,
			expectedKind: ErrorKindMalformedResponse,
		},
		{
			name:         "unauthorized",
			status:       http.StatusUnauthorized,
			expectedKind: ErrorKindAuth,
		},
		{
			name:         "forbidden",
			status:       http.StatusForbidden,
			expectedKind: ErrorKindAuth,
		},
		{
			name:         "unprocessable entity",
			status:       http.StatusUnprocessableEntity,
			expectedKind: ErrorKindRejected,
		},
		{
			name:         "server error",
			status:       http.StatusInternalServerError,
			expectedKind: ErrorKindRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ErrByStatus(tt.err, tt.status)

			if tt.expectNil {
				require.NoError(t, result)
				return
			}

			require.Error(t, result)
			require.True(t, IsErrorOfKind(result, tt.expectedKind))

			dsErr, ok := AsDownstreamError(result)
			require.True(t, ok)
			require.Equal(t, tt.expectedKind, dsErr.Kind)
		})
	}
}

func TestIsErrorOfKindForeignError(t *testing.T) {
	require.False(t, IsErrorOfKind(errors.New("some other error"), ErrorKindNetwork))
	require.False(t, IsErrorOfKind(nil, ErrorKindNetwork))
}
