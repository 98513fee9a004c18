package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closer struct {
	closed bool
	err    error
}

func (c *closer) Close() error {
	c.closed = true

	return c.err
}

func TestCloseAfter(t *testing.T) {
	t.Parallel()

	setupErr := New("ping failed")

	tests := []struct {
		name       string
		err        error
		closeErr   error
		wantClosed bool
		wantNil    bool
	}{
		{name: "no failure leaves resource open", wantNil: true},
		{name: "failure closes resource", err: setupErr, wantClosed: true},
		{name: "close failure is joined", err: setupErr, closeErr: New("socket gone"), wantClosed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := &closer{err: tt.closeErr}
			err := CloseAfter(tt.err, c)

			assert.Equal(t, tt.wantClosed, c.closed)
			if tt.wantNil {
				assert.NoError(t, err)

				return
			}
			require.ErrorIs(t, err, setupErr)
			if tt.closeErr != nil {
				assert.ErrorIs(t, err, tt.closeErr)
				assert.Contains(t, err.Error(), "close after failed setup")
			}
		})
	}
}
