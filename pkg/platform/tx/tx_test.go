package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_WithoutDatabaseCallsThrough(t *testing.T) {
	called := false
	err := Run(context.Background(), nil, func(ctx context.Context) error {
		called = true
		_, ok := From(ctx)
		assert.False(t, ok)
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)

	boom := errors.New("boom")
	err = Run(context.Background(), nil, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestWithTx_NilIsIgnored(t *testing.T) {
	ctx := WithTx(context.Background(), nil)
	_, ok := From(ctx)
	assert.False(t, ok)
}
