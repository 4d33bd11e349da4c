package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rossyndicate/srst/internal/log"
)

func TestCtxValues(t *testing.T) {
	tests := map[string]struct {
		ctx       func() context.Context
		expValues log.Kv
	}{
		"A context without values should return empty values.": {
			ctx:       context.Background,
			expValues: log.Kv{},
		},
		"Values set on the context should be returned.": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.Background(), log.Kv{"tile": "026028"})
			},
			expValues: log.Kv{"tile": "026028"},
		},
		"Nested values should be merged, newer keys win.": {
			ctx: func() context.Context {
				ctx := log.CtxWithValues(context.Background(), log.Kv{"tile": "026028", "group": "LS57"})
				return log.CtxWithValues(ctx, log.Kv{"group": "LS89"})
			},
			expValues: log.Kv{"tile": "026028", "group": "LS89"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expValues, log.ValuesFromCtx(test.ctx()))
		})
	}
}

func TestNoopSetValuesOnCtx(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, log.Noop.SetValuesOnCtx(ctx, log.Kv{"a": 1}))
	assert.Equal(t, log.Noop, log.Noop.WithValues(log.Kv{"a": 1}))
}
