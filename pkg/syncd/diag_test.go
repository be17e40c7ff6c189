package syncd_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/opencompute/go-sairedis/pkg/bus"
	"github.com/opencompute/go-sairedis/pkg/bus/translation"
	"github.com/opencompute/go-sairedis/pkg/syncd"
	"github.com/opencompute/go-sairedis/pkg/syncd/vendor"
)

func TestRunDiagShellIssuesPeriodicQueries(t *testing.T) {
	store := newMemStore()
	b := bus.New(store, nil)
	trans := translation.New(store)
	fake := vendor.NewFake()
	d := syncd.NewDispatcher(b, trans, fake, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	syncd.RunDiagShell(ctx, fake, 20*time.Millisecond, d)

	require.GreaterOrEqual(t, fake.DiagHits(), 2)
}
