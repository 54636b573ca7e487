package service

import (
	"testing"
	"time"

	"github.com/Astemirdum/circulation-service/config"
	"github.com/Astemirdum/circulation-service/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDaysLate(t *testing.T) {
	t.Parallel()
	day := func(y int, m time.Month, d, hh, mm int) time.Time {
		return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
	}
	tests := []struct {
		name string
		due  time.Time
		asOf time.Time
		want int
	}{
		{"same day is never late", day(2024, 3, 10, 9, 0), day(2024, 3, 10, 23, 59), 0},
		{"before due date", day(2024, 3, 10, 9, 0), day(2024, 3, 8, 9, 0), 0},
		{"calendar day boundary counts", day(2024, 3, 10, 23, 59), day(2024, 3, 11, 0, 1), 1},
		{"three days", day(2024, 3, 10, 12, 0), day(2024, 3, 13, 8, 0), 3},
		{"month boundary", day(2024, 2, 28, 12, 0), day(2024, 3, 2, 12, 0), 3},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, daysLate(tt.due, tt.asOf))
		})
	}
}

func TestOverdueAmount(t *testing.T) {
	t.Parallel()
	engine := newFineEngine(config.Policy{DailyFineRate: 0.50, MaxOverdueFine: 10.00}, zap.NewNop())

	require.InDelta(t, 0.50, engine.overdueAmount(1), 0.001)
	require.InDelta(t, 5.00, engine.overdueAmount(10), 0.001)
	require.InDelta(t, 10.00, engine.overdueAmount(20), 0.001)
	require.InDelta(t, 10.00, engine.overdueAmount(1000), 0.001)
}

func TestCanTransition(t *testing.T) {
	t.Parallel()
	allowed := []struct{ from, to model.ItemStatus }{
		{model.ItemAvailable, model.ItemBorrowed},
		{model.ItemAvailable, model.ItemLost},
		{model.ItemAvailable, model.ItemDamaged},
		{model.ItemBorrowed, model.ItemAvailable},
		{model.ItemBorrowed, model.ItemReserved},
		{model.ItemBorrowed, model.ItemLost},
		{model.ItemReserved, model.ItemBorrowed},
		{model.ItemReserved, model.ItemAvailable},
		{model.ItemLost, model.ItemAvailable},
		{model.ItemDamaged, model.ItemAvailable},
	}
	for _, tr := range allowed {
		require.True(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	refused := []struct{ from, to model.ItemStatus }{
		{model.ItemAvailable, model.ItemReserved},
		{model.ItemLost, model.ItemBorrowed},
		{model.ItemDamaged, model.ItemBorrowed},
		{model.ItemLost, model.ItemDamaged},
		{model.ItemBorrowed, model.ItemDamaged},
	}
	for _, tr := range refused {
		require.False(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}
