package calculation

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/rpgo/portfolio-simulator/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func volatileMarket() domain.MarketAssumptions {
	return domain.MarketAssumptions{
		BondReturnPct:      4.5,
		BondVolatilityPct:  4.5,
		StockReturnPct:     10,
		StockVolatilityPct: 20,
	}
}

func TestMonteCarloEngineRun(t *testing.T) {
	plan := newTestPlan(t, 10000, []int{30, 45, 65}, []float64{500, 250}, []float64{20, 60}, volatileMarket())
	plan.Simulation.Trials = 200

	market, err := NewMarketModel(plan.Market)
	if err != nil {
		t.Fatalf("Failed to build market model: %v", err)
	}
	runs, err := NewMonteCarloEngine(market, 4, nil).Run(context.Background(), plan, 12345)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	if len(runs) != 200 {
		t.Fatalf("Expected 200 runs, got %d", len(runs))
	}
	years := plan.Schedule.Years()
	for i, r := range runs {
		if r.Trial != i {
			t.Errorf("run %d reports trial %d", i, r.Trial)
		}
		if len(r.CashFlows) != years+1 {
			t.Errorf("run %d: expected %d cash flows, got %d", i, years+1, len(r.CashFlows))
		}
		if r.CashFlows[years] != -r.FinalTotal {
			t.Errorf("run %d: last cash flow %.2f does not negate final total %.2f", i, r.CashFlows[years], r.FinalTotal)
		}
	}
}

func TestMonteCarloEngineIsReproducible(t *testing.T) {
	plan := newTestPlan(t, 2500, []int{40, 50, 60}, []float64{200, 400}, []float64{30, 70}, volatileMarket())
	plan.Simulation.Trials = 300
	market, err := NewMarketModel(plan.Market)
	if err != nil {
		t.Fatalf("Failed to build market model: %v", err)
	}

	serial, err := NewMonteCarloEngine(market, 1, nil).Run(context.Background(), plan, 777)
	if err != nil {
		t.Fatalf("serial run: %v", err)
	}
	parallel, err := NewMonteCarloEngine(market, 8, nil).Run(context.Background(), plan, 777)
	if err != nil {
		t.Fatalf("parallel run: %v", err)
	}
	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Fatalf("worker count changed the results (-serial +parallel):\n%s", diff)
	}

	other, err := NewMonteCarloEngine(market, 8, nil).Run(context.Background(), plan, 778)
	if err != nil {
		t.Fatalf("reseeded run: %v", err)
	}
	if cmp.Equal(serial, other) {
		t.Error("different seeds produced identical runs")
	}
}

func TestMonteCarloEngineZeroVolatility(t *testing.T) {
	plan := newTestPlan(t, 10000, []int{30, 40, 50}, []float64{100, 200}, []float64{50, 100}, flatMarket(5, 5))
	plan.Simulation.Trials = 50
	market, err := NewMarketModel(plan.Market)
	if err != nil {
		t.Fatalf("Failed to build market model: %v", err)
	}
	runs, err := NewMonteCarloEngine(market, 0, nil).Run(context.Background(), plan, 1)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}

	want := closedForm(closedForm(10000, 1200, 1.05, 10), 2400, 1.05, 10)
	for _, r := range runs {
		if diff := r.FinalTotal - want; diff > 1e-6*want || diff < -1e-6*want {
			t.Fatalf("trial %d: got %.4f, want %.4f", r.Trial, r.FinalTotal, want)
		}
	}
}

func TestMonteCarloEngineCanceled(t *testing.T) {
	plan := newTestPlan(t, 1000, []int{30, 60}, []float64{100}, []float64{50}, volatileMarket())
	market, err := NewMarketModel(plan.Market)
	if err != nil {
		t.Fatalf("Failed to build market model: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewMonteCarloEngine(market, 2, nil).Run(ctx, plan, 5)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMonteCarloEngineRejectsInvalidPlan(t *testing.T) {
	plan := newTestPlan(t, 1000, []int{30, 60}, []float64{100}, []float64{50}, volatileMarket())
	plan.Simulation.Trials = 0
	market, _ := NewMarketModel(plan.Market)

	_, err := NewMonteCarloEngine(market, 2, nil).Run(context.Background(), plan, 5)
	if !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestMonteCarloEngineWorkerDefault(t *testing.T) {
	market, err := NewMarketModel(volatileMarket())
	if err != nil {
		t.Fatalf("Failed to build market model: %v", err)
	}

	auto := NewMonteCarloEngine(market, 0, nil)
	if auto.Workers != 0 {
		t.Errorf("expected the configured worker count to be kept, got %d", auto.Workers)
	}
	if got := auto.effectiveWorkers(); got != runtime.GOMAXPROCS(0) {
		t.Errorf("expected %d workers, got %d", runtime.GOMAXPROCS(0), got)
	}

	fixed := NewMonteCarloEngine(market, 3, nil)
	if got := fixed.effectiveWorkers(); got != 3 {
		t.Errorf("expected 3 workers, got %d", got)
	}

	// a zero-value engine still runs
	plan := newTestPlan(t, 1000, []int{30, 35}, []float64{100}, []float64{50}, volatileMarket())
	plan.Simulation.Trials = 20
	runs, err := (&MonteCarloEngine{Market: market}).Run(context.Background(), plan, 7)
	if err != nil {
		t.Fatalf("Failed to run simulation: %v", err)
	}
	if len(runs) != 20 {
		t.Fatalf("Expected 20 runs, got %d", len(runs))
	}
}
