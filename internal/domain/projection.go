package domain

import (
	"strconv"

	"github.com/shopspring/decimal"

	money "github.com/rpgo/portfolio-simulator/pkg/decimal"
)

// IncomeRate is the yearly withdrawal rate used to express a portfolio value
// as a monthly income.
var IncomeRate = decimal.NewFromFloat(0.05)

// YearRecord is one row of the year-by-year ledger.
type YearRecord struct {
	Age                 int             `json:"age"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	BondPct             decimal.Decimal `json:"bond_pct"`
	BondReturnPct       decimal.Decimal `json:"bond_return_pct"`
	StockPct            decimal.Decimal `json:"stock_pct"`
	StockReturnPct      decimal.Decimal `json:"stock_return_pct"`
	BondValue           decimal.Decimal `json:"bond_value"`
	BondInterest        decimal.Decimal `json:"bond_interest"`
	StockValue          decimal.Decimal `json:"stock_value"`
	StockInterest       decimal.Decimal `json:"stock_interest"`
	TotalValue          decimal.Decimal `json:"total_value"`
	TotalInterest       decimal.Decimal `json:"total_interest"`
}

// LedgerColumns are the display names of the YearRecord fields, in order.
var LedgerColumns = []string{
	"Age", "Monthly", "Bond %", "Bond Change", "Stock %", "Stock Change",
	"Bond Value", "Bond Int", "Stock Value", "Stock Int", "Total Value", "Total Int",
}

// Row returns the record's fields formatted in LedgerColumns order.
func (r YearRecord) Row() []string {
	return []string{
		strconv.Itoa(r.Age),
		r.MonthlyContribution.StringFixed(2),
		r.BondPct.String(),
		r.BondReturnPct.StringFixed(2),
		r.StockPct.String(),
		r.StockReturnPct.StringFixed(2),
		r.BondValue.StringFixed(2),
		r.BondInterest.StringFixed(2),
		r.StockValue.StringFixed(2),
		r.StockInterest.StringFixed(2),
		r.TotalValue.StringFixed(2),
		r.TotalInterest.StringFixed(2),
	}
}

// PhaseResult locates one phase's rows inside the concatenated ledger.
type PhaseResult struct {
	Phase          StrategyPhase   `json:"phase"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	FinalTotal     decimal.Decimal `json:"final_total"`
	FirstRow       int             `json:"first_row"`
	Rows           int             `json:"rows"`
}

// Projection is the detailed single-path result of the calculate mode.
type Projection struct {
	Principal  decimal.Decimal `json:"principal"`
	Ledger     []YearRecord    `json:"ledger"`
	Phases     []PhaseResult   `json:"phases"`
	FinalTotal decimal.Decimal `json:"final_total"`
	EndAge     int             `json:"end_age"`
	Draw       MarketDraw      `json:"-"`
}

// MonthlyIncome returns the monthly income the final total would yield at IncomeRate.
func (p *Projection) MonthlyIncome() decimal.Decimal {
	return money.NewMoneyFromDecimal(p.FinalTotal).Mul(IncomeRate).Monthly().Decimal
}

// PhaseRows returns the ledger rows belonging to phase i.
func (p *Projection) PhaseRows(i int) []YearRecord {
	pr := p.Phases[i]
	return p.Ledger[pr.FirstRow : pr.FirstRow+pr.Rows]
}
