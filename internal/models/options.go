// Package models defines the plain data structures exchanged between the
// pricing engine and its consumers.
package models

import "time"

// ContractSide identifies the option side.
type ContractSide string

const (
	Call ContractSide = "CALL"
	Put  ContractSide = "PUT"
)

// Valid reports whether the side is CALL or PUT.
func (s ContractSide) Valid() bool {
	return s == Call || s == Put
}

// OrderDirection identifies whether an order buys or writes a contract.
type OrderDirection string

const (
	Buy  OrderDirection = "BUY"
	Sell OrderDirection = "SELL"
)

// Valid reports whether the direction is BUY or SELL.
func (d OrderDirection) Valid() bool {
	return d == Buy || d == Sell
}

// Expiration is a single slot in the expiration schedule. Day counts are
// whole UTC days from the schedule's build date.
type Expiration struct {
	Date         time.Time `json:"date"`
	Label        string    `json:"label"`
	DaysToExpiry int       `json:"days_to_expiry"`
	IsWeekly     bool      `json:"is_weekly"`
	NearExpiry   bool      `json:"near_expiry"`
}

// Greeks holds the price sensitivities of a single contract.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// ContractQuote is the synthesized market state of one contract.
// When Available is false the contract has no writers: bid and ask are 0
// and volume/open interest are 0, while Last and the Greeks still carry
// the theoretical values.
type ContractQuote struct {
	Bid          float64 `json:"bid"`
	Ask          float64 `json:"ask"`
	Last         float64 `json:"last"`
	Volume       int64   `json:"volume"`
	OpenInterest int64   `json:"open_interest"`
	Available    bool    `json:"available"`
	Greeks
}

// ITMFlags marks which side of a strike is in the money.
type ITMFlags struct {
	Call bool `json:"call"`
	Put  bool `json:"put"`
}

// ChainCell is one strike row of an options chain.
type ChainCell struct {
	Strike float64       `json:"strike"`
	IsATM  bool          `json:"is_atm"`
	IsITM  ITMFlags      `json:"is_itm"`
	IV     float64       `json:"iv"`
	Call   ContractQuote `json:"call"`
	Put    ContractQuote `json:"put"`
}

// Quote returns the quote for the given side of the cell.
func (c *ChainCell) Quote(side ContractSide) *ContractQuote {
	if side == Put {
		return &c.Put
	}
	return &c.Call
}

// OptionsChain is an ordered chain of cells, one per strike, ascending.
// A chain is a pure function of (spot, expiration, config) and is rebuilt
// whole whenever either input changes, never mutated in place.
type OptionsChain struct {
	Spot       float64     `json:"spot"`
	Expiration Expiration  `json:"expiration"`
	Cells      []ChainCell `json:"cells"`
	BuiltAt    time.Time   `json:"built_at"`
}

// CellAt returns the cell at the given strike, or nil.
func (ch *OptionsChain) CellAt(strike float64) *ChainCell {
	for i := range ch.Cells {
		if ch.Cells[i].Strike == strike {
			return &ch.Cells[i]
		}
	}
	return nil
}

// ATMCell returns the at-the-money cell, or nil if no cell qualifies.
func (ch *OptionsChain) ATMCell() *ChainCell {
	for i := range ch.Cells {
		if ch.Cells[i].IsATM {
			return &ch.Cells[i]
		}
	}
	return nil
}

// SelectedContract is a consumer's (strike, expiration, side) choice.
type SelectedContract struct {
	Strike     float64      `json:"strike"`
	Expiration Expiration   `json:"expiration"`
	Side       ContractSide `json:"side"`
}

// OrderValuation is the stateless risk/reward summary for one order.
// All monetary fields are in cents of probability, rounded to 2 decimals.
type OrderValuation struct {
	Premium      float64 `json:"premium"`
	TotalPremium float64 `json:"total_premium"`
	Fee          float64 `json:"fee"`
	MaxProfit    float64 `json:"max_profit"`
	MaxLoss      float64 `json:"max_loss"`
	Breakeven    float64 `json:"breakeven"`
	IsBuying     bool    `json:"is_buying"`
}

// PayoffPoint is one sample of a payoff-at-expiry curve.
type PayoffPoint struct {
	Price float64 `json:"price"`
	PnL   float64 `json:"pnl"`
}

// PayoffCurve is the payoff-at-expiry series for a single-leg order.
type PayoffCurve struct {
	Points    []PayoffPoint `json:"points"`
	MinPrice  float64       `json:"min_price"`
	MaxPrice  float64       `json:"max_price"`
	MaxPnL    float64       `json:"max_pnl"`
	MinPnL    float64       `json:"min_pnl"`
	Breakeven float64       `json:"breakeven"`
}
