package chain

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/MedusaOnMe/PlyOpt/internal/errors"
	"github.com/MedusaOnMe/PlyOpt/internal/models"
	"github.com/MedusaOnMe/PlyOpt/internal/pricing"
)

// IV skew and spread shape. OTM puts (moneyness above 1) carry a crash
// premium; OTM calls mirror it with a smaller wing. Near-term expiries
// get an inverse-sqrt volatility boost and the at-the-money cell a small
// discount.
const (
	putWingCoeff  = 180.0
	callWingCoeff = 140.0
	atmDiscount   = 3.0
	termBoost     = 10.0
	ivFloor       = 5.0

	baseSpread      = 0.02   // spread fraction at the money, short-dated
	spreadPerDay    = 0.0005 // spread widening per day to expiry
	spreadIlliquid  = 0.05   // extra spread for illiquid wings
	liquidityWeight = 10.0   // how fast the liquidity factor decays off-ATM
)

// BuilderConfig carries the chain-generation knobs; zero values are not
// defaulted here, the caller threads validated configuration in.
type BuilderConfig struct {
	StrikeCount       int
	StrikeStepPercent float64
	BaseIV            float64
	RiskFreeRate      float64
	ATMTolerance      float64
}

// Builder composes the strike lattice, pricer and liquidity synthesizer
// into full option chains. Builders are stateless and safe for
// concurrent use.
type Builder struct {
	cfg BuilderConfig
	liq Synthesizer
	log zerolog.Logger
}

// NewBuilder creates a chain builder with the given configuration.
func NewBuilder(cfg BuilderConfig, logger zerolog.Logger) *Builder {
	return &Builder{cfg: cfg, log: logger}
}

// Build generates the full options chain for the given spot price and
// expiration, one cell per strike, ordered by strike ascending.
//
// The builder never guesses a spot price: callers holding no market data
// must supply their configured fallback (default 50) themselves.
func (b *Builder) Build(spot float64, expiration models.Expiration) (*models.OptionsChain, error) {
	if spot <= 0 || math.IsNaN(spot) {
		return nil, errors.NewValidationError("spot", spot, "must be positive")
	}
	if expiration.DaysToExpiry < 0 {
		return nil, errors.NewValidationError("days_to_expiry", expiration.DaysToExpiry, "must not be negative")
	}

	start := time.Now()
	strikes, err := Strikes(spot, b.cfg.StrikeCount, b.cfg.StrikeStepPercent)
	if err != nil {
		return nil, err
	}

	cells := make([]models.ChainCell, 0, len(strikes))
	for _, strike := range strikes {
		cell, err := b.buildCell(spot, strike, expiration.DaysToExpiry)
		if err != nil {
			return nil, errors.Wrapf(err, "building cell at strike %.2f", strike)
		}
		cells = append(cells, cell)
	}

	b.log.Debug().
		Str("event", "chain_build").
		Float64("spot", spot).
		Int("days_to_expiry", expiration.DaysToExpiry).
		Int("cells", len(cells)).
		Dur("elapsed", time.Since(start)).
		Msg("Options chain built")

	return &models.OptionsChain{
		Spot:       spot,
		Expiration: expiration,
		Cells:      cells,
		BuiltAt:    time.Now().UTC(),
	}, nil
}

func (b *Builder) buildCell(spot, strike float64, daysToExpiry int) (models.ChainCell, error) {
	moneyness := spot / strike
	iv := b.cellIV(strike, moneyness, daysToExpiry)

	call, err := b.buildQuote(spot, strike, daysToExpiry, moneyness, iv, models.Call)
	if err != nil {
		return models.ChainCell{}, err
	}
	put, err := b.buildQuote(spot, strike, daysToExpiry, moneyness, iv, models.Put)
	if err != nil {
		return models.ChainCell{}, err
	}

	return models.ChainCell{
		Strike: strike,
		IsATM:  math.Abs(moneyness-1) < b.cfg.ATMTolerance,
		IsITM: models.ITMFlags{
			Call: spot > strike,
			Put:  spot < strike,
		},
		IV:   iv,
		Call: call,
		Put:  put,
	}, nil
}

// cellIV applies the skew/smile model to the base IV: quadratic OTM
// wings, a small ATM discount, an inverse-sqrt near-term boost and the
// seeded per-cell jitter.
func (b *Builder) cellIV(strike, moneyness float64, daysToExpiry int) float64 {
	wing := moneyness - 1
	coeff := callWingCoeff
	if wing > 0 {
		coeff = putWingCoeff
	}

	days := daysToExpiry
	if days < 1 {
		days = 1
	}

	iv := b.cfg.BaseIV + coeff*wing*wing + termBoost/math.Sqrt(float64(days))
	if math.Abs(wing) < b.cfg.ATMTolerance {
		iv -= atmDiscount
	}
	iv += b.liq.IVJitter(strike, daysToExpiry)

	if iv < ivFloor {
		iv = ivFloor
	}
	return math.Round(iv*10) / 10
}

func (b *Builder) buildQuote(spot, strike float64, daysToExpiry int, moneyness, iv float64, side models.ContractSide) (models.ContractQuote, error) {
	last, greeks, err := pricing.PriceAndGreeks(pricing.Input{
		Spot:         spot,
		Strike:       strike,
		DaysToExpiry: daysToExpiry,
		IVPercent:    iv,
		Rate:         b.cfg.RiskFreeRate,
		Side:         side,
	})
	if err != nil {
		return models.ContractQuote{}, err
	}

	quote := models.ContractQuote{
		Last:   last,
		Greeks: greeks,
	}

	if !b.liq.Available(strike, daysToExpiry, moneyness, side) {
		return quote, nil
	}

	spread := b.spreadPct(moneyness, daysToExpiry)
	bid := math.Round(last*(1-spread/2)*100) / 100
	ask := math.Round(last*(1+spread/2)*100) / 100
	if bid < 0 {
		bid = 0
	}
	if ask < pricing.MinTick {
		ask = pricing.MinTick
	}
	if bid > ask {
		bid = ask
	}

	quote.Bid = bid
	quote.Ask = ask
	quote.Available = true
	quote.Volume, quote.OpenInterest = b.liq.VolumeOpenInterest(strike, daysToExpiry, moneyness, side)
	return quote, nil
}

// spreadPct widens the bid/ask spread away from the money and for
// longer-dated contracts.
func (b *Builder) spreadPct(moneyness float64, daysToExpiry int) float64 {
	liquidityFactor := math.Exp(-liquidityWeight * math.Pow(moneyness-1, 2))
	return baseSpread + spreadPerDay*float64(daysToExpiry) + (1-liquidityFactor)*spreadIlliquid
}
