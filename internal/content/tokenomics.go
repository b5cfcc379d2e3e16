package content

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/splshield/splshield-web/internal/config"
)

// Allocation is one slice of the token distribution.
type Allocation struct {
	Name       string
	Percentage int
	Vesting    string
}

// Segment is an allocation placed on the donut chart, in percent of the
// full circle.
type Segment struct {
	Allocation
	Start int
	End   int
}

// PresaleDetail is one row of the presale card.
type PresaleDetail struct {
	Label     string
	Value     string
	Highlight bool
}

// Tokenomics describes the supply, the presale terms and the distribution.
type Tokenomics struct {
	TotalSupply    int64
	RaiseTarget    int64
	PresaleRateSOL float64
	PresaleRateTDL float64
	ListingRateSOL float64
	ListingRateTDL float64
	Allocations    []Allocation
}

// DefaultTokenomics returns the published TDL terms.
func DefaultTokenomics() Tokenomics {
	return Tokenomics{
		TotalSupply:    10_000_000_000,
		RaiseTarget:    500_000,
		PresaleRateSOL: 0.1,
		PresaleRateTDL: 75018.75,
		ListingRateSOL: 0.3,
		ListingRateTDL: 75018.75,
		Allocations: []Allocation{
			{Name: "Presale (Public Sale)", Percentage: 25, Vesting: "12-mo linear unlock • Early supporters"},
			{Name: "Liquidity & CEX Listings", Percentage: 20, Vesting: "12-mo lock • Market stabilization"},
			{Name: "Team & Development", Percentage: 20, Vesting: "12-mo vesting • Long-term sustainability"},
			{Name: "Staking & Rewards", Percentage: 15, Vesting: "48-mo linear • Ecosystem incentives"},
			{Name: "Marketing & Partnerships", Percentage: 10, Vesting: "12-mo rollout • Brand growth"},
			{Name: "Treasury & Ecosystem Growth", Percentage: 10, Vesting: "DAO-managed • Future R&D"},
		},
	}
}

// Segments lays the allocations end to end around the chart.
func (t Tokenomics) Segments() ([]Segment, error) {
	segments := make([]Segment, 0, len(t.Allocations))
	cumulative := 0
	for _, a := range t.Allocations {
		segments = append(segments, Segment{Allocation: a, Start: cumulative, End: cumulative + a.Percentage})
		cumulative += a.Percentage
	}
	if cumulative != 100 {
		return nil, errors.New(config.ErrAllocationSum)
	}
	return segments, nil
}

// Details formats the presale card rows with the number conventions of lang.
func (t Tokenomics) Details(lang string) []PresaleDetail {
	p := message.NewPrinter(language.Make(lang))
	rate := func(sol, tdl float64) string {
		return p.Sprintf("%v SOL = %v %s",
			number.Decimal(sol),
			number.Decimal(tdl, number.MaxFractionDigits(2)),
			config.TokenSymbol)
	}

	return []PresaleDetail{
		{Label: "Presale Rate", Value: rate(t.PresaleRateSOL, t.PresaleRateTDL), Highlight: true},
		{Label: "Listing Rate", Value: rate(t.ListingRateSOL, t.ListingRateTDL)},
		{Label: "Raise Target", Value: p.Sprintf("$%v", number.Decimal(t.RaiseTarget))},
		{Label: "Total Supply", Value: p.Sprintf("%v %s", number.Decimal(t.TotalSupply), config.TokenSymbol)},
	}
}
