package content

import (
	"fmt"
	"time"

	"github.com/splshield/splshield-web/internal/config"
)

// Phase status values.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in-progress"
	StatusUpcoming   = "upcoming"
)

// Phase is one quarter of the roadmap.
type Phase struct {
	ID          string
	Quarter     string // "Q4 2025"
	Title       string
	Description string
	Features    []string
}

// DefaultRoadmap returns the published roadmap.
func DefaultRoadmap() []Phase {
	return []Phase{
		{
			ID:          "q4-2025",
			Quarter:     "Q4 2025",
			Title:       "Launch & Foundation",
			Description: "Platform launch with the core scanner and the TDL presale.",
			Features: []string{
				"SPL Shield Scanner beta", "TDL token presale", "Community channels",
				"Security audit", "Website and whitepaper",
			},
		},
		{
			ID:          "q1-2026",
			Quarter:     "Q1 2026",
			Title:       "AI & Intelligence",
			Description: "Machine learning models for threat detection and risk scoring.",
			Features: []string{
				"AI risk models", "Wallet reputation scores", "Real-time alerts",
				"Exchange listing", "Public API",
			},
		},
		{
			ID:          "q2-2026",
			Quarter:     "Q2 2026",
			Title:       "Governance & Staking",
			Description: "Community governance and staking rewards for TDL holders.",
			Features: []string{
				"TDL staking", "DAO governance", "Treasury proposals",
				"Community reports", "Partner integrations",
			},
		},
		{
			ID:          "q3-2026",
			Quarter:     "Q3 2026",
			Title:       "Multi-chain & Mobile",
			Description: "Expansion beyond Solana and native mobile apps.",
			Features: []string{
				"Multi-chain scanning", "iOS and Android apps", "Browser extension",
				"Portfolio tracking", "Enterprise tier",
			},
		},
	}
}

// QuarterStart parses a "Q<n> <year>" label into the first instant of the
// quarter in UTC.
func QuarterStart(label string) (time.Time, error) {
	var q, year int
	if _, err := fmt.Sscanf(label, config.QuarterLayout, &q, &year); err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", config.ErrQuarterParse, label, err)
	}
	if q < 1 || q > 4 {
		return time.Time{}, fmt.Errorf("%s %q", config.ErrQuarterParse, label)
	}
	return time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), nil
}

// Window returns the start and the exclusive end of the phase's quarter.
func (p Phase) Window() (time.Time, time.Time, error) {
	start, err := QuarterStart(p.Quarter)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 3, 0), nil
}

// StatusAt reports where the phase stands at now. Phases with an
// unparseable quarter stay upcoming.
func (p Phase) StatusAt(now time.Time) string {
	start, end, err := p.Window()
	if err != nil {
		return StatusUpcoming
	}
	switch {
	case !now.Before(end):
		return StatusCompleted
	case !now.Before(start):
		return StatusInProgress
	default:
		return StatusUpcoming
	}
}
