// Package feeds encodes the presale calendar and the support contact card.
package feeds

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/content"
)

// PresaleCalendar builds an iCalendar feed with the presale deadline and
// one all-day event per roadmap quarter. now stamps every event.
func PresaleCalendar(deadline time.Time, phases []content.Phase, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	presale := ical.NewEvent()
	presale.Props.SetText(config.PropUID, eventUID(config.ICalPresaleTitle, deadline))
	presale.Props.SetText(config.PropSummary, config.ICalPresaleTitle)
	presale.Props.SetText(config.PropDescription, deadline.UTC().Format(config.DeadlineDisplayLayout))
	start := ical.NewProp(config.PropDTStart)
	start.SetDateTime(deadline.UTC())
	presale.Props.Set(start)
	presale.Props.Set(dtStampProp)
	cal.Children = append(cal.Children, presale.Component)

	for _, phase := range phases {
		day, err := content.QuarterStart(phase.Quarter)
		if err != nil {
			slog.Warn(err.Error(),
				config.LogKeyComponent, config.CompFeeds,
				config.LogKeyKey, phase.ID,
			)
			continue
		}

		summary := config.ICalRoadmapPrefix + phase.Quarter + " " + phase.Title
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(summary, day))
		event.Props.SetText(config.PropSummary, summary)
		event.Props.SetText(config.PropDescription, phase.Description)

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(day)
		event.Props.Set(dtStart)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug("Calendar encoded",
		config.LogKeyComponent, config.CompFeeds,
		config.LogKeyDeadline, deadline.UTC().Format(time.RFC3339),
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

// eventUID is stable across rebuilds for the same title and date.
func eventUID(title string, at time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, title, at.UTC().Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
