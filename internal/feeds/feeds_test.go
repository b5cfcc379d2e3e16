package feeds

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splshield/splshield-web/internal/config"
	"github.com/splshield/splshield-web/internal/content"
)

var (
	testDeadline = time.Date(2026, 1, 6, 18, 0, 0, 0, time.UTC)
	testNow      = time.Date(2025, 11, 2, 9, 30, 0, 0, time.UTC)
)

func decodeCalendar(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err, "generated ICS must be parseable")
	return cal
}

func TestPresaleCalendar(t *testing.T) {
	phases := content.DefaultRoadmap()

	data, err := PresaleCalendar(testDeadline, phases, testNow)
	require.NoError(t, err)

	cal := decodeCalendar(t, data)
	events := cal.Events()
	require.Len(t, events, 1+len(phases))

	presale := events[0]
	summary, err := presale.Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, config.ICalPresaleTitle, summary)

	start, err := presale.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(testDeadline))

	q4 := events[1]
	summary, err = q4.Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, config.ICalRoadmapPrefix+"Q4 2025 Launch & Foundation", summary)

	start, err = q4.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), start)

	for _, e := range events {
		assert.NotNil(t, e.Props.Get(config.PropDTStamp), "every event carries DTSTAMP")
	}
	assert.NotNil(t, cal.Props.Get(config.PropRefresh))
}

func TestPresaleCalendar_StableUIDs(t *testing.T) {
	phases := content.DefaultRoadmap()

	first, err := PresaleCalendar(testDeadline, phases, testNow)
	require.NoError(t, err)
	second, err := PresaleCalendar(testDeadline, phases, testNow.Add(time.Hour))
	require.NoError(t, err)

	uids := func(data []byte) []string {
		var out []string
		for _, e := range decodeCalendar(t, data).Events() {
			uid, err := e.Props.Text(config.PropUID)
			require.NoError(t, err)
			out = append(out, uid)
		}
		return out
	}

	a, b := uids(first), uids(second)
	assert.Equal(t, a, b, "UIDs must not depend on the generation time")
	assert.Len(t, a, len(phases)+1)
	assert.Contains(t, a[0], "@"+config.ICalDomain)

	moved, err := PresaleCalendar(testDeadline.AddDate(1, 0, 0), phases, testNow)
	require.NoError(t, err)
	assert.NotEqual(t, a[0], uids(moved)[0], "a new deadline is a new event")
}

func TestPresaleCalendar_SkipsBadQuarter(t *testing.T) {
	phases := []content.Phase{
		{ID: "bad", Quarter: "someday", Title: "Later"},
		{ID: "ok", Quarter: "Q2 2026", Title: "Governance"},
	}

	data, err := PresaleCalendar(testDeadline, phases, testNow)
	require.NoError(t, err)
	assert.Len(t, decodeCalendar(t, data).Events(), 2)
}

func TestSupportCard(t *testing.T) {
	data, err := SupportCard(CardInfo{
		Name:    config.VCardName,
		Org:     config.VCardOrg,
		Email:   config.SupportEmail,
		SiteURL: "https://splshield.com",
		Social:  []string{"https://t.me/example", "", "https://discord.gg/example"},
	})
	require.NoError(t, err)

	card, err := vcard.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	assert.Equal(t, config.VCardVersion, card.Value(vcard.FieldVersion))
	assert.Equal(t, config.VCardName, card.Value(vcard.FieldFormattedName))
	assert.Equal(t, config.VCardOrg, card.Value(vcard.FieldOrganization))
	assert.Equal(t, config.SupportEmail, card.Value(vcard.FieldEmail))
	assert.Equal(t, vcard.KindOrganization, card.Kind())
	assert.Equal(t,
		[]string{"https://splshield.com", "https://t.me/example", "https://discord.gg/example"},
		card.Values(vcard.FieldURL),
		"empty social links are dropped")
}
