package feeds

import (
	"bytes"
	"fmt"

	"github.com/emersion/go-vcard"

	"github.com/splshield/splshield-web/internal/config"
)

// CardInfo is the contact published as a downloadable vCard.
type CardInfo struct {
	Name    string
	Org     string
	Email   string
	SiteURL string
	Social  []string
}

// SupportCard encodes info as a vCard 4.0.
func SupportCard(info CardInfo) ([]byte, error) {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetKind(vcard.KindOrganization)
	card.SetValue(vcard.FieldFormattedName, info.Name)
	if info.Org != "" {
		card.SetValue(vcard.FieldOrganization, info.Org)
	}
	if info.Email != "" {
		card.SetValue(vcard.FieldEmail, info.Email)
	}
	if info.SiteURL != "" {
		card.AddValue(vcard.FieldURL, info.SiteURL)
	}
	for _, u := range info.Social {
		if u != "" {
			card.AddValue(vcard.FieldURL, u)
		}
	}

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(card); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
	}
	return buf.Bytes(), nil
}
