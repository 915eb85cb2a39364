package tvspielfilm

import (
	"context"
	"fmt"

	"github.com/teleguide/teleguide/parsers/sprite"
	"github.com/teleguide/teleguide/providers"
)

var iconsURL = "https://a2.tvspielfilm.de/images/tv/sender/mini/sprite_web_optimized_1616508904.webp"

// iconSize is the width and height of one logo in the sprite.
const iconSize = 44

// iconOrder lists the channels exactly as their logos are stacked in
// the sprite, top to bottom. The website serves one fixed sheet for
// its listing pages.
var iconOrder = []string{
	"Das Erste",
	"ZDF",
	"RTL",
	"SAT.1",
	"ProSieben",
	"kabel eins",
	"RTL II",
	"VOX",
	"TELE 5",
	"3sat",
	"ARTE",
	"ZDFneo",
	"ONE",
	"ServusTV Deutschland",
	"NITRO",
	"DMAX",
	"sixx",
	"SAT.1 Gold",
	"ProSieben MAXX",
	"COMEDY CENTRAL",
	"RTLplus",
	"WDR",
	"NDR",
	"BR",
	"SWR/SR",
	"HR",
	"MDR",
	"RBB",
	"tv.berlin",
}

// iconIndex returns the position of the channel's logo in the sprite,
// -1 when the channel has none.
func iconIndex(name string) int {
	for i, n := range iconOrder {
		if n == name {
			return i
		}
	}
	return -1
}

// fetchIcons downloads and decodes the channel logo sprite.
func (p *TVSpielfilm) fetchIcons(ctx context.Context) (*sprite.Sheet, error) {
	r, err := p.getter.Get(ctx, iconsURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrNetworking, err)
	}
	defer r.Close()

	sheet, err := sprite.Decode(r, iconSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", providers.ErrParsingWebsite, err)
	}
	return sheet, nil
}
