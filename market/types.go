package market

import (
	"strings"
	"time"

	"github.com/Eutropios/WarMAC/models"
)

// ordersResponse matches the JSON returned by the item orders endpoint.
// Only the fields the pipeline consumes are mapped.
type ordersResponse struct {
	Payload struct {
		Orders []orderDTO `json:"orders"`
	} `json:"payload"`
	Include struct {
		Item struct {
			ItemsInSet []itemDTO `json:"items_in_set"`
		} `json:"item"`
	} `json:"include"`
}

type orderDTO struct {
	Platinum   float64   `json:"platinum"`
	OrderType  string    `json:"order_type"`
	Platform   string    `json:"platform"`
	Visible    bool      `json:"visible"`
	LastUpdate time.Time `json:"last_update"`
	ModRank    *int      `json:"mod_rank,omitempty"`
	Subtype    *string   `json:"subtype,omitempty"`
}

type itemDTO struct {
	Tags       []string `json:"tags"`
	ModMaxRank int      `json:"mod_max_rank"`
}

// toRawOrder converts a wire order into the domain record.
func (o orderDTO) toRawOrder() models.RawOrder {
	raw := models.RawOrder{
		Platform:   models.Platform(o.Platform),
		Price:      int(o.Platinum),
		LastUpdate: o.LastUpdate.UTC(),
		Kind:       models.OrderKind(o.OrderType),
		Visible:    o.Visible,
	}
	if o.ModRank != nil {
		rank := *o.ModRank
		raw.Rank = &rank
	}
	if o.Subtype != nil {
		ref := models.Refinement(*o.Subtype)
		raw.Refinement = &ref
	}
	return raw
}

// toItemInfo derives item metadata from the tag list. MaxRank is -1 for
// anything that is not a mod or arcane.
func (i itemDTO) toItemInfo(name, slug string) models.ItemInfo {
	info := models.ItemInfo{
		Name:    name,
		Slug:    slug,
		MaxRank: -1,
	}
	for _, tag := range i.Tags {
		switch tag {
		case "relic":
			info.IsRelic = true
		case "mod", "arcane_enhancement":
			info.IsModOrArc = true
		}
	}
	if info.IsModOrArc {
		info.MaxRank = i.ModMaxRank
	}
	return info
}

// Slug normalizes a user-typed item name into the API's URL form:
// lowercase, spaces to underscores, ampersands spelled out.
func Slug(item string) string {
	s := strings.ToLower(strings.TrimSpace(item))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "&", "and")
	return s
}

// DisplayName converts a slug back into a human-readable item name,
// e.g. "vengeful_revenant" -> "Vengeful Revenant".
func DisplayName(slug string) string {
	s := strings.ReplaceAll(slug, "_", " ")
	s = strings.ReplaceAll(s, " and ", " & ")

	words := strings.Fields(s)
	for i, w := range words {
		if w == "&" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
