// Package pricing computes the price of a controller configuration.
package pricing

import (
	"github.com/orbitlab/orbit/internal/customization"
	"github.com/orbitlab/orbit/internal/parts"
)

const (
	BasePrice         Money = 7999
	SkinFaceSurcharge Money = 1899
	GripsSurcharge    Money = 899
)

// LineItem is one surcharge applied to a configuration.
type LineItem struct {
	Part   parts.ID `json:"part"`
	Label  string   `json:"label"`
	Amount Money    `json:"amount"`
}

// AddOnSummary totals the surcharges of a configuration.
type AddOnSummary struct {
	Count  int        `json:"count"`
	Amount Money      `json:"amount"`
	Items  []LineItem `json:"items"`
}

// Quote is the full price breakdown shown in the price panel.
type Quote struct {
	Base   Money        `json:"base"`
	AddOns AddOnSummary `json:"addOns"`
	Total  Money        `json:"total"`
}

// AddOns lists the surcharges that apply to s. A skinned face and installed grips
// are independent terms.
func AddOns(s customization.State) AddOnSummary {
	summary := AddOnSummary{Items: []LineItem{}}

	if face := s.Face(); face.IsSkin() {
		summary.Items = append(summary.Items, LineItem{
			Part:   parts.Face,
			Label:  "Premium skin face",
			Amount: SkinFaceSurcharge,
		})
	}
	if s.Grips() {
		summary.Items = append(summary.Items, LineItem{
			Part:   parts.Grips,
			Label:  "Back grips",
			Amount: GripsSurcharge,
		})
	}

	for _, item := range summary.Items {
		summary.Amount += item.Amount
	}
	summary.Count = len(summary.Items)
	return summary
}

// Total returns base price plus add-ons.
func Total(s customization.State) Money {
	return BasePrice + AddOns(s).Amount
}

func QuoteFor(s customization.State) Quote {
	addOns := AddOns(s)
	return Quote{
		Base:   BasePrice,
		AddOns: addOns,
		Total:  BasePrice + addOns.Amount,
	}
}
