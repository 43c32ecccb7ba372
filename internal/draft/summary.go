package draft

import "github.com/shopspring/decimal"

// Group is the subset of items sharing a services component. A nil
// ServicesComponentID collects items not yet assigned to one.
type Group struct {
	ServicesComponentID *int64     `json:"servicesComponentId"`
	Items               []LineItem `json:"items"`
}

// Totals is the money summary of a set of items.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Fees     decimal.Decimal `json:"fees"`
	Total    decimal.Decimal `json:"total"`
}

// GroupByCategory partitions items by services component. Groups appear in
// the order their component first appears in items; item order within a
// group is preserved.
func GroupByCategory(items []LineItem) []Group {
	groups := make([]Group, 0)
	index := make(map[int64]int)
	unassigned := NoIndex

	for _, item := range items {
		var pos int
		if item.ServicesComponentID == nil {
			if unassigned == NoIndex {
				unassigned = len(groups)
				groups = append(groups, Group{})
			}
			pos = unassigned
		} else {
			key := *item.ServicesComponentID
			p, ok := index[key]
			if !ok {
				p = len(groups)
				index[key] = p
				id := key
				groups = append(groups, Group{ServicesComponentID: &id})
			}
			pos = p
		}
		groups[pos].Items = append(groups[pos].Items, item.clone())
	}
	return groups
}

// ComputeTotals sums amounts and per-item fees. Each item's fee uses the
// rate snapshotted on that item when it was added.
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	fees := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount)
		fees = fees.Add(item.Fee())
	}
	return Totals{
		Subtotal: subtotal,
		Fees:     fees,
		Total:    subtotal.Add(fees),
	}
}
