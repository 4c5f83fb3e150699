package rack

// Expand flattens multi-quantity items into individual rack entries.
// An item with Quantity 3 becomes three copies with Quantity 1 so that
// each occupies its own slot during arrangement. Quantities of zero or
// below are treated as one. Copies of the same item stay adjacent and
// input order is preserved.
//
// The input slice is never modified.
func Expand(items []Item) []Item {
	expanded := make([]Item, 0, len(items))
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		for i := 0; i < qty; i++ {
			copied := it
			copied.Quantity = 1
			expanded = append(expanded, copied)
		}
	}
	return expanded
}
