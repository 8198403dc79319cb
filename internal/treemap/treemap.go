// Package treemap tiles a rectangle with areas proportional to item values.
// The algorithm is a recursive binary slice-and-dice: sort descending, split
// the list where cumulative value reaches half, cut along the longer axis and
// recurse. It approximates squarified treemaps in O(n log n) and is fully
// deterministic; it does not guarantee minimal aspect ratios.
package treemap

import "sort"

type Item struct {
	Key   string
	Value float64
}

type Rect struct {
	Key string  `json:"key"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w"`
	H   float64 `json:"h"`
}

// Layout tiles width×height with one rectangle per positive-value item.
// Empty input yields no rectangles.
func Layout(items []Item, width, height float64) []Rect {
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Value > 0 {
			filtered = append(filtered, it)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Value > filtered[j].Value })

	out := make([]Rect, 0, len(filtered))
	slice(filtered, 0, 0, width, height, &out)
	return out
}

func slice(items []Item, x, y, w, h float64, out *[]Rect) {
	if len(items) == 1 {
		*out = append(*out, Rect{Key: items[0].Key, X: x, Y: y, W: w, H: h})
		return
	}

	var total float64
	for _, it := range items {
		total += it.Value
	}

	split := 0
	var headSum float64
	for i, it := range items {
		headSum += it.Value
		if headSum >= total/2 {
			split = i + 1
			break
		}
	}
	// Keep both halves non-empty.
	if split == len(items) {
		split = len(items) - 1
		headSum -= items[len(items)-1].Value
	}

	frac := headSum / total
	if w >= h {
		slice(items[:split], x, y, w*frac, h, out)
		slice(items[split:], x+w*frac, y, w*(1-frac), h, out)
	} else {
		slice(items[:split], x, y, w, h*frac, out)
		slice(items[split:], x, y+h*frac, w, h*(1-frac), out)
	}
}
