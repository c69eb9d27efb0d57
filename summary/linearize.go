package summary

import "hn-reader/server/hn"

// CollectIDs returns every resolved comment ID in the forest exactly once, in
// depth-first pre-order (root before children, children in original order).
// Textless nodes are included.
func CollectIDs(forest []*hn.Comment) []int {
	var ids []int
	var walk func(c *hn.Comment)
	walk = func(c *hn.Comment) {
		ids = append(ids, c.ID)
		for _, r := range c.Replies {
			walk(r)
		}
	}
	for _, c := range forest {
		walk(c)
	}
	return ids
}

// CollectTexts returns the non-empty comment bodies in depth-first pre-order.
// Nodes without text (deleted comments) are skipped, but their replies are
// still visited. No depth limit is applied here; the forest already reflects
// whatever depth the fetch resolved.
func CollectTexts(forest []*hn.Comment) []string {
	var texts []string
	var walk func(c *hn.Comment)
	walk = func(c *hn.Comment) {
		if c.Text != "" {
			texts = append(texts, c.Text)
		}
		for _, r := range c.Replies {
			walk(r)
		}
	}
	for _, c := range forest {
		walk(c)
	}
	return texts
}
