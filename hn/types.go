package hn

// Item is the raw upstream record for any HN item (story, comment, job, ...).
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids"`
	Parent      int    `json:"parent"`
	Dead        bool   `json:"dead"`
	Deleted     bool   `json:"deleted"`
}

// Story is the item shape served to clients for story listings and detail.
type Story struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Text        string `json:"text,omitempty"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Kids        []int  `json:"kids,omitempty"`
}

// Comment is a resolved node in a comment tree. Replies is populated by the
// tree fetch, up to its depth limit; Kids always reflects the upstream record,
// so a depth-limited node still declares children it did not resolve.
type Comment struct {
	ID      int        `json:"id"`
	By      string     `json:"by,omitempty"`
	Text    string     `json:"text,omitempty"`
	Time    int64      `json:"time"`
	Kids    []int      `json:"kids,omitempty"`
	Replies []*Comment `json:"replies,omitempty"`
	Deleted bool       `json:"deleted,omitempty"`
	Dead    bool       `json:"dead,omitempty"`
}

// Story converts a raw item into the client-facing story shape.
func (i *Item) Story() *Story {
	s := &Story{
		ID:          i.ID,
		Title:       i.Title,
		By:          i.By,
		Time:        i.Time,
		Text:        i.Text,
		URL:         i.URL,
		Score:       i.Score,
		Descendants: i.Descendants,
		Kids:        i.Kids,
	}
	if s.By == "" {
		s.By = "[unknown]"
	}
	return s
}
