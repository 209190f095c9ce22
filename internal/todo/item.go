package todo

// Item is a single to-do entry. ID is the only lookup key.
type Item struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// EditSession tracks the item being renamed and its draft title.
type EditSession struct {
	ID    int64
	Value string
}

type Snapshot struct {
	Items        []Item
	PendingInput string
	Edit         *EditSession
}

func (s Snapshot) Stats() (done, pending int) {
	for _, it := range s.Items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
