// Package todo holds the to-do list state and every operation that mutates it.
package todo

import (
	"errors"
	"log/slog"
	"strings"
	"time"
)

// DefaultKey is the adapter key the whole list is stored under.
const DefaultKey = "todoData"

// Adapter is a durable string key-value store.
type Adapter interface {
	// Load returns ok == false when the key has never been saved.
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
}

type Options struct {
	Key    string
	Logger *slog.Logger
	Now    func() time.Time
}

// Store owns the list, the pending add input and the edit session. All
// mutation goes through its methods; callers read state via Snapshot.
// A Store is not safe for concurrent use.
type Store struct {
	adapter Adapter
	key     string
	log     *slog.Logger
	ids     *IDGenerator

	items   []Item
	pending string
	edit    *EditSession
}

func NewStore(adapter Adapter, opt Options) *Store {
	if opt.Key == "" {
		opt.Key = DefaultKey
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &Store{
		adapter: adapter,
		key:     opt.Key,
		log:     opt.Logger.With("component", "todo.store", "key", opt.Key),
		ids:     NewIDGenerator(opt.Now),
		items:   []Item{},
	}
}

// Initialize loads the persisted list. Read and decode failures leave the
// list empty; nothing is written back.
func (s *Store) Initialize() {
	value, ok, err := s.adapter.Load(s.key)
	if err != nil {
		s.log.Error("load failed", "err", err)
		return
	}
	if !ok || value == "" {
		s.log.Debug("no saved items")
		return
	}
	items, err := DecodeItems(value)
	if err != nil {
		s.log.Error("load failed", "err", err, "corrupt", errors.Is(err, ErrCorrupt))
		return
	}
	for _, it := range items {
		s.ids.Observe(it.ID)
	}
	s.items = items
	s.log.Info("items loaded", "count", len(items))
}

func (s *Store) SetPendingInput(text string) {
	s.pending = text
}

// AddItem appends the pending input as a new item. It reports false, and
// changes nothing, when the input is blank.
func (s *Store) AddItem() bool {
	if strings.TrimSpace(s.pending) == "" {
		return false
	}
	item := Item{ID: s.ids.Next(), Title: s.pending}
	s.commit(append(s.cloneItems(), item))
	s.pending = ""
	s.persist("add", "id", item.ID)
	return true
}

func (s *Store) RemoveItem(id int64) {
	next := make([]Item, 0, len(s.items))
	removed := false
	for _, it := range s.items {
		if !removed && it.ID == id {
			removed = true
			continue
		}
		next = append(next, it)
	}
	s.commit(next)
	s.persist("remove", "id", id, "found", removed)
}

func (s *Store) ClearAll() {
	s.commit([]Item{})
	s.persist("clear")
}

func (s *Store) ToggleCompleted(id int64) {
	next := s.cloneItems()
	found := false
	if i := indexOf(next, id); i >= 0 {
		next[i].Completed = !next[i].Completed
		found = true
	}
	s.commit(next)
	s.persist("toggle", "id", id, "found", found)
}

// BeginEdit starts renaming id, replacing any edit already in progress.
func (s *Store) BeginEdit(id int64, currentTitle string) {
	s.edit = &EditSession{ID: id, Value: currentTitle}
}

func (s *Store) SetEditingValue(text string) {
	if s.edit == nil {
		return
	}
	s.edit.Value = text
}

// CommitEdit writes the draft title to id. A blank draft cancels the edit
// instead. It reports whether a title was saved.
func (s *Store) CommitEdit(id int64) bool {
	if s.edit == nil || s.edit.ID != id {
		return false
	}
	if strings.TrimSpace(s.edit.Value) == "" {
		s.CancelEdit()
		return false
	}
	next := s.cloneItems()
	found := false
	if i := indexOf(next, id); i >= 0 {
		next[i].Title = s.edit.Value
		found = true
	}
	s.commit(next)
	s.edit = nil
	s.persist("edit", "id", id, "found", found)
	return found
}

func (s *Store) CancelEdit() {
	s.edit = nil
}

// Snapshot returns a copy of the current state for rendering.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Items:        s.cloneItems(),
		PendingInput: s.pending,
	}
	if s.edit != nil {
		e := *s.edit
		snap.Edit = &e
	}
	return snap
}

func (s *Store) commit(items []Item) {
	s.items = items
}

// persist writes the whole list. A write failure is logged and the
// in-memory state is kept as is.
func (s *Store) persist(op string, attrs ...any) {
	value, err := EncodeItems(s.items)
	if err == nil {
		err = s.adapter.Save(s.key, value)
	}
	if err != nil {
		s.log.Error("save failed", append([]any{"op", op, "err", err}, attrs...)...)
		return
	}
	s.log.Debug("saved", append([]any{"op", op, "count", len(s.items)}, attrs...)...)
}

func (s *Store) cloneItems() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func indexOf(items []Item, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
