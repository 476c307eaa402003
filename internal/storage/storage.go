// Package storage holds the task collection and keeps it in sync with a
// key-value blob store.
package storage

import (
	"iter"
	"log/slog"
	"slices"
	"time"

	"github.com/abatilo/todo/internal/config"
	"github.com/abatilo/todo/internal/kv"
	"github.com/abatilo/todo/internal/task"
)

// TaskStore owns the task list and the active filter. It is not safe for
// concurrent use; callers serialize access.
type TaskStore struct {
	kv     kv.KeyValueStore
	key    string
	codec  Codec
	logger *slog.Logger
	ids    *task.IDGenerator

	tasks  []task.Task
	filter task.Filter
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithKey sets the key the collection is stored under.
func WithKey(key string) Option {
	return func(s *TaskStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithCodec sets the blob encoding.
func WithCodec(c Codec) Option {
	return func(s *TaskStore) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithLogger sets the logger persistence failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(s *TaskStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock task IDs are derived from.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.ids = task.NewIDGenerator(now)
	}
}

// NewTaskStore creates an empty TaskStore backed by store. Call Load to hydrate it.
func NewTaskStore(store kv.KeyValueStore, opts ...Option) *TaskStore {
	s := &TaskStore{
		kv:     store,
		key:    config.DefaultKey,
		codec:  JSONCodec{},
		logger: slog.New(slog.DiscardHandler),
		ids:    task.NewIDGenerator(nil),
		filter: task.FilterAll,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one. A missing,
// unreadable or undecodable blob yields an empty collection.
func (s *TaskStore) Load() {
	s.tasks = nil

	blob, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("failed to read tasks, starting empty", "key", s.key, "error", err)
		return
	}
	if !ok {
		s.logger.Debug("no stored tasks", "key", s.key)
		return
	}

	decoded, err := s.codec.Unmarshal(blob)
	if err != nil {
		s.logger.Warn("discarding unreadable task data", "key", s.key, "error", err)
		return
	}

	s.tasks = s.hydrate(decoded)
	s.logger.Debug("loaded tasks", "key", s.key, "count", len(s.tasks))
}

// hydrate drops records that break the collection invariants: blank titles
// and repeated IDs (first occurrence wins).
func (s *TaskStore) hydrate(decoded []task.Task) []task.Task {
	seen := make(map[int64]bool, len(decoded))
	tasks := make([]task.Task, 0, len(decoded))
	for _, t := range decoded {
		title, ok := task.NormalizeTitle(t.Title)
		if !ok || seen[t.ID] {
			s.logger.Debug("skipping invalid stored task", "id", t.ID)
			continue
		}
		seen[t.ID] = true
		t.Title = title
		tasks = append(tasks, t)
		s.ids.Observe(t.ID)
	}
	return tasks
}

// Save writes the whole collection to the blob store. Failures are logged and
// leave the in-memory collection untouched.
func (s *TaskStore) Save() {
	blob, err := s.codec.Marshal(s.tasks)
	if err != nil {
		s.logger.Warn("failed to encode tasks", "key", s.key, "error", err)
		return
	}
	if err = s.kv.Set(s.key, blob); err != nil {
		s.logger.Warn("failed to save tasks", "key", s.key, "error", err)
	}
}

func (s *TaskStore) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t task.Task) bool { return t.ID == id })
}

func (s *TaskStore) exists(id int64) bool {
	return s.index(id) >= 0
}

// Add appends a new incomplete task. A blank title is rejected and ok is false.
func (s *TaskStore) Add(title string) (task.Task, bool) {
	title, ok := task.NormalizeTitle(title)
	if !ok {
		return task.Task{}, false
	}

	t := task.Task{
		ID:    s.ids.Next(s.exists),
		Title: title,
	}
	s.tasks = append(s.tasks, t)
	s.Save()
	s.logger.Debug("task added", "id", t.ID)
	return t, true
}

// Delete removes the task with the given ID. Returns false if there was none.
func (s *TaskStore) Delete(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.Save()
	s.logger.Debug("task deleted", "id", id)
	return true
}

// ToggleCompleted flips the completed flag. Returns false if the task doesn't exist.
func (s *TaskStore) ToggleCompleted(id int64) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.Save()
	s.logger.Debug("task toggled", "id", id, "completed", s.tasks[i].Completed)
	return true
}

// Edit replaces a task's title. A blank title or unknown ID leaves everything
// unchanged and returns false.
func (s *TaskStore) Edit(id int64, newTitle string) bool {
	title, ok := task.NormalizeTitle(newTitle)
	if !ok {
		return false
	}
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Title = title
	s.Save()
	s.logger.Debug("task edited", "id", id)
	return true
}

// ClearAll removes every task. Confirmation is the caller's job.
// Returns false if there was nothing to clear.
func (s *TaskStore) ClearAll() bool {
	if len(s.tasks) == 0 {
		return false
	}
	s.tasks = nil
	s.Save()
	s.logger.Debug("tasks cleared")
	return true
}

// SetFilter changes the visible subset. Unknown filters are ignored.
func (s *TaskStore) SetFilter(f task.Filter) bool {
	if !task.IsValidFilter(f) {
		s.logger.Debug("ignoring unknown filter", "filter", string(f))
		return false
	}
	s.filter = f
	return true
}

// Filter returns the active filter.
func (s *TaskStore) Filter() task.Filter {
	return s.filter
}

// VisibleTasks yields the tasks matching the active filter in insertion order.
// Each iteration reads the current collection and filter.
func (s *TaskStore) VisibleTasks() iter.Seq[task.Task] {
	return func(yield func(task.Task) bool) {
		for t := range s.Select(s.filter) {
			if !yield(t) {
				return
			}
		}
	}
}

// Select yields the tasks matching f regardless of the active filter.
func (s *TaskStore) Select(f task.Filter) iter.Seq[task.Task] {
	return func(yield func(task.Task) bool) {
		for _, t := range s.tasks {
			if f.Matches(t) && !yield(t) {
				return
			}
		}
	}
}

// RemainingCount returns how many tasks are not completed.
func (s *TaskStore) RemainingCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Tasks returns a copy of the full collection.
func (s *TaskStore) Tasks() []task.Task {
	return slices.Clone(s.tasks)
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id int64) (task.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return task.Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}
