package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/sitedates/internal/index"
	"github.com/aidanlsb/sitedates/internal/logging"
	"github.com/aidanlsb/sitedates/internal/site"
	"github.com/aidanlsb/sitedates/internal/testutil"
)

func newTestWatcher(t *testing.T, root string, onChange func(Event)) (*Watcher, *index.Database) {
	t.Helper()
	db, err := index.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	w, err := New(Config{
		Root:          root,
		Options:       site.WalkOptions{Ignore: map[string]struct{}{"_site": {}, "drafts": {}}},
		Database:      db,
		Log:           logging.Discard(),
		DebounceDelay: 20 * time.Millisecond,
		OnChange:      onChange,
	})
	require.NoError(t, err)
	return w, db
}

func TestNewRequiresRootAndDatabase(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
	_, err = New(Config{Root: t.TempDir()})
	assert.Error(t, err)
}

func TestReindexAndRemove(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestSite(t).WithPost("posts/a.md", "2021-06-01T08:00:00+02:00", "A").Build()
	w, db := newTestWatcher(t, s.Path, nil)

	ev := w.ReindexFile(ctx, "posts/a.md")
	require.NoError(t, ev.Err)
	assert.Equal(t, "posts/a.md", ev.Path)

	doc, err := db.Get(ctx, "posts/a.md")
	require.NoError(t, err)
	assert.True(t, doc.Date.Equal(time.Date(2021, 6, 1, 6, 0, 0, 0, time.UTC)))

	ev = w.RemoveFromIndex(ctx, filepath.Join(s.Path, "posts", "a.md"))
	require.NoError(t, ev.Err)
	assert.True(t, ev.Removed)
	_, err = db.Get(ctx, "posts/a.md")
	assert.ErrorIs(t, err, index.ErrDocumentNotFound)
}

func TestShouldIgnore(t *testing.T) {
	root := t.TempDir()
	w, _ := newTestWatcher(t, root, nil)

	assert.True(t, w.shouldIgnore(filepath.Join(root, "drafts", "x.md")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, "_site", "posts", "x.md")))
	assert.False(t, w.shouldIgnore(filepath.Join(root, "posts", "x.md")))
}

func TestStartPicksUpWrites(t *testing.T) {
	s := testutil.NewTestSite(t).WithFile("index.md", "# Home\n").Build()

	events := make(chan Event, 16)
	w, db := newTestWatcher(t, s.Path, func(ev Event) { events <- ev })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register directories.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(s.Path, "new.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ndate: 2022-02-02\n---\n# New\n"), 0o644))

	select {
	case ev := <-events:
		require.NoError(t, ev.Err)
		assert.Equal(t, "new.md", ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reindex event")
	}

	doc, err := db.Get(context.Background(), "new.md")
	require.NoError(t, err)
	assert.Equal(t, "New", doc.Title)
}

func TestReportSerializesCallbacks(t *testing.T) {
	var inside, overlaps int32
	w, _ := newTestWatcher(t, t.TempDir(), func(Event) {
		if atomic.AddInt32(&inside, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&inside, -1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.report(Event{Path: "a.md"})
		}()
	}
	wg.Wait()
	assert.Zero(t, atomic.LoadInt32(&overlaps))
}

func TestStartWaitsForDebounceLoop(t *testing.T) {
	s := testutil.NewTestSite(t).WithPost("a.md", "2021-01-01", "A").Build()

	var after atomic.Bool
	var stopped atomic.Bool
	w, _ := newTestWatcher(t, s.Path, func(Event) {
		if stopped.Load() {
			after.Store(true)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	stopped.Store(true)

	// Anything scheduled now has no loop left to process it.
	w.scheduleReindex(filepath.Join(s.Path, "a.md"))
	time.Sleep(150 * time.Millisecond)
	assert.False(t, after.Load(), "callback ran after Start returned")
}
