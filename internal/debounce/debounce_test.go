package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// recorder collects invocations in order, safe for concurrent use.
type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSingleTriggerFiresOnceAfterQuietPeriod(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Trigger("dune")

	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })
	require.Equal(t, []string{"dune"}, rec.snapshot())
	require.False(t, d.Pending())
}

func TestRapidTriggersCollapseToLast(t *testing.T) {
	rec := &recorder{}
	d := New(50*time.Millisecond, rec.record)

	d.Trigger("d")
	d.Trigger("du")
	d.Trigger("dun")
	d.Trigger("dune")

	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })

	// Allow a stale timer to fire if the generation guard were broken.
	time.Sleep(80 * time.Millisecond)
	require.Equal(t, []string{"dune"}, rec.snapshot())
}

func TestCancelDropsPendingInvocation(t *testing.T) {
	rec := &recorder{}
	d := New(20*time.Millisecond, rec.record)

	d.Trigger("dune")
	require.True(t, d.Pending())
	d.Cancel()
	require.False(t, d.Pending())

	time.Sleep(60 * time.Millisecond)
	require.Empty(t, rec.snapshot())
}

func TestFlushRunsImmediately(t *testing.T) {
	rec := &recorder{}
	d := New(time.Hour, rec.record)

	d.Trigger("dune")
	d.Flush()

	require.Equal(t, []string{"dune"}, rec.snapshot())
	require.False(t, d.Pending())

	// Flushing again is a no-op.
	d.Flush()
	require.Equal(t, []string{"dune"}, rec.snapshot())
}

func TestIndependentDebouncersDoNotInterfere(t *testing.T) {
	searchRec := &recorder{}
	suggestRec := &recorder{}
	search := New(60*time.Millisecond, searchRec.record)
	suggest := New(15*time.Millisecond, suggestRec.record)

	search.Trigger("lord of the rings")
	suggest.Trigger("lord")

	waitFor(t, func() bool { return len(suggestRec.snapshot()) == 1 })
	require.Empty(t, searchRec.snapshot())

	waitFor(t, func() bool { return len(searchRec.snapshot()) == 1 })
	require.Equal(t, []string{"lord of the rings"}, searchRec.snapshot())
	require.Equal(t, []string{"lord"}, suggestRec.snapshot())
}

func TestTriggerAfterFireSchedulesAgain(t *testing.T) {
	rec := &recorder{}
	d := New(15*time.Millisecond, rec.record)

	d.Trigger("first")
	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })

	d.Trigger("second")
	waitFor(t, func() bool { return len(rec.snapshot()) == 2 })

	require.Equal(t, []string{"first", "second"}, rec.snapshot())
}
