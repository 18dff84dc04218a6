package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_SeesPersistedMutations(t *testing.T) {
	d := newTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan map[string][]Record, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, d.Path(), func(tables map[string][]Record, err error) {
			if err != nil {
				return
			}
			select {
			case snapshots <- tables:
			default:
			}
		})
	}()

	// Keep writing until the watcher has been installed and reports a
	// snapshot containing the record.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	n := 0
	for {
		select {
		case tables := <-snapshots:
			if len(tables["todos"]) > 0 {
				cancel()
				assert.ErrorIs(t, <-done, context.Canceled)
				return
			}
		case <-tick.C:
			n++
			_, err := d.Insert("todos", Record{"id": n})
			require.NoError(t, err)
		case <-deadline:
			t.Fatal("watcher never reported a change")
		}
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent/dir/db.json", func(map[string][]Record, error) {})
	assert.Error(t, err)
}
