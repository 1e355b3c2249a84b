package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptWatcher_DetectsChange(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "buildconf.yml")
	require.NoError(t, os.WriteFile(script, []byte("root_project_name: android\n"), 0644))

	changes := make(chan []string, 4)
	watcher, err := NewScriptWatcher(dir, []string{"buildconf.yml"}, 50*time.Millisecond, nil, func(files []string) error {
		changes <- files
		return nil
	})
	require.NoError(t, err)
	defer watcher.Stop()

	require.NoError(t, watcher.Start())

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(script, []byte("root_project_name: mobile\n"), 0644))

	select {
	case files := <-changes:
		assert.Equal(t, []string{script}, files)
	case <-time.After(2 * time.Second):
		t.Fatal("expected build script change to be reported")
	}
}

func TestScriptWatcher_MissingDir(t *testing.T) {
	watcher, err := NewScriptWatcher(filepath.Join(t.TempDir(), "missing"), nil, 0, nil, func([]string) error { return nil })
	require.NoError(t, err)
	defer watcher.Stop()

	assert.Error(t, watcher.Start())
}

func TestScriptWatcher_Matches(t *testing.T) {
	tests := []struct {
		names    []string
		path     string
		expected bool
	}{
		{[]string{"buildconf.yml"}, "/repo/android/buildconf.yml", true},
		{[]string{"buildconf.yml"}, "/repo/android/buildconf.yml.swp", false},
		{[]string{"buildconf.yml", "buildconf.yaml"}, "buildconf.yaml", true},
		{nil, "anything.txt", true},
	}

	for _, tt := range tests {
		watcher, err := NewScriptWatcher(t.TempDir(), tt.names, 0, nil, func([]string) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, tt.expected, watcher.matches(tt.path), tt.path)
		require.NoError(t, watcher.Stop())
	}
}

func TestScriptWatcher_StopTwice(t *testing.T) {
	watcher, err := NewScriptWatcher(t.TempDir(), nil, 0, nil, func([]string) error { return nil })
	require.NoError(t, err)
	require.NoError(t, watcher.Start())

	assert.NoError(t, watcher.Stop())
	assert.NoError(t, watcher.Stop())
}

func TestDebouncer_Add(t *testing.T) {
	var mu sync.Mutex
	var calls int
	var files []string

	debouncer := NewDebouncer(30 * time.Millisecond)
	debouncer.SetCallback(func(f []string) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		files = f
	})

	debouncer.Add("b.yml")
	debouncer.Add("a.yml")
	debouncer.Add("b.yml")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a.yml", "b.yml"}, files)
}

func TestDebouncer_MultipleFlushes(t *testing.T) {
	var mu sync.Mutex
	var calls int

	debouncer := NewDebouncer(20 * time.Millisecond)
	debouncer.SetCallback(func([]string) {
		mu.Lock()
		defer mu.Unlock()
		calls++
	})

	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return calls
	}

	debouncer.Add("buildconf.yml")
	require.Eventually(t, func() bool { return count() == 1 }, time.Second, 5*time.Millisecond)

	debouncer.Add("buildconf.yml")
	require.Eventually(t, func() bool { return count() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	var called bool

	debouncer := NewDebouncer(50 * time.Millisecond)
	debouncer.SetCallback(func([]string) {
		mu.Lock()
		defer mu.Unlock()
		called = true
	})

	debouncer.Add("buildconf.yml")
	debouncer.Stop()
	debouncer.Add("buildconf.yml")

	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, called)
}
