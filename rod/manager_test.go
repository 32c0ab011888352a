//go:build integration

package rod_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/docassist"
	"github.com/fwojciec/docassist/rod"
	gorod "github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Acquire(t *testing.T) {
	t.Parallel()

	t.Run("serves the same browser below the page limit", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
		require.NoError(t, err)
		t.Cleanup(func() { _ = manager.Close() })

		first, release1, err := manager.Acquire()
		require.NoError(t, err)
		release1()
		second, release2, err := manager.Acquire()
		require.NoError(t, err)
		release2()

		assert.Same(t, first, second)
		assert.Equal(t, 2, manager.Served())
	})

	t.Run("launches a fresh browser once the limit is reached", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
		require.NoError(t, err)
		t.Cleanup(func() { _ = manager.Close() })

		first, release, err := manager.Acquire()
		require.NoError(t, err)
		release()
		_, release, err = manager.Acquire()
		require.NoError(t, err)
		release()

		third, release, err := manager.Acquire()
		require.NoError(t, err)
		defer release()

		assert.NotSame(t, first, third)
		assert.Equal(t, 1, manager.Served())
	})

	t.Run("keeps a replaced browser alive while a page is leased", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
		require.NoError(t, err)
		t.Cleanup(func() { _ = manager.Close() })

		// Given a page open on the first browser
		old, releaseOld, err := manager.Acquire()
		require.NoError(t, err)
		page, err := old.Page(proto.TargetCreateTarget{})
		require.NoError(t, err)

		// When the next lease triggers a replacement
		_, releaseNew, err := manager.Acquire()
		require.NoError(t, err)
		defer releaseNew()

		// Then the in-flight page still works
		require.NoError(t, page.SetDocumentContent("<html><body><p>still here</p></body></html>"))
		html, err := page.HTML()
		require.NoError(t, err)
		assert.Contains(t, html, "still here")

		_ = page.Close()
		releaseOld()
		releaseOld()
	})
}

func TestBrowserManager_AcquireConcurrent(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
	require.NoError(t, err)
	t.Cleanup(func() { _ = manager.Close() })

	// Given a browser at its page limit
	first, release, err := manager.Acquire()
	require.NoError(t, err)
	release()

	// When several callers lease at once
	const callers = 4
	browsers := make([]*gorod.Browser, callers)
	releases := make([]func(), callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Go(func() {
			browsers[i], releases[i], errs[i] = manager.Acquire()
		})
	}
	wg.Wait()

	// Then every caller is served and one of them got a fresh browser
	fresh := false
	for i := range callers {
		require.NoError(t, errs[i])
		require.NotNil(t, browsers[i])
		if browsers[i] != first {
			fresh = true
		}
		releases[i]()
	}
	assert.True(t, fresh)
	assert.Positive(t, manager.Served())
}

func TestBrowserManager_Close(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithHeadless(true))
	require.NoError(t, err)
	require.NotZero(t, manager.PID())

	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())
	assert.Zero(t, manager.PID())

	_, _, err = manager.Acquire()
	assert.Equal(t, docassist.EINVALID, docassist.ErrorCode(err))
}
