package ready

import (
	"testing"
	"time"
)

func TestPostThenWait(t *testing.T) {
	s := New()
	s.Post()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not observe a posted signal")
	}
}

func TestPostsCoalesce(t *testing.T) {
	s := New()
	for i := 0; i < 5; i++ {
		s.Post()
	}

	// The first wait drains the single pending slot.
	s.Wait()

	// A second wait must block: five posts collapse into one wake.
	woke := make(chan struct{})
	go func() {
		s.Wait()
		close(woke)
	}()

	select {
	case <-woke:
		t.Fatal("coalesced signal was delivered more than once")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWaitBlocksUntilPosted(t *testing.T) {
	s := New()

	woke := make(chan struct{})
	go func() {
		s.Wait()
		close(woke)
	}()

	select {
	case <-woke:
		t.Fatal("Wait returned without a post")
	case <-time.After(20 * time.Millisecond):
	}

	s.Post()
	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Wait did not wake after post")
	}
}
