package conversation_test

import (
	"sync"
	"testing"

	"github.com/edgard/cogisbot/internal/conversation"
)

func TestState_Editing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state conversation.State
		want  bool
	}{
		{conversation.StateDefault, false},
		{conversation.StateEditBrandName, true},
		{conversation.StateEditBrandURL, true},
		{conversation.StateEditGeocoderURL, true},
		{conversation.StateEditCadastreURL, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			t.Parallel()
			if got := tt.state.Editing(); got != tt.want {
				t.Errorf("%v.Editing() = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}

func TestManager_FirstContactIsDefault(t *testing.T) {
	t.Parallel()

	m := conversation.NewManager()
	if got := m.Get(1001); got != conversation.StateDefault {
		t.Errorf("Get on first contact = %v, want StateDefault", got)
	}
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()

	m := conversation.NewManager()
	m.Set(1001, conversation.StateEditBrandName)

	if got := m.Get(1001); got != conversation.StateEditBrandName {
		t.Errorf("Get = %v, want StateEditBrandName", got)
	}
	if got := m.Get(1002); got != conversation.StateDefault {
		t.Errorf("other user state = %v, want StateDefault", got)
	}
}

func TestManager_SwapConsumesState(t *testing.T) {
	t.Parallel()

	m := conversation.NewManager()
	m.Set(1001, conversation.StateEditGeocoderURL)

	prev := m.Swap(1001, conversation.StateDefault)
	if prev != conversation.StateEditGeocoderURL {
		t.Errorf("Swap returned %v, want StateEditGeocoderURL", prev)
	}
	if got := m.Get(1001); got != conversation.StateDefault {
		t.Errorf("state after Swap = %v, want StateDefault", got)
	}
}

func TestManager_ConcurrentSwapConsumesOnce(t *testing.T) {
	t.Parallel()

	m := conversation.NewManager()
	m.Set(1001, conversation.StateEditBrandURL)

	const workers = 16
	var wg sync.WaitGroup
	consumed := make(chan conversation.State, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumed <- m.Swap(1001, conversation.StateDefault)
		}()
	}
	wg.Wait()
	close(consumed)

	edits := 0
	for prev := range consumed {
		if prev == conversation.StateEditBrandURL {
			edits++
		}
	}
	if edits != 1 {
		t.Errorf("edit state consumed %d times, want exactly once", edits)
	}
}
