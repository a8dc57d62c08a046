package feedback_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardioform/pkg/classify"
	"github.com/goliatone/go-cardioform/pkg/feedback"
	"github.com/goliatone/go-cardioform/pkg/form"
)

func newComponent(t *testing.T, options ...feedback.Option) *feedback.Component {
	t.Helper()
	return feedback.New(form.MustDefaultCatalog(), nil, options...)
}

func TestComponent_InputReclassifies(t *testing.T) {
	c := newComponent(t)

	var changes []feedback.Change
	c.On(feedback.EventInput, func(ch feedback.Change) {
		changes = append(changes, ch)
	})

	if got := c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "chol", Value: "190"}); got != classify.StatusValid {
		t.Fatalf("got %s, want valid", got)
	}
	if got := c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "chol", Value: "220"}); got != classify.StatusWarning {
		t.Fatalf("got %s, want warning", got)
	}
	if got := c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "chol", Value: ""}); got != classify.StatusUnset {
		t.Fatalf("got %s, want unset", got)
	}

	want := []struct{ prev, cur classify.Status }{
		{classify.StatusUnset, classify.StatusValid},
		{classify.StatusValid, classify.StatusWarning},
		{classify.StatusWarning, classify.StatusUnset},
	}
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %d", len(want), len(changes))
	}
	for idx, w := range want {
		if changes[idx].Previous != w.prev || changes[idx].Current != w.cur {
			t.Fatalf("change %d: got %s->%s, want %s->%s", idx, changes[idx].Previous, changes[idx].Current, w.prev, w.cur)
		}
	}
	if _, ok := c.Statuses()["chol"]; ok {
		t.Fatalf("expected cleared status to be removed")
	}
}

func TestComponent_BlurUsesCatalogBounds(t *testing.T) {
	c := newComponent(t)

	if got := c.Dispatch(feedback.Event{Kind: feedback.EventBlur, Field: "age", Value: "130"}); got != classify.StatusInvalid {
		t.Fatalf("age above markup max: got %s, want invalid", got)
	}
	if got := c.Dispatch(feedback.Event{Kind: feedback.EventBlur, Field: "sex", Value: "1"}); got != classify.StatusUnset {
		t.Fatalf("select fields carry no status, got %s", got)
	}
	if got := c.Dispatch(feedback.Event{Kind: feedback.EventBlur, Field: "unknown", Value: "5"}); got != classify.StatusUnset {
		t.Fatalf("unknown field without bounds: got %s", got)
	}
}

func TestComponent_HandlersScopedToInstanceAndKind(t *testing.T) {
	first := newComponent(t)
	second := newComponent(t)

	var firstCalls, blurCalls int
	first.On(feedback.EventInput, func(feedback.Change) { firstCalls++ })
	first.On(feedback.EventBlur, func(feedback.Change) { blurCalls++ })

	second.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "age", Value: "40"})
	if firstCalls != 0 {
		t.Fatalf("handler fired for another instance")
	}

	first.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "age", Value: "40"})
	if firstCalls != 1 || blurCalls != 0 {
		t.Fatalf("unexpected calls input=%d blur=%d", firstCalls, blurCalls)
	}
	if second.Status("age") != classify.StatusValid || first.Status("age") != classify.StatusValid {
		t.Fatalf("expected independent valid statuses")
	}
}

func TestComponent_Unregister(t *testing.T) {
	c := newComponent(t)
	var calls int
	off := c.On(feedback.EventInput, func(feedback.Change) { calls++ })
	c.On(feedback.EventInput, func(feedback.Change) { calls += 10 })

	c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "age", Value: "40"})
	off()
	off()
	c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "age", Value: "41"})

	if calls != 21 {
		t.Fatalf("expected 21, got %d", calls)
	}
}

func TestComponent_SubmitLoadingState(t *testing.T) {
	c := newComponent(t, feedback.WithSubmitLabels("Check", ""))
	if got := c.SubmitState(); got.Pending || got.Label != "Check" {
		t.Fatalf("unexpected idle state %+v", got)
	}

	var seen feedback.SubmitState
	c.On(feedback.EventSubmit, func(ch feedback.Change) { seen = ch.Submit })
	c.Dispatch(feedback.Event{Kind: feedback.EventSubmit})

	want := feedback.SubmitState{Pending: true, Disabled: true, Label: feedback.DefaultPendingLabel}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("submit state mismatch (-want +got):\n%s", diff)
	}

	c.Reset()
	if got := c.SubmitState(); got.Pending || got.Disabled || got.Label != "Check" {
		t.Fatalf("unexpected state after reset %+v", got)
	}
}

func TestComponent_Flagged(t *testing.T) {
	c := newComponent(t)
	c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "trestbps", Value: "150"})
	c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "age", Value: "10"})
	c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: "chol", Value: "150"})

	if diff := cmp.Diff([]string{"age", "trestbps"}, c.Flagged()); diff != "" {
		t.Fatalf("flagged mismatch (-want +got):\n%s", diff)
	}
}

func TestComponent_ConcurrentDispatch(t *testing.T) {
	c := newComponent(t)
	var mu sync.Mutex
	var calls int
	c.On(feedback.EventInput, func(feedback.Change) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	fields := []string{"age", "trestbps", "chol", "thalach"}
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Dispatch(feedback.Event{Kind: feedback.EventInput, Field: fields[i%len(fields)], Value: "100"})
		}(i)
	}
	wg.Wait()

	if calls != 40 {
		t.Fatalf("expected 40 handler calls, got %d", calls)
	}
}
