package bus_test

import (
	"fmt"
	"sync"
	"testing"

	"fabline/internal/bus"
	"fabline/internal/pipeline"
)

func event(orderID, itemID string, stage pipeline.Stage) bus.StageChangeEvent {
	return bus.StageChangeEvent{
		OrderID:       orderID,
		ItemID:        itemID,
		NewStage:      stage,
		PreviousStage: stage - 1,
		NextStage:     stage.Next(),
	}
}

func TestPublishReachesAllListenersDespitePanic(t *testing.T) {
	b := bus.New(nil)

	var mu sync.Mutex
	calls := make([]int, 0, 5)
	for i := 0; i < 5; i++ {
		i := i
		b.Subscribe(func(bus.StageChangeEvent) {
			mu.Lock()
			calls = append(calls, i)
			mu.Unlock()
			if i == 2 {
				panic("listener failure")
			}
		})
	}

	b.Publish(event("o1", "a", pipeline.StagePuttying))

	if len(calls) != 5 {
		t.Fatalf("expected 5 invocations, got %d (%v)", len(calls), calls)
	}
}

func TestUnsubscribeRemovesExactlyOneRegistration(t *testing.T) {
	b := bus.New(nil)

	var first, second int
	unsub := b.Subscribe(func(bus.StageChangeEvent) { first++ })
	b.Subscribe(func(bus.StageChangeEvent) { second++ })

	b.Publish(event("o1", "a", pipeline.StagePuttying))
	unsub()
	unsub() // second call is a no-op
	b.Publish(event("o1", "a", pipeline.StageFinalAssembly))

	if first != 1 {
		t.Fatalf("unsubscribed listener invoked %d times, want 1", first)
	}
	if second != 2 {
		t.Fatalf("remaining listener invoked %d times, want 2", second)
	}
}

func TestRecipientSetFixedAtPublishStart(t *testing.T) {
	b := bus.New(nil)

	var lateCalls int
	b.Subscribe(func(bus.StageChangeEvent) {
		b.Subscribe(func(bus.StageChangeEvent) { lateCalls++ })
	})

	b.Publish(event("o1", "a", pipeline.StagePuttying))
	if lateCalls != 0 {
		t.Fatalf("listener registered mid-publish was invoked %d times in the same pass", lateCalls)
	}

	b.Publish(event("o1", "a", pipeline.StageFinalAssembly))
	if lateCalls != 1 {
		t.Fatalf("listener registered mid-publish should see the next publish, got %d", lateCalls)
	}
}

func TestSubscribeItemFilters(t *testing.T) {
	b := bus.New(nil)

	var got []bus.StageChangeEvent
	b.SubscribeItem("o1", "a", func(ev bus.StageChangeEvent) {
		got = append(got, ev)
	})

	b.Publish(event("o1", "a", pipeline.StagePuttying))
	b.Publish(event("o1", "b", pipeline.StagePuttying))
	b.Publish(event("o2", "a", pipeline.StagePuttying))

	if len(got) != 1 {
		t.Fatalf("filtered subscription received %d events, want 1", len(got))
	}
	if got[0].OrderID != "o1" || got[0].ItemID != "a" {
		t.Fatalf("unexpected event %+v", got[0])
	}
}

type captureSink struct {
	events []bus.StageChangeEvent
}

func (s *captureSink) Emit(ev bus.StageChangeEvent) {
	s.events = append(s.events, ev)
}

func TestSinkReceivesEventsAfterListeners(t *testing.T) {
	b := bus.New(nil)
	sink := &captureSink{}
	b.AddSink(sink)

	var order []string
	b.Subscribe(func(bus.StageChangeEvent) {
		order = append(order, "listener")
		if len(sink.events) != 0 {
			t.Fatal("sink ran before listeners")
		}
	})

	b.Publish(event("o1", "a", pipeline.StagePuttying))
	if len(sink.events) != 1 {
		t.Fatalf("sink received %d events, want 1", len(sink.events))
	}
	if len(order) != 1 {
		t.Fatalf("listener invoked %d times, want 1", len(order))
	}
}

func TestRecentKeepsLastTen(t *testing.T) {
	b := bus.New(nil)
	for i := 0; i < 13; i++ {
		b.Publish(event("o1", fmt.Sprintf("item-%d", i), pipeline.StagePuttying))
	}

	recent := b.Recent()
	if len(recent) != 10 {
		t.Fatalf("recent = %d events, want 10", len(recent))
	}
	if recent[0].ItemID != "item-3" {
		t.Fatalf("oldest retained = %q, want item-3", recent[0].ItemID)
	}
	if recent[9].ItemID != "item-12" {
		t.Fatalf("newest retained = %q, want item-12", recent[9].ItemID)
	}
}
