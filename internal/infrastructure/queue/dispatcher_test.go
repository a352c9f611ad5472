package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitpass/gym-system/internal/core/ports"
)

type recordingProcessor struct {
	mu     sync.Mutex
	events []ports.ScanEvent
	wg     sync.WaitGroup
}

func (p *recordingProcessor) Process(_ context.Context, e ports.ScanEvent) error {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
	p.wg.Done()
	return nil
}

func TestDispatcher_ProcessesAllEvents(t *testing.T) {
	proc := &recordingProcessor{}
	d := NewDispatcher(3, proc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	events := []ports.ScanEvent{
		{MemberID: "alice", Site: "a", Timestamp: time.Unix(1, 0)},
		{MemberID: "bob", Site: "a", Timestamp: time.Unix(2, 0)},
		{MemberID: "alice", Site: "b", Timestamp: time.Unix(3, 0)},
		{Token: "tok-1", Site: "a", Timestamp: time.Unix(4, 0)},
	}
	proc.wg.Add(len(events))
	d.EnqueueBatch(events)

	done := make(chan struct{})
	go func() {
		proc.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("events not processed in time")
	}

	proc.mu.Lock()
	defer proc.mu.Unlock()
	if len(proc.events) != len(events) {
		t.Fatalf("expected %d processed, got %d", len(events), len(proc.events))
	}

	// Same-member events keep their enqueue order even across sites.
	var aliceSites []string
	for _, e := range proc.events {
		if e.MemberID == "alice" {
			aliceSites = append(aliceSites, e.Site)
		}
	}
	if len(aliceSites) != 2 || aliceSites[0] != "a" || aliceSites[1] != "b" {
		t.Fatalf("per-member order lost: %v", aliceSites)
	}
}

func TestDispatcher_StableSharding(t *testing.T) {
	d := NewDispatcher(4, &recordingProcessor{}, zerolog.Nop())

	e := ports.ScanEvent{MemberID: "alice"}
	first := d.shardIndex(e)
	for i := 0; i < 10; i++ {
		if got := d.shardIndex(e); got != first {
			t.Fatalf("shard changed between calls: %d vs %d", first, got)
		}
	}

	// Token is the fallback identity when no member is known.
	tokenEvent := ports.ScanEvent{Token: "tok-1"}
	if d.shardIndex(tokenEvent) != d.shardIndex(tokenEvent) {
		t.Fatalf("token sharding must be stable")
	}
}
