// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package bridge

import (
	"fmt"
	"testing"
)

func TestLogBuffer_EvictsOldestFirst(t *testing.T) {
	b := NewLogBuffer(3)
	for i := 1; i <= 5; i++ {
		b.Append(fmt.Sprintf("line %d", i))
	}

	if got := fmt.Sprint(b.Lines()); got != "[line 3 line 4 line 5]" {
		t.Errorf("Lines() = %s", got)
	}
	if got := fmt.Sprint(b.Tail(2)); got != "[line 4 line 5]" {
		t.Errorf("Tail(2) = %s", got)
	}
	if got := len(b.Tail(10)); got != 3 {
		t.Errorf("len(Tail(10)) = %d, want 3", got)
	}

	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d", b.Len())
	}
}

func TestLogBuffer_DefaultCapacity(t *testing.T) {
	b := NewLogBuffer(0)
	for i := 0; i < DefaultLogLines+50; i++ {
		b.Append("x")
	}
	if b.Len() != DefaultLogLines {
		t.Errorf("Len() = %d, want %d", b.Len(), DefaultLogLines)
	}
}

func TestHub_PublishAndUnsubscribe(t *testing.T) {
	h := NewHub()
	ch, unsubscribe := h.Subscribe(2)

	h.Publish(Event{Kind: EventLog, Line: "one"})
	h.Publish(Event{Kind: EventLog, Line: "two"})
	h.Publish(Event{Kind: EventLog, Line: "dropped"})

	if ev := <-ch; ev.Line != "one" {
		t.Errorf("first event = %q", ev.Line)
	}
	if ev := <-ch; ev.Line != "two" {
		t.Errorf("second event = %q", ev.Line)
	}

	unsubscribe()
	unsubscribe()
	if _, ok := <-ch; ok {
		t.Error("channel still open after unsubscribe")
	}
	if h.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d", h.Subscribers())
	}

	// Publishing with no listeners must not block
	h.Publish(Event{Kind: EventLog, Line: "nobody"})
}
