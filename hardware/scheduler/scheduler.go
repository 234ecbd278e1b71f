// This file is part of dgncore.
//
// dgncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dgncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dgncore.  If not, see <https://www.gnu.org/licenses/>.

// Package scheduler implements the discrete-event queue that ties the
// CPU, SAM, VDG, PIA pair and floppy subsystem together in master-
// oscillator ticks. Two queues exist: Machine, for events that affect
// emulated state (VDG HS/FS edges, WD279x timeouts, index pulses), and
// UI, for events a host front end wants to be notified about (frame
// completion, for example) without those notifications perturbing
// machine timing.
package scheduler

// Event is a single scheduled callback. The zero value is not ready to
// use; create one with NewEvent.
type Event struct {
	AtTick   Tick
	Dispatch func()

	queued bool
	list   *Queue
	next   *Event
}

// NewEvent creates an Event that will call dispatch when it fires.
func NewEvent(dispatch func()) *Event {
	return &Event{Dispatch: dispatch}
}

// Queued reports whether the event is currently queued on any Queue.
func (e *Event) Queued() bool {
	return e.queued
}

// Queue is a singly linked list of Events ordered by AtTick under modular
// arithmetic relative to whatever "now" the caller supplies to Pending
// and RunQueue.
type Queue struct {
	head *Event
}

// Queue inserts event into q to fire at tick at. If event is already
// queued (on this queue or another), it is dequeued first. Insertion
// position is found by scanning from the head and stopping at the first
// entry whose AtTick is after at — later-scheduled events are placed
// ahead of earlier-scheduled ones only when the signed delta actually
// orders them that way, which keeps the queue correct across tick
// wraparound.
func (q *Queue) Queue(event *Event, at Tick) {
	if event.queued {
		event.dequeue()
	}
	event.AtTick = at
	event.list = q
	event.queued = true

	entry := &q.head
	for *entry != nil {
		if (*entry).AtTick.After(at) {
			event.next = *entry
			*entry = event
			return
		}
		entry = &(*entry).next
	}
	*entry = event
	event.next = nil
}

// Dequeue removes event from whichever queue it is on. It is a no-op if
// the event is not queued.
func (q *Queue) Dequeue(event *Event) {
	event.dequeue()
}

func (e *Event) dequeue() {
	list := e.list
	e.queued = false
	if list == nil {
		return
	}

	if list.head == e {
		list.head = e.next
		e.next = nil
		e.list = nil
		return
	}

	for entry := list.head; entry != nil; entry = entry.next {
		if entry.next == e {
			entry.next = e.next
			e.next = nil
			e.list = nil
			return
		}
	}
}

// Pending reports whether the head event's AtTick has been reached by
// now.
func (q *Queue) Pending(now Tick) bool {
	return q.head != nil && q.head.AtTick.AtOrBefore(now)
}

// RunQueue pops and dispatches every event whose AtTick has been reached
// by now, in queue order. A dispatched callback may enqueue further
// events onto either queue, including this one; those are picked up by
// the same call if they are themselves due by now.
func (q *Queue) RunQueue(now Tick) {
	for q.Pending(now) {
		event := q.head
		q.head = event.next
		event.next = nil
		event.list = nil
		event.queued = false
		event.Dispatch()
	}
}

// Scheduler owns the machine and UI queues.
type Scheduler struct {
	Machine Queue
	UI      Queue
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RunQueues dispatches every due event on both queues, for the given
// current tick.
func (s *Scheduler) RunQueues(now Tick) {
	s.Machine.RunQueue(now)
	s.UI.RunQueue(now)
}
