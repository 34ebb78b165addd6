package event

// Queue is the single-producer/single-consumer ring of fixed-size
// event records described in §4.8, backed by a separate byte ring
// that holds the variable-length payload of USER events. Record
// eviction and byte-ring eviction are tied together: dropping the
// oldest record to make room also frees the bytes it owned, so the
// byte ring never holds data for a record that is no longer queued.
type Queue struct {
	records []Event
	head    int
	count   int

	dropped uint64

	bytes      []byte
	byteHead   int
	byteCount  int
}

// NewQueue builds a queue holding at most capacity records and
// byteCapacity bytes of USER payload data.
func NewQueue(capacity, byteCapacity int) *Queue {
	return &Queue{
		records: make([]Event, capacity),
		bytes:   make([]byte, byteCapacity),
	}
}

func (q *Queue) tailIndex() int { return (q.head + q.count) % len(q.records) }

// dropOldest evicts the head record, freeing any byte-ring space it
// held, and counts the drop.
func (q *Queue) dropOldest() {
	if q.count == 0 {
		return
	}
	old := q.records[q.head]
	if old.Kind == KindUser {
		q.byteHead = (q.byteHead + int(old.UserLen)) % len(q.bytes)
		q.byteCount -= int(old.UserLen)
	}
	q.head = (q.head + 1) % len(q.records)
	q.count--
	q.dropped++
}

// Push enqueues e, dropping the oldest record to make room if the
// queue is full. Reports whether a drop occurred.
func (q *Queue) Push(e Event) bool {
	dropped := false
	if q.count == len(q.records) {
		q.dropOldest()
		dropped = true
	}
	q.records[q.tailIndex()] = e
	q.count++
	return dropped
}

// TryPushNoDrop enqueues e only if there is free capacity, never
// evicting the oldest record (the variant used for ticks, per §4.8).
func (q *Queue) TryPushNoDrop(e Event) bool {
	if q.count == len(q.records) {
		return false
	}
	q.records[q.tailIndex()] = e
	q.count++
	return true
}

func (q *Queue) writeBytes(p []byte) int {
	off := (q.byteHead + q.byteCount) % len(q.bytes)
	for i, b := range p {
		q.bytes[(off+i)%len(q.bytes)] = b
	}
	q.byteCount += len(p)
	return off
}

func (q *Queue) readBytes(off, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = q.bytes[(off+i)%len(q.bytes)]
	}
	return out
}

// PushUser enqueues a USER event carrying payload, copying payload
// into the byte ring and evicting the oldest records (and their bytes)
// as needed to make room for both the record and the payload bytes.
// Reports false, pushing nothing, if payload alone exceeds the byte
// ring's total capacity or the queue has no records left to evict.
func (q *Queue) PushUser(tag uint32, payload []byte, timeMs uint32) bool {
	if len(payload) > len(q.bytes) {
		return false
	}
	for q.byteCount+len(payload) > len(q.bytes) {
		if q.count == 0 {
			return false
		}
		q.dropOldest()
	}
	off := q.writeBytes(payload)
	e := Event{
		Kind:       KindUser,
		TimeMs:     timeMs,
		UserTag:    tag,
		UserOffset: uint32(off),
		UserLen:    uint32(len(payload)),
	}
	q.Push(e)
	return true
}

// Pop removes and returns the oldest event. For USER events,
// UserPayload is filled with a fresh copy of the referenced bytes
// before the byte-ring space is released — the returned payload slice
// remains valid only until the next Pop/Push on this queue (§5).
func (q *Queue) Pop() (Event, bool) {
	if q.count == 0 {
		return Event{}, false
	}
	e := q.records[q.head]
	if e.Kind == KindUser {
		e.UserPayload = q.readBytes(int(e.UserOffset), int(e.UserLen))
		q.byteHead = (q.byteHead + int(e.UserLen)) % len(q.bytes)
		q.byteCount -= int(e.UserLen)
	}
	q.head = (q.head + 1) % len(q.records)
	q.count--
	return e, true
}

// Len reports the number of queued records.
func (q *Queue) Len() int { return q.count }

// Cap reports the record capacity.
func (q *Queue) Cap() int { return len(q.records) }

// DroppedCount reports how many records have been evicted by Push or
// PushUser since construction.
func (q *Queue) DroppedCount() uint64 { return q.dropped }
