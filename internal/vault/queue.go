package vault

import "fmt"

const minCompactionPrefix = 32

// requestQueue is a FIFO of unstake requests backed by a slice and a head
// cursor. Popping advances the cursor, the consumed prefix is dropped once it
// makes up at least half of the backing array.
type requestQueue struct {
	items   []UnstakeRequest
	head    int
	nextSeq uint64
}

func newRequestQueue() *requestQueue {
	return &requestQueue{nextSeq: 1}
}

func (q *requestQueue) push(request UnstakeRequest) UnstakeRequest {
	request.Seq = q.nextSeq
	request.Amount = request.Amount.Clone()
	q.nextSeq++
	q.items = append(q.items, request)
	return request
}

func (q *requestQueue) peek() (UnstakeRequest, bool) {
	if q.head >= len(q.items) {
		return UnstakeRequest{}, false
	}
	head := q.items[q.head]
	head.Amount = head.Amount.Clone()
	return head, true
}

func (q *requestQueue) pop(seq uint64) error {
	if q.head >= len(q.items) {
		return fmt.Errorf("unstake queue is empty")
	}
	if q.items[q.head].Seq != seq {
		return fmt.Errorf("request %d is not at the head of the unstake queue", seq)
	}
	q.items[q.head] = UnstakeRequest{}
	q.head++

	if q.head >= minCompactionPrefix && q.head*2 >= len(q.items) {
		q.items = append([]UnstakeRequest(nil), q.items[q.head:]...)
		q.head = 0
	}
	return nil
}

func (q *requestQueue) len() int {
	return len(q.items) - q.head
}

func (q *requestQueue) clone() *requestQueue {
	return &requestQueue{
		items:   append([]UnstakeRequest(nil), q.items[q.head:]...),
		nextSeq: q.nextSeq,
	}
}
