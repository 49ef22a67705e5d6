package account

import "time"

// MaxHistory is the hard cap on retained transactions per account.
const MaxHistory = 1000

// History is an append-only, capacity-bounded transaction log. Once full,
// each append evicts the oldest entry. Implemented as a ring buffer so
// append-plus-evict stays O(1).
//
// History is not safe for concurrent use on its own; the owning account's
// lock covers it.
type History struct {
	buf   []Transaction
	start int
	size  int
}

// NewHistory creates a log holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = MaxHistory
	}
	return &History{buf: make([]Transaction, capacity)}
}

// Append records a transaction, evicting the oldest entry when full.
func (h *History) Append(tx Transaction) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = tx
		h.size++
		return
	}
	h.buf[h.start] = tx
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return h.size
}

// at returns the i-th oldest retained entry.
func (h *History) at(i int) Transaction {
	return h.buf[(h.start+i)%len(h.buf)]
}

// All returns the retained entries, oldest first.
func (h *History) All() []Transaction {
	out := make([]Transaction, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.at(i)
	}
	return out
}

// Recent returns the most recent n entries in chronological order.
func (h *History) Recent(n int) []Transaction {
	if n <= 0 {
		return nil
	}
	if n > h.size {
		n = h.size
	}
	out := make([]Transaction, n)
	for i := 0; i < n; i++ {
		out[i] = h.at(h.size - n + i)
	}
	return out
}

// Between returns the retained entries whose timestamp falls within
// [from, to], oldest first.
func (h *History) Between(from, to time.Time) []Transaction {
	var out []Transaction
	for i := 0; i < h.size; i++ {
		tx := h.at(i)
		if tx.Timestamp.Before(from) || tx.Timestamp.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
