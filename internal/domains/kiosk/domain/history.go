package domain

import "sync"

// OrderHistory is an append-only log of committed orders in chronological order.
type OrderHistory struct {
	mu      sync.RWMutex
	records []OrderRecord
}

func NewOrderHistory() *OrderHistory {
	return &OrderHistory{}
}

// Append stores the record and assigns its 1-based sequence position.
func (h *OrderHistory) Append(record OrderRecord) OrderRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	record = record.clone()
	record.Sequence = int64(len(h.records)) + 1
	h.records = append(h.records, record)
	return record.clone()
}

// NextSequence is the sequence the next appended record will receive.
func (h *OrderHistory) NextSequence() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return int64(len(h.records)) + 1
}

// Records returns a copy of every record.
func (h *OrderHistory) Records() []OrderRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]OrderRecord, len(h.records))
	for i, r := range h.records {
		out[i] = r.clone()
	}
	return out
}

func (h *OrderHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}
