// Package Queues is a fixed capacity circular FIFO queue.
package Queues

// Queue is the FIFO contract. Enqueue reports false instead of growing; Dequeue and Front fail with dstrace.ErrEmpty.
type Queue[T any] interface {
	Enqueue(item T) bool
	Dequeue() (T, error)
	Front() (T, error)
	IsEmpty() bool
	IsFull() bool
	Len() int
	Capacity() int
}
