package memds

// thread unsafe array queue backed by a GrowableArray.
type ArrayQueue[T any] struct {
	elements GrowableArray[T]
}

func NewArrayQueue[T any]() *ArrayQueue[T] {
	return &ArrayQueue[T]{}
}

// NewArrayQueueWithAllocator creates a queue whose storage comes from alloc.
func NewArrayQueueWithAllocator[T any](alloc Allocator[T]) *ArrayQueue[T] {
	return &ArrayQueue[T]{
		elements: GrowableArray[T]{alloc: alloc},
	}
}

// Enqueue adds a value to the end of the queue.
func (q *ArrayQueue[T]) Enqueue(value T) error {
	_, err := q.elements.Push(value)
	return err
}

// Dequeue removes first element of the queue and returns it, or the zero value if queue is empty.
// Second return parameter is true, unless the queue was empty and there was nothing to dequeue.
func (q *ArrayQueue[T]) Dequeue() (value T, ok bool) {
	elem, err := q.elements.Shift()
	if err != nil {
		return
	}
	return elem, true
}

// Peek returns first element of the queue without removing it, or the zero value if queue is empty.
// Second return parameter is true, unless the queue was empty and there was nothing to peek.
func (q *ArrayQueue[T]) Peek() (value T, ok bool) {
	elem, err := q.elements.Get(0)
	if err != nil {
		return
	}
	return elem, true
}

// Empty returns true if queue does not contain any elements.
func (q *ArrayQueue[T]) Empty() bool {
	return q.elements.Len() == 0
}

// Size returns the number of elements within the queue.
func (q *ArrayQueue[T]) Size() int {
	return q.elements.Len()
}

// Clear removes all elements from the queue, the capacity is retained.
func (q *ArrayQueue[T]) Clear() {
	//never fails for a size of zero
	q.elements.Resize(0)
}

// Values returns all elements in the queue (FIFO order).
func (q *ArrayQueue[T]) Values() []T {
	return q.elements.Values()
}

func (q *ArrayQueue[T]) ForEachElem(fn func(i int, e T) error) error {
	return q.elements.ForEachElem(fn)
}

// thread unsafe array queue iterator
type ArrayQueueIterator[T any] struct {
	index    int
	elements []T
}

// Iterator returns an iterator over a snapshot of the queue: elements
// enqueued or dequeued afterwards are not seen.
func (q *ArrayQueue[T]) Iterator() *ArrayQueueIterator[T] {
	return &ArrayQueueIterator[T]{
		index:    -1,
		elements: q.elements.Values(),
	}
}

func (it *ArrayQueueIterator[T]) Next() bool {
	if it.index >= len(it.elements)-1 {
		return false
	}
	it.index++
	return true
}

func (it *ArrayQueueIterator[T]) Value() T {
	return it.elements[it.index]
}

func (it *ArrayQueueIterator[T]) Index() int {
	return it.index
}
