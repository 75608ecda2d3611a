package box3d

import (
	"sync"
)

// Traversal scratch shared by every tree. Queries may run concurrently, so
// each call takes its own buffers and gives them back when done.

var b3NodeStackPool = sync.Pool{
	New: func() interface{} {
		return NewB3GrowableStack[int](64)
	},
}

var b3RefPairStackPool = sync.Pool{
	New: func() interface{} {
		return NewB3GrowableStack[b3RefPair](64)
	},
}

var b3StreamingPool = sync.Pool{
	New: func() interface{} {
		return newB3StreamingScratch()
	},
}

/// Two child references of the same tree still to be tested against each other.
type b3RefPair struct {
	A B3ChildRef
	B B3ChildRef
}

func acquireB3NodeStack() *B3GrowableStack[int] {
	stack := b3NodeStackPool.Get().(*B3GrowableStack[int])
	stack.Reset()
	return stack
}

func releaseB3NodeStack(stack *B3GrowableStack[int]) {
	b3NodeStackPool.Put(stack)
}

func acquireB3RefPairStack() *B3GrowableStack[b3RefPair] {
	stack := b3RefPairStackPool.Get().(*B3GrowableStack[b3RefPair])
	stack.Reset()
	return stack
}

func releaseB3RefPairStack(stack *B3GrowableStack[b3RefPair]) {
	b3RefPairStackPool.Put(stack)
}

func acquireB3StreamingScratch() *b3StreamingScratch {
	scratch := b3StreamingPool.Get().(*b3StreamingScratch)
	scratch.reset()
	return scratch
}

func releaseB3StreamingScratch(scratch *b3StreamingScratch) {
	b3StreamingPool.Put(scratch)
}
