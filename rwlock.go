// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// rwLock implements the per-node readers/writer lock described for the
// directory tree: readers defer to waiting writers to prevent writer
// starvation, and a writer handing off the lock prefers to wake the
// backlog of readers over the next single writer.
package dirtree

import "sync"

// rwLock is a bounded-waiting readers/writer lock, one per tree node.
// Unlike sync.RWMutex it tracks waiters explicitly so that readers can
// defer to a writer that is merely waiting, not just one that is held.
type rwLock struct {
	mu         sync.Mutex
	readerCond *sync.Cond
	writerCond *sync.Cond

	rCount, wCount int
	rWait, wWait   int
}

func newRWLock() *rwLock {
	l := &rwLock{}
	l.readerCond = sync.NewCond(&l.mu)
	l.writerCond = sync.NewCond(&l.mu)
	return l
}

// RLock blocks if a writer holds or is waiting for the lock on arrival,
// until a writer's Unlock wakes it and no writer holds the lock.
func (l *rwLock) RLock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.wCount > 0 || l.wWait > 0 {
		l.rWait++
		l.readerCond.Wait()
		for l.wCount > 0 {
			l.readerCond.Wait()
		}
		l.rWait--
	}
	l.rCount++
}

// RUnlock releases a reader's hold on the lock, waking a waiting writer
// if this was the last active reader.
func (l *rwLock) RUnlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rCount == 0 {
		fatal("rwLock.RUnlock", "no active readers")
	}
	l.rCount--
	if l.rCount == 0 {
		l.writerCond.Signal()
	}
}

// Lock blocks while any reader or writer holds the lock.
func (l *rwLock) Lock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.rCount > 0 || l.wCount > 0 {
		l.wWait++
		l.writerCond.Wait()
		l.wWait--
	}
	l.wCount++
}

// Unlock releases the writer's hold on the lock. If readers are
// waiting, all of them are woken together so that a burst of concurrent
// reads can proceed; otherwise a single waiting writer is woken.
func (l *rwLock) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.wCount != 1 {
		fatal("rwLock.Unlock", "w_count=%d, expected 1", l.wCount)
	}
	l.wCount--
	if l.rWait > 0 {
		l.readerCond.Broadcast()
	} else {
		l.writerCond.Signal()
	}
}

// quiescent reports whether the lock is in its between-operations state:
// no holders, no waiters. Used only by tests and Tree.Close's diagnostic
// scan.
func (l *rwLock) quiescent() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rCount == 0 && l.wCount == 0 && l.rWait == 0 && l.wWait == 0
}
