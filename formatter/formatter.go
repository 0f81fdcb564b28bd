package formatter

import (
	"bytes"
	"sync"
)

// maxPooledSize caps the buffers kept for reuse so that one huge record
// does not pin its memory in the pool.
const maxPooledSize = 64 * 1024

// bufferPool is a pool of bytes.Buffer used by layouts
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledSize {
		return
	}
	bufferPool.Put(buf)
}

// builderPool recycles builders between log statements
var builderPool = sync.Pool{
	New: func() interface{} {
		return &Builder{buf: make([]byte, 0, 256)}
	},
}

// GetBuilder retrieves a reset Builder from the pool
func GetBuilder() *Builder {
	b := builderPool.Get().(*Builder)
	b.Reset()
	return b
}

// PutBuilder returns a Builder to the pool. The builder must not be used
// afterwards; records already produced by Finish stay valid.
func PutBuilder(b *Builder) {
	if b == nil || cap(b.buf) > maxPooledSize {
		return
	}
	b.Reset()
	builderPool.Put(b)
}
