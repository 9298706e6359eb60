package svg

import (
	"bytes"
	"sync"
)

// maxRetainBuffer caps the buffer size returned to the pool. A full 32x32
// grid renders well below this.
const maxRetainBuffer = 256 << 10

// bufferPool reuses output buffers across renders.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

func acquireBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func releaseBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxRetainBuffer {
		return
	}
	bufferPool.Put(buf)
}
