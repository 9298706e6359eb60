package segment

import (
	"sync"

	"github.com/go-text/typesetting/segmenter"
)

// maxPooledRunes caps the buffer size a pooled segmenter may keep. Layout
// input is bounded far below this, so larger buffers only come from direct
// library use and are dropped instead of pinned.
const maxPooledRunes = 4096

// segmenterPool reuses segmenters; each keeps its rune and attribute buffers
// between calls.
var segmenterPool = sync.Pool{
	New: func() interface{} {
		return &pooledSegmenter{}
	},
}

type pooledSegmenter struct {
	segmenter.Segmenter
	size int
}

func (p *pooledSegmenter) InitWithString(text string) {
	p.size = len(text)
	p.Segmenter.InitWithString(text)
}

func (p *pooledSegmenter) Init(runes []rune) {
	p.size = len(runes)
	p.Segmenter.Init(runes)
}

// acquireSegmenter gets a segmenter from the pool.
func acquireSegmenter() *pooledSegmenter {
	return segmenterPool.Get().(*pooledSegmenter)
}

// releaseSegmenter returns a segmenter to the pool.
func releaseSegmenter(seg *pooledSegmenter) {
	if seg == nil || seg.size > maxPooledRunes {
		return
	}
	seg.size = 0
	segmenterPool.Put(seg)
}
