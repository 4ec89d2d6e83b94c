package pool

import (
	"sync"
)

// maxPooledBytes буферы больше этого размера в пул не возвращаются
const maxPooledBytes = 1 << 20

// BytePool пул байтовых буферов для сериализации ответов
type BytePool struct {
	pool sync.Pool
}

// NewBytePool создает пул буферов с начальной емкостью capacity
func NewBytePool(capacity int) *BytePool {
	return &BytePool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, 0, capacity)
				return &buf
			},
		},
	}
}

// Global пул буферов по умолчанию
var Global = NewBytePool(4096)

// Get получает пустой буфер из пула
func (p *BytePool) Get() *[]byte {
	buf := p.pool.Get().(*[]byte)
	*buf = (*buf)[:0]
	return buf
}

// Put возвращает буфер в пул
func (p *BytePool) Put(buf *[]byte) {
	if buf == nil || cap(*buf) > maxPooledBytes {
		return
	}
	p.pool.Put(buf)
}
