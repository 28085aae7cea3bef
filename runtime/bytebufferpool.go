package binarycookies

import "sync"

// Scratch buffers for the renderers. A rendered document is built in a
// pooled buffer and copied out once complete, so a failed render never
// hands back a partial document.

type ByteBuffer struct {
	b []byte
}

var bbPool = sync.Pool{New: func() any { return &ByteBuffer{b: make([]byte, 0, 4096)} }}

// GetByteBuffer obtains a pooled ByteBuffer with zero length.
func GetByteBuffer() *ByteBuffer {
	bb := bbPool.Get().(*ByteBuffer)
	bb.Reset()
	return bb
}

// PutByteBuffer returns the buffer to the pool after resetting it.
func PutByteBuffer(bb *ByteBuffer) { bb.Reset(); bbPool.Put(bb) }

// Bytes returns the underlying bytes.
func (bb *ByteBuffer) Bytes() []byte { return bb.b }

// Len returns length.
func (bb *ByteBuffer) Len() int { return len(bb.b) }

// Reset resets the length to zero; capacity is unchanged.
func (bb *ByteBuffer) Reset() { bb.b = bb.b[:0] }

// Copy returns a copy of the contents that does not alias the pool.
func (bb *ByteBuffer) Copy() []byte {
	out := make([]byte, len(bb.b))
	copy(out, bb.b)
	return out
}

// Ensure ensures there is room for at least n more bytes without reallocation.
func (bb *ByteBuffer) Ensure(n int) {
	need := len(bb.b) + n
	if cap(bb.b) >= need {
		return
	}
	c := cap(bb.b)
	if c == 0 {
		c = 4096
	}
	for c < need {
		c <<= 1
	}
	nb := make([]byte, len(bb.b), c)
	copy(nb, bb.b)
	bb.b = nb
}

// AppendJSON renders cookies as JSON onto the buffer.
func (bb *ByteBuffer) AppendJSON(cookies []Cookie, opts JSONOptions) *ByteBuffer {
	bb.Ensure(renderedSize(cookies))
	bb.b = opts.Append(bb.b, cookies)
	return bb
}

// AppendMsgpack renders cookies as MessagePack onto the buffer.
func (bb *ByteBuffer) AppendMsgpack(cookies []Cookie) *ByteBuffer {
	bb.Ensure(renderedSize(cookies))
	bb.b = AppendMsgpack(bb.b, cookies)
	return bb
}

// AppendNetscape renders cookies as a Netscape cookie file onto the
// buffer.
func (bb *ByteBuffer) AppendNetscape(cookies []Cookie) *ByteBuffer {
	bb.Ensure(renderedSize(cookies))
	bb.b = AppendNetscape(bb.b, cookies)
	return bb
}

// cookieOverhead approximates the keys, punctuation and numbers a
// renderer writes for one cookie besides its string bytes.
const cookieOverhead = 192

// renderedSize estimates the bytes needed to render cookies in any of
// the text or MessagePack formats, so the buffer grows at most once for
// typical input.
func renderedSize(cookies []Cookie) int {
	n := 16
	for i := range cookies {
		n += cookieOverhead
		for _, sf := range stringFields {
			n += len(sf.get(&cookies[i]).Value)
		}
	}
	return n
}
