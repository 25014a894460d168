package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BufferWrite is a staged write of Data into Buffer at Offset, flushed once per frame.
type BufferWrite struct {
	Buffer *wgpu.Buffer
	Offset uint64
	Data   []byte
}
