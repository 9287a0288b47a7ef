package msg

// TypeName is the ROS 2 type name of the String record, also used as its
// resource kind.
const TypeName = "std_msgs/msg/String"

// String is the std_msgs/msg/String record.
// The zero value is an allocated but uninitialized record.
type String struct {
	data        []byte
	size        int
	capacity    int
	initialized bool
}

// Init zero-initializes the record in place: an empty, NUL-terminated buffer.
// Calling Init on an initialized record discards its contents.
func (s *String) Init() {
	s.data = []byte{0}
	s.size = 0
	s.capacity = 1
	s.initialized = true
}

// Fini releases the record buffer and returns it to the uninitialized state.
func (s *String) Fini() {
	*s = String{}
}

// Assign replaces the record contents with a copy of value.
// The record allocates its own buffer; value is never aliased.
func (s *String) Assign(value []byte) {
	data := make([]byte, len(value)+1)
	copy(data, value)
	s.data = data
	s.size = len(value)
	s.capacity = len(value) + 1
}

// Bytes returns a copy of the current payload, without the terminator.
func (s *String) Bytes() []byte {
	if s.size == 0 {
		return []byte{}
	}
	out := make([]byte, s.size)
	copy(out, s.data[:s.size])
	return out
}

// Size returns the payload length in bytes.
func (s *String) Size() int { return s.size }

// Capacity returns the allocated buffer length, terminator included.
func (s *String) Capacity() int { return s.capacity }

// Initialized reports whether Init has run since allocation or the last Fini.
func (s *String) Initialized() bool { return s.initialized }
