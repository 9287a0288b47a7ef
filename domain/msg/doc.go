// Package msg models the std_msgs/msg/String record owned by the SDK.
//
// The record mirrors the ROS 2 C layout {data, size, capacity}: after Init the
// buffer holds a single NUL byte, and every Assign reallocates the buffer to
// exactly size+1 bytes. Text reaches the record through a fixed 128-byte stage
// buffer, so at most MaxDataLength encoded bytes can ever be stored.
package msg
