// Package transfer implements the ferry push/pull file transfer protocol.
//
// A transfer moves one file over any reliable, ordered duplex byte stream:
//
//	pusher -> puller: 8 bytes  payload length L (big endian uint64)
//	pusher -> puller: L bytes  raw file content
//	puller -> pusher: 1 byte   CompletionSignal (0x00)
//
// Key pieces:
//   - Engine runs Push and Pull and measures round-trip Stats
//   - BoundedReader exposes exactly the declared payload as an io.Reader
//   - CompressedStream optionally wraps the duplex stream in LZ4 framing
//
// There is no magic number, version or checksum on the wire. Both ends agree
// out of band on which side pushes and which pulls.
package transfer
