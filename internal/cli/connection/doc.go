// Package connection provides the client side of a FolderShare session.
//
//   - client.go: the Connect stub for the Serve procedure
//   - bridge.go: a single-flight, FIFO command/result bridge over one stub
//   - manager.go: session handles and the one-session-at-a-time manager
//
// A bridge ends on the stop marker, on an authentication failure, or when
// a call fails or times out. Once it has ended it accepts no commands and
// a new session must be established.
package connection
