// Package shareserver exposes a ShareService over Connect RPC.
//
// One unary procedure, /foldershare.v1.ShareService/Serve, carries a
// protocol.Envelope in and a protocol.ReplyEnvelope out. Messages are
// plain Go structs serialized by a JSON codec registered under the
// Connect "json" name.
//
// Every call passes through the interceptor chain:
//
//	recovery -> request id + logging -> peer rate limit -> metrics
//
// The server drains in-flight calls when its stop channel fires.
package shareserver
