// Package protocol defines the FolderShare message algebra and its wire
// encoding.
//
// Requests and replies are tagged unions serialized as JSON objects of the
// form
//
//	{"type": "<tag>", "payload": {...}}
//
// Request tags are "list" and "file"; reply tags are "list" and "file".
// The serialized request travels inside an Envelope together with the
// password; the serialized reply travels inside a ReplyEnvelope whose Status
// says whether the payload is present at all. Authentication failures and
// undecodable requests are therefore never encoded as reply payloads.
//
// Decoding never panics: malformed input yields a *DecodeError.
package protocol
