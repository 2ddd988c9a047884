// Package main provides the entry point for foldershare-cli.
//
// foldershare-cli connects to a foldershare-server, lists what it shares
// and downloads files, either one command at a time or from an
// interactive shell over a single session.
//
// Usage:
//
//	foldershare-cli -s host:7070 list
//	foldershare-cli -s host:7070 get /srv/music/a.mp3 -d ./a.mp3
//	foldershare-cli -s host:7070 shell
package main
