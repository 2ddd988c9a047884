// Package repl implements the foldershare-cli interactive shell.
//
// A shell runs over one live session. The tree fetched on connect is
// browsed locally; ls refreshes it from the host, get and cat fetch file
// contents. Commands:
//
//	ls [PATH]           show the tree, or the subtree at PATH
//	find PATTERN        list paths whose name matches a glob or substring
//	get PATH [DEST]     save a remote file locally
//	cat PATH            print a remote file
//	history             show previous commands
//	help                show this list
//	exit, quit          leave the shell
//
// Losing the connection or being refused by the host ends the shell.
package repl
