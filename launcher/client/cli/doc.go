/*
Package cli implements the startnodes command line:

	startnodes version parameter-file project-id [sel-item ...]

It reads the controller connection parameters, connects, and starts the
selected nodes of the project one host queue at a time. Errors returned by
Exec carry the process exit code (common/errors).
*/
package cli
