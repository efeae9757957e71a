// Package cli implements the swish command line: upload of a file or
// directory, download of a share link, link inspection and the local upload
// history.
//
// Commands are built with cobra. Each invocation loads the configuration,
// builds an App around the transfer services and runs one command against
// it.
package cli
