// Package history stores a local record of completed uploads so their share
// links can be listed later.
package history
