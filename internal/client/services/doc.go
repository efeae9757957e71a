// Package services contains the transfer use cases of the swish client:
// upload of a local file set and resolution plus download of a share link.
//
// Services depend on the client.Client interface only, so tests can swap
// the remote side for a fake.
package services
