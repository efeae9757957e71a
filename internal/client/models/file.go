// Package models defines the transfer data model: local and remote files,
// containers, manifests and user-supplied transfer parameters.
package models

import (
	"fmt"
	"path"
)

// LocalFile is a read-only view of a filesystem entry to upload. Size must
// match the number of bytes actually read during the upload.
type LocalFile struct {
	Path string
	Name string
	Size int64
}

func (f LocalFile) String() string {
	return fmt.Sprintf("Name: %s, Size: %d", f.Name, f.Size)
}

// RemoteFile is one entry of a resolved link manifest.
type RemoteFile struct {
	UUID            string
	Name            string
	SizeBytes       int64
	MimeType        string
	CreatedDate     string
	ExpiredDate     string
	DownloadCounter int64
	VirusScan       string
}

// SafeName strips any directory components the service may send back so
// the file cannot be written outside the destination directory.
func (f RemoteFile) SafeName() string {
	name := path.Base(path.Clean("/" + f.Name))
	if name == "/" || name == "." {
		return f.UUID
	}
	return name
}

func (f RemoteFile) String() string {
	return fmt.Sprintf("Name: %s, Size: %d, Created: %s, Expired: %s, Mime: %s",
		f.Name, f.SizeBytes, f.CreatedDate, f.ExpiredDate, f.MimeType)
}

type FileKind int

const (
	KindLocal FileKind = iota + 1
	KindRemote
)

// File is either a local file headed for upload or a remote file headed for
// download. Exactly one of Local and Remote is set, according to Kind.
type File struct {
	Kind   FileKind
	Local  *LocalFile
	Remote *RemoteFile
}

func NewLocal(f LocalFile) File {
	return File{Kind: KindLocal, Local: &f}
}

func NewRemote(f RemoteFile) File {
	return File{Kind: KindRemote, Remote: &f}
}

// Name returns the display name of either variant.
func (f File) Name() string {
	switch f.Kind {
	case KindLocal:
		return f.Local.Name
	case KindRemote:
		return f.Remote.Name
	}
	return ""
}

// Size returns the byte size of either variant.
func (f File) Size() int64 {
	switch f.Kind {
	case KindLocal:
		return f.Local.Size
	case KindRemote:
		return f.Remote.SizeBytes
	}
	return 0
}

func (f File) String() string {
	switch f.Kind {
	case KindLocal:
		return f.Local.String()
	case KindRemote:
		return f.Remote.String()
	}
	return "<invalid file>"
}
