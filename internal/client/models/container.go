package models

import "fmt"

// Container holds the upload coordinates assigned by the service.
// FileUUIDs[i] belongs to the i-th file submitted at negotiation.
type Container struct {
	UploadHost string
	UUID       string
	FileUUIDs  []string
}

// RemoteManifest is the parsed result of resolving a share link.
type RemoteManifest struct {
	DownloadHost  string
	LinkUUID      string
	ContainerUUID string
	NeedsPassword bool
	Files         []RemoteFile
}

// DownloadBaseURL is the prefix every file UUID is appended to.
func (m *RemoteManifest) DownloadBaseURL() string {
	return fmt.Sprintf("https://%s/api/download/%s", m.DownloadHost, m.LinkUUID)
}

// TotalSize sums the sizes of all files in the manifest.
func (m *RemoteManifest) TotalSize() int64 {
	var total int64
	for _, f := range m.Files {
		total += f.SizeBytes
	}
	return total
}

// UploadResult is returned once a container has been finalized.
type UploadResult struct {
	ShareLink     string
	LinkUUID      string
	ContainerUUID string
	Files         []LocalFile
	TotalSize     int64
}
