package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFile_Variants(t *testing.T) {
	local := NewLocal(LocalFile{Path: "/tmp/a.txt", Name: "a.txt", Size: 3})
	remote := NewRemote(RemoteFile{UUID: "u-1", Name: "b.bin", SizeBytes: 9})

	assert.Equal(t, KindLocal, local.Kind)
	assert.Nil(t, local.Remote)
	assert.Equal(t, "a.txt", local.Name())
	assert.EqualValues(t, 3, local.Size())
	assert.Contains(t, local.String(), "a.txt")

	assert.Equal(t, KindRemote, remote.Kind)
	assert.Nil(t, remote.Local)
	assert.Equal(t, "b.bin", remote.Name())
	assert.EqualValues(t, 9, remote.Size())

	assert.Equal(t, "<invalid file>", File{}.String())
}

func TestRemoteFile_SafeName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":        "report.pdf",
		"../../etc/passwd":  "passwd",
		"/abs/path/x.txt":   "x.txt",
		"dir/inner/y.txt":   "y.txt",
		"":                  "u-1",
		"..":                "u-1",
	}
	for in, want := range tests {
		f := RemoteFile{UUID: "u-1", Name: in}
		assert.Equal(t, want, f.SafeName(), "name %q", in)
	}
}

func TestRemoteManifest_Helpers(t *testing.T) {
	m := &RemoteManifest{
		DownloadHost: "dl.example.com",
		LinkUUID:     "link-1",
		Files:        []RemoteFile{{SizeBytes: 10}, {SizeBytes: 32}},
	}
	assert.Equal(t, "https://dl.example.com/api/download/link-1", m.DownloadBaseURL())
	assert.EqualValues(t, 42, m.TotalSize())
}

func TestDefaultTransferParameters(t *testing.T) {
	p := DefaultTransferParameters()
	assert.Equal(t, 30, p.Duration)
	assert.Equal(t, 250, p.NumberOfDownloads)
	assert.Equal(t, "en_GB", p.Language)
	assert.Empty(t, p.Password)
}
