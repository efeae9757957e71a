package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type containerFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// containerRequest mirrors the web extension's payload. Files and
// RecipientsEmails are JSON documents encoded as strings.
type containerRequest struct {
	Duration         int    `json:"duration"`
	AuthorEmail      string `json:"authorEmail"`
	Password         string `json:"password"`
	Message          string `json:"message"`
	SizeOfUpload     int64  `json:"sizeOfUpload"`
	NumberOfDownload int    `json:"numberOfDownload"`
	NumberOfFile     int    `json:"numberOfFile"`
	Lang             string `json:"lang"`
	Recaptcha        string `json:"recaptcha"`
	Files            string `json:"files"`
	RecipientsEmails string `json:"recipientsEmails"`
}

type containerResponse struct {
	Container struct {
		UUID string `json:"UUID"`
	} `json:"container"`
	UploadHost string   `json:"uploadHost"`
	FilesUUID  []string `json:"filesUUID"`
}

type completeRequest struct {
	UUID string `json:"UUID"`
	Lang string `json:"lang"`
}

type completeResponse []struct {
	LinkUUID string `json:"linkUUID"`
}

type tokenRequest struct {
	Password      string `json:"password"`
	ContainerUUID string `json:"containerUUID"`
	FileUUID      string `json:"fileUUID"`
}

type linkFile struct {
	UUID            string `json:"UUID"`
	FileName        string `json:"fileName"`
	FileSizeInBytes int64  `json:"fileSizeInBytes"`
	MimeType        string `json:"mimeType"`
	CreatedDate     string `json:"createdDate"`
	ExpiredDate     string `json:"expiredDate"`
	DownloadCounter int64  `json:"downloadCounter"`
	EVirus          string `json:"eVirus"`
}

type linkResponse struct {
	Data struct {
		Message      string `json:"message"`
		DownloadHost string `json:"downloadHost"`
		LinkUUID     string `json:"linkUUID"`
		Container    struct {
			UUID         string     `json:"UUID"`
			NeedPassword flexBool   `json:"needPassword"`
			Files        []linkFile `json:"files"`
		} `json:"container"`
	} `json:"data"`
}

// flexBool accepts 0/1 as well as true/false; the service uses integers.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", "true", `"1"`, `"true"`:
		*b = true
	case "0", "false", `"0"`, `"false"`, "null", `""`:
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s", string(data))
	}
	return nil
}

// decodeToken works around the service returning the token sometimes as a
// JSON string and sometimes as the bare value.
func decodeToken(body []byte) string {
	raw := string(bytes.TrimSpace(body))
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return s
	}
	return raw
}
