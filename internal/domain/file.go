package domain

import "time"

// UploadedFile describes an object stored for a user, such as a resume.
type UploadedFile struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Hash        string    `json:"hash"`
	URL         string    `json:"url"`
	OwnerID     string    `json:"userId"`
	UploadedAt  time.Time `json:"uploaded"`
}
