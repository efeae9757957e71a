package models

// TransferParameters is the user's intent for a new upload.
type TransferParameters struct {
	Duration          int      `validate:"oneof=1 7 15 30"`
	AuthorEmail       string   `validate:"omitempty,email"`
	Password          string   `validate:"omitempty,max=255"`
	Message           string   `validate:"max=2000"`
	NumberOfDownloads int      `validate:"min=1,max=250"`
	Language          string   `validate:"required"`
	RecipientEmails   []string `validate:"dive,email"`
}

// DefaultTransferParameters returns the service defaults: 30 days,
// 250 downloads, en_GB.
func DefaultTransferParameters() TransferParameters {
	return TransferParameters{
		Duration:          30,
		NumberOfDownloads: 250,
		Language:          "en_GB",
	}
}
