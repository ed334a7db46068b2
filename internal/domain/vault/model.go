package vault

import "time"

// Credential is the per-user vault password. There is at most one per user.
type Credential struct {
	UserID       int64
	PasswordHash string
	SetAt        time.Time
}

// Entry is a stored vault row. Secret holds the sealed envelope, never plaintext.
type Entry struct {
	ID          int64
	UserID      int64
	Domain      string
	AccountName string
	Secret      string
	URL         string
	Notes       string
	CreatedAt   time.Time
}

// Summary returns the entry without its secret.
func (e Entry) Summary() Summary {
	return Summary{
		ID:          e.ID,
		Domain:      e.Domain,
		AccountName: e.AccountName,
		URL:         e.URL,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}

// Summary is what list shows. It has no secret field at all.
type Summary struct {
	ID          int64
	Domain      string
	AccountName string
	URL         string
	Notes       string
	CreatedAt   time.Time
}

// NewEntry is the input of AddEntry.
type NewEntry struct {
	Domain      string
	AccountName string
	Secret      string
	URL         string
	Notes       string
}

// Patch is the input of UpdateEntry. Nil fields keep their stored value.
type Patch struct {
	Domain      *string
	AccountName *string
	Secret      *string
	URL         *string
	Notes       *string
}

// Revealed is a decrypted entry returned once by ViewEntry.
type Revealed struct {
	Summary
	Secret string
}
