package vault

import "time"

type vaultPasswordInput struct {
	Body struct {
		VaultPassword string `json:"vault_password" minLength:"1" maxLength:"72"`
	}
}

type addInput struct {
	Body struct {
		Domain      string `json:"domain" minLength:"1" maxLength:"255" example:"x.com"`
		AccountName string `json:"account_name" minLength:"1" maxLength:"255"`
		Secret      string `json:"secret" minLength:"1" doc:"PIN or password; stored encrypted"`
		URL         string `json:"url,omitempty" maxLength:"2048"`
		Notes       string `json:"notes,omitempty"`
	}
}

type addOutput struct {
	Body AddResponse
}

type AddResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

type listOutput struct {
	Body []EntrySummary
}

// EntrySummary has no secret field.
type EntrySummary struct {
	ID          int64     `json:"id"`
	Domain      string    `json:"domain"`
	AccountName string    `json:"account_name"`
	URL         string    `json:"url,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type viewInput struct {
	Body struct {
		EntryID       int64  `json:"entry_id" minimum:"1"`
		VaultPassword string `json:"vault_password" minLength:"1"`
	}
}

type viewOutput struct {
	Body ViewResponse
}

type ViewResponse struct {
	ID          int64  `json:"id"`
	Domain      string `json:"domain"`
	AccountName string `json:"account_name"`
	Secret      string `json:"secret"`
	URL         string `json:"url,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type deleteInput struct {
	EntryID int64 `path:"entry_id" minimum:"1"`
}

type updateInput struct {
	EntryID int64 `path:"entry_id" minimum:"1"`
	Body struct {
		Domain      *string `json:"domain,omitempty"`
		AccountName *string `json:"account_name,omitempty"`
		Secret      *string `json:"secret,omitempty" doc:"Required; the stored secret is re-encrypted on every update"`
		URL         *string `json:"url,omitempty"`
		Notes       *string `json:"notes,omitempty"`
	}
}

type messageOutput struct {
	Body VaultMessageResponse
}

type VaultMessageResponse struct {
	Message string `json:"message"`
}
