package vault

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) setPasswordOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-set-password",
		Method:      http.MethodPost,
		Path:        "/vault/set_password",
		Summary:     "Установить или сменить пароль хранилища",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.mw.StrictProtected,
	}
}

func (h *Handler) unlockOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-unlock",
		Method:      http.MethodPost,
		Path:        "/vault/unlock-vault",
		Summary:     "Проверить пароль хранилища",
		Description: "Stateless check; nothing is unlocked server-side.",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.mw.Protected,
	}
}

func (h *Handler) addOp() huma.Operation {
	return huma.Operation{
		OperationID:   "vault-add",
		Method:        http.MethodPost,
		Path:          "/vault/add",
		Summary:       "Добавить запись (или заменить запись того же домена)",
		Tags:          []string{"vault"},
		Security:      bearer,
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.mw.Protected,
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-list",
		Method:      http.MethodGet,
		Path:        "/vault/get-vault",
		Summary:     "Список записей без секретов",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.mw.Protected,
	}
}

func (h *Handler) viewOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-view",
		Method:      http.MethodPost,
		Path:        "/vault/view",
		Summary:     "Показать секрет записи",
		Description: "Requires the vault password on every call.",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.mw.Protected,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-update",
		Method:      http.MethodPost,
		Path:        "/vault/update/{entry_id}",
		Summary:     "Частичное обновление записи",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.mw.Protected,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "vault-delete",
		Method:      http.MethodDelete,
		Path:        "/vault/delete/{entry_id}",
		Summary:     "Удалить запись",
		Tags:        []string{"vault"},
		Security:    bearer,
		Middlewares: h.mw.Protected,
	}
}
