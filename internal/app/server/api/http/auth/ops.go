package auth

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) signupOp() huma.Operation {
	return huma.Operation{
		OperationID:   "auth-signup",
		Method:        http.MethodPost,
		Path:          "/auth/signup",
		Summary:       "Регистрация пользователя",
		Tags:          []string{"auth"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.mw.Strict,
	}
}

func (h *Handler) signinOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-signin",
		Method:      http.MethodPost,
		Path:        "/auth/signin",
		Summary:     "Вход: выдаёт access и refresh токены",
		Tags:        []string{"auth"},
		Middlewares: h.mw.Strict,
	}
}

func (h *Handler) refreshOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-refresh",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Новый access токен по refresh токену",
		Description: "The refresh token goes in the Authorization header. It is not rotated.",
		Tags:        []string{"auth"},
		Security:    bearer,
		Middlewares: h.mw.Public,
	}
}

func (h *Handler) logoutOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-logout",
		Method:      http.MethodPost,
		Path:        "/auth/logout",
		Summary:     "Отзыв текущего access токена",
		Tags:        []string{"auth"},
		Security:    bearer,
		Middlewares: h.mw.Protected,
	}
}

func (h *Handler) meOp() huma.Operation {
	return huma.Operation{
		OperationID: "auth-me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Текущий пользователь",
		Tags:        []string{"auth"},
		Security:    bearer,
		Middlewares: h.mw.Protected,
	}
}
