package auth

import "time"

type signupInput struct {
	Body struct {
		Username string `json:"username" minLength:"1" maxLength:"64" doc:"Login name"`
		Email    string `json:"email" minLength:"1" maxLength:"254" doc:"Contact email"`
		Password string `json:"password" minLength:"1" maxLength:"72" doc:"Login password, at least 8 characters"`
	}
}

type signupOutput struct {
	Body SignupResponse
}

type SignupResponse struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type signinInput struct {
	Body struct {
		Username string `json:"username" minLength:"1"`
		Password string `json:"password" minLength:"1"`
	}
}

type signinOutput struct {
	Body SigninResponse
}

type SigninResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type" example:"Bearer"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type refreshInput struct {
	Authorization string `header:"Authorization" doc:"Bearer <refresh token>"`
}

type refreshOutput struct {
	Body RefreshResponse
}

type RefreshResponse struct {
	AccessToken     string    `json:"access_token"`
	TokenType       string    `json:"token_type" example:"Bearer"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
}

type messageOutput struct {
	Body MessageResponse
}

type MessageResponse struct {
	Message string `json:"message"`
}

type meOutput struct {
	Body MeResponse
}

type MeResponse struct {
	LoggedIn bool  `json:"logged_in"`
	UserID   int64 `json:"user_id"`
}
