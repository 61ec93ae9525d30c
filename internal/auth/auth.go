package auth

import (
	"fmt"
	"net/http"
)

var gClient *Client

func InitClient(client *Client) {
	gClient = client
}

// VerifyToken проверяет токен из заголовка запроса и возвращает ID пользователя
func VerifyToken(r *http.Request) (string, error) {
	user, err := CurrentUser(r)
	if err != nil {
		return "", err
	}

	return user.ID, nil
}

// CurrentUser возвращает полную информацию о пользователе из запроса
func CurrentUser(r *http.Request) (*UserInfo, error) {
	authToken := r.Header.Get("Authorization")
	if authToken == "" {
		return nil, fmt.Errorf("no authorization header")
	}

	return gClient.GetUser(r.Context(), authToken)
}
