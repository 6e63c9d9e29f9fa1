package auth

import "errors"

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
// Намеренно не уточняет, какое из полей неверно.
var ErrInvalidCredentials = errors.New("invalid username or password")
