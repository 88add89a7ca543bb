// Package validation содержит функции валидации входных данных.
package validation

import (
	"strings"
	"unicode"
)

// IsValidEmail проверяет структурную корректность адреса электронной почты.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	local, domain := email[:at], email[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}

	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	if strings.ContainsAny(local, " \t") || strings.ContainsAny(domain, " \t") {
		return false
	}

	return true
}

// IsValidPhone проверяет корректность телефонного номера: необязательный
// ведущий плюс и от 7 до 15 цифр.
func IsValidPhone(phone string) bool {
	if phone == "" {
		return false
	}

	digits := 0
	for i, ch := range phone {
		if ch == '+' && i == 0 {
			continue
		}
		if !unicode.IsDigit(ch) {
			return false
		}
		digits++
	}

	return digits >= 7 && digits <= 15
}

// IsValidRole проверяет, что роль пользователя входит в число известных.
func IsValidRole(role string) bool {
	switch role {
	case "customer", "owner", "manager":
		return true
	}
	return false
}
