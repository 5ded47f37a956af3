package entity

import (
	"regexp"
	"strings"
)

const (
	minPasswordLength = 6
	maxPasswordLength = 50
	minUsernameLength = 3
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	// Vietnamese mobile numbers: 0 or +84 prefix followed by a carrier code
	// (03x, 05x, 07x, 08x, 09x) and seven digits.
	phonePattern = regexp.MustCompile(`^(\+84|0)(3[2-9]|5[689]|7[06-9]|8[1-689]|9[0-9])[0-9]{7}$`)
)

// ValidateEmail checks the basic shape of an email address.
// Returns a ValidationError if the address is empty or malformed.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "email is invalid"}
	}
	return nil
}

// ValidatePassword enforces the password policy. Messages are localized
// per site since they are shown to end users verbatim.
func ValidatePassword(site Site, password string) error {
	switch {
	case password == "":
		return &ValidationError{Field: "password", Message: localize(site,
			"Mật khẩu không được để trống", "Password must not be empty")}
	case len(password) < minPasswordLength:
		return &ValidationError{Field: "password", Message: localize(site,
			"Mật khẩu phải có ít nhất 6 ký tự", "Password must have at least 6 characters")}
	case len(password) > maxPasswordLength:
		return &ValidationError{Field: "password", Message: localize(site,
			"Mật khẩu không được vượt quá 50 ký tự", "Password must not exceed 50 characters")}
	}
	return nil
}

// ValidateUsername checks username shape. Uniqueness is checked at the
// repository level.
func ValidateUsername(site Site, username string) error {
	switch {
	case username == "":
		return &ValidationError{Field: "username", Message: localize(site,
			"Tên đăng nhập không được để trống", "Username must not be empty")}
	case len(username) < minUsernameLength:
		return &ValidationError{Field: "username", Message: localize(site,
			"Tên đăng nhập phải có ít nhất 3 ký tự", "Username must have at least 3 characters")}
	}
	return nil
}

// NormalizePhone strips separators and validates a Vietnamese phone
// number. It returns the cleaned digits on success.
func NormalizePhone(site Site, phone string) (string, error) {
	if phone == "" {
		return "", &ValidationError{Field: "phone", Message: localize(site,
			"Số điện thoại không được để trống", "Phone number must not be empty")}
	}

	clean := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	if !phonePattern.MatchString(clean) {
		return "", &ValidationError{Field: "phone", Message: localize(site,
			"Số điện thoại không đúng định dạng (ví dụ: 0912345678 hoặc +84912345678)",
			"Phone number is not in the correct format (e.g. 0912345678 or +84912345678)")}
	}
	return clean, nil
}

func localize(site Site, vn, en string) string {
	if site == SiteEN {
		return en
	}
	return vn
}
