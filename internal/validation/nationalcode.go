// Package validation содержит функции валидации входных данных.
package validation

import "strings"

const (
	codeLength    = 10
	minCodeLength = 8
)

// IsValidNationalCode проверяет национальный код Ирана по контрольной цифре.
// Все символы, кроме ASCII-цифр, отбрасываются. Функция не паникует
// ни на каком входе: некорректный ввод и неверная контрольная цифра
// дают одинаковый результат false.
func IsValidNationalCode(code string) bool {
	_, valid := Check(code)
	return valid
}

// Check нормализует код и проверяет его. Возвращает код, дополненный
// до 10 цифр, или пустую строку, если после очистки осталось не 8-10 цифр.
func Check(code string) (string, bool) {
	standardized, ok := Standardize(Normalize(code))
	if !ok {
		return "", false
	}

	if allSame(standardized) {
		return standardized, false
	}

	checkDigit := int(standardized[codeLength-1] - '0')

	return standardized, CheckDigit(standardized[:codeLength-1]) == checkDigit
}

// Normalize оставляет в строке только цифры 0-9 в исходном порядке.
func Normalize(code string) string {
	var b strings.Builder
	b.Grow(len(code))

	for i := 0; i < len(code); i++ {
		if ch := code[i]; ch >= '0' && ch <= '9' {
			b.WriteByte(ch)
		}
	}

	return b.String()
}

// Standardize дополняет очищенный код ведущими нулями до 10 цифр.
// Возвращает false, если длина кода вне диапазона от 8 до 10 цифр.
func Standardize(digits string) (string, bool) {
	n := len(digits)
	if n < minCodeLength || n > codeLength {
		return "", false
	}

	return strings.Repeat("0", codeLength-n) + digits, true
}

// CheckDigit вычисляет контрольную цифру для первых девяти цифр кода.
// Веса убывают от 10 до 2. payload должен состоять ровно из 9 ASCII-цифр,
// иначе возвращается -1.
func CheckDigit(payload string) int {
	if len(payload) != codeLength-1 {
		return -1
	}

	sum := 0
	for i := 0; i < len(payload); i++ {
		ch := payload[i]
		if ch < '0' || ch > '9' {
			return -1
		}
		sum += int(ch-'0') * (codeLength - i)
	}

	remainder := sum % 11
	if remainder < 2 {
		return remainder
	}

	return 11 - remainder
}

func allSame(code string) bool {
	for i := 1; i < len(code); i++ {
		if code[i] != code[0] {
			return false
		}
	}
	return true
}
