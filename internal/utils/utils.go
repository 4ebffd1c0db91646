// Package utils содержит утилитарные функции, используемые в разных частях приложения
package utils

import (
	"fmt"
	"strings"
)

// TruncateString обрезает строку до указанного числа символов, добавляя "..." если строка длиннее
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

// Column обрезает и дополняет строку пробелами до ширины колонки
func Column(s string, width int) string {
	return fmt.Sprintf("%-*s", width, TruncateString(s, width))
}

// OrDash заменяет пустое значение прочерком
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
