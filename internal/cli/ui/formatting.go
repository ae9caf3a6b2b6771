package ui

import "time"

// FormatRunStatus возвращает иконку, цвет и текст для состояния запуска
func FormatRunStatus(finished bool, failed int) (icon, color, text string) {
	switch {
	case !finished:
		return IconClock, ColorYellow, "не завершен"
	case failed > 0:
		return IconCross, ColorRed, "с ошибками"
	default:
		return IconCheckmark, ColorGreen, "успешно"
	}
}

// FormatVersion подставляет прочерк вместо отсутствующей версии
func FormatVersion(v *string) string {
	if v == nil || *v == "" {
		return "—"
	}
	return *v
}

func FormatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
