package helper

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dias da semana seguem a convenção do calendário: 0=domingo .. 6=sábado.
var weekdayNames = [7]string{
	"Domingo", "Segunda-feira", "Terça-feira", "Quarta-feira",
	"Quinta-feira", "Sexta-feira", "Sábado",
}

func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return fmt.Sprintf("Dia %d", weekday)
	}
	return weekdayNames[weekday]
}

func ValidWeekday(weekday int) bool {
	return weekday >= 0 && weekday <= 6
}

// ValidHHMM aceita "HH:MM" em 24h ("06:30", "18:00").
func ValidHHMM(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return len(parts[0]) == 2 && len(parts[1]) == 2
}

// HHMMToMinutes converte "HH:MM" em minutos desde a meia-noite.
// Entrada deve já ter passado por ValidHHMM.
func HHMMToMinutes(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// MinutesToHHMM faz o caminho inverso (usado para calcular horário de término).
func MinutesToHHMM(min int) string {
	min %= 24 * 60
	if min < 0 {
		min += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseFlexibleDate aceita RFC3339 ou "2006-01-02" (meia-noite local).
func ParseFlexibleDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("data inválida: %q (use RFC3339 ou YYYY-MM-DD)", s)
}

// MondayOfWeek devolve a segunda-feira (00:00) da semana de ref.
// Domingo volta 6 dias; os demais voltam até segunda.
func MondayOfWeek(ref time.Time) time.Time {
	y, m, d := ref.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	switch wd := int(day.Weekday()); wd {
	case 0:
		return day.AddDate(0, 0, -6)
	default:
		return day.AddDate(0, 0, -(wd - 1))
	}
}
