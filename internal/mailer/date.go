package mailer

import (
	"fmt"
	"time"
)

var ptBRMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDatePtBR renders t in loc as "05 de março, às 18:00h".
func FormatDatePtBR(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return fmt.Sprintf("%02d de %s, às %d:%02dh", t.Day(), ptBRMonths[t.Month()-1], t.Hour(), t.Minute())
}
