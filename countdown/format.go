package countdown

import (
	"fmt"
	"strings"
)

// Style selects how much of a countdown is shown
type Style int

const (
	// StyleList is used on offer cards: seconds are dropped once hours show.
	StyleList Style = iota
	// StyleDetail is used on the offer page and always includes seconds.
	StyleDetail
	// StyleTimerBar is the fixed "DD : HH : MM : SS" bar.
	StyleTimerBar
)

// Lang is a storefront language
type Lang string

const (
	LangAR Lang = "ar"
	LangEN Lang = "en"
)

// ParseLang maps a query value to a supported language, defaulting to Arabic
func ParseLang(s string) Lang {
	if strings.EqualFold(strings.TrimSpace(s), string(LangEN)) {
		return LangEN
	}
	return LangAR
}

type units struct {
	day, hour, minute, second string
	ended                     string
}

var labels = map[Lang]units{
	LangAR: {day: "يوم", hour: "ساعة", minute: "دقيقة", second: "ثانية", ended: "انتهى العرض"},
	LangEN: {day: "d", hour: "h", minute: "m", second: "s", ended: "Offer ended"},
}

// ExpiredLabel is the text shown once an offer has ended
func ExpiredLabel(lang Lang) string {
	return labelsFor(lang).ended
}

// Format renders r for display
func Format(r Remaining, style Style, lang Lang) string {
	if style == StyleTimerBar {
		if r.Expired {
			return "00 : 00 : 00 : 00"
		}
		return fmt.Sprintf("%s : %s : %s : %s", Pad2(r.Days), Pad2(r.Hours), Pad2(r.Minutes), Pad2(r.Seconds))
	}

	u := labelsFor(lang)
	if r.Expired {
		return u.ended
	}

	part := func(n int, unit string) string {
		if lang == LangEN {
			return fmt.Sprintf("%d%s", n, unit)
		}
		return fmt.Sprintf("%d %s", n, unit)
	}

	var parts []string
	switch {
	case r.Days > 0:
		parts = []string{part(r.Days, u.day), part(r.Hours, u.hour), part(r.Minutes, u.minute)}
		if style == StyleDetail {
			parts = append(parts, part(r.Seconds, u.second))
		}
	case r.Hours > 0:
		parts = []string{part(r.Hours, u.hour), part(r.Minutes, u.minute)}
		if style == StyleDetail {
			parts = append(parts, part(r.Seconds, u.second))
		}
	default:
		parts = []string{part(r.Minutes, u.minute), part(r.Seconds, u.second)}
	}
	return strings.Join(parts, " ")
}

// Pad2 renders n with at least two digits
func Pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}

func labelsFor(lang Lang) units {
	if u, ok := labels[lang]; ok {
		return u
	}
	return labels[LangAR]
}
