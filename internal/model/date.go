package model

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date 日历日期（UTC 零点存储）；零值表示未知，JSON 序列化为 null
type Date struct {
	time.Time
}

// NewDate 构造日期；日期不存在时（如 2 月 30 日）返回 false
func NewDate(year int, month time.Month, day int) (Date, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, false
	}
	return Date{Time: t}, true
}

// MustDate 仅用于确定合法的字面量
func MustDate(year int, month time.Month, day int) Date {
	d, ok := NewDate(year, month, day)
	if !ok {
		panic("model: invalid date literal")
	}
	return d
}

// DateOf 取 t 在其自身时区下的日历日
func DateOf(t time.Time) Date {
	d, _ := NewDate(t.Year(), t.Month(), t.Day())
	return d
}

// AddDays 平移 n 天，零值保持不变
func (d Date) AddDays(n int) Date {
	if d.IsZero() {
		return d
	}
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
