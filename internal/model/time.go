package model

import (
	"fmt"
	"strings"
	"time"
)

// LocalTime 以不带时区的 ISO 格式 "YYYY-MM-DDTHH:MM:SS" 序列化时间，与前端约定一致。
type LocalTime time.Time

const timeFormat = "2006-01-02T15:04:05"

// MarshalJSON implements the json.Marshaler interface.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	formatted := fmt.Sprintf("\"%s\"", time.Time(t).Format(timeFormat))
	return []byte(formatted), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), "\"")
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := time.ParseInLocation(timeFormat, s, time.Local)
	if err != nil {
		return err
	}
	*t = LocalTime(parsed)
	return nil
}

// NewLocalTimePtr 将可空时间转换为 *LocalTime，nil 保持为 nil。
func NewLocalTimePtr(t *time.Time) *LocalTime {
	if t == nil {
		return nil
	}
	lt := LocalTime(*t)
	return &lt
}
