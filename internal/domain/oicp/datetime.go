package oicp

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout OICP时间戳的序列化格式 (UTC, 毫秒精度)
const DateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DateTime 自定义时间类型，用于JSON序列化
type DateTime struct {
	time.Time
}

// NewDateTime 创建时间戳，截断到毫秒
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.UTC().Truncate(time.Millisecond)}
}

// Now 当前时间
func Now() DateTime {
	return NewDateTime(time.Now())
}

// DateTimePtr 返回时间戳指针，便于设置可选字段
func DateTimePtr(t time.Time) *DateTime {
	dt := NewDateTime(t)
	return &dt
}

// String 以OICP格式输出
func (dt DateTime) String() string {
	return dt.Time.UTC().Format(DateTimeLayout)
}

// Equal 比较两个时间点
func (dt DateTime) Equal(other DateTime) bool {
	return dt.Time.Equal(other.Time)
}

// MarshalJSON 实现JSON序列化
func (dt DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + dt.String() + `"`), nil
}

// UnmarshalJSON 实现JSON反序列化
func (dt *DateTime) UnmarshalJSON(data []byte) error {
	str := string(data)
	if str == "null" {
		return nil
	}
	if len(str) < 2 || str[0] != '"' || str[len(str)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", str)
	}
	t, err := ParseDateTime(str[1 : len(str)-1])
	if err != nil {
		return err
	}
	*dt = t
	return nil
}

// ParseDateTime 解析ISO 8601时间戳，缺少时区时按UTC处理
func ParseDateTime(s string) (DateTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDateTime(t), nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid timestamp %q", s)
}
