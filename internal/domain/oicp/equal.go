package oicp

import (
	"encoding/json"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// HashOf 基于规范JSON形式计算哈希值。
// DateTime总是以UTC序列化，因此相等的值得到相同的哈希。
func HashOf(v any) uint64 {
	data, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

// EqualPtr 比较两个可选值
func EqualPtr[T comparable](a, b *T) bool {
	return equalPtr(a, b)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// EqualSlice 比较两个可比较元素的切片。nil与空切片序列化结果不同，因此视为不等。
func EqualSlice[T comparable](a, b []T) bool {
	return (a == nil) == (b == nil) && slices.Equal(a, b)
}

// equaler 具有Equal方法的值类型
type equaler[T any] interface {
	Equal(other T) bool
}

// EqualRecords 逐个比较记录切片
func EqualRecords[T equaler[T]](a, b []T) bool {
	return (a == nil) == (b == nil) && slices.EqualFunc(a, b, func(x, y T) bool { return x.Equal(y) })
}

// EqualRecordPtr 比较两个可选记录
func EqualRecordPtr[T equaler[T]](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return (*a).Equal(*b)
}
