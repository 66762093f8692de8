package xport

import (
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// 端口域边界。
const (
	// MinPort 是最小合法端口。
	MinPort = 1
	// MaxPort 是最大合法端口。
	MaxPort = 65535
)

// Port 是 [MinPort, MaxPort] 范围内的端口号。
type Port uint16

// Set 是端口集合，底层为 roaring bitmap，只会包含端口域内的值。
// Set 不是并发安全的。
type Set struct {
	bm *roaring.Bitmap
}

// NewSet 创建空集合。
func NewSet() *Set {
	return &Set{bm: roaring.New()}
}

// AddRange 加入 [lo, hi] 与端口域的交集，交集为空时不做任何事。
func (s *Set) AddRange(lo, hi int) {
	if r, ok := (Token{Start: lo, End: hi}).clampRange(); ok {
		s.bm.AddRange(r[0], r[1])
	}
}

// RemoveRange 移除 [lo, hi] 与端口域的交集。
func (s *Set) RemoveRange(lo, hi int) {
	if r, ok := (Token{Start: lo, End: hi}).clampRange(); ok {
		s.bm.RemoveRange(r[0], r[1])
	}
}

// Difference 原地移除 other 中的所有端口。
func (s *Set) Difference(other *Set) {
	if other == nil {
		return
	}
	s.bm.AndNot(other.bm)
}

// Contains 报告 p 是否在集合中。
func (s *Set) Contains(p Port) bool {
	return s.bm.Contains(uint32(p))
}

// Len 返回端口数量。
func (s *Set) Len() int {
	return int(s.bm.GetCardinality())
}

// Ports 返回升序、无重复的端口列表。空集合返回 nil。
func (s *Set) Ports() []Port {
	if s.bm.IsEmpty() {
		return nil
	}
	out := make([]Port, 0, s.Len())
	it := s.bm.Iterator()
	for it.HasNext() {
		out = append(out, Port(it.Next()))
	}
	return out
}

// String 以紧凑的端口规格形式输出集合，连续端口合并为 "a-b"，
// 如 "1,6,8-10,65530-65535"。结果可被 [Parse] 还原。
func (s *Set) String() string {
	var b strings.Builder
	it := s.bm.Iterator()
	first := true
	var lo, hi uint32
	flush := func() {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(strconv.FormatUint(uint64(lo), 10))
		if hi != lo {
			b.WriteByte('-')
			b.WriteString(strconv.FormatUint(uint64(hi), 10))
		}
	}
	started := false
	for it.HasNext() {
		v := it.Next()
		switch {
		case !started:
			lo, hi, started = v, v, true
		case v == hi+1:
			hi = v
		default:
			flush()
			lo, hi = v, v
		}
	}
	if started {
		flush()
	}
	return b.String()
}

// clampRange 返回 roaring 使用的半开区间 [start, end)。
func (t Token) clampRange() ([2]uint64, bool) {
	lo, hi, ok := t.Clamp()
	if !ok {
		return [2]uint64{}, false
	}
	return [2]uint64{uint64(lo), uint64(hi) + 1}, true
}
