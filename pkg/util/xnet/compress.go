package xnet

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// CompressAddress 将地址文本规范化。
//
// IPv6：在所有全零 hextet 的极大连续段中，取长度 ≥ 2 的最长段替换为 "::"，
// 并列时取最左侧（RFC 5952 §4.2.2/§4.2.3）；其余 hextet 为无前导零的小写十六进制。
// 不存在合格的零段时输出完整的 8 组。
// IPv4：返回规范的点分十进制。
//
// 结果满足 CompressAddress(CompressAddress(x)) == CompressAddress(x)。
func CompressAddress(s string) (string, error) {
	a, err := ParseLiteral(s)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

// ExpandAddress 返回完全展开的地址文本。
// IPv6："fe80::1" → "fe80:0000:0000:0000:0000:0000:0000:0001"；IPv4 原样规范化。
func ExpandAddress(s string) (string, error) {
	a, err := ParseLiteral(s)
	if err != nil {
		return "", err
	}
	return a.Expanded(), nil
}

// formatHextets 将 16 字节格式化为 8 组 hextet。
// compress 为 true 时应用零段压缩并去除前导零，否则每组固定 4 位。
func formatHextets(b [16]byte, compress bool) string {
	var h [8]uint16
	for i := range h {
		h[i] = binary.BigEndian.Uint16(b[2*i:])
	}

	zeroStart, zeroLen := -1, 0
	if compress {
		zeroStart, zeroLen = longestZeroRun(h)
	}

	// "xxxx:" × 8 最长 40 字节
	buf := make([]byte, 0, 40)
	for i := 0; i < len(h); i++ {
		if i == zeroStart {
			buf = append(buf, ':', ':')
			i += zeroLen - 1
			continue
		}
		if i > 0 && i != zeroStart+zeroLen {
			buf = append(buf, ':')
		}
		if compress {
			buf = strconv.AppendUint(buf, uint64(h[i]), 16)
			continue
		}
		s := strconv.FormatUint(uint64(h[i]), 16)
		buf = append(buf, strings.Repeat("0", 4-len(s))...)
		buf = append(buf, s...)
	}
	return string(buf)
}

// longestZeroRun 返回最长全零段的起点和长度，长度不足 2 时返回 (-1, 0)。
// 仅在严格更长时替换候选，因此并列时保留最左侧。
func longestZeroRun(h [8]uint16) (start, length int) {
	start, length = -1, 0
	curStart, curLen := 0, 0
	for i, v := range h {
		if v != 0 {
			curLen = 0
			continue
		}
		if curLen == 0 {
			curStart = i
		}
		curLen++
		if curLen > length {
			start, length = curStart, curLen
		}
	}
	if length < 2 {
		return -1, 0
	}
	return start, length
}
