package xnet

import (
	"math/big"
	"net/netip"

	"go4.org/netipx"
)

// Walker 按升序逐个遍历 [*netipx.IPSet] 中的地址。
// IPv4 范围排在 IPv6 之前。Walker 不是并发安全的。
type Walker struct {
	ranges []netipx.IPRange
	idx    int
	cur    netip.Addr
}

// NewWalker 创建遍历 set 的 Walker。set 为 nil 时遍历为空。
func NewWalker(set *netipx.IPSet) *Walker {
	w := &Walker{}
	if set != nil {
		w.ranges = set.Ranges()
	}
	return w
}

// Next 返回下一个地址；遍历结束返回 (netip.Addr{}, false)。
func (w *Walker) Next() (netip.Addr, bool) {
	if w.idx >= len(w.ranges) {
		return netip.Addr{}, false
	}
	r := w.ranges[w.idx]
	if !w.cur.IsValid() {
		w.cur = r.From()
	}
	addr := w.cur
	if addr == r.To() {
		w.idx++
		w.cur = netip.Addr{}
	} else {
		w.cur = addr.Next()
	}
	return addr, true
}

// Reset 回到第一个地址。
func (w *Walker) Reset() {
	w.idx = 0
	w.cur = netip.Addr{}
}

// Len 返回地址总数，与遍历进度无关。
func (w *Walker) Len() *big.Int {
	total := new(big.Int)
	for _, r := range w.ranges {
		total.Add(total, RangeSize(r))
	}
	return total
}

// RangeSize 计算 IP 范围包含的地址数量（To - From + 1）。
// 无效范围返回 nil。
func RangeSize(r netipx.IPRange) *big.Int {
	if !r.IsValid() {
		return nil
	}
	size := new(big.Int).Sub(AddrToBigInt(r.To()), AddrToBigInt(r.From()))
	return size.Add(size, big.NewInt(1))
}
