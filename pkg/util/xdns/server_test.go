package xdns

import (
	"fmt"
	"net"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"
)

// zone 是测试服务器的应答表，键为 "name qtype"。
type zone map[string][]string

type mockServer struct {
	addr    string
	queries atomic.Int32
}

func (z zone) handler(truncateUDP bool, counter *atomic.Int32) dns.HandlerFunc {
	return func(w dns.ResponseWriter, r *dns.Msg) {
		counter.Add(1)
		q := r.Question[0]
		m := new(dns.Msg)
		m.SetReply(r)
		m.RecursionAvailable = true

		name := strings.TrimSuffix(q.Name, ".")
		switch name {
		case "servfail.test":
			m.Rcode = dns.RcodeServerFailure
			_ = w.WriteMsg(m)
			return
		case "nxdomain.test":
			m.Rcode = dns.RcodeNameError
			_ = w.WriteMsg(m)
			return
		}
		if truncateUDP && w.LocalAddr().Network() == "udp" {
			m.Truncated = true
			_ = w.WriteMsg(m)
			return
		}
		for _, rec := range z[name+" "+dns.TypeToString[q.Qtype]] {
			rr, err := dns.NewRR(rec)
			if err == nil {
				m.Answer = append(m.Answer, rr)
			}
		}
		_ = w.WriteMsg(m)
	}
}

// startServer 在 127.0.0.1 的同一端口上启动 UDP 和 TCP 服务。
func startServer(t testing.TB, z zone, truncateUDP bool) *mockServer {
	t.Helper()
	ms := &mockServer{}

	var (
		ln  net.Listener
		pc  net.PacketConn
		err error
	)
	for range 5 {
		ln, err = net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		pc, err = net.ListenPacket("udp", ln.Addr().String())
		if err == nil {
			break
		}
		_ = ln.Close()
	}
	require.NoError(t, err)
	ms.addr = ln.Addr().String()

	h := z.handler(truncateUDP, &ms.queries)
	for _, srv := range []*dns.Server{
		{PacketConn: pc, Handler: h},
		{Listener: ln, Handler: h},
	} {
		started := make(chan struct{})
		srv.NotifyStartedFunc = func() { close(started) }
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = srv.ActivateAndServe()
		}()
		<-started
		t.Cleanup(func() {
			_ = srv.Shutdown()
			<-done
		})
	}
	return ms
}

func rr(name, typ, value string) string {
	return fmt.Sprintf("%s. 60 IN %s %s", name, typ, value)
}
