package xresolve

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xsock/pkg/observability/xlog"
	"github.com/omeyang/xsock/pkg/util/xnet"
)

func mustAddr(t *testing.T, s string) xnet.Address {
	t.Helper()
	a, err := xnet.ParseLiteral(s)
	require.NoError(t, err)
	return a
}

func newTestAdapter(t *testing.T, r Resolver, opts ...Option) (*Adapter, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelDebug).Build()
	require.NoError(t, err)
	a, err := New(r, append([]Option{WithLogger(logger)}, opts...)...)
	require.NoError(t, err)
	return a, &buf
}

func TestNew_NilResolver(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilResolver)
}

func TestNew_DefaultLogger(t *testing.T) {
	a, err := New(SystemResolver{}, nil, WithLogger(nil), WithObserver(nil), WithConcurrency(0))
	require.NoError(t, err)
	assert.Equal(t, DefaultConcurrency, a.concurrency)
	assert.NotNil(t, a.logger)
}

func TestResolveHostname_LiteralSkipsResolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockResolver(ctrl)
	a, _ := newTestAdapter(t, mock)

	for _, lit := range []string{"127.0.0.1", "fe80::1", "::ffff:1.2.3.4"} {
		addrs, err := a.ResolveHostname(context.Background(), lit)
		require.NoError(t, err)
		require.Len(t, addrs, 1)
		assert.Equal(t, mustAddr(t, lit), addrs[0])
	}
}

func TestResolveHostname_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, _ := newTestAdapter(t, NewMockResolver(ctrl))

	_, err := a.ResolveHostname(context.Background(), "")
	assert.ErrorIs(t, err, ErrResolution)
}

func TestResolveHostname_ResolverError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockResolver(ctrl)
	a, logs := newTestAdapter(t, mock)

	cause := errors.New("no such host")
	mock.EXPECT().Resolve(gomock.Any(), "nowhere.invalid").Return(nil, cause)

	_, err := a.ResolveHostname(context.Background(), "nowhere.invalid")
	assert.ErrorIs(t, err, ErrResolution)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, logs.String(), "resolve failed")
	assert.Contains(t, logs.String(), "component=xresolve")
}

func TestResolveHostname_NoAddresses(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockResolver(ctrl)
	a, _ := newTestAdapter(t, mock)

	mock.EXPECT().Resolve(gomock.Any(), "empty.test").Return([]xnet.Address{{}}, nil)

	_, err := a.ResolveHostname(context.Background(), "empty.test")
	assert.ErrorIs(t, err, ErrResolution)
}

func TestFirstAddressText(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockResolver(ctrl)
	a, _ := newTestAdapter(t, mock)

	mock.EXPECT().Resolve(gomock.Any(), "dual.test").Return([]xnet.Address{
		mustAddr(t, "2001:db8:0:0:0:0:0:1"),
		mustAddr(t, "192.0.2.1"),
	}, nil)

	got, err := a.FirstAddressText(context.Background(), "dual.test")
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::1", got)

	got, err = a.FirstAddressText(context.Background(), "fe80:0:0:0:0:0:0:1")
	require.NoError(t, err)
	assert.Equal(t, "fe80::1", got)
}

func TestFirstAddressText_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockResolver(ctrl)
	a, _ := newTestAdapter(t, mock)

	mock.EXPECT().Resolve(gomock.Any(), "x.test").Return(nil, errors.New("boom"))
	_, err := a.FirstAddressText(context.Background(), "x.test")
	assert.ErrorIs(t, err, ErrResolution)
}

func TestAllAddressTexts(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockResolver(ctrl)
	a, _ := newTestAdapter(t, mock)

	dual := []xnet.Address{
		mustAddr(t, "192.0.2.1"),
		mustAddr(t, "2001:db8::1"),
		mustAddr(t, "192.0.2.2"),
	}
	mock.EXPECT().Resolve(gomock.Any(), "dual.test").Return(dual, nil).Times(2)
	mock.EXPECT().Resolve(gomock.Any(), "v6only.test").Return([]xnet.Address{mustAddr(t, "::1")}, nil)

	ctx := context.Background()
	got, err := a.AllAddressTexts(ctx, "dual.test", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"192.0.2.1", "2001:db8::1", "192.0.2.2"}, got)

	got, err = a.AllAddressTexts(ctx, "dual.test", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"192.0.2.1", "192.0.2.2"}, got)

	got, err = a.AllAddressTexts(ctx, "v6only.test", false)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = a.AllAddressTexts(ctx, "::1", false)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAddressToBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockResolver(ctrl)
	a, _ := newTestAdapter(t, mock)
	ctx := context.Background()

	v4, err := a.AddressToBinary(ctx, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7f, 0, 0, 1}, v4.Bytes())

	v6, err := a.AddressToBinary(ctx, "fe80::1")
	require.NoError(t, err)
	assert.Len(t, v6.Bytes(), 16)
	assert.Equal(t, byte(0xfe), v6.Bytes()[0])
	assert.Equal(t, byte(1), v6.Bytes()[15])

	mock.EXPECT().Resolve(gomock.Any(), "host.test").Return([]xnet.Address{mustAddr(t, "10.1.2.3")}, nil)
	r, err := a.AddressToBinary(ctx, "host.test")
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 1, 2, 3}, r.Bytes())

	mock.EXPECT().Resolve(gomock.Any(), "bad.test").Return(nil, errors.New("nxdomain"))
	_, err = a.AddressToBinary(ctx, "bad.test")
	assert.ErrorIs(t, err, xnet.ErrInvalidAddress)
	assert.ErrorIs(t, err, ErrResolution)
}

func TestResolveMany(t *testing.T) {
	answers := map[string][]xnet.Address{
		"a.test": {mustAddr(t, "192.0.2.1"), mustAddr(t, "2001:db8::a")},
		"b.test": {mustAddr(t, "192.0.2.2")},
	}
	var calls atomic.Int32
	r := ResolverFunc(func(_ context.Context, host string) ([]xnet.Address, error) {
		calls.Add(1)
		if addrs, ok := answers[host]; ok {
			return addrs, nil
		}
		return nil, errors.New("no such host")
	})
	a, _ := newTestAdapter(t, r, WithConcurrency(2))

	got, err := a.ResolveMany(context.Background(),
		[]string{"a.test", "b.test", "a.test", "10.0.0.1", "c.test"}, false)
	assert.ErrorIs(t, err, ErrResolution)
	assert.Contains(t, err.Error(), "c.test")
	assert.Equal(t, map[string][]string{
		"a.test":   {"192.0.2.1"},
		"b.test":   {"192.0.2.2"},
		"10.0.0.1": {"10.0.0.1"},
	}, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestResolveMany_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, _ := newTestAdapter(t, NewMockResolver(ctrl))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := a.ResolveMany(ctx, []string{"a.test", "b.test"}, true)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}

func TestResolveMany_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	a, _ := newTestAdapter(t, NewMockResolver(ctrl))

	got, err := a.ResolveMany(context.Background(), nil, true)
	require.NoError(t, err)
	assert.Empty(t, got)
}
