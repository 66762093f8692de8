package xresolve_test

import (
	"context"
	"fmt"

	"github.com/omeyang/xsock/pkg/util/xnet"
	"github.com/omeyang/xsock/pkg/util/xresolve"
)

func ExampleAdapter_AllAddressTexts() {
	static := xresolve.ResolverFunc(func(context.Context, string) ([]xnet.Address, error) {
		v4, _ := xnet.ParseLiteral("192.0.2.10")
		v6, _ := xnet.ParseLiteral("2001:db8:0:0:0:0:0:10")
		return []xnet.Address{v4, v6}, nil
	})
	a, _ := xresolve.New(static)

	all, _ := a.AllAddressTexts(context.Background(), "www.example.test", true)
	v4only, _ := a.AllAddressTexts(context.Background(), "www.example.test", false)
	fmt.Println(all)
	fmt.Println(v4only)
	// Output:
	// [192.0.2.10 2001:db8::10]
	// [192.0.2.10]
}

func ExampleAdapter_AddressToBinary() {
	a, _ := xresolve.New(xresolve.SystemResolver{})
	addr, _ := a.AddressToBinary(context.Background(), "127.0.0.1")
	fmt.Printf("%x\n", addr.Bytes())
	// Output: 7f000001
}
