// Command bleunlock runs the BLE Unlock SRP-6a handshake against a
// transport and prints the derived session key and traffic nonces. As
// with cmd/xbeecat, the actual BLE driver is out of scope, so this
// dials a TCP endpoint standing in for the GATT link.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/xbeecore/xbee/conn"
	"github.com/xbeecore/xbee/conn/trace"
	"github.com/xbeecore/xbee/srp"
	"github.com/xbeecore/xbee/transport"
)

func main() {
	addr := flag.String("addr", "localhost:2101", "TCP address of a BLE bridge")
	password := flag.String("password", "", "the device's configured BLE Unlock password")
	timeout := flag.Duration("timeout", 10*time.Second, "handshake timeout")
	flag.Parse()

	if *password == "" {
		log.Fatal("bleunlock: -password is required")
	}

	ctx := trace.WithConnTrace(context.Background(), trace.DefaultHooks)

	t, err := transport.Open(ctx, dialer{}, *addr)
	if err != nil {
		log.Fatalf("bleunlock: open %s: %v", *addr, err)
	}

	c, err := conn.New(ctx, t)
	if err != nil {
		log.Fatalf("bleunlock: %v", err)
	}
	defer c.Stop()

	authCtx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	cfg := c.Config()
	client := srp.NewClient(*password, srp.WithUsername(cfg.SRPUsername), srp.WithTimeout(cfg.SRPTimeout))
	result, err := client.Authenticate(authCtx, c)
	if err != nil {
		log.Fatalf("bleunlock: authenticate (state %s): %v", client.State(), err)
	}

	fmt.Printf("session key: %x\n", result.SharedKey)
	fmt.Printf("tx nonce:    %x\n", result.TXNonce)
	fmt.Printf("rx nonce:    %x\n", result.RXNonce)
}

type dialer struct{}

func (dialer) Dial(ctx context.Context, target string) (transport.ByteStream, error) {
	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, err
	}
	return &stream{Conn: nc}, nil
}

type stream struct {
	net.Conn
	closed bool
}

func (s *stream) Close() error {
	s.closed = true
	return s.Conn.Close()
}

func (s *stream) IsOpen() bool {
	return !s.closed
}
