// Command xbeecat opens an XBee API-frame transport and prints every
// decoded inbound frame to stdout. It is an example binary, not a
// supported tool: the serial/BLE drivers it would need to talk to
// real hardware are out of scope (see the module's SPEC_FULL, §5
// Non-goals), so it dials a TCP endpoint instead — pointing it at a
// ser2net-style bridge exercises the same framing and dispatch code a
// real driver would.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/xbeecore/xbee/conn"
	"github.com/xbeecore/xbee/conn/trace"
	"github.com/xbeecore/xbee/frame"
	"github.com/xbeecore/xbee/framer"
	"github.com/xbeecore/xbee/transport"
)

func main() {
	addr := flag.String("addr", "localhost:2101", "TCP address of a serial/BLE bridge")
	escaped := flag.Bool("escaped", false, "use the API2 (escaped) framing mode")
	verbose := flag.Bool("v", false, "log every connect/read/write event")
	flag.Parse()

	mode := framer.API
	if *escaped {
		mode = framer.APIEscaped
	}

	hooks := trace.DefaultHooks
	if *verbose {
		hooks = trace.DiagnosticHooks
	}
	ctx := trace.WithConnTrace(context.Background(), hooks)

	t, err := transport.Open(ctx, tcpDialer{}, *addr)
	if err != nil {
		log.Fatalf("xbeecat: open %s: %v", *addr, err)
	}

	c, err := conn.New(ctx, t, conn.WithMode(mode))
	if err != nil {
		log.Fatalf("xbeecat: %v", err)
	}
	defer c.Stop()

	c.AddAllFramesListener(func(f frame.Frame) {
		fmt.Printf("%-28s % X\n", f.Type(), f.Encode())
	})

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	<-sigs
}

// tcpDialer adapts net.Dial to transport.Dialer for this example.
type tcpDialer struct{}

func (tcpDialer) Dial(ctx context.Context, target string) (transport.ByteStream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", target)
	if err != nil {
		return nil, err
	}
	return &tcpStream{Conn: conn}, nil
}

type tcpStream struct {
	net.Conn
	closed int32
}

func (s *tcpStream) Close() error {
	atomic.StoreInt32(&s.closed, 1)
	return s.Conn.Close()
}

func (s *tcpStream) IsOpen() bool {
	return atomic.LoadInt32(&s.closed) == 0
}
