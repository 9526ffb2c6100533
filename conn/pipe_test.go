package conn_test

import (
	"net"
	"sync/atomic"

	"github.com/xbeecore/xbee/framer"
)

// pipeTransport adapts a net.Conn (one end of net.Pipe) to the
// transport.Transport interface conn.New requires, mirroring the
// cmd/xbeecat example's tcpStream adapter.
type pipeTransport struct {
	net.Conn
	closed int32
}

func (p *pipeTransport) Close() error {
	atomic.StoreInt32(&p.closed, 1)
	return p.Conn.Close()
}

func (p *pipeTransport) IsOpen() bool {
	return atomic.LoadInt32(&p.closed) == 0
}

// newConnPipe returns a client/server pair of connected in-memory
// duplex streams: client is handed to conn.New, server is driven
// directly by the test to inject inbound frames and observe outbound
// ones.
func newConnPipe() (client *pipeTransport, server net.Conn) {
	c, s := net.Pipe()
	return &pipeTransport{Conn: c}, s
}

func newServerFramer(server net.Conn) (*framer.Reader, *framer.Writer) {
	rd, err := framer.NewReader(server, framer.API, framer.WithReadTimeout(0))
	if err != nil {
		panic(err)
	}
	wr, err := framer.NewWriter(server, framer.API)
	if err != nil {
		panic(err)
	}
	return rd, wr
}
