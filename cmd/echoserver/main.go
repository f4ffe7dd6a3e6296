// Command echoserver is a tiny standalone TCP echo service, handy for
// manually exercising a real `bridge server` / `bridge client` pair
// end to end.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rectcircle/bridge/internal/testutil"
)

func main() {
	var (
		host string
		port uint
	)
	flag.StringVar(&host, "h", "127.0.0.1", "host to bind")
	flag.UintVar(&port, "p", 9000, "port to bind")
	flag.Parse()
	if port >= (1 << 16) {
		fmt.Fprintln(os.Stderr, "error: port must be a uint16")
		os.Exit(2)
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	server, err := testutil.ListenEcho(addr)
	if err != nil {
		log.Fatalf("error: %s", err)
	}
	log.Printf("echo server listening on %s", server.Addr())
	server.Serve()
}
