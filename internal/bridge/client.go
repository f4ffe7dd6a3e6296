package bridge

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rectcircle/bridge/internal/variable"
)

// Client - run the bridge client end to end: build the
// Local Endpoint, open the tunnel, launch the Uplink and Downlink Pumps,
// and translate INT/HUP/TERM into closing the local side (the single
// convergent shutdown path both pumps observe). Returns the process
// exit status: 0 on orderly shutdown, 1 if the initial open fails or the
// bridge is unreachable.
func Client(localSpec string, bridgeURL string, remoteHost string, remotePort int) int {
	local, err := buildLocal(localSpec)
	if err != nil {
		log.Printf("error: %s", err)
		return 1
	}

	id, err := NewConnID()
	if err != nil {
		log.Printf("error: %s", err)
		return 1
	}

	openClient := newHTTPClient(30 * time.Second)
	if err := Open(openClient, bridgeURL, id, remoteHost, remotePort); err != nil {
		log.Printf("%s", err)
		return 1
	}
	log.Printf("tunnel %s open via %s -> %s:%d", id, bridgeURL, remoteHost, remotePort)

	connected := NewConnected()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("bridge client: signal received, closing local endpoint")
		local.CloseIn()
	}()

	var wg sync.WaitGroup
	var downlinkErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		downlinkClient := newHTTPClient(variable.ClientReadTimeout)
		downlinkErr = DownlinkPump(downlinkClient, bridgeURL, id, local, connected)
	}()

	uplinkClient := newHTTPClient(30 * time.Second)
	uplinkErr := UplinkPump(uplinkClient, bridgeURL, id, local, connected)

	wg.Wait()
	local.CloseIn()

	if uplinkErr != nil {
		log.Printf("error: %s", uplinkErr)
		return 1
	}
	if downlinkErr != nil {
		log.Printf("error: %s", downlinkErr)
		return 1
	}
	return 0
}

func buildLocal(localSpec string) (*Local, error) {
	if localSpec == "STDIN" || localSpec == "-" {
		return NewStdioLocal(), nil
	}
	port, err := parsePort(localSpec)
	if err != nil {
		return nil, err
	}
	return NewListenerLocal(port)
}
