// Command bridge is both halves of the tunnel pair:
//
//	bridge <localPort> <mountPath>
//	        runs the bridge server, listening on localPort, serving the
//	        tunnel protocol under mountPath.
//
//	bridge <localPort|STDIN|-> <bridgeURL> <remoteHost> <remotePort>
//	        runs the bridge client: either listens once on localPort or
//	        uses the process's own stdio, opens a tunnel against
//	        bridgeURL, and relays bytes to remoteHost:remotePort.
//
// Which mode runs is decided purely by argument count, matching the
// reference's historical arity-based dispatch. Unlike the reference
// (which exits 0 on a usage error), this build exits with status 2 on bad
// arity.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rectcircle/bridge/internal/bridge"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n"+
		"  %[1]s <localPort> <mountPath>                                    (run the bridge server)\n"+
		"  %[1]s <localPort|STDIN|-> <bridgeURL> <remoteHost> <remotePort>  (run the bridge client)\n",
		os.Args[0])
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	switch len(args) {
	case 3:
		return runServer(args[1], args[2])
	case 5:
		return runClient(args[1], args[2], args[3], args[4])
	default:
		usage()
		return 2
	}
}

func runServer(portArg, mountPath string) int {
	port, err := strconv.ParseUint(portArg, 10, 16)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid port %q: %s\n", portArg, err)
		return 2
	}
	server := bridge.NewServer(uint16(port), mountPath)
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return 1
	}
	return 0
}

func runClient(localSpec, bridgeURL, remoteHost, remotePortArg string) int {
	remotePort, err := strconv.ParseUint(remotePortArg, 10, 16)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid remote port %q: %s\n", remotePortArg, err)
		return 2
	}
	return bridge.Client(localSpec, bridgeURL, remoteHost, int(remotePort))
}
