// fovd serves field-of-view passes over WebSocket.
//
//	fovd [-addr :8080]
//
// Send {"type":"fov","width":W,"height":H,"walls":[[x,y],...],"origin":[x,y],"radius":R}
// to /ws; each request gets one response.
package main

import (
	"flag"
	"fmt"
	"os"

	"shadowcast-rogue/internal/logger"
	"shadowcast-rogue/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	if err := server.New(*addr).Run(); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}
