// Command rawhttpsmoke is a minimal manual driver used to eyeball the
// engine's behavior against a real server: connect, issue one GET, print
// the parsed response. It is not a benchmark harness: no timing, no
// checksums, no file I/O.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/warrenjitsing/gorawhttp"
)

func main() {
	host := flag.String("host", "127.0.0.1", "target host or, with -unix, a socket path")
	port := flag.Int("port", 80, "target port (ignored with -unix)")
	path := flag.String("path", "/", "request path")
	unix := flag.Bool("unix", false, "connect over a UNIX-domain socket instead of TCP")
	safe := flag.Bool("safe", false, "use the safe (owning) memory policy instead of unsafe")
	vectored := flag.Bool("vectored", false, "use the vectored-write I/O policy")
	timeout := flag.Duration("timeout", 5*time.Second, "connect timeout")
	flag.Parse()

	opts := rawhttp.Options{}
	if *vectored {
		opts.IOPolicy = rawhttp.IOPolicyVectoredWrite
	}

	var client *rawhttp.Client
	if *unix {
		client = rawhttp.NewUnixClient(opts)
	} else {
		client = rawhttp.NewTCPClient(opts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := client.Connect(ctx, *host, *port); err != nil {
		fmt.Fprintf(os.Stderr, "connect failed: %v\n", err)
		os.Exit(1)
	}
	defer client.Disconnect()

	req := &rawhttp.Request{
		Path:    *path,
		Headers: []rawhttp.Header{{Key: "Host", Value: *host}},
	}

	if *safe {
		resp, err := client.GetSafe(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d %s\n", resp.StatusCode, resp.Message)
		for _, h := range resp.Headers {
			fmt.Printf("%s: %s\n", h.Key, h.Value)
		}
		fmt.Printf("\n%s\n", resp.Body)
		return
	}

	resp, err := client.GetUnsafe(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d %s\n", resp.StatusCode, resp.Message)
	for _, h := range resp.Headers {
		fmt.Printf("%s: %s\n", h.Key, h.Value)
	}
	fmt.Printf("\n%s\n", resp.Body)
}
