// Command tcplistener is a minimal diagnostic tool: it accepts raw TCP
// connections, runs them through the resumable request parser without
// any of the server's timeout/keep-alive machinery, and prints what it
// parsed. Useful for poking at the wire format by hand with nc/curl.
package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"httpcore/internal/request"
)

const addr = ":42069"

func main() {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Println("ERROR: failed to open:", err)
		os.Exit(1)
	}
	defer ln.Close()

	fmt.Println("Listening for TCP traffic on", addr)
	for {
		conn, err := ln.Accept()
		if err != nil {
			fmt.Println("ERROR: failed to accept:", err)
			continue
		}
		go handleConn(conn)
	}
}

func handleConn(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	req := request.NewParser(request.Limits{})
	var buf []byte
	scratch := make([]byte, 4096)

	for {
		n, err := conn.Read(scratch)
		if n == 0 && err != nil {
			fmt.Println("ERROR: failed to read:", err)
			return
		}
		buf = append(buf, scratch[:n]...)

		consumed, status := req.Parse(buf)
		buf = buf[consumed:]

		switch status {
		case request.NeedMore:
			continue
		case request.Err:
			fmt.Println("ERROR: failed to parse request:", req.Err())
			return
		case request.OK:
			printRequest(req)
			_, _ = conn.Write([]byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 2\r\nConnection: close\r\n\r\nOK"))
			return
		}
	}
}

func printRequest(req *request.Request) {
	fmt.Printf("Request line:\n- Method: %s\n- Target: %s\n- Version: %s\n",
		req.Method, req.URI, req.Version)

	fmt.Println("Headers:")
	if req.Headers.Len() == 0 {
		fmt.Println("- (none)")
	} else {
		req.Headers.Range(func(name, value string) bool {
			fmt.Printf("- %s: %s\n", name, value)
			return true
		})
	}

	fmt.Println("Body:")
	if len(req.Body) == 0 {
		fmt.Println("- (none)")
	} else {
		fmt.Println(string(req.Body))
	}
}
