/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package api_test

import (
	"encoding/base64"
	"net"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sundro/xnet/api"
	"github.com/sundro/xnet/wscodec"
)

func freePort() int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port
}

// runService drives a.Service in a loop on its own goroutine until stop is
// closed, standing in for the single-threaded cooperative loop a real
// embedder would run.
func runService(a *api.API, stop <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				_ = a.Service(20)
			}
		}
	}()
}

// readAtLeast reads from conn until n bytes have arrived or timeout elapses.
func readAtLeast(conn net.Conn, n int, timeout time.Duration) []byte {
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	buf := make([]byte, 0, n+256)
	tmp := make([]byte, 4096)
	for len(buf) < n {
		rn, err := conn.Read(tmp)
		if rn > 0 {
			buf = append(buf, tmp[:rn]...)
		}
		if err != nil {
			break
		}
	}
	return buf
}

var _ = Describe("HTTP endpoint", func() {
	It("answers a bodyless GET with a 200 status response", func() {
		port := freePort()
		stop := make(chan struct{})
		defer close(stop)

		a, err := api.Create(0, func(ev api.Event, data *api.Data) api.Action {
			if ev.Type == api.EventRead {
				_ = api.RespondHTTP(data, api.StatusOK)
			}
			return api.ActionContinue
		}, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = a.Close() }()

		Expect(a.AddEndpoint(api.Endpoint{
			Role: api.RoleServer, Kind: api.KindHTTP, Address: "127.0.0.1", MaxConn: 8,
		})).ToNot(Succeed()) // Address alone resolves to the http default port 80, which an unprivileged test process cannot bind

		Expect(a.AddEndpoint(api.Endpoint{
			Role: api.RoleServer, Kind: api.KindHTTP,
			Address: "127.0.0.1:" + strconv.Itoa(port), MaxConn: 8,
		})).To(Succeed())

		runService(a, stop)

		conn, err := net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(port))
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = conn.Close() }()

		_, err = conn.Write([]byte("GET /ping HTTP/1.1\r\nHost: test\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		resp := string(readAtLeast(conn, 12, 2*time.Second))
		Expect(resp).To(ContainSubstring("200"))
		Expect(resp).To(ContainSubstring(`"status":"OK"`))
	})

	It("challenges a request with a missing or wrong basic-auth header", func() {
		port := freePort()
		stop := make(chan struct{})
		defer close(stop)

		a, err := api.Create(0, func(ev api.Event, data *api.Data) api.Action {
			if ev.Type != api.EventRead {
				return api.ActionContinue
			}
			if res, _ := api.AuthorizeHTTP(data, "alice", "s3cr3t", ""); res == api.AuthOK {
				_ = api.RespondHTTP(data, api.StatusOK)
			}
			return api.ActionContinue
		}, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = a.Close() }()

		Expect(a.AddEndpoint(api.Endpoint{
			Role: api.RoleServer, Kind: api.KindHTTP,
			Address: "127.0.0.1:" + strconv.Itoa(port), MaxConn: 8,
		})).To(Succeed())

		runService(a, stop)

		conn, err := net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(port))
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = conn.Close() }()

		_, err = conn.Write([]byte("GET /secret HTTP/1.1\r\nHost: test\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		resp := string(readAtLeast(conn, 12, 2*time.Second))
		Expect(resp).To(ContainSubstring("401"))
		Expect(resp).To(ContainSubstring("Missing auth basic header"))
		Expect(resp).To(ContainSubstring(`WWW-Authenticate: Basic realm="XAPI"`))
	})

	It("accepts a correct basic-auth header", func() {
		port := freePort()
		stop := make(chan struct{})
		defer close(stop)

		a, err := api.Create(0, func(ev api.Event, data *api.Data) api.Action {
			if ev.Type != api.EventRead {
				return api.ActionContinue
			}
			if res, _ := api.AuthorizeHTTP(data, "alice", "s3cr3t", ""); res == api.AuthOK {
				_ = api.RespondHTTP(data, api.StatusOK)
			}
			return api.ActionContinue
		}, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = a.Close() }()

		Expect(a.AddEndpoint(api.Endpoint{
			Role: api.RoleServer, Kind: api.KindHTTP,
			Address: "127.0.0.1:" + strconv.Itoa(port), MaxConn: 8,
		})).To(Succeed())

		runService(a, stop)

		conn, err := net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(port))
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = conn.Close() }()

		token := base64.StdEncoding.EncodeToString([]byte("alice:s3cr3t"))
		req := "GET /secret HTTP/1.1\r\nHost: test\r\nAuthorization: Basic " + token + "\r\n\r\n"
		_, err = conn.Write([]byte(req))
		Expect(err).ToNot(HaveOccurred())

		resp := string(readAtLeast(conn, 12, 2*time.Second))
		Expect(resp).To(ContainSubstring("200"))
	})
})

var _ = Describe("WebSocket endpoint", func() {
	It("echoes a frame and drains a pipelined second frame in the same read", func() {
		port := freePort()
		stop := make(chan struct{})
		defer close(stop)

		a, err := api.Create(0, func(ev api.Event, data *api.Data) api.Action {
			if ev.Type == api.EventRead {
				frame, _ := wscodec.CreateFrame(ev.Bytes, wscodec.FrameText, true)
				_ = data.EnqueueWrite(frame)
			}
			return api.ActionContinue
		}, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = a.Close() }()

		Expect(a.AddEndpoint(api.Endpoint{
			Role: api.RoleServer, Kind: api.KindWS,
			Address: "127.0.0.1:" + strconv.Itoa(port), MaxConn: 8,
		})).To(Succeed())

		runService(a, stop)

		conn, err := net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(port))
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = conn.Close() }()

		f1, err := wscodec.CreateFrame([]byte("hello"), wscodec.FrameText, true)
		Expect(err).ToNot(HaveOccurred())
		f2, err := wscodec.CreateFrame([]byte("world"), wscodec.FrameText, true)
		Expect(err).ToNot(HaveOccurred())

		_, err = conn.Write(append(append([]byte{}, f1...), f2...))
		Expect(err).ToNot(HaveOccurred())

		want := append(append([]byte{}, f1...), f2...)
		got := readAtLeast(conn, len(want), 2*time.Second)
		Expect(got).To(Equal(want))
	})
})

var _ = Describe("Connection timer", func() {
	It("disconnects a connection whose timer expires", func() {
		port := freePort()
		stop := make(chan struct{})
		defer close(stop)

		a, err := api.Create(0, func(ev api.Event, data *api.Data) api.Action {
			switch ev.Type {
			case api.EventAccepted:
				_ = data.ArmTimer(30 * time.Millisecond)
			case api.EventTimeout:
				return api.ActionDisconnect
			}
			return api.ActionContinue
		}, nil)
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = a.Close() }()

		Expect(a.AddEndpoint(api.Endpoint{
			Role: api.RoleServer, Kind: api.KindRaw,
			Address: "127.0.0.1:" + strconv.Itoa(port), MaxConn: 8,
		})).To(Succeed())

		runService(a, stop)

		conn, err := net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(port))
		Expect(err).ToNot(HaveOccurred())
		defer func() { _ = conn.Close() }()

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		buf := make([]byte, 16)
		n, _ := conn.Read(buf)
		Expect(n).To(Equal(0))
	})
})

