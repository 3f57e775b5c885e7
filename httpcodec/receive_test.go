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

package httpcodec_test

import (
	"net"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sundro/xnet/httpcodec"
	"github.com/sundro/xnet/socket"
)

func freePort() int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).ToNot(HaveOccurred())
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port
}

func connectedPair() (client, server *socket.Socket) {
	port := freePort()

	srv, err := socket.Init(socket.FlagServer | socket.FlagStream)
	Expect(err).ToNot(HaveOccurred())
	Expect(srv.Create(0, "127.0.0.1", port)).To(Succeed())

	accepted := make(chan *socket.Socket, 1)
	go func() {
		peer, aerr := srv.Accept()
		Expect(aerr).ToNot(HaveOccurred())
		accepted <- peer
	}()

	cli, err := socket.Init(socket.FlagClient | socket.FlagStream)
	Expect(err).ToNot(HaveOccurred())
	Expect(cli.Create(0, "127.0.0.1", port)).To(Succeed())

	peer := <-accepted
	_ = srv.Close()
	return cli, peer
}

var _ = Describe("Receive", func() {
	var cli, srv *socket.Socket

	AfterEach(func() {
		if cli != nil {
			_ = cli.Close()
		}
		if srv != nil {
			_ = srv.Close()
		}
	})

	It("reads a full request off a blocking socket in one call", func() {
		cli, srv = connectedPair()

		_, err := cli.Write([]byte("POST /widgets HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello"))
		Expect(err).ToNot(HaveOccurred())

		h := httpcodec.New()
		status, err := h.Receive(srv)
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(Equal(httpcodec.StatusComplete))
		Expect(h.Method()).To(Equal(httpcodec.MethodPost))
		Expect(string(h.Body())).To(Equal("hello"))
	})

	It("returns Incomplete on a non-blocking socket with nothing to read yet", func() {
		cli, srv = connectedPair()
		Expect(srv.NonBlock(true)).To(Succeed())

		h := httpcodec.New()
		status, err := h.Receive(srv)
		Expect(err).ToNot(HaveOccurred())
		Expect(status).To(Equal(httpcodec.StatusIncomplete))
	})

	It("resumes across two non-blocking Receive calls as bytes trickle in", func() {
		cli, srv = connectedPair()
		Expect(srv.NonBlock(true)).To(Succeed())

		_, err := cli.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
		Expect(err).ToNot(HaveOccurred())

		h := httpcodec.New()
		Eventually(func() httpcodec.Status {
			status, rerr := h.Receive(srv)
			Expect(rerr).ToNot(HaveOccurred())
			return status
		}).Should(Equal(httpcodec.StatusComplete))
	})

	It("reports ContentTooBig once the body exceeds the configured limit", func() {
		cli, srv = connectedPair()

		_, err := cli.Write([]byte("POST / HTTP/1.1\r\nContent-Length: 10\r\n\r\n0123456789"))
		Expect(err).ToNot(HaveOccurred())

		h := httpcodec.New()
		h.SetContentMax(4)
		status, err := h.Receive(srv)
		Expect(err).To(HaveOccurred())
		Expect(status).To(Equal(httpcodec.StatusContentTooBig))
	})
})
