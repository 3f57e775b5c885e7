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

package socket_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sundro/xnet/socket"
)

var _ = Describe("Init", func() {
	It("rejects flags naming no role", func() {
		_, err := socket.Init(socket.FlagStream)
		Expect(err).To(HaveOccurred())
	})

	It("rejects flags naming two roles", func() {
		_, err := socket.Init(socket.FlagServer | socket.FlagClient | socket.FlagStream)
		Expect(err).To(HaveOccurred())
	})

	It("rejects flags naming no wire shape", func() {
		_, err := socket.Init(socket.FlagClient)
		Expect(err).To(HaveOccurred())
	})

	It("implies TLS from an SSL version preference", func() {
		s, err := socket.Init(socket.FlagClient | socket.FlagStream | socket.FlagSSLv3)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Flags().IsSet(socket.FlagTLS)).To(BeTrue())
	})

	It("implies a datagram shape from a membership flag", func() {
		s, err := socket.Init(socket.FlagClient | socket.FlagStream | socket.FlagUnicast)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Flags().IsSet(socket.FlagDatagram)).To(BeTrue())
		Expect(s.Flags().IsSet(socket.FlagStream)).To(BeFalse())
	})

	It("starts in the open status", func() {
		s, err := socket.Init(socket.FlagClient | socket.FlagStream)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Status()).To(Equal(socket.StatusOpen))
	})

	It("keeps the UNIX bit set after normalization", func() {
		s, err := socket.Init(socket.FlagClient | socket.FlagStream | socket.FlagUnix)
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Flags().IsSet(socket.FlagUnix)).To(BeTrue())
	})
})
