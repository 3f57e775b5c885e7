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

package api

import (
	"crypto/rand"

	"github.com/sundro/xnet/atomic"
	"github.com/sundro/xnet/certificates"
)

// tlsProviderInit guards the process-global TLS provider: the first
// TLS-enabled Endpoint to register pays for pointing certificates.Default
// at a concrete randomness source, every later one reuses the same flag
// without re-running setup. It is the only mutable state api keeps outside
// a *Data or *API instance.
var tlsProviderInit = func() atomic.Value[bool] {
	v := atomic.NewValue[bool]()
	v.Store(false) // CompareAndSwap never succeeds on a Value that was never stored
	return v
}()

func ensureTLSProvider() {
	if tlsProviderInit.CompareAndSwap(false, true) {
		certificates.Default.RegisterRand(rand.Reader)
	}
}

// buildTLSConfig assembles a certificates.TLSConfig from an Endpoint's
// inline PEM pair or file pair, preferring PEM since it needs no filesystem
// access once the endpoint is registered.
func buildTLSConfig(ep *Endpoint) (certificates.TLSConfig, error) {
	ensureTLSProvider()

	cfg := certificates.New()

	if ep.CertPEM != "" && ep.KeyPEM != "" {
		if err := cfg.AddCertificatePairString(ep.KeyPEM, ep.CertPEM); err != nil {
			return nil, ErrorCrypt.Error(err)
		}
		return cfg, nil
	}

	if err := cfg.AddCertificatePairFile(ep.KeyFile, ep.CertFile); err != nil {
		return nil, ErrorCrypt.Error(err)
	}
	return cfg, nil
}
