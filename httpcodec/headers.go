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

package httpcodec

import "strings"

// headerMap stores header values keyed by their lowercased name, and keeps
// insertion order so Assemble can re-emit them the way they were added.
// Lookups always lowercase their argument first.
type headerMap struct {
	order []string
	value map[string]string
}

func newHeaderMap() *headerMap {
	return &headerMap{value: make(map[string]string)}
}

// set inserts name=val. If name already exists and allowUpdate is false, the
// existing value is left untouched and set reports false (the C library's
// "none-added" outcome). Otherwise the value is stored/replaced and set
// reports true; a brand-new key is appended to order, an existing one keeps
// its original position.
func (h *headerMap) set(name, val string, allowUpdate bool) bool {
	key := strings.ToLower(name)
	if _, ok := h.value[key]; ok {
		if !allowUpdate {
			return false
		}
		h.value[key] = val
		return true
	}
	h.order = append(h.order, key)
	h.value[key] = val
	return true
}

// setIfAbsent inserts name=val only if name is not already present, used by
// Parse where the teacher's C parser silently ignores header duplicates
// rather than applying allow_update semantics.
func (h *headerMap) setIfAbsent(name, val string) {
	key := strings.ToLower(name)
	if _, ok := h.value[key]; ok {
		return
	}
	h.order = append(h.order, key)
	h.value[key] = val
}

func (h *headerMap) get(name string) (string, bool) {
	v, ok := h.value[strings.ToLower(name)]
	return v, ok
}

func (h *headerMap) len() int {
	return len(h.order)
}

// walk visits key/value pairs in insertion order.
func (h *headerMap) walk(fn func(key, val string)) {
	for _, k := range h.order {
		fn(k, h.value[k])
	}
}

func (h *headerMap) clear() {
	h.order = h.order[:0]
	h.value = make(map[string]string)
}
