// Copyright © 2023-2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"runtime"
	"sync"
	"time"
)

// memSampler records the peak heap in use while it's running.
// The numbers are process-wide, so concurrent jobs are counted together.
type memSampler struct {
	interval time.Duration

	mu   sync.Mutex
	base uint64 // heap in use after a GC at the start
	peak uint64

	stop chan struct{}
	done chan struct{}
}

var defaultMemSampleInterval = 2 * time.Millisecond

func startMemSampler(interval time.Duration) *memSampler {
	if interval <= 0 {
		interval = defaultMemSampleInterval
	}
	s := &memSampler{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	runtime.GC()
	s.sample()
	s.base = s.peak

	go func() {
		ticker := time.NewTicker(s.interval)
		defer func() {
			ticker.Stop()
			close(s.done)
		}()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.sample()
			}
		}
	}()
	return s
}

func (s *memSampler) sample() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	s.mu.Lock()
	if ms.HeapInuse > s.peak {
		s.peak = ms.HeapInuse
	}
	s.mu.Unlock()
}

// Stop stops sampling and returns the growth of the peak heap in use
// over the start, in bytes.
func (s *memSampler) Stop() uint64 {
	s.sample()
	close(s.stop)
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak - s.base
}
