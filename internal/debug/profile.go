// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package debug wires logging and runtime profiling to command line flags.
// Commands add Flags to their flag set, call Setup before doing any work and
// Exit on the way out.
package debug

import (
	"errors"
	"io"
	"os"
	"runtime/pprof"
	"runtime/trace"
	"sync"

	"github.com/sunyihoo/contractcall/internal/flags"
	"github.com/sunyihoo/contractcall/log"
)

// profiler holds the output files of the CPU profile and the execution trace
// that are running for the lifetime of the process.
//
// profiler 记录进程生命周期内正在进行的 CPU 性能分析和执行跟踪的输出文件。
type profiler struct {
	mu        sync.Mutex
	cpuW      io.WriteCloser // CPU 性能分析数据的文件句柄。
	cpuFile   string
	traceW    io.WriteCloser // 执行跟踪数据的文件句柄。
	traceFile string
	memFile   string // 退出时写入堆快照的路径，为空则不写。
}

var prof = new(profiler)

// startCPUProfile turns on CPU profiling, writing to the given file.
func (p *profiler) startCPUProfile(file string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cpuW != nil {
		return errors.New("CPU profiling already in progress")
	}
	f, err := os.Create(flags.ExpandPath(file))
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return err
	}
	p.cpuW, p.cpuFile = f, file
	log.Debug("CPU profiling started", "dump", file)
	return nil
}

// startGoTrace turns on execution tracing, writing to the given file.
func (p *profiler) startGoTrace(file string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.traceW != nil {
		return errors.New("trace already in progress")
	}
	f, err := os.Create(flags.ExpandPath(file))
	if err != nil {
		return err
	}
	if err := trace.Start(f); err != nil {
		f.Close()
		return err
	}
	p.traceW, p.traceFile = f, file
	log.Debug("Go tracing started", "dump", file)
	return nil
}

// stop ends every running profile and flushes the heap snapshot, if one was
// requested. It is safe to call more than once.
//
// stop 结束所有正在进行的分析，并在需要时写出堆快照；可重复调用。
func (p *profiler) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cpuW != nil {
		pprof.StopCPUProfile()
		p.cpuW.Close()
		log.Debug("Done writing CPU profile", "dump", p.cpuFile)
		p.cpuW, p.cpuFile = nil, ""
	}
	if p.traceW != nil {
		trace.Stop()
		p.traceW.Close()
		log.Debug("Done writing Go trace", "dump", p.traceFile)
		p.traceW, p.traceFile = nil, ""
	}
	if p.memFile != "" {
		if err := writeProfile("heap", p.memFile); err != nil {
			log.Warn("Failed to write heap profile", "dump", p.memFile, "err", err)
		}
		p.memFile = ""
	}
}

func writeProfile(name, file string) error {
	pp := pprof.Lookup(name)
	log.Debug("Writing profile records", "count", pp.Count(), "type", name, "dump", file)
	f, err := os.Create(flags.ExpandPath(file))
	if err != nil {
		return err
	}
	defer f.Close()
	return pp.WriteTo(f, 0)
}
