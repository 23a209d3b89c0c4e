// Package programs contains the user programs that can be run on the
// machine. Programs reach the kernel only through the syscalls of their
// process and use [userlib] for formatted output.
package programs

import (
	"context"
	"fmt"
	"sort"

	"github.com/desertwitch/nachosys/internal/kernel"
	"github.com/desertwitch/nachosys/internal/schema"
	"github.com/desertwitch/nachosys/internal/userlib"
)

// Default is the program run when none is named.
const Default = "halt"

// TestFile is the file used by the file-I/O test programs.
const TestFile = "Test.txt"

// readCount is the number of bytes the test programs read back.
const readCount = 11

var registry = map[string]kernel.Program{
	"halt":      Halt,
	"readwrite": ReadWrite,
	"echo":      Echo,
}

// Lookup returns the program registered under name.
func Lookup(name string) (kernel.Program, error) {
	program, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("(programs) %w: %s", ErrUnknownProgram, name)
	}

	return program, nil
}

// Names returns the names of all registered programs in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// mustAlloc reserves automatics for a program. A program that runs out of
// memory faults.
func mustAlloc(p *kernel.Process, n int) int {
	addr, err := p.Memory().Alloc(n)
	if err != nil {
		panic(err)
	}

	return addr
}

func mustString(p *kernel.Process, s string) int {
	addr, err := userlib.PutString(p.Memory(), s)
	if err != nil {
		panic(err)
	}

	return addr
}

// Halt is the file-I/O smoke test: it creates the test file, opens it twice,
// reads from the second descriptor, prints what it read and halts the
// machine. No result is checked.
func Halt(_ context.Context, p *kernel.Process) {
	test := mustString(p, TestFile)

	p.Creat(test)
	p.Open(test)
	d := p.Open(test)

	// One extra byte keeps the buffer NUL-terminated for %s.
	buf := mustAlloc(p, readCount+1)
	p.Read(d, buf, readCount)

	userlib.Printf(p, "Contenido: %s\n", buf)

	p.Halt()
}

// ReadWrite exercises the write path: it writes a greeting to the test file,
// reopens it, reads it back and prints it before halting.
func ReadWrite(_ context.Context, p *kernel.Process) {
	test := mustString(p, TestFile)
	greeting := mustString(p, "Hello World")

	p.Creat(test)

	w := p.Open(test)
	n := p.Write(w, greeting, readCount)
	p.Close(w)

	r := p.Open(test)
	buf := mustAlloc(p, readCount+1)
	got := p.Read(r, buf, readCount)

	userlib.Printf(p, "Escrito: %d, Leido: %d\n", n, got)
	userlib.Printf(p, "Contenido: %s\n", buf)

	p.Halt()
}

// Echo copies the console input to the console output until the input ends.
func Echo(_ context.Context, p *kernel.Process) {
	buf := mustAlloc(p, 32)

	for {
		n := p.Read(schema.FdStandardInput, buf, 32)
		if n <= 0 {
			break
		}

		if w := p.Write(schema.FdStandardOutput, buf, n); w < 0 {
			p.Exit(1)
		}
	}

	p.Halt()
}
