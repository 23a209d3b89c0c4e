// Package schema holds the contract shared between the kernel and the user
// programs running on it: syscall numbers, console descriptors and process
// exit statuses.
package schema

import "fmt"

// Syscall is the number of a kernel entry point.
type Syscall int

// Syscall numbers in the order of the Nachos syscall table.
const (
	SyscallHalt Syscall = iota
	SyscallExit
	SyscallExec
	SyscallJoin
	SyscallCreat
	SyscallOpen
	SyscallRead
	SyscallWrite
	SyscallClose
	SyscallUnlink
)

var syscallNames = [...]string{
	SyscallHalt:   "halt",
	SyscallExit:   "exit",
	SyscallExec:   "exec",
	SyscallJoin:   "join",
	SyscallCreat:  "creat",
	SyscallOpen:   "open",
	SyscallRead:   "read",
	SyscallWrite:  "write",
	SyscallClose:  "close",
	SyscallUnlink: "unlink",
}

func (s Syscall) String() string {
	if s >= 0 && int(s) < len(syscallNames) {
		return syscallNames[s]
	}

	return fmt.Sprintf("syscall(%d)", int(s))
}

// Descriptors bound to the console when a process starts.
const (
	FdStandardInput  = 0
	FdStandardOutput = 1
)

// Exit statuses of a process.
const (
	// StatusOK is the status of a process that halted or returned normally.
	StatusOK = 0

	// StatusFault is the status of a process that panicked or issued an
	// unknown syscall.
	StatusFault = -1

	// StatusKilled is the status of a process terminated because the machine
	// halted underneath it.
	StatusKilled = -2
)
