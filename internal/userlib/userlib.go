// Package userlib is the library linked into user programs. Everything in it
// runs in user mode and reaches the kernel only through syscalls.
package userlib

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertwitch/nachosys/internal/memory"
	"github.com/desertwitch/nachosys/internal/schema"
	"golang.org/x/sys/unix"
)

// chunkSize is the largest piece of formatted output staged in user memory
// for a single write.
const chunkSize = 64

type processProvider interface {
	Memory() *memory.Memory
	Write(fd, bufAddr, count int) int
}

// PutString copies s into newly allocated user memory, NUL-terminated, and
// returns its address.
func PutString(mem *memory.Memory, s string) (int, error) {
	addr, err := mem.Alloc(len(s) + 1)
	if err != nil {
		return 0, fmt.Errorf("(userlib) %w", err)
	}

	if err := mem.WriteString(addr, s); err != nil {
		return 0, fmt.Errorf("(userlib) %w", err)
	}

	return addr, nil
}

// Printf formats according to a C-style format and writes the result to the
// console through the write syscall. It returns the number of bytes written,
// or a negative errno: EINVAL for a malformed format, EFAULT for a %s
// address outside of user memory, ENOMEM when the output cannot be staged, or
// the result of the failing write.
//
// Supported conversions are %d %i %u %x %X %c %s and %%, with optional
// '-' and '0' flags and a field width. %s takes a user memory address and
// prints up to the first NUL found there.
func Printf(p processProvider, format string, args ...int) int {
	out, err := Sprintf(p.Memory(), format, args...)
	if err != nil {
		return errnoOf(err)
	}

	return writeOut(p, out)
}

// Sprintf formats like [Printf] and returns the bytes instead of writing
// them.
func Sprintf(mem *memory.Memory, format string, args ...int) ([]byte, error) {
	var sb strings.Builder

	next := 0
	arg := func() (int, error) {
		if next >= len(args) {
			return 0, fmt.Errorf("(userlib) %w: argument %d", ErrMissingArgument, next+1)
		}
		next++

		return args[next-1], nil
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			sb.WriteByte(c)

			continue
		}

		dir, n := parseDirective(format[i+1:])
		i += n

		if dir.verb == '%' {
			sb.WriteByte('%')

			continue
		}

		v, err := arg()
		if err != nil {
			return nil, err
		}

		var s string
		switch dir.verb {
		case 'd', 'i':
			s = strconv.Itoa(int(int32(v)))
		case 'u':
			s = strconv.FormatUint(uint64(uint32(v)), 10)
		case 'x':
			s = strconv.FormatUint(uint64(uint32(v)), 16)
		case 'X':
			s = strings.ToUpper(strconv.FormatUint(uint64(uint32(v)), 16))
		case 'c':
			s = string([]byte{byte(v)})
		case 's':
			s, err = readString(mem, v)
			if err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("(userlib) %w: %%%c", ErrBadDirective, dir.verb)
		}

		sb.WriteString(dir.pad(s))
	}

	return []byte(sb.String()), nil
}

type directive struct {
	left  bool
	zero  bool
	width int
	verb  byte
}

// parseDirective parses flags, width, an ignored 'l' length modifier and the
// conversion following a '%'. It returns the number of bytes consumed.
func parseDirective(s string) (directive, int) {
	var d directive

	i := 0

flags:
	for ; i < len(s); i++ {
		switch s[i] {
		case '-':
			d.left = true
		case '0':
			d.zero = true
		default:
			break flags
		}
	}

	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		d.width = d.width*10 + int(s[i]-'0')
	}

	for ; i < len(s) && s[i] == 'l'; i++ {
	}

	if i == len(s) {
		// A trailing '%' prints itself.
		d.verb = '%'

		return d, i
	}

	d.verb = s[i]

	return d, i + 1
}

func (d directive) pad(s string) string {
	if len(s) >= d.width {
		return s
	}

	fill := d.width - len(s)

	switch {
	case d.left:
		return s + strings.Repeat(" ", fill)
	case d.zero && d.verb != 's' && d.verb != 'c':
		if strings.HasPrefix(s, "-") {
			return "-" + strings.Repeat("0", fill) + s[1:]
		}

		return strings.Repeat("0", fill) + s
	default:
		return strings.Repeat(" ", fill) + s
	}
}

// errnoOf returns the negative errno for a formatting or staging error.
func errnoOf(err error) int {
	switch {
	case errors.Is(err, memory.ErrFault):
		return -int(unix.EFAULT)
	case errors.Is(err, memory.ErrOutOfMemory):
		return -int(unix.ENOMEM)
	default:
		return -int(unix.EINVAL)
	}
}

func readString(mem *memory.Memory, addr int) (string, error) {
	if addr == 0 {
		return "(null)", nil
	}

	s, err := mem.ReadString(addr, mem.Size())
	if err != nil {
		return "", fmt.Errorf("(userlib) %%s argument: %w", err)
	}

	return s, nil
}

// writeOut stages out in user memory chunk by chunk and writes each chunk to
// the console.
func writeOut(p processProvider, out []byte) int {
	total := 0
	mem := p.Memory()

	for len(out) > 0 {
		chunk := out[:min(len(out), chunkSize)]

		res := 0
		err := mem.Frame(len(chunk), func(addr int) {
			if _, err := mem.Write(addr, chunk); err != nil {
				res = errnoOf(err)

				return
			}
			res = p.Write(schema.FdStandardOutput, addr, len(chunk))
		})
		if err != nil {
			return errnoOf(err)
		}

		if res < 0 {
			return res
		}

		total += res
		out = out[len(chunk):]
	}

	return total
}
