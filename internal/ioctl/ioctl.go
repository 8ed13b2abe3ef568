//go:build unix

// Package ioctl issues device control calls.
package ioctl

import (
	"fmt"
	"reflect"

	"github.com/go-errors/errors"
	"golang.org/x/sys/unix"
)

// Mode is the transfer direction encoded in a command.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command to be sent over ioctl.
type Command uintptr

func (c Command) String() string {
	var (
		mode = Mode(c >> 30 & 0x03)
		size = c >> 16 & 0x3fff
		cmd  = c & 0xffff
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) %#04x", str, size, uintptr(cmd))
}

// Encode an ioctl command.
func Encode(mode Mode, size uint16, cmd uintptr) Command {
	return Command(mode)<<30 | Command(size)<<16 | Command(cmd)
}

// Do executes command on fd, ptr must be a pointer or nil.
func Do(fd uintptr, command Command, ptr any) error {
	var p uintptr
	if ptr != nil {
		p = reflect.ValueOf(ptr).Pointer()
	}
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(command), p); errno != 0 {
		return errors.WrapPrefix(errno, command.String()+" failed", 0)
	}
	return nil
}
