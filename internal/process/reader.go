package process

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Norgate-AV/procctl/internal/interfaces"
)

// Width is the size in bytes of a single read
type Width int

const (
	WidthByte  Width = 1
	WidthDword Width = 4
	// WidthWord is the native word of this build
	WidthWord Width = strconv.IntSize / 8
)

// ParseWidth accepts "byte", "dword", "qword" and "word"
func ParseWidth(s string) (Width, error) {
	switch s {
	case "byte", "1":
		return WidthByte, nil
	case "dword", "4":
		return WidthDword, nil
	case "qword", "8":
		return 8, nil
	case "word", "native", "":
		return WidthWord, nil
	}

	return 0, fmt.Errorf("unknown read width %q", s)
}

func (w Width) valid() bool {
	return w == WidthByte || w == WidthDword || w == 8
}

// ReadResult is the resolved address and the value read there
type ReadResult struct {
	Address uintptr
	Value   uint64
}

// ReadMemory reads an unsigned value of the given width.
//
// With an empty chain it reads at address. Otherwise, for every offset in
// order, it reads at the current address and moves to value+offset; the
// result holds the last computed address and the value of the last read.
func (h *Handle) ReadMemory(address uintptr, chain OffsetChain, width Width) (ReadResult, error) {
	if !width.valid() {
		return ReadResult{}, fmt.Errorf("unsupported read width %d", width)
	}

	if len(chain) == 0 {
		value, err := h.read(address, width, -1)
		if err != nil {
			return ReadResult{}, err
		}

		h.log.Debug("Read memory",
			slog.String("address", fmt.Sprintf("%#x", address)),
			slog.Uint64("value", value),
		)
		return ReadResult{Address: address, Value: value}, nil
	}

	current := address
	var value uint64

	for step, offset := range chain {
		v, err := h.read(current, width, step)
		if err != nil {
			return ReadResult{}, err
		}

		value = v
		current = offset.apply(v)
	}

	h.log.Debug("Resolved pointer chain",
		slog.String("base", fmt.Sprintf("%#x", address)),
		slog.String("offsets", chain.String()),
		slog.String("address", fmt.Sprintf("%#x", current)),
		slog.Uint64("value", value),
	)

	return ReadResult{Address: current, Value: value}, nil
}

func (h *Handle) read(address uintptr, width Width, step int) (uint64, error) {
	handle, err := h.processHandle()
	if err != nil {
		return 0, &ReadFailedError{Address: address, Width: width, Step: step, Err: err}
	}

	buf, err := h.deps.Processes.ReadMemory(handle, address, int(width))
	if err == nil && len(buf) != int(width) {
		err = fmt.Errorf("short read: got %d bytes", len(buf))
	}

	if err != nil {
		return 0, &ReadFailedError{Address: address, Width: width, Step: step, Err: err}
	}

	switch width {
	case WidthByte:
		return uint64(buf[0]), nil
	case WidthDword:
		return uint64(binary.LittleEndian.Uint32(buf)), nil
	case 8:
		return binary.LittleEndian.Uint64(buf), nil
	}

	return 0, fmt.Errorf("unsupported read width %d", width)
}

// processHandle opens the read-only handle on first use and memoizes it.
// A failed open is not memoized so the next read tries again.
func (h *Handle) processHandle() (uintptr, error) {
	if h.closed {
		return 0, ErrClosed
	}

	if h.readOpened {
		return h.readHandle, nil
	}

	handle, err := h.deps.Processes.OpenProcess(h.identity.PID, interfaces.AccessRead)
	if err != nil {
		return 0, fmt.Errorf("failed to open process %d for reading: %w", h.identity.PID, err)
	}

	h.readHandle = handle
	h.readOpened = true

	h.log.Debug("Opened read handle", slog.Uint64("pid", uint64(h.identity.PID)))
	return handle, nil
}
