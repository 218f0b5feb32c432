package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/procctl/internal/interfaces"
	"github.com/Norgate-AV/procctl/internal/testutil"
)

func TestParseWidth(t *testing.T) {
	tests := []struct {
		input    string
		expected Width
		wantErr  bool
	}{
		{"byte", WidthByte, false},
		{"1", WidthByte, false},
		{"dword", WidthDword, false},
		{"4", WidthDword, false},
		{"qword", 8, false},
		{"8", 8, false},
		{"word", WidthWord, false},
		{"", WidthWord, false},
		{"short", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWidth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadMemory_ChainPerformsOneReadPerOffset(t *testing.T) {
	const (
		first  uintptr = 0x20000000
		second uintptr = 0x30000000
	)

	m := newMocks()
	m.proc.
		WithValue(gameBase+0x10, uint64(first), 8).
		WithValue(first+0x18, uint64(second), 8).
		WithValue(second+0x4, 1337, 8)

	h := m.handle()

	result, err := h.ReadMemory(gameBase+0x10, MustParseOffsets(0x18, "0x4"), 8)
	require.NoError(t, err)

	assert.Equal(t, ReadResult{Address: second + 0x4, Value: uint64(second)}, result)

	require.Len(t, m.proc.ReadCalls, 2)
	assert.Equal(t, gameBase+0x10, m.proc.ReadCalls[0].Address)
	assert.Equal(t, first+0x18, m.proc.ReadCalls[1].Address)
}

func TestReadMemory_ChainWithZeroLastOffsetDereferences(t *testing.T) {
	const ptr uintptr = 0x5000

	m := newMocks()
	m.proc.
		WithValue(0x1000, uint64(ptr), 4).
		WithValue(ptr+0x8, 99, 4)

	h := m.handle()

	result, err := h.ReadMemory(0x1000, OffsetChain{0x8, 0}, WidthDword)
	require.NoError(t, err)

	assert.Equal(t, uintptr(99), result.Address)
	assert.Equal(t, uint64(99), result.Value)
}

func TestReadMemory_NumbersAndHexStringsResolveAlike(t *testing.T) {
	m := newMocks()
	m.proc.
		WithValue(0x1000, 0x2000, 4).
		WithValue(0x2010, 0x3000, 4)

	h := m.handle()

	fromNumbers, err := h.ReadMemory(0x1000, MustParseOffsets(16, 0), WidthDword)
	require.NoError(t, err)

	fromStrings, err := h.ReadMemory(0x1000, MustParseOffsets("0x10", "0"), WidthDword)
	require.NoError(t, err)

	assert.Equal(t, fromNumbers, fromStrings)
}

func TestReadMemory_SingleRead(t *testing.T) {
	m := newMocks()
	m.proc.WithBytes(0x4000, []byte{0xAB, 0xCD, 0xEF, 0x01, 0x02, 0x03, 0x04, 0x05})

	h := m.handle()

	byteResult, err := h.ReadMemory(0x4000, nil, WidthByte)
	require.NoError(t, err)
	assert.Equal(t, ReadResult{Address: 0x4000, Value: 0xAB}, byteResult)

	dwordResult, err := h.ReadMemory(0x4000, OffsetChain{}, WidthDword)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x01EFCDAB), dwordResult.Value)

	qwordResult, err := h.ReadMemory(0x4000, nil, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x05040302_01EFCDAB), qwordResult.Value)
}

func TestReadMemory_HandleOpenedOnceClosedOnce(t *testing.T) {
	m := newMocks()
	m.proc.WithValue(0x4000, 7, 8)

	h := m.handle()

	for range 5 {
		_, err := h.ReadMemory(0x4000, nil, 8)
		require.NoError(t, err)
	}

	reads := m.proc.OpenCallsWith(interfaces.AccessRead)
	require.Len(t, reads, 1)
	assert.Equal(t, gamePID, reads[0].PID)

	for _, c := range m.proc.ReadCalls {
		assert.Equal(t, reads[0].Handle, c.Handle)
	}

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	assert.Equal(t, []uintptr{reads[0].Handle}, m.proc.CloseCalls)
	assert.Zero(t, m.proc.OpenHandles())
}

func TestReadMemory_AfterClose(t *testing.T) {
	m := newMocks()
	m.proc.WithValue(0x4000, 7, 8)

	h := m.handle()
	require.NoError(t, h.Close())

	_, err := h.ReadMemory(0x4000, nil, 8)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, err, ErrReadFailed)
	assert.Empty(t, m.proc.OpenCalls)
}

func TestClose_WithoutReadsTouchesNothing(t *testing.T) {
	m := newMocks()
	h := m.handle()

	assert.NoError(t, h.Close())
	assert.Empty(t, m.proc.CloseCalls)
}

func TestClose_FailureIsReportedOnce(t *testing.T) {
	m := newMocks()
	m.proc.WithValue(0x4000, 7, 8).WithCloseResult(testutil.ErrMock)

	h := m.handle()
	_, err := h.ReadMemory(0x4000, nil, 8)
	require.NoError(t, err)

	assert.ErrorIs(t, h.Close(), testutil.ErrMock)
	assert.NoError(t, h.Close())
	assert.Len(t, m.proc.CloseCalls, 1)
}

func TestReadMemory_FailureIdentifiesAddress(t *testing.T) {
	const ptr uintptr = 0x2000

	m := newMocks()
	m.proc.WithValue(0x1000, uint64(ptr), 8)

	h := m.handle()

	_, err := h.ReadMemory(0x1000, OffsetChain{0x30, 0x8}, 8)
	require.ErrorIs(t, err, ErrReadFailed)
	assert.ErrorIs(t, err, testutil.ErrUnmapped)

	var rf *ReadFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, ptr+0x30, rf.Address)
	assert.Equal(t, 1, rf.Step)
	assert.Contains(t, err.Error(), "0x2030")
}

func TestReadMemory_ShortReadFails(t *testing.T) {
	m := newMocks()
	m.proc.WithBytes(0x1000, []byte{1, 2})

	h := m.handle()

	_, err := h.ReadMemory(0x1000, nil, WidthDword)

	var rf *ReadFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, uintptr(0x1000), rf.Address)
	assert.Equal(t, -1, rf.Step)
}

func TestReadMemory_OpenFailureIsRetried(t *testing.T) {
	m := newMocks()
	m.proc.WithValue(0x1000, 5, 8).WithOpenError(gamePID, testutil.ErrMock)

	h := m.handle()

	_, err := h.ReadMemory(0x1000, nil, 8)
	assert.ErrorIs(t, err, testutil.ErrMock)
	assert.ErrorIs(t, err, ErrReadFailed)

	var rf *ReadFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, uintptr(0x1000), rf.Address)
	assert.Equal(t, -1, rf.Step)

	delete(m.proc.OpenErrors, gamePID)

	result, err := h.ReadMemory(0x1000, nil, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), result.Value)
}

func TestReadMemory_InvalidWidth(t *testing.T) {
	m := newMocks()
	h := m.handle()

	_, err := h.ReadMemory(0x1000, nil, 3)
	assert.ErrorContains(t, err, "unsupported read width 3")
	assert.Empty(t, m.proc.ReadCalls)
}
