package protocol

import (
	"bytes"

	"github.com/warrenjitsing/gorawhttp/pkg/rherrors"
)

// fakeTransport is a hand-written Transport double: it records every Write
// and Writev call and serves Read calls from a queue of canned chunks, so
// tests can assert "exactly two segments were written" or "the read
// returned EOF mid-body".
type fakeTransport struct {
	writes  [][]byte
	writevs [][][]byte

	readChunks [][]byte
	readIdx    int
	readOff    int
	readErr    error // returned once readChunks is exhausted; defaults to ConnectionClosed
}

func (f *fakeTransport) Write(p []byte) (int, error) {
	cp := make([]byte, len(p))
	copy(cp, p)
	f.writes = append(f.writes, cp)
	return len(p), nil
}

func (f *fakeTransport) Writev(segments [][]byte) (int, error) {
	cp := make([][]byte, len(segments))
	total := 0
	for i, s := range segments {
		b := make([]byte, len(s))
		copy(b, s)
		cp[i] = b
		total += len(s)
	}
	f.writevs = append(f.writevs, cp)
	return total, nil
}

func (f *fakeTransport) Read(p []byte) (int, error) {
	if f.readIdx >= len(f.readChunks) {
		if f.readErr != nil {
			return 0, f.readErr
		}
		return 0, rherrors.NewConnectionClosed()
	}
	chunk := f.readChunks[f.readIdx][f.readOff:]
	n := copy(p, chunk)
	f.readOff += n
	if f.readOff >= len(f.readChunks[f.readIdx]) {
		f.readIdx++
		f.readOff = 0
	}
	return n, nil
}

// allWrittenBytes concatenates every Write call this fake has observed.
func (f *fakeTransport) allWrittenBytes() []byte {
	var buf bytes.Buffer
	for _, w := range f.writes {
		buf.Write(w)
	}
	return buf.Bytes()
}
