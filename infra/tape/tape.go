package tape

import (
	"encoding/binary"
	"os"
)

type Config struct {
	Dir         string
	SegmentSize int64
}

const defaultSegmentSize = 2 * 1024 * 1024

// Log is the append side of the tape. It resumes on the highest existing
// segment, so reopening after a restart keeps appending to the same
// stream.
type Log struct {
	dir      string
	segSize  int64
	current  *segment
	segIndex int
}

func Open(cfg Config) (*Log, error) {
	if cfg.SegmentSize <= 0 {
		cfg.SegmentSize = defaultSegmentSize
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}

	index, err := lastSegmentIndex(cfg.Dir)
	if err != nil {
		return nil, err
	}
	if index < 0 {
		index = 0
	}

	seg, err := openSegment(cfg.Dir, index)
	if err != nil {
		return nil, err
	}

	return &Log{
		dir:      cfg.Dir,
		segSize:  cfg.SegmentSize,
		current:  seg,
		segIndex: index,
	}, nil
}

// Append frames and writes one record, rotating segments by size.
func (l *Log) Append(r *Record) error {
	payloadLen := uint32(len(r.Data))

	buf := make([]byte, headerSize+int(payloadLen)+4)
	binary.BigEndian.PutUint64(buf[0:8], r.Seq)
	binary.BigEndian.PutUint64(buf[8:16], uint64(r.Time))
	binary.BigEndian.PutUint32(buf[16:20], payloadLen)
	copy(buf[headerSize:], r.Data)

	crc := checksum(buf[:headerSize+int(payloadLen)])
	binary.BigEndian.PutUint32(buf[headerSize+int(payloadLen):], crc)

	if err := l.current.append(buf); err != nil {
		return err
	}
	if l.current.offset >= l.segSize {
		return l.rotate()
	}
	return nil
}

// Sync flushes the current segment to stable storage.
func (l *Log) Sync() error {
	return l.current.sync()
}

func (l *Log) Close() error {
	return l.current.close()
}

func (l *Log) rotate() error {
	_ = l.current.close()
	l.segIndex++

	seg, err := openSegment(l.dir, l.segIndex)
	if err != nil {
		return err
	}
	l.current = seg
	return nil
}

// TruncateBefore removes whole segments whose records all have sequence
// numbers at or below seq. Used by retention jobs; the active segment is
// never removed.
func (l *Log) TruncateBefore(seq uint64) error {
	files, err := listSegments(l.dir)
	if err != nil {
		return err
	}
	for _, path := range files {
		if path == segmentPath(l.dir, l.segIndex) {
			continue
		}
		maxSeq, err := maxSeqInSegment(path)
		if err != nil {
			continue
		}
		if maxSeq <= seq {
			_ = os.Remove(path)
		}
	}
	return nil
}
