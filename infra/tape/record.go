package tape

// Record is one framed tape entry. Data holds the encoded trade event;
// the tape does not interpret it.
type Record struct {
	Seq  uint64
	Time int64
	Data []byte
}

// Frame layout: [seq:8][time:8][len:4][payload][crc:4], big endian.
// The CRC covers the header and payload.
const headerSize = 8 + 8 + 4
