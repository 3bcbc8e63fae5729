package store

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/tferdous17/rbkv/utils"
)

/*
The format for each key-value (including header) on the wire is as follows:

| CheckSum | TimeStamp | KeySize | ValueSize | Key | Value |
*/
const headerSize = 16

// Header all fields in header are of fixed size, amounting to 16 bytes total
type Header struct {
	CheckSum  uint32
	TimeStamp uint32
	KeySize   uint32
	ValueSize uint32
}

type Record struct {
	Header     Header
	Key        string
	Value      string
	RecordSize uint32
}

// NewRecord stamps key and value with the current time and their checksum.
func NewRecord(key, value string) Record {
	return newRecordAt(key, value, uint32(time.Now().Unix()))
}

func newRecordAt(key, value string, timestamp uint32) Record {
	header := Header{
		TimeStamp: timestamp,
		KeySize:   uint32(len(key)),
		ValueSize: uint32(len(value)),
	}
	record := Record{
		Header:     header,
		Key:        key,
		Value:      value,
		RecordSize: headerSize + header.KeySize + header.ValueSize,
	}
	record.Header.CheckSum = record.CalculateChecksum()
	return record
}

func (h *Header) EncodeHeader(buf *bytes.Buffer) error {
	for _, field := range []uint32{h.CheckSum, h.TimeStamp, h.KeySize, h.ValueSize} {
		if err := binary.Write(buf, binary.LittleEndian, field); err != nil {
			return utils.ErrEncodingHeaderFailed
		}
	}
	return nil
}

func (h *Header) DecodeHeader(buf []byte) error {
	if len(buf) < headerSize {
		return utils.ErrDecodingHeaderFailed
	}
	h.CheckSum = binary.LittleEndian.Uint32(buf[0:4])
	h.TimeStamp = binary.LittleEndian.Uint32(buf[4:8])
	h.KeySize = binary.LittleEndian.Uint32(buf[8:12])
	h.ValueSize = binary.LittleEndian.Uint32(buf[12:16])
	return nil
}

func (r *Record) EncodeKV(buf *bytes.Buffer) error {
	// write the KV data into the buffer
	if err := r.Header.EncodeHeader(buf); err != nil {
		return err
	}
	buf.WriteString(r.Key)
	if _, err := buf.WriteString(r.Value); err != nil {
		return utils.ErrEncodingKVFailed
	}
	return nil
}

func (r *Record) DecodeKV(buf []byte) error {
	if err := r.Header.DecodeHeader(buf); err != nil {
		return err
	}
	total := uint64(headerSize) + uint64(r.Header.KeySize) + uint64(r.Header.ValueSize)
	if uint64(len(buf)) < total {
		return utils.ErrDecodingKVFailed
	}
	keyEnd := headerSize + r.Header.KeySize
	r.Key = string(buf[headerSize:keyEnd])
	r.Value = string(buf[keyEnd : keyEnd+r.Header.ValueSize])
	r.RecordSize = uint32(total)
	return nil
}

// Encode is EncodeKV into a fresh byte slice.
func (r *Record) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(int(r.RecordSize))
	if err := r.EncodeKV(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeRecord decodes buf and checks the record's checksum.
func DecodeRecord(buf []byte) (Record, error) {
	var r Record
	if err := r.DecodeKV(buf); err != nil {
		return Record{}, err
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (r *Record) Size() uint32 {
	return r.RecordSize
}

// CalculateChecksum computes a CRC32 over every header field except the checksum itself, plus key
// and value. Used for data integrity purposes.
func (r *Record) CalculateChecksum() uint32 {
	headerBuf := make([]byte, 12, 12+len(r.Key)+len(r.Value))
	binary.LittleEndian.PutUint32(headerBuf[0:4], r.Header.TimeStamp)
	binary.LittleEndian.PutUint32(headerBuf[4:8], r.Header.KeySize)
	binary.LittleEndian.PutUint32(headerBuf[8:12], r.Header.ValueSize)

	buf := append(headerBuf, r.Key...)
	buf = append(buf, r.Value...)
	return crc32.ChecksumIEEE(buf)
}

func (r *Record) Validate() error {
	if r.CalculateChecksum() != r.Header.CheckSum {
		return utils.ErrChecksumMismatch
	}
	return nil
}
