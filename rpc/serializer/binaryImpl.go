package serializer

import (
	"encoding/binary"
	"fmt"

	"github.com/dockv/dockv/rpc/common"
)

// NewBinarySerializer creates a new serializer using a custom binary format
// optimized for speed and efficiency
func NewBinarySerializer() ISerializer {
	return &binarySerializerImpl{}
}

// binarySerializerImpl implements ISerializer using a custom binary format
type binarySerializerImpl struct {
}

// Bit flags to indicate which optional fields are present
const (
	hasKey      uint16 = 1 << 0
	hasPrefix   uint16 = 1 << 1
	hasValue    uint16 = 1 << 2
	hasKeys     uint16 = 1 << 3
	hasDB       uint16 = 1 << 4
	hasPassword uint16 = 1 << 5
	hasOk       uint16 = 1 << 6
	hasErr      uint16 = 1 << 7
	hasMeta     uint16 = 1 << 8
)

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (b binarySerializerImpl) Serialize(msg common.Message) ([]byte, error) {
	// Calculate total size needed
	totalSize := b.sizeBytes(msg)
	result := make([]byte, totalSize)

	// Write message type
	result[0] = byte(msg.MsgType)

	// Initialize flags
	var flags uint16 = 0

	// Set position for writing (after MsgType and flags)
	pos := 3

	// Handle Key
	if msg.Key != "" {
		flags |= hasKey
		pos += writeString(result, pos, msg.Key)
	}

	// Handle Prefix
	if msg.Prefix != "" {
		flags |= hasPrefix
		pos += writeString(result, pos, msg.Prefix)
	}

	// Handle Value
	if msg.Value != nil {
		flags |= hasValue
		pos += writeBytes(result, pos, msg.Value)
	}

	// Handle Keys
	if msg.Keys != nil {
		flags |= hasKeys

		// Write element count
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(len(msg.Keys)))
		pos += 4

		// Write each key
		for _, k := range msg.Keys {
			pos += writeString(result, pos, k)
		}
	}

	// Handle DB
	if msg.DB != 0 {
		flags |= hasDB
		binary.BigEndian.PutUint32(result[pos:pos+4], uint32(msg.DB))
		pos += 4
	}

	// Handle Password
	if msg.Password != "" {
		flags |= hasPassword
		pos += writeString(result, pos, msg.Password)
	}

	// Handle Ok
	if msg.Ok {
		flags |= hasOk
		result[pos] = 1
		pos += 1
	}

	// Handle Err
	if msg.Err != "" {
		flags |= hasErr
		pos += writeString(result, pos, msg.Err)
	}

	// Handle Meta
	if msg.Meta != nil {
		flags |= hasMeta
		pos += writeBytes(result, pos, msg.Meta)
	}

	// Set flags after knowing which fields are present
	binary.BigEndian.PutUint16(result[1:3], flags)

	return result, nil
}

func (b binarySerializerImpl) Deserialize(data []byte, msg *common.Message) error {
	// Check minimum size (MsgType + flags)
	if len(data) < 3 {
		return fmt.Errorf("data too short for message header")
	}

	// Read message type
	msg.MsgType = common.MessageType(data[0])

	// Read flags
	flags := binary.BigEndian.Uint16(data[1:3])

	// Initialize read position
	pos := 3
	var err error

	// Read Key if present
	if flags&hasKey != 0 {
		if msg.Key, pos, err = readString(data, pos, "key"); err != nil {
			return err
		}
	} else {
		msg.Key = ""
	}

	// Read Prefix if present
	if flags&hasPrefix != 0 {
		if msg.Prefix, pos, err = readString(data, pos, "prefix"); err != nil {
			return err
		}
	} else {
		msg.Prefix = ""
	}

	// Read Value if present
	if flags&hasValue != 0 {
		if msg.Value, pos, err = readBytes(data, pos, "value"); err != nil {
			return err
		}
	} else {
		msg.Value = nil
	}

	// Read Keys if present
	if flags&hasKeys != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("data too short for keys count")
		}
		count := binary.BigEndian.Uint32(data[pos : pos+4])
		pos += 4

		msg.Keys = make([]string, 0, count)
		for i := uint32(0); i < count; i++ {
			var k string
			if k, pos, err = readString(data, pos, "keys element"); err != nil {
				return err
			}
			msg.Keys = append(msg.Keys, k)
		}
	} else {
		msg.Keys = nil
	}

	// Read DB if present
	if flags&hasDB != 0 {
		if pos+4 > len(data) {
			return fmt.Errorf("data too short for db index")
		}
		msg.DB = int(binary.BigEndian.Uint32(data[pos : pos+4]))
		pos += 4
	} else {
		msg.DB = 0
	}

	// Read Password if present
	if flags&hasPassword != 0 {
		if msg.Password, pos, err = readString(data, pos, "password"); err != nil {
			return err
		}
	} else {
		msg.Password = ""
	}

	// Read Ok if present
	if flags&hasOk != 0 {
		if pos+1 > len(data) {
			return fmt.Errorf("data too short for Ok flag")
		}
		msg.Ok = data[pos] != 0
		pos += 1
	} else {
		msg.Ok = false
	}

	// Read Err if present
	if flags&hasErr != 0 {
		if msg.Err, pos, err = readString(data, pos, "error"); err != nil {
			return err
		}
	} else {
		msg.Err = ""
	}

	// Read Meta if present
	if flags&hasMeta != 0 {
		if msg.Meta, pos, err = readBytes(data, pos, "meta"); err != nil {
			return err
		}
	} else {
		msg.Meta = nil
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// writeString writes a length-prefixed string at pos and returns the number
// of bytes written
func writeString(dst []byte, pos int, s string) int {
	binary.BigEndian.PutUint32(dst[pos:pos+4], uint32(len(s)))
	copy(dst[pos+4:pos+4+len(s)], s)
	return 4 + len(s)
}

// writeBytes writes a length-prefixed byte slice at pos and returns the
// number of bytes written
func writeBytes(dst []byte, pos int, b []byte) int {
	binary.BigEndian.PutUint32(dst[pos:pos+4], uint32(len(b)))
	copy(dst[pos+4:pos+4+len(b)], b)
	return 4 + len(b)
}

// readString reads a length-prefixed string at pos and returns the string
// and the new position
func readString(data []byte, pos int, field string) (string, int, error) {
	if pos+4 > len(data) {
		return "", pos, fmt.Errorf("data too short for %s length", field)
	}
	n := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4

	if pos+n > len(data) {
		return "", pos, fmt.Errorf("data too short for %s data", field)
	}
	return string(data[pos : pos+n]), pos + n, nil
}

// readBytes reads a length-prefixed byte slice at pos and returns the slice
// (empty but not nil for zero length) and the new position
func readBytes(data []byte, pos int, field string) ([]byte, int, error) {
	if pos+4 > len(data) {
		return nil, pos, fmt.Errorf("data too short for %s length", field)
	}
	n := int(binary.BigEndian.Uint32(data[pos : pos+4]))
	pos += 4

	if pos+n > len(data) {
		return nil, pos, fmt.Errorf("data too short for %s data", field)
	}

	out := make([]byte, n)
	copy(out, data[pos:pos+n])
	return out, pos + n, nil
}

// sizeBytes calculates the total size needed for serialization
func (b binarySerializerImpl) sizeBytes(msg common.Message) int {
	// 1 byte for MsgType + 2 bytes for flags
	size := 3

	// Add sizes for fields that require length encoding
	if msg.Key != "" {
		size += 4 + len(msg.Key)
	}
	if msg.Prefix != "" {
		size += 4 + len(msg.Prefix)
	}
	if msg.Value != nil {
		size += 4 + len(msg.Value)
	}
	if msg.Keys != nil {
		size += 4 // element count
		for _, k := range msg.Keys {
			size += 4 + len(k)
		}
	}
	if msg.DB != 0 {
		size += 4 // uint32
	}
	if msg.Password != "" {
		size += 4 + len(msg.Password)
	}
	if msg.Ok {
		size += 1 // 1 byte for boolean
	}
	if msg.Err != "" {
		size += 4 + len(msg.Err)
	}
	if msg.Meta != nil {
		size += 4 + len(msg.Meta)
	}

	return size
}
