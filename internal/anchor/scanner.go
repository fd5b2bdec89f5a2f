package anchor

import (
	"encoding/base64"
	"strings"
)

// ProgramDataPrefix marks log lines that carry a base64 event record.
const ProgramDataPrefix = "Program data: "

// Find scans logs from the last line to the first and returns the first
// record that decodes as the codec's variant. Lines without the prefix,
// invalid base64, short records and payloads that fail to decode are skipped.
func Find(logs []string, codec Codec) (Event, bool) {
	for i := len(logs) - 1; i >= 0; i-- {
		record, ok := programData(logs[i])
		if !ok {
			continue
		}
		tag, payload, ok := Split(record)
		if !ok || !codec.Matches(tag) {
			continue
		}
		ev, err := codec.Decode(payload)
		if err != nil {
			continue
		}
		return ev, true
	}
	return nil, false
}

func programData(line string) ([]byte, bool) {
	encoded, ok := strings.CutPrefix(line, ProgramDataPrefix)
	if !ok {
		return nil, false
	}
	record, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}
	return record, true
}

// ProgramDataLine formats a record the way programs log it.
func ProgramDataLine(record []byte) string {
	return ProgramDataPrefix + base64.StdEncoding.EncodeToString(record)
}
