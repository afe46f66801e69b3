package ambient

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// RecordID derives the stable identifier of a telemetry reading: the
// lowercase hex SHA-256 of the decimal millisecond timestamp immediately
// followed by the device MAC address.
func RecordID(utcMillis int64, macAddress string) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(utcMillis, 10) + macAddress))
	return hex.EncodeToString(sum[:])
}
