package config

import (
	"strconv"
	"strings"
)

// IsOwner reports whether userID is the configured owner. The comparison is
// done on the decimal string form so the file may quote the id or not.
func (c *Config) IsOwner(userID int64) bool {
	if c.Owner.ID == "" {
		return false
	}
	return strconv.FormatInt(userID, 10) == strings.TrimSpace(c.Owner.ID)
}
