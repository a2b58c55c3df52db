package reconcile

import (
	"strconv"
	"strings"
)

// channelUnset is the sentinel meaning "no channel number assigned".
const channelUnset = "0"

// nameKey builds the identity key for the name pass: two rows with the
// same provider-supplied name and stream type are the same logical
// channel across providers.
func nameKey(origName string, typeID int) string {
	return strings.ToLower(strings.TrimSpace(origName)) + "|" + strconv.Itoa(typeID)
}

// metaKey builds the identity key for the channel and metadata passes,
// which group by the (already reconciled) display name.
func metaKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// customName reports whether a row's display name is a genuine edit:
// non-empty and different from what the provider supplied.
func customName(r Row) bool {
	name := strings.TrimSpace(r.Name)
	return name != "" && name != strings.TrimSpace(r.OrigName)
}

// customChannel reports whether a row carries an assigned channel number.
func customChannel(r Row) bool {
	ch := strings.TrimSpace(r.Channel)
	return ch != "" && ch != channelUnset
}

// bestByKey scans rows in their given order (newest first) and records,
// per identity key, the value of the first row that qualifies. Because of
// the scan order no further comparison is needed: first seen is the most
// recent.
func bestByKey(rows []Row, key func(Row) string, qualifies func(Row) bool, value func(Row) string) map[string]string {
	best := make(map[string]string)
	for _, r := range rows {
		k := key(r)
		if _, ok := best[k]; ok {
			continue
		}
		if qualifies(r) {
			best[k] = value(r)
		}
	}
	return best
}
