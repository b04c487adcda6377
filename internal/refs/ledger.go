// Package refs maintains the back-reference id lists that stand in for
// foreign keys. Every workflow appends on create and drops on delete inside
// the same transaction as the owning write.
package refs

// Add appends id to list unless it is already present, so a list never
// holds the same id twice.
func Add(list []string, id string) []string {
	if Has(list, id) {
		return list
	}
	return append(list, id)
}

// Drop removes every occurrence of id from list.
func Drop(list []string, id string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func Has(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
