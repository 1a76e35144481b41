package guest

// WriteBoundedName copies name into dst followed by a NUL byte, truncating so
// that nothing is written past len(dst). With an empty dst nothing is
// written. It returns the number of name bytes copied.
func WriteBoundedName(dst []byte, name string) int {
	if len(dst) == 0 {
		return 0
	}
	n := copy(dst[:len(dst)-1], name)
	dst[n] = 0
	return n
}
